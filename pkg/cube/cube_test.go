package cube

import "testing"

func TestRotateTwiceFromPresentLiteral(t *testing.T) {
	for v := uint(0); v < MaxVars; v++ {
		for _, positive := range []bool{true, false} {
			c := New(v, positive)
			r2 := c.Rotate(v).Rotate(v)
			if positive {
				// positive -> absent -> negative: same position, swapped polarity.
				if r2.Mask != c.Mask {
					t.Fatalf("var %d: literal vanished after two rotations: %+v -> %+v", v, c, r2)
				}
				if r2.Polarity == c.Polarity {
					t.Errorf("var %d: polarity unchanged after two rotations, want swapped: %+v -> %+v", v, c, r2)
				}
			} else if !r2.Equal(One) {
				// negative -> positive -> absent.
				t.Errorf("var %d: two rotations from negative literal = %+v, want absent", v, r2)
			}
		}
	}
}

func TestAndIdempotent(t *testing.T) {
	c := New(0, true)
	if got := And(c, c); !got.Equal(c) {
		t.Errorf("And(c,c) = %+v, want %+v", got, c)
	}
}

func TestAndSelfComplementIsZero(t *testing.T) {
	c := New(5, true)
	notC := c.Invert()
	if got := And(c, notC); !got.Equal(Zero) {
		t.Errorf("And(x, not x) = %+v, want Zero", got)
	}
}

func TestMergeDropsRotatedLiteral(t *testing.T) {
	c := New(2, true)
	// Per spec.md §4.3, the opposite-polarity neighbor at a position is
	// reached by rotating twice, not once.
	rotated := c.Rotate(2).Rotate(2)
	merged := Merge(c, rotated)
	if merged.NLits() != c.NLits()-1 {
		t.Errorf("Merge(c, rotate(rotate(c,2),2)).NLits() = %d, want %d", merged.NLits(), c.NLits()-1)
	}
}

func TestRotateCyclesThreeStates(t *testing.T) {
	c := Cube{}
	absent := c
	neg := c.Rotate(0)
	pos := neg.Rotate(0)
	back := pos.Rotate(0)

	if neg.Mask&1 == 0 || neg.Polarity&1 != 0 {
		t.Errorf("first rotate from absent should be negative literal, got %+v", neg)
	}
	if pos.Mask&1 == 0 || pos.Polarity&1 == 0 {
		t.Errorf("second rotate should be positive literal, got %+v", pos)
	}
	if !back.Equal(absent) {
		t.Errorf("third rotate should return to absent, got %+v", back)
	}
}

func TestDistanceAndDifference(t *testing.T) {
	a := New(0, true)
	b := New(0, false)
	if d := Distance(a, b); d != 1 {
		t.Errorf("Distance(x0, not x0) = %d, want 1", d)
	}
	if d := Distance(a, a); d != 0 {
		t.Errorf("Distance(a, a) = %d, want 0", d)
	}
}

func TestStringParseRoundTrip(t *testing.T) {
	for _, s := range []string{"1-0", "---", "010101"} {
		c, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", s, err)
		}
		if got := c.String(len(s)); got != s {
			t.Errorf("round trip: Parse(%q).String() = %q", s, got)
		}
	}
}

func TestParseRejectsInvalidLiteral(t *testing.T) {
	if _, err := Parse("1x0"); err == nil {
		t.Error("expected error for invalid literal character")
	}
}

func TestZeroAndOneSentinels(t *testing.T) {
	if One.Mask != 0 || One.Polarity != 0 {
		t.Errorf("One should be the all-don't-care cube, got %+v", One)
	}
	if Zero.Mask != 0xFFFFFFFF {
		t.Errorf("Zero sentinel should have Mask=0xFFFFFFFF, got %+v", Zero)
	}
}
