package twolvl

import "testing"

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"esop": ESOP,
		"ESOP": ESOP,
		"sop":  SOP,
		"SOP":  SOP,
		"":     Undef,
		"xyz":  Undef,
	}
	for s, want := range cases {
		if got := ParseKind(s); got != want {
			t.Errorf("ParseKind(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestAddCubeAssignsToMarkedOutputs(t *testing.T) {
	tl := New(ESOP, 3, 2)
	if err := tl.AddCube("1-0", "10"); err != nil {
		t.Fatalf("AddCube: %v", err)
	}
	if len(tl.Outputs[0]) != 1 {
		t.Errorf("output 0 should have 1 cube, got %d", len(tl.Outputs[0]))
	}
	if len(tl.Outputs[1]) != 0 {
		t.Errorf("output 1 should have 0 cubes, got %d", len(tl.Outputs[1]))
	}
}

func TestAddCubeAccumulatesInOrder(t *testing.T) {
	tl := New(ESOP, 2, 1)
	tl.AddCube("1-", "1")
	tl.AddCube("-0", "1")
	if len(tl.Outputs[0]) != 2 {
		t.Fatalf("expected 2 cubes, got %d", len(tl.Outputs[0]))
	}
	if got := tl.Outputs[0][0].String(2); got != "1-" {
		t.Errorf("first cube = %q, want %q", got, "1-")
	}
	if got := tl.Outputs[0][1].String(2); got != "-0" {
		t.Errorf("second cube = %q, want %q", got, "-0")
	}
}

func TestAddCubeRejectsWrongLengths(t *testing.T) {
	tl := New(SOP, 3, 2)
	if err := tl.AddCube("1-", "10"); err == nil {
		t.Error("expected error for short input string")
	}
	if err := tl.AddCube("1-0", "1"); err == nil {
		t.Error("expected error for short output string")
	}
}

func TestAddCubeRejectsInvalidLiteral(t *testing.T) {
	tl := New(SOP, 2, 1)
	if err := tl.AddCube("1x", "1"); err == nil {
		t.Error("expected error for invalid literal")
	}
}
