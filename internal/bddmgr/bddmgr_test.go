package bddmgr

import (
	"testing"

	"github.com/rawblock/esopforge/internal/bdd"
)

// eval walks n down to a terminal following assign (assign[i] is the
// value bound to variable i), using only the bdd.Manager interface.
func eval(m bdd.Manager, n bdd.Node, assign []bool) bool {
	for {
		if m.IsOne(n) {
			return true
		}
		if m.IsZero(n) {
			return false
		}
		v := m.VarIndex(n)
		if assign[v] {
			n = m.CofactorPos(n)
		} else {
			n = m.CofactorNeg(n)
		}
	}
}

func TestVarCofactors(t *testing.T) {
	m := New()
	x := m.Var(0)
	if got := eval(m, x, []bool{false}); got != false {
		t.Errorf("x0 at 0 = %v, want false", got)
	}
	if got := eval(m, x, []bool{true}); got != true {
		t.Errorf("x0 at 1 = %v, want true", got)
	}
}

func TestAndIsStandardConjunction(t *testing.T) {
	m := New()
	x0, x1 := m.Var(0), m.Var(1)
	f := m.And(x0, x1)
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			assign := []bool{a == 1, b == 1}
			want := assign[0] && assign[1]
			if got := eval(m, f, assign); got != want {
				t.Errorf("And at (%v,%v) = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestXorIsStandardExclusiveOr(t *testing.T) {
	m := New()
	x0, x1 := m.Var(0), m.Var(1)
	f := m.Xor(x0, x1)
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			assign := []bool{a == 1, b == 1}
			want := assign[0] != assign[1]
			if got := eval(m, f, assign); got != want {
				t.Errorf("Xor at (%v,%v) = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestNotComplements(t *testing.T) {
	m := New()
	x := m.Var(0)
	nx := m.Not(x)
	if eval(m, nx, []bool{true}) != false {
		t.Error("Not(x) at x=1 should be false")
	}
	if eval(m, nx, []bool{false}) != true {
		t.Error("Not(x) at x=0 should be true")
	}
}

func TestAndSelfIsIdentity(t *testing.T) {
	m := New()
	x := m.Var(3)
	if m.And(x, x) != x {
		t.Error("And(x, x) should return x unchanged (structural sharing)")
	}
}

func TestXorSelfIsZero(t *testing.T) {
	m := New()
	x := m.Var(2)
	z := m.Xor(x, x)
	if !m.IsZero(z) {
		t.Error("Xor(x, x) should be the constant-zero terminal")
	}
}

func TestComplementOfZeroIsOne(t *testing.T) {
	m := New()
	one := m.And(m.Var(0), m.Not(m.Var(0)))
	one = m.Not(one)
	if !m.IsOne(one) {
		t.Error("Not(x & !x) should be the constant-one terminal")
	}
}
