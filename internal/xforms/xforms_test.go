package xforms

import (
	"testing"

	"github.com/rawblock/esopforge/internal/aig"
	"github.com/rawblock/esopforge/internal/bdd"
	"github.com/rawblock/esopforge/internal/bddmgr"
)

func evalBDD(m bdd.Manager, n bdd.Node, assign []bool) bool {
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

func assignments(n int) [][]bool {
	out := make([][]bool, 1<<uint(n))
	for i := range out {
		a := make([]bool, n)
		for b := 0; b < n; b++ {
			a[b] = i&(1<<uint(b)) != 0
		}
		out[i] = a
	}
	return out
}

func TestLiftXOR(t *testing.T) {
	g := &aig.Graph{
		NInputs: 2,
		Nodes: []aig.AndNode{
			{FaninA: 0, FaninB: 1, ComplA: true, ComplB: false},
			{FaninA: 0, FaninB: 1, ComplA: false, ComplB: true},
			{FaninA: 2, FaninB: 3, ComplA: true, ComplB: true},
		},
		Outputs: []aig.Output{{Fanin: 4, Compl: true}},
	}
	m := bddmgr.New()
	outs, err := Lift(m, g)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	for _, a := range assignments(2) {
		want := a[0] != a[1]
		if got := evalBDD(m, outs[0], a); got != want {
			t.Errorf("lifted XOR at %v = %v, want %v", a, got, want)
		}
	}
}

func TestLiftRejectsTooManyInputs(t *testing.T) {
	g := &aig.Graph{NInputs: 33}
	if _, err := Lift(bddmgr.New(), g); err != aig.ErrTooManyInputs {
		t.Errorf("Lift with 33 inputs: err = %v, want ErrTooManyInputs", err)
	}
}
