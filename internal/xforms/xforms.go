// Package xforms lifts an AIG into a BDD manager: a straight
// substitution of BDD operations for AIG operations over the same
// topological traversal the collapser uses, so the two representations
// of the same circuit can be fed to the AIG collapser and the PSDKRO
// extractor respectively and compared.
package xforms

import (
	"github.com/rawblock/esopforge/internal/aig"
	"github.com/rawblock/esopforge/internal/bdd"
)

// Lift walks g in topological order, building one BDD node per AIG
// object via mgr, and returns one BDD node per primary output. It
// returns aig.ErrTooManyInputs before doing any work if g declares
// more than cube.MaxVars primary inputs, for parity with the
// collapser's own rejection rule.
func Lift(mgr bdd.Manager, g *aig.Graph) ([]bdd.Node, error) {
	if g.NInputs > 32 {
		return nil, aig.ErrTooManyInputs
	}

	nodes := make([]bdd.Node, g.NInputs+len(g.Nodes))
	for i := 0; i < g.NInputs; i++ {
		nodes[i] = mgr.Var(i)
	}
	for i, n := range g.Nodes {
		id := g.NInputs + i
		a := liftFanin(mgr, nodes, n.FaninA, n.ComplA)
		b := liftFanin(mgr, nodes, n.FaninB, n.ComplB)
		nodes[id] = mgr.And(a, b)
	}

	outs := make([]bdd.Node, len(g.Outputs))
	for i, o := range g.Outputs {
		outs[i] = liftFanin(mgr, nodes, o.Fanin, o.Compl)
	}
	return outs, nil
}

func liftFanin(mgr bdd.Manager, nodes []bdd.Node, id int, compl bool) bdd.Node {
	n := nodes[id]
	if compl {
		return mgr.Not(n)
	}
	return n
}
