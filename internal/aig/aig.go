// Package aig collapses an And-Inverter Graph into one ESOP cube list
// per primary output. Collapsing is single-threaded and runs to
// completion: a Collapser owns no state beyond one Run call.
package aig

import (
	"errors"
	"fmt"

	"github.com/rawblock/esopforge/internal/cubeset"
	"github.com/rawblock/esopforge/pkg/cube"
)

// ErrTooManyInputs is returned by Run when the graph declares more
// primary inputs than the cube primitive can represent.
var ErrTooManyInputs = errors.New("aig: more than 32 primary inputs")

// AndNode is one two-input AND gate, with each fanin naming the id of
// the object it reads (a primary input or an earlier AND node) and
// whether that edge is complemented.
type AndNode struct {
	FaninA, FaninB int
	ComplA, ComplB bool
}

// Output is a primary output: the id of the object it reads and
// whether that edge is complemented.
type Output struct {
	Fanin int
	Compl bool
}

// Graph is the AIG interface consumed by the collapser: primary
// inputs are object ids [0, NInputs), followed by the AND nodes in
// Nodes (object id NInputs+i for Nodes[i]), in topological order —
// every AndNode's fanins must name object ids earlier in this
// numbering.
type Graph struct {
	NInputs int
	Nodes   []AndNode
	Outputs []Output
}

// objectCount is the total number of addressable object ids: primary
// inputs followed by AND nodes.
func (g *Graph) objectCount() int { return g.NInputs + len(g.Nodes) }

// Collapser holds no state between calls; Run is the sole entry
// point.
type Collapser struct{}

// Run collapses g into one ESOP cube list per primary output. It
// returns ErrTooManyInputs before doing any work if g declares more
// than cube.MaxVars primary inputs.
func (Collapser) Run(g *Graph) ([][]cube.Cube, error) {
	if g.NInputs > cube.MaxVars {
		return nil, ErrTooManyInputs
	}

	sets := make([]cubeset.Set, g.objectCount())
	for i := 0; i < g.NInputs; i++ {
		sets[i] = cubeset.Set{cube.New(uint(i), true)}
	}
	for i, n := range g.Nodes {
		id := g.NInputs + i
		if n.FaninA >= id || n.FaninB >= id {
			return nil, fmt.Errorf("aig: node %d fanin is not topologically earlier", id)
		}
		a := fanin(sets, n.FaninA, n.ComplA)
		b := fanin(sets, n.FaninB, n.ComplB)
		sets[id] = cubeset.And(a, b, g.NInputs)
	}

	outs := make([][]cube.Cube, len(g.Outputs))
	for i, o := range g.Outputs {
		s := fanin(sets, o.Fanin, o.Compl)
		outs[i] = append([]cube.Cube{}, s...)
	}
	return outs, nil
}

// fanin returns the (possibly complemented) cube set stored for
// object id.
func fanin(sets []cubeset.Set, id int, compl bool) cubeset.Set {
	s := sets[id]
	if compl {
		return cubeset.Complement(s)
	}
	return s
}
