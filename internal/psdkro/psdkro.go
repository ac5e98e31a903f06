// Package psdkro extracts an ESOP from a BDD by building a
// Pseudo-Kronecker expansion: at each internal node it picks whichever
// of Positive Davio, Negative Davio, or Shannon decomposition yields
// the fewest cubes, in a memoized count pass, then materializes cubes
// in a second emit pass that walks the same choices.
package psdkro

import (
	"github.com/rawblock/esopforge/internal/bdd"
	"github.com/rawblock/esopforge/internal/cubeset"
	"github.com/rawblock/esopforge/pkg/cube"
)

// Kind names which of the three expansions was chosen for a node.
type Kind int

const (
	PosDavio Kind = iota
	NegDavio
	Shannon
)

type countEntry struct {
	kind Kind
	n    int
}

// assignment is a node's tri-state binding to one variable while the
// emit pass walks a path to the constant-one terminal.
type assignment int

const (
	unused assignment = iota
	negLit
	posLit
)

// Extract extracts root's ESOP over nVars variables. mgr must be the
// same manager that produced root, and root must not be freed before
// Extract returns.
func Extract(mgr bdd.Manager, root bdd.Node, nVars int) []cube.Cube {
	counts := make(map[bdd.Node]countEntry)
	count(mgr, counts, root)

	e := &emitter{
		mgr:    mgr,
		counts: counts,
		nVars:  nVars,
		assign: make([]assignment, nVars),
	}
	e.emit(root, 0)
	return append([]cube.Cube{}, e.out...)
}

// ExtractAll extracts one ESOP per root, sharing no state across
// outputs (each gets its own count memo and output set, though the
// BDD manager itself may share nodes across roots).
func ExtractAll(mgr bdd.Manager, roots []bdd.Node, nVars int) [][]cube.Cube {
	outs := make([][]cube.Cube, len(roots))
	for i, r := range roots {
		outs[i] = Extract(mgr, r, nVars)
	}
	return outs
}

// count is the memoized count pass: it returns the cheapest expansion
// kind and its resulting cube count for n, recursing over BDD node
// identity (never over cube content, to avoid exponential blow-up).
func count(mgr bdd.Manager, memo map[bdd.Node]countEntry, n bdd.Node) countEntry {
	if e, ok := memo[n]; ok {
		return e
	}
	if mgr.IsZero(n) {
		e := countEntry{kind: PosDavio, n: 0}
		memo[n] = e
		return e
	}
	if mgr.IsOne(n) {
		e := countEntry{kind: PosDavio, n: 1}
		memo[n] = e
		return e
	}

	f0 := mgr.CofactorNeg(n)
	f1 := mgr.CofactorPos(n)
	f2 := mgr.Xor(f0, f1)

	e0 := count(mgr, memo, f0)
	e1 := count(mgr, memo, f1)
	e2 := count(mgr, memo, f2)

	var e countEntry
	switch {
	case e0.n >= e1.n && e0.n >= e2.n:
		e = countEntry{kind: NegDavio, n: e1.n + e2.n}
	case e1.n >= e2.n:
		e = countEntry{kind: PosDavio, n: e0.n + e2.n}
	default:
		e = countEntry{kind: Shannon, n: e0.n + e1.n}
	}
	memo[n] = e
	return e
}

// emitter carries the state threaded through the emit pass: the
// memoized decomposition choices, the running tri-state assignment
// vector, and the output cube set, folded through internal/cubeset's
// XOR-invariant insertion.
type emitter struct {
	mgr    bdd.Manager
	counts map[bdd.Node]countEntry
	nVars  int
	assign []assignment
	out    cubeset.Set
}

// emit walks n's chosen expansion down to the constant-one terminal,
// materializing one cube per path reached. loIdx is the first
// variable index not yet decided on the current path; variables
// between loIdx and n's own index are cleared to unused, since a
// sibling branch may have left them assigned.
func (e *emitter) emit(n bdd.Node, loIdx int) {
	if e.mgr.IsZero(n) {
		return
	}
	if e.mgr.IsOne(n) {
		for i := loIdx; i < e.nVars; i++ {
			e.assign[i] = unused
		}
		e.out = cubeset.Insert(e.out, e.cubeFromAssign(), e.nVars)
		return
	}

	v := e.mgr.VarIndex(n)
	for i := loIdx; i < v; i++ {
		e.assign[i] = unused
	}

	f0 := e.mgr.CofactorNeg(n)
	f1 := e.mgr.CofactorPos(n)

	switch e.counts[n].kind {
	case PosDavio:
		e.assign[v] = unused
		e.emit(f0, v+1)
		e.assign[v] = posLit
		e.emit(e.mgr.Xor(f0, f1), v+1)
	case NegDavio:
		e.assign[v] = unused
		e.emit(f1, v+1)
		e.assign[v] = negLit
		e.emit(e.mgr.Xor(f0, f1), v+1)
	case Shannon:
		e.assign[v] = negLit
		e.emit(f0, v+1)
		e.assign[v] = posLit
		e.emit(f1, v+1)
	}
}

func (e *emitter) cubeFromAssign() cube.Cube {
	var c cube.Cube
	for i, a := range e.assign {
		switch a {
		case posLit:
			c.Mask |= 1 << uint(i)
			c.Polarity |= 1 << uint(i)
		case negLit:
			c.Mask |= 1 << uint(i)
		}
	}
	return c
}
