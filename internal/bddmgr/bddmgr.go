// Package bddmgr is a minimal reduced, ordered BDD manager: a unique
// table keyed by (variable, low, high) plus a memoized apply cache for
// And/Xor, with complement edges so Not is a single bit flip. It
// implements internal/bdd.Manager. No third-party BDD library appears
// anywhere in the retrieval pack this repository was built from, so
// this package is necessarily a from-scratch implementation rather
// than a thin wrapper.
package bddmgr

import "github.com/rawblock/esopforge/internal/bdd"

// ref is a node reference: the low 30 bits address a node table slot,
// bit 30 is the complement flag.
type ref int32

const complBit ref = 1 << 30

func (r ref) id() int32   { return int32(r &^ complBit) }
func (r ref) compl() bool { return r&complBit != 0 }
func negRef(r ref) ref    { return r ^ complBit }

// oneID is the reserved node table slot for the constant terminal;
// the zero function is its complemented reference.
const oneID = 0

type node struct {
	v         int
	low, high ref
}

type uniqueKey struct {
	v         int
	low, high ref
}

// Manager implements bdd.Manager. Nodes live for the lifetime of the
// Manager; callers hold borrowed bdd.Node references for the duration
// of one call into the core, per the concurrency model of this
// repository's synthesis pipeline.
type Manager struct {
	nodes   []node
	unique  map[uniqueKey]ref
	andMemo map[[2]ref]ref
	xorMemo map[[2]ref]ref
	refcnt  map[ref]int
}

var _ bdd.Manager = (*Manager)(nil)

// New returns an empty manager with only the constant terminal
// allocated.
func New() *Manager {
	return &Manager{
		nodes:   []node{{v: -1}},
		unique:  make(map[uniqueKey]ref),
		andMemo: make(map[[2]ref]ref),
		xorMemo: make(map[[2]ref]ref),
		refcnt:  make(map[ref]int),
	}
}

func toRef(n bdd.Node) ref { return n.(ref) }

func (m *Manager) node(r ref) node { return m.nodes[r.id()] }

func (m *Manager) one() ref  { return ref(oneID) }
func (m *Manager) zero() ref { return negRef(ref(oneID)) }

func (m *Manager) isOne(r ref) bool  { return r.id() == oneID && !r.compl() }
func (m *Manager) isZero(r ref) bool { return r.id() == oneID && r.compl() }

// mkNode returns the canonical reference for (v, low, high),
// collapsing redundant tests (low == high) and folding the
// complement-on-high case into the unique table key so that
// structurally identical functions always share one node, positive or
// complemented.
func (m *Manager) mkNode(v int, low, high ref) ref {
	if low == high {
		return low
	}
	compl := false
	if high.compl() {
		low, high = negRef(low), negRef(high)
		compl = true
	}
	k := uniqueKey{v: v, low: low, high: high}
	if id, ok := m.unique[k]; ok {
		if compl {
			return negRef(id)
		}
		return id
	}
	id := ref(len(m.nodes))
	m.nodes = append(m.nodes, node{v: v, low: low, high: high})
	m.unique[k] = id
	if compl {
		return negRef(id)
	}
	return id
}

// Var returns the single-variable BDD x_i = 0/1 depending on branch.
func (m *Manager) Var(i int) bdd.Node {
	return bdd.Node(m.mkNode(i, m.zero(), m.one()))
}

// Not is the complement-edge bit flip; it allocates no new node.
func (m *Manager) Not(a bdd.Node) bdd.Node {
	return bdd.Node(negRef(toRef(a)))
}

func (m *Manager) IsOne(n bdd.Node) bool  { return m.isOne(toRef(n)) }
func (m *Manager) IsZero(n bdd.Node) bool { return m.isZero(toRef(n)) }

// topVar returns r's branching variable, or an index past every real
// variable if r is a terminal (so min(topVar(a), topVar(b)) always
// picks a real variable when either operand is non-terminal).
func (m *Manager) topVar(r ref) int {
	nd := m.node(r)
	if nd.v < 0 {
		return 1 << 30
	}
	return nd.v
}

// restrict returns r's negative and positive cofactors with respect
// to v: if r does not branch on v, both cofactors are r itself.
func (m *Manager) restrict(r ref, v int) (neg, pos ref) {
	if m.topVar(r) != v {
		return r, r
	}
	nd := m.node(r)
	lo, hi := nd.low, nd.high
	if r.compl() {
		lo, hi = negRef(lo), negRef(hi)
	}
	return lo, hi
}

// VarIndex returns n's top variable. Callers must not invoke it on a
// terminal node; the count and emit passes of the extractor guard
// against this via IsZero/IsOne.
func (m *Manager) VarIndex(n bdd.Node) int {
	return m.node(toRef(n)).v
}

// CofactorNeg returns n's negative-branch child, respecting any
// complement edge on n.
func (m *Manager) CofactorNeg(n bdd.Node) bdd.Node {
	r := toRef(n)
	if m.node(r).v < 0 {
		return n
	}
	lo, _ := m.restrict(r, m.node(r).v)
	return bdd.Node(lo)
}

// CofactorPos returns n's positive-branch child, respecting any
// complement edge on n.
func (m *Manager) CofactorPos(n bdd.Node) bdd.Node {
	r := toRef(n)
	if m.node(r).v < 0 {
		return n
	}
	_, hi := m.restrict(r, m.node(r).v)
	return bdd.Node(hi)
}

// And computes a ∧ b via the standard memoized apply recursion over
// the two operands' top variable.
func (m *Manager) And(a, b bdd.Node) bdd.Node {
	return bdd.Node(m.and(toRef(a), toRef(b)))
}

func (m *Manager) and(a, b ref) ref {
	switch {
	case m.isZero(a), m.isZero(b):
		return m.zero()
	case m.isOne(a):
		return b
	case m.isOne(b):
		return a
	case a == b:
		return a
	case a == negRef(b):
		return m.zero()
	}
	k := [2]ref{a, b}
	if a > b {
		k = [2]ref{b, a}
	}
	if v, ok := m.andMemo[k]; ok {
		return v
	}
	v := min(m.topVar(a), m.topVar(b))
	a0, a1 := m.restrict(a, v)
	b0, b1 := m.restrict(b, v)
	lo := m.and(a0, b0)
	hi := m.and(a1, b1)
	r := m.mkNode(v, lo, hi)
	m.andMemo[k] = r
	return r
}

// Xor computes a ⊕ b via the same memoized apply recursion.
func (m *Manager) Xor(a, b bdd.Node) bdd.Node {
	return bdd.Node(m.xor(toRef(a), toRef(b)))
}

func (m *Manager) xor(a, b ref) ref {
	switch {
	case m.isZero(a):
		return b
	case m.isZero(b):
		return a
	case a == b:
		return m.zero()
	case a == negRef(b):
		return m.one()
	}
	k := [2]ref{a, b}
	if a > b {
		k = [2]ref{b, a}
	}
	if v, ok := m.xorMemo[k]; ok {
		return v
	}
	v := min(m.topVar(a), m.topVar(b))
	a0, a1 := m.restrict(a, v)
	b0, b1 := m.restrict(b, v)
	lo := m.xor(a0, b0)
	hi := m.xor(a1, b1)
	r := m.mkNode(v, lo, hi)
	m.xorMemo[k] = r
	return r
}

// EnableReorder and DisableReorder are no-ops: this manager keeps a
// fixed variable order, which the extractor is documented to be
// indifferent to.
func (m *Manager) EnableReorder()  {}
func (m *Manager) DisableReorder() {}

// Ref and Deref implement the reference-counting discipline the
// manager asks of its callers: a node must be Ref'd while a caller
// holds it and Deref'd when dropped. The unique table itself never
// evicts entries — ref counts are bookkeeping for callers that want
// to track liveness, not a garbage collector — so Deref never
// invalidates a node.
func (m *Manager) Ref(n bdd.Node) bdd.Node {
	m.refcnt[toRef(n)]++
	return n
}

func (m *Manager) Deref(n bdd.Node) {
	r := toRef(n)
	if m.refcnt[r] > 0 {
		m.refcnt[r]--
	}
}
