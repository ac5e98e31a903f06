// Package bdd declares the BDD-manager interface consumed by PSDKRO
// extraction (internal/psdkro) and the AIG→BDD lifter
// (internal/xforms). The manager itself is an external collaborator —
// internal/bddmgr provides one implementation — and owns its nodes;
// callers hold borrowed references for the duration of one call.
package bdd

// Node is an opaque handle to a BDD node, owned by the Manager that
// produced it.
type Node interface{}

// Manager is the BDD operation surface the core needs. Implementations
// are free to reorder variables internally; reordering has no
// semantic effect on any Manager method's result.
type Manager interface {
	// Var returns the BDD for variable i.
	Var(i int) Node

	And(a, b Node) Node
	Xor(a, b Node) Node
	// Not returns the complement of a.
	Not(a Node) Node

	// CofactorNeg and CofactorPos return n's children with respect to
	// its top variable, respecting any complement edge on n.
	CofactorNeg(n Node) Node
	CofactorPos(n Node) Node

	// VarIndex returns the top variable of n.
	VarIndex(n Node) int

	// IsZero and IsOne report whether n is the constant-zero or
	// constant-one terminal, so the count and emit passes of §4.5 can
	// recognize the base case of the recursion.
	IsZero(n Node) bool
	IsOne(n Node) bool

	// EnableReorder and DisableReorder toggle dynamic variable
	// reordering; implementations may treat these as no-ops.
	EnableReorder()
	DisableReorder()
}
