// Package cube implements the packed 32-variable cube primitive: the
// conjunction of up to 32 literals, encoded as two 32-bit words in a
// single uint64. It has no heap state — every operation is a value
// operation on the packed representation.
package cube

import (
	"fmt"
	"math/bits"
)

// MaxVars is the largest number of variables a Cube can represent.
const MaxVars = 32

// Cube is a conjunction of up to 32 literals. Mask bit i set means
// variable i appears in the cube; Polarity bit i (only meaningful when
// Mask bit i is set) is 1 for a positive literal, 0 for negative.
//
// The canonical form has Polarity&^Mask == 0. Zero is the sentinel
// "impossible" cube (Mask=0xFFFFFFFF, Polarity=0); One is the constant-1
// cube (Mask=0, Polarity=0).
type Cube struct {
	Mask     uint32
	Polarity uint32
}

// Zero is the canonical sentinel representing an impossible conjunction
// (e.g. x AND NOT x).
var Zero = Cube{Mask: 0xFFFFFFFF, Polarity: 0}

// One is the constant-1 cube: no literals, always true.
var One = Cube{Mask: 0, Polarity: 0}

// New returns the single-literal cube for variable v with the given
// polarity (true = positive literal).
func New(v uint, positive bool) Cube {
	mustBeValidVar(v)
	c := Cube{Mask: 1 << v}
	if positive {
		c.Polarity = 1 << v
	}
	return c
}

// packed returns the canonical 64-bit word used for equality, ordering
// and hashing: Polarity in the high bits, Mask in the low bits.
func (c Cube) packed() uint64 {
	return uint64(c.Polarity)<<32 | uint64(c.Mask)
}

// Equal reports whether two cubes are identical.
func (c Cube) Equal(o Cube) bool { return c.packed() == o.packed() }

// Less provides a total order over cubes, used to make test output and
// PLA dumps reproducible and to order a cube pair before an exorlink
// reshape — cube ordering within an ESOP carries no semantic weight.
func (c Cube) Less(o Cube) bool { return c.packed() < o.packed() }

// And computes the cube representing a AND b. If the two cubes disagree
// in polarity on any variable they both constrain, the conjunction is
// unsatisfiable and the Zero sentinel is returned.
func And(a, b Cube) Cube {
	common := a.Mask & b.Mask
	if (a.Polarity^b.Polarity)&common != 0 {
		return Zero
	}
	return Cube{Mask: a.Mask | b.Mask, Polarity: a.Polarity | b.Polarity}
}

// NLits returns the number of literals (appearing variables) in c.
func (c Cube) NLits() int { return bits.OnesCount32(c.Mask) }

// Invert flips the polarity of every literal that appears in c, leaving
// don't-cares untouched.
func (c Cube) Invert() Cube {
	return Cube{Mask: c.Mask, Polarity: c.Polarity ^ c.Mask}
}

// Rotate cycles the literal at position v through the three states
// {absent, negative, positive}, in that order. Calling Rotate twice in a
// row turns a positive literal into the negative one, a negative literal
// into an absent one, and an absent variable into a positive literal —
// so one and two rotations from any start reach the two other states at
// position v, which is how callers visit all three.
func (c Cube) Rotate(v uint) Cube {
	mustBeValidVar(v)
	bit := uint32(1) << v
	newMask := (c.Mask &^ bit) | (bit &^ (c.Mask & c.Polarity))
	newPolarity := (c.Polarity &^ bit) | (bit & (c.Mask &^ c.Polarity))
	return Cube{Mask: newMask, Polarity: newPolarity}
}

// Difference returns a bitmap of the variable positions where a and b
// disagree, either by presence or by polarity.
func Difference(a, b Cube) uint32 {
	return (a.Polarity ^ b.Polarity) | (a.Mask ^ b.Mask)
}

// Distance is the Hamming distance between two cubes: the number of
// variable positions where they disagree.
func Distance(a, b Cube) int {
	return bits.OnesCount32(Difference(a, b))
}

// Merge combines two cubes that differ in exactly one position into the
// single cube equivalent to a XOR b. Behavior is undefined (but not a
// panic) when Distance(a, b) != 1 — callers must check the precondition
// themselves, per spec.md §4.1.
func Merge(a, b Cube) Cube {
	diff := Difference(a, b)
	return Cube{
		Mask:     a.Mask ^ (b.Mask & diff),
		Polarity: a.Polarity ^ (^b.Polarity & diff),
	}
}

// String renders c as an n-character PLA-style literal string using '0',
// '1' and '-'.
func (c Cube) String(n int) string {
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		switch {
		case c.Mask&(1<<uint(i)) == 0:
			buf[i] = '-'
		case c.Polarity&(1<<uint(i)) != 0:
			buf[i] = '1'
		default:
			buf[i] = '0'
		}
	}
	return string(buf)
}

// Parse decodes a PLA-style literal string ('0'/'1'/'-' per position)
// into a Cube. It returns an error if s contains any other character.
func Parse(s string) (Cube, error) {
	var c Cube
	for i, ch := range s {
		switch ch {
		case '-':
		case '1':
			c.Mask |= 1 << uint(i)
			c.Polarity |= 1 << uint(i)
		case '0':
			c.Mask |= 1 << uint(i)
		default:
			return Cube{}, fmt.Errorf("cube: invalid literal %q at position %d", ch, i)
		}
	}
	return c, nil
}

func mustBeValidVar(v uint) {
	if v >= MaxVars {
		panic(fmt.Sprintf("cube: variable index %d out of range [0,%d)", v, MaxVars))
	}
}
