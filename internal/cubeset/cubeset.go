// Package cubeset implements the XOR-invariant cube-set insertion
// routine that underpins both the AIG collapser and the PSDKRO
// extractor: a set of cubes represents some Boolean function f as the
// XOR of its members, and Insert folds a new cube in while keeping the
// set canonical (no duplicate, no two cubes at Hamming distance 1).
package cubeset

import "github.com/rawblock/esopforge/pkg/cube"

// Set is an ordered cube list read as an XOR. Ordering only affects
// reproducibility of dumps and tests; the Boolean function a Set
// represents is insensitive to member order.
type Set []cube.Cube

// indexOf returns the position of c in s, or -1 if absent.
func (s Set) indexOf(c cube.Cube) int {
	for i, m := range s {
		if m.Equal(c) {
			return i
		}
	}
	return -1
}

// removeAt deletes the element at index i, preserving order.
func (s Set) removeAt(i int) Set {
	return append(s[:i], s[i+1:]...)
}

// Insert folds c into s so that the result represents the XOR of the
// old s's function with c, per the cancellation/adjacency-merge
// algorithm: a cube already present cancels out; otherwise the set is
// searched for a neighbor at Hamming distance 1 (both polarities, at
// every variable position) to merge with, repeating until no neighbor
// remains, at which point c is appended. nVars bounds the variable
// positions searched.
func Insert(s Set, c cube.Cube, nVars int) Set {
	for {
		if i := s.indexOf(c); i >= 0 {
			return s.removeAt(i)
		}
		if c.Equal(cube.One) {
			return append(s, c)
		}

		merged := false
		for v := uint(0); v < uint(nVars); v++ {
			first := c.Rotate(v)
			if i := s.indexOf(first); i >= 0 {
				c = cube.Merge(c, first)
				s = s.removeAt(i)
				merged = true
				break
			}
			second := first.Rotate(v)
			if i := s.indexOf(second); i >= 0 {
				c = cube.Merge(c, second)
				s = s.removeAt(i)
				merged = true
				break
			}
		}
		if !merged {
			return append(s, c)
		}
	}
}

// Complement returns the cube set representing ¬f given a set s
// representing f, applying the three-subsumption simplification so the
// result stays in canonical XOR form. Only the first element of s is
// inspected.
func Complement(s Set) Set {
	if len(s) == 0 {
		return Set{cube.One}
	}
	head := s[0]
	if head.Equal(cube.One) {
		return append(Set{}, s[1:]...)
	}
	if head.NLits() == 1 {
		out := append(Set{}, s...)
		out[0] = head.Invert()
		return out
	}
	out := make(Set, 0, len(s)+1)
	out = append(out, cube.One)
	out = append(out, s...)
	return out
}

// And computes the cube set for a AND b, where a and b are cube sets
// representing their respective functions as an XOR, by routing every
// pairwise product through Insert into a fresh scratch set.
func And(a, b Set, nVars int) Set {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	var out Set
	for _, ca := range a {
		for _, cb := range b {
			switch {
			case ca.Equal(cube.One):
				out = Insert(out, cb, nVars)
			case cb.Equal(cube.One):
				out = Insert(out, ca, nVars)
			default:
				p := cube.And(ca, cb)
				if !p.Equal(cube.Zero) {
					out = Insert(out, p, nVars)
				}
			}
		}
	}
	return out
}
