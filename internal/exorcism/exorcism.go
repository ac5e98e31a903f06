// Package exorcism minimizes the cube count of an ESOP via bucketed
// local search: cubes are kept in buckets indexed by literal count,
// candidate pairs at Hamming distance 2 or 3 are queued as they're
// discovered, and exorlink reshapes try to replace a pair with fewer
// cubes that are still XOR-equivalent to the pair. This package keeps
// its own add-cube routine rather than internal/cubeset's — EXORCISM's
// termination condition differs enough from the shared insertion
// routine that folding it in would blur both.
package exorcism

import "github.com/rawblock/esopforge/pkg/cube"

// maxDist bounds the candidate-pair search: only distance-2 and
// distance-3 pairs are queued for reshaping.
const maxDist = 3

// groups2 are the fixed exorlink-2 literal-selector patterns: each
// group is 2 candidate cubes of 2 positions, flattened row-major.
var groups2 = [][]int{
	{2, 0, 1, 2},
	{0, 2, 2, 1},
}

// groups3 are the fixed exorlink-3 patterns: 6 groups of 3 candidate
// cubes of 3 positions each, flattened row-major.
var groups3 = [][]int{
	{2, 0, 0, 1, 2, 0, 1, 1, 2},
	{2, 0, 0, 1, 0, 2, 1, 2, 1},
	{0, 2, 0, 2, 1, 0, 1, 1, 2},
	{0, 2, 0, 0, 1, 2, 2, 1, 1},
	{0, 0, 2, 2, 0, 1, 1, 2, 1},
	{0, 0, 2, 0, 2, 1, 2, 1, 1},
}

type pair struct{ c0, c1 cube.Cube }

// Minimizer holds one ESOP's cube buckets and candidate-pair queues
// for the duration of one Run.
type Minimizer struct {
	nVars   int
	buckets []map[cube.Cube]struct{}
	pairs   [2][]pair
}

// New allocates an empty minimizer over nVars variables.
func New(nVars int) *Minimizer {
	buckets := make([]map[cube.Cube]struct{}, nVars+1)
	for i := range buckets {
		buckets[i] = make(map[cube.Cube]struct{})
	}
	return &Minimizer{nVars: nVars, buckets: buckets}
}

// Minimize is the one-shot entry point: load cubes, run the search
// schedule, and return the minimized cube list. Cube ordering in the
// result is unspecified.
func Minimize(cubes []cube.Cube, nVars int) []cube.Cube {
	m := New(nVars)
	for _, c := range cubes {
		m.addCube(c, true)
	}
	return m.Run()
}

func (m *Minimizer) totalCubes() int {
	n := 0
	for _, b := range m.buckets {
		n += len(b)
	}
	return n
}

// addCube folds c into the bucket set: an exact duplicate cancels
// (both removed, net -1 cube), an adjacent cube merges (recursively
// folding the merged cube back in), and anything else at distance
// [2, maxDist] is queued as a candidate pair. When commit is false, c
// itself is never inserted into a bucket — this lets callers probe
// whether a candidate cube would simplify without committing to it.
func (m *Minimizer) addCube(c cube.Cube, commit bool) int {
	k := c.NLits()
	lo := max(0, k-maxDist)
	hi := min(m.nVars, k+maxDist)

	for b := lo; b <= hi; b++ {
		for d := range m.buckets[b] {
			switch cube.Distance(c, d) {
			case 0:
				delete(m.buckets[b], d)
				return 1
			case 1:
				delete(m.buckets[b], d)
				return 1 + m.addCube(cube.Merge(c, d), true)
			}
		}
	}

	if !commit {
		return 0
	}
	for b := lo; b <= hi; b++ {
		for d := range m.buckets[b] {
			if dist := cube.Distance(c, d); dist >= 2 && dist <= maxDist {
				m.pairs[dist-2] = append(m.pairs[dist-2], pair{c0: c, c1: d})
			}
		}
	}
	m.buckets[k][c] = struct{}{}
	return 0
}

type bookmark struct{ len0, len1 int }

func (m *Minimizer) bookmarkPairs() bookmark {
	return bookmark{len(m.pairs[0]), len(m.pairs[1])}
}

func (m *Minimizer) rollbackPairs(b bookmark) {
	m.pairs[0] = m.pairs[0][:b.len0]
	m.pairs[1] = m.pairs[1][:b.len1]
}

func (m *Minimizer) bucketHas(c cube.Cube) bool {
	_, ok := m.buckets[c.NLits()][c]
	return ok
}

func (m *Minimizer) bucketRemove(c cube.Cube) { delete(m.buckets[c.NLits()], c) }
func (m *Minimizer) bucketInsert(c cube.Cube) { m.buckets[c.NLits()][c] = struct{}{} }

// diffPositions returns the bit positions set in bitmap, lowest first.
func diffPositions(bitmap uint32) []int {
	var out []int
	for i := 0; i < cube.MaxVars; i++ {
		if bitmap&(1<<uint(i)) != 0 {
			out = append(out, i)
		}
	}
	return out
}

// exorlink generates len(diff) candidate cubes from a group pattern.
// The pair is first ordered so that c0 is the Less of the two; then
// candidate i starts from c0's literals, and at each differing
// position adopts c0's literal (group value 0), c1's literal (1), or
// the unique third literal state at that position (2). Together the
// candidates are XOR-equivalent to c0 ⊕ c1.
func exorlink(c0, c1 cube.Cube, diff []int, group []int) []cube.Cube {
	if c1.Less(c0) {
		c0, c1 = c1, c0
	}
	otherMask := c0.Mask ^ c1.Mask
	otherPolarity := ^c0.Polarity & ^c1.Polarity

	d := len(diff)
	cands := make([]cube.Cube, d)
	for i := 0; i < d; i++ {
		c := c0
		for j, p := range diff {
			bit := uint32(1) << uint(p)
			switch group[i*d+j] {
			case 1:
				c.Mask = (c.Mask &^ bit) | (c1.Mask & bit)
				c.Polarity = (c.Polarity &^ bit) | (c1.Polarity & bit)
			case 2:
				c.Mask = (c.Mask &^ bit) | (otherMask & bit)
				c.Polarity = (c.Polarity &^ bit) | (otherPolarity & bit)
			}
		}
		cands[i] = c
	}
	return cands
}

// reshapePair tries every group pattern for the given distance,
// trying each of the dist candidates in turn as the speculative
// "first" cube; on the first one that simplifies (add-cube with
// commit=false reports progress), the remaining candidates are
// committed and the reshape succeeds.
func (m *Minimizer) reshapePair(c0, c1 cube.Cube, dist int, groups [][]int) bool {
	diff := diffPositions(cube.Difference(c0, c1))
	bm := m.bookmarkPairs()
	for _, g := range groups {
		cands := exorlink(c0, c1, diff, g)
		for j := 0; j < dist; j++ {
			if m.addCube(cands[j], false) > 0 {
				for k := 0; k < dist; k++ {
					if k != j {
						m.addCube(cands[k], true)
					}
				}
				return true
			}
			m.rollbackPairs(bm)
		}
	}
	return false
}

// pass drains the distance-d pair queue once, attempting a reshape on
// each surviving pair, and returns the net cube-count reduction.
func (m *Minimizer) pass(dist int, groups [][]int) int {
	before := m.totalCubes()
	queue := m.pairs[dist-2]
	m.pairs[dist-2] = nil

	for _, p := range queue {
		if !m.bucketHas(p.c0) || !m.bucketHas(p.c1) {
			continue
		}
		m.bucketRemove(p.c0)
		m.bucketRemove(p.c1)
		if !m.reshapePair(p.c0, p.c1, dist, groups) {
			m.bucketInsert(p.c0)
			m.bucketInsert(p.c1)
			m.pairs[dist-2] = append(m.pairs[dist-2], p)
		}
	}
	return before - m.totalCubes()
}

// Run executes the fixed search schedule: one iteration interleaves
// the distance-2 and distance-3 driver six times each, and iterations
// continue until three consecutive ones yield zero total gain.
func (m *Minimizer) Run() []cube.Cube {
	withoutImprovement := 0
	for withoutImprovement <= 2 {
		gain := 0
		for i := 0; i < 6; i++ {
			gain += m.pass(2, groups2)
			gain += m.pass(3, groups3)
		}
		if gain > 0 {
			withoutImprovement = 0
		} else {
			withoutImprovement++
		}
	}

	var out []cube.Cube
	for _, b := range m.buckets {
		for c := range b {
			out = append(out, c)
		}
	}
	return out
}
