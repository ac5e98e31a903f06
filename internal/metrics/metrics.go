// Package metrics compares two ESOP results for the same Boolean
// function, produced by independent engines (the AIG collapser vs.
// BDD/PSDKRO+EXORCISM), as a regression tool: perfect agreement on a
// known-good regression set means ARI=1/VI=0; divergence points at a
// latent bug in one of the two engines, per the open question of
// whether both engines' add-cube routines really behave identically.
//
// The comparison partitions each engine's cube list into buckets by
// literal count and runs the adjusted rand index / variation of
// information over the two bucket-index sequences — the same
// partition-comparison math the teacher uses to score predicted vs.
// ground-truth clusters, repurposed here to score one engine's cube
// shape distribution against the other's.
package metrics

import (
	"math"

	"github.com/rawblock/esopforge/pkg/cube"
)

// BucketPartition assigns each cube in cubes its literal count,
// producing a partition label sequence ready for AdjustedRandIndex or
// VariationOfInformation. Those two pair labels index-for-index and
// return 0 when the sequences differ in length, so two engines' cube
// lists of different lengths are compared with CompareCubeCounts below
// instead.
func BucketPartition(cubes []cube.Cube) []int {
	labels := make([]int, len(cubes))
	for i, c := range cubes {
		labels[i] = c.NLits()
	}
	return labels
}

// CompareCubeCounts compares two engines' ESOP results for the same
// output by literal-count distribution: it buckets each result by
// NLits and returns how many of the nVars+1 literal-count buckets
// have matching cardinality across the two results. A score of
// nVars+1 means the two engines agree exactly on cube shape (a
// necessary, not sufficient, condition for producing the same
// function); any lower score flags a shape divergence worth
// investigating.
func CompareCubeCounts(a, b []cube.Cube, nVars int) (agreeing int, total int) {
	countsA := make([]int, nVars+1)
	countsB := make([]int, nVars+1)
	for _, c := range a {
		countsA[c.NLits()]++
	}
	for _, c := range b {
		countsB[c.NLits()]++
	}
	total = nVars + 1
	for k := 0; k <= nVars; k++ {
		if countsA[k] == countsB[k] {
			agreeing++
		}
	}
	return agreeing, total
}

// AdjustedRandIndex computes the Adjusted Rand Index (ARI) between
// two equal-length label partitions — here, two cube-set literal-count
// bucket assignments for the same padded index space.
//
// ARI = (RI - Expected_RI) / (Max_RI - Expected_RI)
// where RI = (a + b) / C(n, 2)
//
//	a = number of pairs in the same bucket in both partitions
//	b = number of pairs in different buckets in both partitions
//
// Values range from -1 (worse than random) to 1 (perfect agreement).
// 0 is the expected value of a random assignment.
func AdjustedRandIndex(predicted, groundTruth []int) float64 {
	n := len(predicted)
	if n != len(groundTruth) || n < 2 {
		return 0.0
	}

	predLabels := uniqueLabels(predicted)
	gtLabels := uniqueLabels(groundTruth)

	predMap := make(map[int]int)
	for i, l := range predLabels {
		predMap[l] = i
	}
	gtMap := make(map[int]int)
	for i, l := range gtLabels {
		gtMap[l] = i
	}

	nij := make([][]int, len(predLabels))
	for i := range nij {
		nij[i] = make([]int, len(gtLabels))
	}
	for k := 0; k < n; k++ {
		nij[predMap[predicted[k]]][gtMap[groundTruth[k]]]++
	}

	rowSums := make([]int, len(predLabels))
	colSums := make([]int, len(gtLabels))
	for i := range nij {
		for j := range nij[i] {
			rowSums[i] += nij[i][j]
			colSums[j] += nij[i][j]
		}
	}

	sumNijC2 := 0.0
	for i := range nij {
		for j := range nij[i] {
			sumNijC2 += comb2(nij[i][j])
		}
	}
	sumAiC2 := 0.0
	for _, a := range rowSums {
		sumAiC2 += comb2(a)
	}
	sumBjC2 := 0.0
	for _, b := range colSums {
		sumBjC2 += comb2(b)
	}

	nC2 := comb2(n)
	if nC2 == 0 {
		return 0.0
	}

	expectedIndex := (sumAiC2 * sumBjC2) / nC2
	maxIndex := 0.5 * (sumAiC2 + sumBjC2)

	denominator := maxIndex - expectedIndex
	if math.Abs(denominator) < 1e-12 {
		return 1.0
	}
	return (sumNijC2 - expectedIndex) / denominator
}

// VariationOfInformation computes the VI distance between two
// equal-length partitions: VI(C, C') = H(C|C') + H(C'|C). Lower is
// better; 0 means identical partitions.
func VariationOfInformation(predicted, groundTruth []int) float64 {
	n := len(predicted)
	if n != len(groundTruth) || n < 2 {
		return 0.0
	}
	nf := float64(n)

	predLabels := uniqueLabels(predicted)
	gtLabels := uniqueLabels(groundTruth)

	predMap := make(map[int]int)
	for i, l := range predLabels {
		predMap[l] = i
	}
	gtMap := make(map[int]int)
	for i, l := range gtLabels {
		gtMap[l] = i
	}

	nij := make([][]int, len(predLabels))
	for i := range nij {
		nij[i] = make([]int, len(gtLabels))
	}
	for k := 0; k < n; k++ {
		nij[predMap[predicted[k]]][gtMap[groundTruth[k]]]++
	}

	rowSums := make([]int, len(predLabels))
	colSums := make([]int, len(gtLabels))
	for i := range nij {
		for j := range nij[i] {
			rowSums[i] += nij[i][j]
			colSums[j] += nij[i][j]
		}
	}

	hCgivenCp := 0.0
	for i := range nij {
		for j := range nij[i] {
			if nij[i][j] > 0 && colSums[j] > 0 {
				pij := float64(nij[i][j]) / nf
				hCgivenCp -= pij * math.Log2(float64(nij[i][j])/float64(colSums[j]))
			}
		}
	}
	hCpgivenC := 0.0
	for i := range nij {
		for j := range nij[i] {
			if nij[i][j] > 0 && rowSums[i] > 0 {
				pij := float64(nij[i][j]) / nf
				hCpgivenC -= pij * math.Log2(float64(nij[i][j])/float64(rowSums[i]))
			}
		}
	}
	return hCgivenCp + hCpgivenC
}

func comb2(n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(n) * float64(n-1) / 2.0
}

func uniqueLabels(labels []int) []int {
	seen := make(map[int]bool)
	var result []int
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			result = append(result, l)
		}
	}
	return result
}
