package metrics

import (
	"testing"

	"github.com/rawblock/esopforge/pkg/cube"
)

func TestBucketPartitionGroupsByLiteralCount(t *testing.T) {
	a, _ := cube.Parse("1-0")
	b, _ := cube.Parse("110")
	got := BucketPartition([]cube.Cube{a, b})
	want := []int{2, 3}
	if got[0] != want[0] || got[1] != want[1] {
		t.Errorf("BucketPartition = %v, want %v", got, want)
	}
}

func TestCompareCubeCountsIdenticalResults(t *testing.T) {
	a, _ := cube.Parse("1-0")
	b, _ := cube.Parse("110")
	agree, total := CompareCubeCounts([]cube.Cube{a, b}, []cube.Cube{a, b}, 3)
	if agree != total {
		t.Errorf("identical engine outputs should agree on every bucket: %d/%d", agree, total)
	}
}

func TestCompareCubeCountsDivergentResults(t *testing.T) {
	a, _ := cube.Parse("1--")
	b, _ := cube.Parse("11-")
	c, _ := cube.Parse("111")
	agree, total := CompareCubeCounts([]cube.Cube{a}, []cube.Cube{b, c}, 3)
	if agree == total {
		t.Errorf("divergent shapes should not agree on every bucket: %d/%d", agree, total)
	}
}

func TestAdjustedRandIndexPerfectAgreement(t *testing.T) {
	labels := []int{1, 1, 2, 2, 3}
	if got := AdjustedRandIndex(labels, labels); got < 0.999 {
		t.Errorf("ARI of a partition with itself = %v, want ~1.0", got)
	}
}

func TestVariationOfInformationZeroForIdenticalPartitions(t *testing.T) {
	labels := []int{1, 1, 2, 3, 3}
	if got := VariationOfInformation(labels, labels); got > 1e-9 {
		t.Errorf("VI of a partition with itself = %v, want 0", got)
	}
}
