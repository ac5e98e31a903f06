package pla

import (
	"strings"
	"testing"

	"github.com/rawblock/esopforge/pkg/cube"
	"github.com/rawblock/esopforge/pkg/twolvl"
)

func TestReadParsesHeaderAndCubes(t *testing.T) {
	src := ".i 3\n.o 1\n.type esop\n.p 2\n1-0 1\n-11 1\n.e\n"
	tl, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if tl.NInputs != 3 || tl.Kind != twolvl.ESOP {
		t.Fatalf("header = %+v", tl)
	}
	if len(tl.Outputs[0]) != 2 {
		t.Fatalf("expected 2 cubes, got %d", len(tl.Outputs[0]))
	}
}

func TestReadSkipsComments(t *testing.T) {
	src := "# a comment\n.i 2\n.o 1\n10 1\n.e\n"
	tl, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(tl.Outputs[0]) != 1 {
		t.Fatalf("expected 1 cube, got %d", len(tl.Outputs[0]))
	}
}

func TestReadSkipsMalformedLineAndContinues(t *testing.T) {
	src := ".i 2\n.o 1\n1 1\n10 1\n.e\n" // first cube line too short
	tl, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(tl.Outputs[0]) != 1 {
		t.Fatalf("expected malformed line to be skipped, got %d cubes", len(tl.Outputs[0]))
	}
}

func TestWriteRoundTripsThroughRead(t *testing.T) {
	c1, _ := cube.Parse("1-0")
	c2, _ := cube.Parse("011")
	var buf strings.Builder
	if err := Write(&buf, 3, []cube.Cube{c1, c2}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	tl, err := Read(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(tl.Outputs[0]) != 2 {
		t.Fatalf("round trip: expected 2 cubes, got %d", len(tl.Outputs[0]))
	}
	if !tl.Outputs[0][0].Equal(c1) || !tl.Outputs[0][1].Equal(c2) {
		t.Errorf("round trip cubes = %v, want [%v %v]", tl.Outputs[0], c1, c2)
	}
}
