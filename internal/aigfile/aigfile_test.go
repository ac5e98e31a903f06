package aigfile

import (
	"strings"
	"testing"

	"github.com/rawblock/esopforge/internal/aig"
)

func TestReadParsesSimpleAnd(t *testing.T) {
	src := "aig 2 1 1\nand 0 0 1 0\nout 2 0\n"
	g, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if g.NInputs != 2 || len(g.Nodes) != 1 || len(g.Outputs) != 1 {
		t.Fatalf("graph = %+v", g)
	}

	results, err := (&aig.Collapser{}).Run(g)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 || len(results[0]) != 1 {
		t.Fatalf("expected a single conjunction cube, got %v", results)
	}
}

func TestReadSkipsCommentsAndBlankLines(t *testing.T) {
	src := "# header\naig 1 0 1\n\nout 0 1\n"
	g, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if g.NInputs != 1 || len(g.Outputs) != 1 || !g.Outputs[0].Compl {
		t.Fatalf("graph = %+v", g)
	}
}

func TestReadRejectsNodeCountMismatch(t *testing.T) {
	src := "aig 2 2 1\nand 0 0 1 0\nout 2 0\n"
	if _, err := Read(strings.NewReader(src)); err == nil {
		t.Fatal("expected error on declared/actual and-node count mismatch")
	}
}

func TestReadRejectsMalformedLine(t *testing.T) {
	src := "aig 2 1 1\nand 0 0 1\nout 2 0\n"
	if _, err := Read(strings.NewReader(src)); err == nil {
		t.Fatal("expected error on malformed and line")
	}
}

func TestReadRejectsUnknownDirective(t *testing.T) {
	src := "aig 1 0 1\nweird 0 0\n"
	if _, err := Read(strings.NewReader(src)); err == nil {
		t.Fatal("expected error on unknown directive")
	}
}
