// Package twolvl holds the two-level (SOP/ESOP) representation of a
// multi-output Boolean function: a tag, an input count, and one ordered
// cube list per output. Cube ordering within an output carries no
// semantic weight for ESOPs — it exists only for reproducible dumps and
// tests, per spec.md §3.
package twolvl

import (
	"fmt"
	"strings"

	"github.com/rawblock/esopforge/pkg/cube"
)

// Kind tags whether a TwoLevel's cube lists are read as an OR (SOP), an
// XOR (ESOP), or have not been given a type yet.
type Kind int

const (
	Undef Kind = iota
	SOP
	ESOP
)

func (k Kind) String() string {
	switch k {
	case SOP:
		return "sop"
	case ESOP:
		return "esop"
	default:
		return "undef"
	}
}

// ParseKind matches s case-insensitively against "sop"/"esop"; anything
// else (including the empty string) is Undef, per spec.md §6.
func ParseKind(s string) Kind {
	switch strings.ToLower(s) {
	case "esop":
		return ESOP
	case "sop":
		return SOP
	default:
		return Undef
	}
}

// TwoLevel is a multi-output two-level Boolean function representation.
type TwoLevel struct {
	Kind    Kind
	NInputs int
	Outputs [][]cube.Cube
}

// New allocates a TwoLevel with nOutputs empty cube lists.
func New(kind Kind, nInputs, nOutputs int) *TwoLevel {
	return &TwoLevel{Kind: kind, NInputs: nInputs, Outputs: make([][]cube.Cube, nOutputs)}
}

// AddCube is the parse-from-string entry point of spec.md §4.2: in is an
// NInputs-character PLA-style literal string, out is a per-output
// character string where a '1' at position j associates the parsed cube
// with output j. It returns an error (without mutating the TwoLevel) if
// the lengths disagree with the declared input/output counts, per the
// "malformed input" handling of spec.md §7.
func (t *TwoLevel) AddCube(in, out string) error {
	if len(in) != t.NInputs {
		return fmt.Errorf("twolvl: cube input %q has length %d, want %d", in, len(in), t.NInputs)
	}
	if len(out) != len(t.Outputs) {
		return fmt.Errorf("twolvl: cube output %q has length %d, want %d", out, len(out), len(t.Outputs))
	}
	c, err := cube.Parse(in)
	if err != nil {
		return fmt.Errorf("twolvl: %w", err)
	}
	for j, ch := range out {
		if ch == '1' {
			t.Outputs[j] = append(t.Outputs[j], c)
		}
	}
	return nil
}
