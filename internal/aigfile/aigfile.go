// Package aigfile reads a minimal textual AIG format into an
// internal/aig.Graph. No AIGER (the binary/ASCII AIG interchange
// format) library or parser appears anywhere in this repository's
// reference material, so this is a deliberately small from-scratch
// text format rather than an AIGER implementation — enough to make
// cmd/collapse runnable end to end against hand-written test circuits.
//
// Format (one directive per line, whitespace-separated fields):
//
//	aig <nInputs> <nAndNodes> <nOutputs>
//	and <faninA> <complA> <faninB> <complB>   (one per AND node, in order)
//	out <fanin> <compl>                       (one per primary output)
//
// Object ids follow internal/aig.Graph's numbering: primary inputs are
// ids [0, nInputs), and the i-th "and" line is id nInputs+i. complA,
// complB, and compl are "0" or "1". Comment lines start with '#'.
package aigfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rawblock/esopforge/internal/aig"
)

// Read parses r into an aig.Graph.
func Read(r io.Reader) (*aig.Graph, error) {
	scanner := bufio.NewScanner(r)
	g := &aig.Graph{}
	wantNodes, wantOutputs := -1, -1

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "aig":
			if len(fields) != 4 {
				return nil, fmt.Errorf("aigfile: malformed header %q", line)
			}
			n, err := parseInts(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("aigfile: %w", err)
			}
			g.NInputs, wantNodes, wantOutputs = n[0], n[1], n[2]
		case "and":
			if len(fields) != 5 {
				return nil, fmt.Errorf("aigfile: malformed and-node line %q", line)
			}
			a, err := parseInts(fields[1:3])
			if err != nil {
				return nil, fmt.Errorf("aigfile: %w", err)
			}
			b, err := parseInts(fields[3:5])
			if err != nil {
				return nil, fmt.Errorf("aigfile: %w", err)
			}
			g.Nodes = append(g.Nodes, aig.AndNode{
				FaninA: a[0], ComplA: a[1] != 0,
				FaninB: b[0], ComplB: b[1] != 0,
			})
		case "out":
			if len(fields) != 3 {
				return nil, fmt.Errorf("aigfile: malformed output line %q", line)
			}
			n, err := parseInts(fields[1:3])
			if err != nil {
				return nil, fmt.Errorf("aigfile: %w", err)
			}
			g.Outputs = append(g.Outputs, aig.Output{Fanin: n[0], Compl: n[1] != 0})
		default:
			return nil, fmt.Errorf("aigfile: unknown directive %q", fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if wantNodes >= 0 && len(g.Nodes) != wantNodes {
		return nil, fmt.Errorf("aigfile: header declared %d and-nodes, found %d", wantNodes, len(g.Nodes))
	}
	if wantOutputs >= 0 && len(g.Outputs) != wantOutputs {
		return nil, fmt.Errorf("aigfile: header declared %d outputs, found %d", wantOutputs, len(g.Outputs))
	}
	return g, nil
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", f)
		}
		out[i] = n
	}
	return out, nil
}
