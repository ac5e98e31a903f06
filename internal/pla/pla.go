// Package pla reads and writes the PLA file format: the external
// file-I/O collaborator the core cube/two-level representation treats
// as out of scope. Reading feeds lines into
// pkg/twolvl.TwoLevel.AddCube; a malformed cube line is reported and
// skipped, per the best-effort parsing rule — the rest of the file
// still gets a chance to parse.
package pla

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/rawblock/esopforge/pkg/cube"
	"github.com/rawblock/esopforge/pkg/twolvl"
)

// Read parses a PLA file from r: `.i`, `.o`, `.p`, `.type` header
// directives, `#` comment lines, one cube line per product term, and
// a terminating `.e`. `.p` is advisory (a capacity hint) and is not
// checked against the actual cube count.
func Read(r io.Reader) (*twolvl.TwoLevel, error) {
	scanner := bufio.NewScanner(r)

	var nInputs, nOutputs int
	kind := twolvl.Undef
	var tl *twolvl.TwoLevel

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, ".") {
			fields := strings.Fields(line)
			switch fields[0] {
			case ".i":
				if len(fields) >= 2 {
					nInputs, _ = strconv.Atoi(fields[1])
				}
			case ".o":
				if len(fields) >= 2 {
					nOutputs, _ = strconv.Atoi(fields[1])
				}
			case ".p":
				// advisory cube-count hint; not enforced.
			case ".type":
				if len(fields) >= 2 {
					kind = twolvl.ParseKind(fields[1])
				}
			case ".e":
				if tl == nil {
					tl = twolvl.New(kind, nInputs, nOutputs)
				}
				return tl, nil
			}
			continue
		}

		if tl == nil {
			tl = twolvl.New(kind, nInputs, nOutputs)
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			log.Printf("pla: malformed cube line %q, skipping", line)
			continue
		}
		if err := tl.AddCube(fields[0], fields[1]); err != nil {
			log.Printf("pla: %v, skipping", err)
			continue
		}
	}
	if tl == nil {
		tl = twolvl.New(kind, nInputs, nOutputs)
	}
	return tl, scanner.Err()
}

// Write emits one output's ESOP as a PLA file, per the format
// documented in spec: `.i`, `.o 1`, `.p`, one cube per line with
// trailing "1", and `.e`.
func Write(w io.Writer, nInputs int, cubes []cube.Cube) error {
	if _, err := fmt.Fprintf(w, ".i %d\n.o 1\n.p %d\n", nInputs, len(cubes)); err != nil {
		return err
	}
	for _, c := range cubes {
		if _, err := fmt.Fprintf(w, "%s 1\n", c.String(nInputs)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, ".e")
	return err
}
