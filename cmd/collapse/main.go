package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rawblock/esopforge/internal/aig"
	"github.com/rawblock/esopforge/internal/aigfile"
	"github.com/rawblock/esopforge/internal/bddmgr"
	"github.com/rawblock/esopforge/internal/exorcism"
	"github.com/rawblock/esopforge/internal/pla"
	"github.com/rawblock/esopforge/internal/psdkro"
	"github.com/rawblock/esopforge/internal/xforms"
	"github.com/rawblock/esopforge/pkg/cube"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: collapse [-psdkro] [-exorcism] [-o output.pla] <input.aig>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	usePSDKRO := flag.Bool("psdkro", false, "extract via BDD/PSDKRO instead of direct AIG collapse")
	useExorcism := flag.Bool("exorcism", false, "run EXORCISM cube minimization on the result")
	outPath := flag.String("o", "", "output .pla path (default: stdout)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
	}
	inPath := flag.Arg(0)

	if filepath.Ext(inPath) != ".aig" {
		fmt.Fprintf(os.Stderr, "[e] Unsupported input file format: %s\n", filepath.Ext(inPath))
		os.Exit(1)
	}

	f, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[e] %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	g, err := aigfile.Read(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[e] Failed to parse AIG: %v\n", err)
		os.Exit(1)
	}

	var perOutput [][]cube.Cube
	if *usePSDKRO {
		mgr := bddmgr.New()
		roots, err := xforms.Lift(mgr, g)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[e] %v\n", err)
			os.Exit(1)
		}
		perOutput = psdkro.ExtractAll(mgr, roots, g.NInputs)
	} else {
		perOutput, err = (aig.Collapser{}).Run(g)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[e] %v\n", err)
			os.Exit(1)
		}
	}

	var out *os.File = os.Stdout
	if *outPath != "" {
		out, err = os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[e] %v\n", err)
			os.Exit(1)
		}
		defer out.Close()
	}

	for i, cubes := range perOutput {
		before := len(cubes)
		if *useExorcism {
			cubes = exorcism.Minimize(cubes, g.NInputs)
		}
		if len(perOutput) > 1 {
			fmt.Fprintf(os.Stderr, "[i] output %d: %d cubes (before minimization: %d)\n", i, len(cubes), before)
		} else {
			fmt.Fprintf(os.Stderr, "[i] %d cubes (before minimization: %d)\n", len(cubes), before)
		}
		if err := pla.Write(out, g.NInputs, cubes); err != nil {
			fmt.Fprintf(os.Stderr, "[e] %v\n", err)
			os.Exit(1)
		}
	}
}
