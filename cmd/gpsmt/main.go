// Command gpsmt reads terminal points and computes a minimum Steiner
// tree over them, printing the result as text or JSON.
//
// Input is one point per line on stdin (or a -input file), each line a
// comma-separated coordinate list ("0,0" / "1.5,2,-3"). All points must
// share the same dimension.
//
// The teacher ships no cmd/ of its own (it is a library); this follows
// the plain flag-package, no-framework CLI shape used throughout the
// retrieved example pack's standalone command snippets.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arbortree/gpsmt/diag"
	"github.com/arbortree/gpsmt/geomedian"
	"github.com/arbortree/gpsmt/gpenum"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/report"
	"github.com/arbortree/gpsmt/rmt"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/smt"
	"github.com/arbortree/gpsmt/space"
	"github.com/arbortree/gpsmt/upperbound"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "gpsmt:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("gpsmt", flag.ContinueOnError)
	spaceName := fs.String("space", "euclidean", "metric space: euclidean, lp, linf, ellipsoid")
	p := fs.Float64("p", 2, "order for -space=lp or the rodriguezchia kernel when p>2")
	scaleFlag := fs.String("scale", "", "comma-separated per-axis scales for -space=ellipsoid")
	sorterName := fs.String("sorter", "furthest", "terminal order: furthest, none")
	upperBoundName := fs.String("upper-bound", "line", "incumbent seed heuristic: line, mst")
	kernelName := fs.String("kernel", "uteshev", "geomedian kernel: uteshev, weiszfeld, ostresh, brimberglove, rodriguezchia")
	inputPath := fs.String("input", "", "path to read terminal points from (default: stdin)")
	asJSON := fs.Bool("json", false, "render the result as JSON instead of text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var in io.Reader = stdin
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			return fmt.Errorf("opening -input: %w", err)
		}
		defer f.Close()
		in = f
	}

	terms, err := readTerminals(in)
	if err != nil {
		return fmt.Errorf("reading terminals: %w", err)
	}

	sp, kernel, err := buildSpaceAndKernel(*spaceName, *p, *scaleFlag, *kernelName)
	if err != nil {
		return err
	}

	sorter, err := sorterByName(*sorterName)
	if err != nil {
		return err
	}

	ub, err := upperbound.ByName(*upperBoundName)
	if err != nil {
		return err
	}

	opts := &smt.Options{
		Space:           sp,
		Sorter:          sorter,
		EnableBSD:       true,
		EnableSS:        true,
		GeoMedianKernel: kernel,
		Strategy:        rmt.NewSteppedToConvergence(rmt.DefaultNodeDistCutoff),
		UpperBound:      ub,
	}

	counters := diag.New()
	tree, err := smt.Find(terms, opts, counters)
	if err != nil {
		return fmt.Errorf("solving: %w", err)
	}

	if *asJSON {
		return report.RenderJSON(stdout, tree, sp)
	}

	return report.Render(stdout, tree, sp)
}

// readTerminals parses one comma-separated coordinate list per
// non-blank line.
func readTerminals(r io.Reader) ([]*point.Point, error) {
	scanner := bufio.NewScanner(r)
	var terms []*point.Point
	id := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		coords := make([]scalar.Real, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			coords[i] = v
		}
		terms = append(terms, point.New(id, coords))
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, errNoTerminals
	}

	return terms, nil
}

var errNoTerminals = fmt.Errorf("no terminal points given")

// buildSpaceAndKernel constructs the metric space and geomedian kernel
// named by the CLI flags, wrapping the kernel in a
// HyperEllipsoidDecorator when -space=ellipsoid.
func buildSpaceAndKernel(spaceName string, p float64, scaleCSV, kernelName string) (space.Space, geomedian.Kernel, error) {
	kernel, err := kernelByName(kernelName, scalar.Real(p))
	if err != nil {
		return nil, nil, err
	}

	switch spaceName {
	case "euclidean":
		return space.NewEuclidean(), kernel, nil
	case "lp":
		sp, err := space.NewLp(scalar.Real(p))
		if err != nil {
			return nil, nil, err
		}

		return sp, kernel, nil
	case "linf":
		return space.NewLInf(), kernel, nil
	case "ellipsoid":
		scales, err := parseScales(scaleCSV)
		if err != nil {
			return nil, nil, err
		}
		sp, err := space.NewHyperEllipsoid(scales)
		if err != nil {
			return nil, nil, err
		}

		return sp, geomedian.NewHyperEllipsoidDecorator(kernel), nil
	default:
		return nil, nil, fmt.Errorf("unknown -space %q", spaceName)
	}
}

func parseScales(csv string) ([]scalar.Real, error) {
	if csv == "" {
		return nil, fmt.Errorf("-space=ellipsoid requires -scale")
	}
	fields := strings.Split(csv, ",")
	scales := make([]scalar.Real, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("-scale: %w", err)
		}
		scales[i] = v
	}

	return scales, nil
}

func kernelByName(name string, p scalar.Real) (geomedian.Kernel, error) {
	switch name {
	case "uteshev":
		return geomedian.NewUteshev(), nil
	case "weiszfeld":
		return geomedian.NewWeiszfeld(), nil
	case "ostresh":
		return geomedian.NewOstresh(), nil
	case "brimberglove":
		return geomedian.NewBrimbergLove(p)
	case "rodriguezchia":
		return geomedian.NewRodriguezChia(p, 1e-6)
	default:
		return nil, fmt.Errorf("unknown -kernel %q", name)
	}
}

func sorterByName(name string) (gpenum.TerminalSorter, error) {
	switch name {
	case "furthest":
		return gpenum.FurthestSiteOrdering{}, nil
	case "none":
		return gpenum.NoOrdering{}, nil
	default:
		return nil, fmt.Errorf("unknown -sorter %q", name)
	}
}
