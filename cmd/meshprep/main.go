// meshprep is a CLI utility for preparing triangle meshes for
// edge-highlighting visualization: welding seam vertices and segmenting
// smooth surfaces.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/Faultbox/meshprep/pkg/formats"
	"github.com/Faultbox/meshprep/pkg/mesh"
	"github.com/Faultbox/meshprep/pkg/surface"
	"github.com/Faultbox/meshprep/pkg/weld"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "weld":
		cmdWeld(args)
	case "surfaces":
		cmdSurfaces(args)
	case "info":
		cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshprep - mesh preparation utility for edge-highlight rendering

Usage:
  meshprep <command> [options]

Commands:
  weld <file.obj>      Weld vertices split along smooth edges
  surfaces <file.obj>  Segment the mesh into smooth surfaces
  info <file.obj>      Show mesh statistics

Examples:
  meshprep weld model.obj -o welded.obj
  meshprep weld model.obj -angle 5 -precision 3
  meshprep surfaces model.obj -angle 30
  meshprep info model.obj`)
}

func cmdWeld(args []string) {
	fs := flag.NewFlagSet("weld", flag.ExitOnError)
	out := fs.String("o", "", "Output file (default: overwrite input)")
	angle := fs.Float64("angle", 1.0, "Smooth edge threshold angle in degrees")
	precision := fs.Int("precision", mesh.DefaultPrecision, "Decimal digits for position rounding")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshprep weld <file.obj> [-o out.obj] [-angle deg] [-precision n]")
		os.Exit(1)
	}
	path := fs.Arg(0)

	obj, err := formats.LoadOBJ(path)
	if err != nil {
		fatal(err)
	}

	opts := weld.DefaultOptions()
	opts.AngleDeg = *angle
	opts.Precision = *precision

	aliases, err := weld.Aliases(obj.Positions, obj.Indices, opts)
	if err != nil {
		fatal(err)
	}
	welded := weld.ApplyAliases(obj.Indices, aliases)

	outPath := *out
	if outPath == "" {
		outPath = path
	}
	if err := formats.SaveOBJ(outPath, obj.Positions, welded); err != nil {
		fatal(err)
	}

	fmt.Printf("Welded:   %d vertex pairs\n", len(aliases))
	fmt.Printf("Output:   %s\n", outPath)
}

func cmdSurfaces(args []string) {
	fs := flag.NewFlagSet("surfaces", flag.ExitOnError)
	angle := fs.Float64("angle", 1.0, "Hard edge threshold angle in degrees")
	first := fs.Uint("first", 0, "Identifier of the first surface")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshprep surfaces <file.obj> [-angle deg] [-first n]")
		os.Exit(1)
	}

	obj, err := formats.LoadOBJ(fs.Arg(0))
	if err != nil {
		fatal(err)
	}

	opts := surface.DefaultOptions()
	opts.AngleDeg = *angle
	opts.FirstID = uint32(*first)

	seg := surface.New(opts)
	res, err := seg.Segment(mesh.New(obj.Positions, obj.Indices))
	if err != nil {
		fatal(err)
	}

	counts := make(map[uint32]int)
	for _, id := range res.TriangleIDs {
		if id != surface.NoSurface {
			counts[id]++
		}
	}

	ids := make([]uint32, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fmt.Printf("Surfaces: %d\n", len(ids))
	fmt.Printf("Max ID:   %d\n", res.MaxID)
	for _, id := range ids {
		fmt.Printf("  surface %-6d %d triangles\n", id, counts[id])
	}
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	precision := fs.Int("precision", mesh.DefaultPrecision, "Decimal digits for position rounding")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshprep info <file.obj>")
		os.Exit(1)
	}

	obj, err := formats.LoadOBJ(fs.Arg(0))
	if err != nil {
		fatal(err)
	}
	m := mesh.New(obj.Positions, obj.Indices)
	if err := m.Validate(); err != nil {
		fatal(err)
	}

	degenerate := 0
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		ka := mesh.Quantize(m.Position(a), *precision)
		kb := mesh.Quantize(m.Position(b), *precision)
		kc := mesh.Quantize(m.Position(c), *precision)
		if ka == kb || kb == kc || ka == kc {
			degenerate++
		}
	}

	b := m.Bounds()
	fmt.Printf("File:       %s\n", fs.Arg(0))
	fmt.Printf("Vertices:   %d\n", m.VertexCount())
	fmt.Printf("Triangles:  %d\n", m.TriangleCount())
	fmt.Printf("Degenerate: %d\n", degenerate)
	fmt.Printf("Bounds:     (%g, %g, %g) .. (%g, %g, %g)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
