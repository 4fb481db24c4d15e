package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sprite-extruder/internal/config"
	"sprite-extruder/internal/imaging"
	"sprite-extruder/internal/pipeline"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	out := flag.String("out", "", "Output .glb path (default: input name with .glb)")
	texOut := flag.String("texture", "", "Also write the repaired texture as WebP to this path")
	cellSize := flag.Int("cell-size", 0, "Pixels per density grid cell (default: 10)")
	iso := flag.Float64("iso", 0, "Contour density threshold (default: 0.5)")
	thickness := flag.Float64("thickness", 0, "Extrusion thickness (default: 0.1)")
	blurSigma := flag.Float64("blur-sigma", 0, "Gaussian pre-blur sigma, negative disables (default: 10)")
	uvOffset := flag.Float64("uv-offset", 0, "Outward UV nudge in pixels, negative disables (default: 2)")
	height := flag.Float64("height", 0, "Model height; width follows aspect ratio (default: 1)")
	maxSize := flag.Int("max-size", 0, "Downscale inputs with a longer edge than this (default: off)")
	front := flag.Bool("front", true, "Emit the front face")
	back := flag.Bool("back", true, "Emit the back face")
	sides := flag.Bool("sides", true, "Emit the side walls")

	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: extrude [flags] <image>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	input := flag.Arg(0)

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		CellSize:  *cellSize,
		Iso:       *iso,
		Thickness: *thickness,
		BlurSigma: *blurSigma,
		UVOffset:  *uvOffset,
		Height:    *height,
		MaxSize:   *maxSize,
	})
	opts := cfg.Options(*front, *back, *sides)

	img, err := imaging.Load(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := pipeline.Generate(img, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := pipeline.EncodeGLB(result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".glb"
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	if *texOut != "" {
		if err := imaging.SaveWebP(*texOut, result.Texture); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("%s: %d vertices (%d triangles), %d bytes\n",
		outPath, len(result.Vertices), len(result.Vertices)/3, len(data))
}
