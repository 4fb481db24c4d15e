package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sprite-extruder/internal/batch"
	"sprite-extruder/internal/config"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	inputDir := flag.String("in", "", "Directory of input images")
	outputDir := flag.String("out", "", "Output directory (default: input directory)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Convert only the first N images for testing")
	cellSize := flag.Int("cell-size", 0, "Pixels per density grid cell (default: 10)")
	iso := flag.Float64("iso", 0, "Contour density threshold (default: 0.5)")
	thickness := flag.Float64("thickness", 0, "Extrusion thickness (default: 0.1)")
	blurSigma := flag.Float64("blur-sigma", 0, "Gaussian pre-blur sigma, negative disables (default: 10)")
	uvOffset := flag.Float64("uv-offset", 0, "Outward UV nudge in pixels, negative disables (default: 2)")
	height := flag.Float64("height", 0, "Model height; width follows aspect ratio (default: 1)")
	maxSize := flag.Int("max-size", 0, "Downscale inputs with a longer edge than this (default: off)")
	front := flag.Bool("front", true, "Emit front faces")
	back := flag.Bool("back", true, "Emit back faces")
	sides := flag.Bool("sides", true, "Emit side walls")

	flag.Parse()

	if *inputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: -in directory is required")
		os.Exit(1)
	}

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
		OutputDir: *outputDir,
		CellSize:  *cellSize,
		Iso:       *iso,
		Thickness: *thickness,
		BlurSigma: *blurSigma,
		UVOffset:  *uvOffset,
		Height:    *height,
		MaxSize:   *maxSize,
		Workers:   *workers,
	})
	if cfg.OutputDir == "" {
		cfg.OutputDir = *inputDir
	}

	paths, err := batch.ListImages(*inputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(paths) {
		paths = paths[:*testN]
	}

	if len(paths) == 0 {
		fmt.Println("No images to convert.")
		os.Exit(0)
	}

	fmt.Printf("Thick sprite batch: %d images, Workers: %d\n", len(paths), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir: cfg.OutputDir,
		Options:   cfg.Options(*front, *back, *sides),
		Workers:   cfg.Workers,
	}, paths)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Converted: %d/%d\n", success, len(paths))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
