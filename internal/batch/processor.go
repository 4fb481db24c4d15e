// Package batch converts a set of images into GLB assets using a
// worker pool.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"sprite-extruder/internal/imaging"
	"sprite-extruder/internal/pipeline"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir string
	Options   pipeline.Options
	Workers   int
}

// Result holds the outcome of processing one image.
type Result struct {
	Name     string
	Source   string
	Asset    string
	Vertices int
	Success  bool
	Error    string
}

// Run processes all images using a worker pool and reports progress
// every two seconds.
func Run(cfg Config, paths []string) []Result {
	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f images/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	pathChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range pathChan {
				results[idx] = processFile(cfg, paths[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range paths {
		pathChan <- i
	}
	close(pathChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, path string) Result {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	r := Result{Name: name, Source: path}

	img, err := imaging.Load(path)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	res, err := pipeline.Generate(img, cfg.Options)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	data, err := pipeline.EncodeGLB(res)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	outPath := filepath.Join(cfg.OutputDir, name+".glb")
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		r.Error = err.Error()
		return r
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		r.Error = err.Error()
		return r
	}

	r.Asset = outPath
	r.Vertices = len(res.Vertices)
	r.Success = true
	return r
}

// ListImages returns the supported image files directly under dir, in
// name order.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: read dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".tga", ".webp", ".bmp":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
