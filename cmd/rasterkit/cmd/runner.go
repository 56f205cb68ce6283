package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/imgio"
	"github.com/MeKo-Tech/rasterkit/internal/batch"
	"github.com/MeKo-Tech/rasterkit/internal/config"
	"github.com/spf13/cobra"
)

// outImage is one buffer produced from a single input. Tag is appended
// to the output file name so one input can fan out to several files
// (sobel --components, gradient).
type outImage struct {
	Tag string
	Buf *dense.Buffer
}

// processFunc turns one decoded buffer into the buffers to write out.
type processFunc func(src *dense.Buffer) ([]outImage, error)

// single wraps a lone result buffer for processFunc returns.
func single(buf *dense.Buffer) []outImage {
	return []outImage{{Buf: buf}}
}

// fileJob represents a single file processing job.
type fileJob struct {
	index int
	path  string
}

// fileResult represents the outcome of processing a single file.
type fileResult struct {
	index    int
	path     string
	outputs  []string
	duration time.Duration
	err      error
}

// runFiles decodes every input path, applies fn, and writes the results,
// fanning the files out over a worker pool. Worker count, output naming,
// and error handling come from the resolved configuration.
func runFiles(cmd *cobra.Command, paths []string, color bool, fn processFunc) error {
	if len(paths) == 0 {
		return errors.New("no input files provided")
	}

	recursive, _ := cmd.Flags().GetBool("recursive")
	include, _ := cmd.Flags().GetStringSlice("include")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")

	discovered, err := batch.Discover(paths, recursive, include, exclude)
	if err != nil {
		return err
	}
	if len(discovered) == 0 {
		return errors.New("no image files found")
	}
	paths = discovered

	cfg := GetConfig()
	start := time.Now()

	workers := cfg.Batch.Workers
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Create worker pool
	jobs := make(chan fileJob, len(paths))
	results := make(chan fileResult, len(paths))

	// Start workers
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go fileWorker(ctx, cfg, color, fn, jobs, results, &wg)
	}

	// Send jobs
	go func() {
		defer close(jobs)
		for i, path := range paths {
			select {
			case jobs <- fileJob{index: i, path: path}:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Collect results
	go func() {
		wg.Wait()
		close(results)
	}()

	// Aggregate results in order
	errorMap := make(map[int]error)
	for res := range results {
		errorMap[res.index] = res.err
		if res.err != nil {
			if !cfg.Batch.ContinueOnError {
				// Drain remaining results after cancelling the pool.
				cancel()
			}
			continue
		}
		slog.Info("processed file",
			"file", res.path,
			"outputs", strings.Join(res.outputs, ","),
			"duration_ms", res.duration.Milliseconds())
	}

	// Check for cancellation from the caller, not our own early-exit cancel.
	if err := parent.Err(); err != nil {
		return err
	}

	var firstError error
	failed := 0
	for i, path := range paths {
		err, ok := errorMap[i]
		if !ok || err == nil {
			continue
		}
		failed++
		if firstError == nil {
			firstError = fmt.Errorf("%s: %w", path, err)
		}
		if cfg.Batch.ContinueOnError {
			slog.Warn("skipping file", "file", path, "error", err.Error())
		}
	}

	batch.Summary{
		Total:    len(paths),
		Failed:   failed,
		Workers:  workers,
		Duration: time.Since(start),
	}.Log()

	if firstError == nil {
		return nil
	}
	if !cfg.Batch.ContinueOnError {
		return firstError
	}
	if failed == len(paths) {
		return fmt.Errorf("all %d input files failed: %w", failed, firstError)
	}
	return nil
}

// fileWorker processes files from the jobs channel.
func fileWorker(
	ctx context.Context,
	cfg *config.Config,
	color bool,
	fn processFunc,
	jobs <-chan fileJob,
	results chan<- fileResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for {
		select {
		case job, ok := <-jobs:
			if !ok {
				return // Channel closed
			}

			res := processFile(cfg, job, color, fn)

			select {
			case results <- res:
			case <-ctx.Done():
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// processFile runs the load-transform-save cycle for one input file.
func processFile(cfg *config.Config, job fileJob, color bool, fn processFunc) fileResult {
	start := time.Now()
	res := fileResult{index: job.index, path: job.path}

	src, err := imgio.Load(job.path, color)
	if err != nil {
		res.err = err
		return res
	}
	defer src.Release()

	outs, err := fn(src)
	if err != nil {
		res.err = err
		return res
	}
	defer func() {
		for _, out := range outs {
			out.Buf.Release()
		}
	}()

	for _, out := range outs {
		path, err := outputPath(cfg, job.path, out.Tag)
		if err == nil {
			err = imgio.Save(path, out.Buf)
		}
		if err != nil {
			res.err = err
			return res
		}
		res.outputs = append(res.outputs, path)
	}

	res.duration = time.Since(start)
	return res
}

// outputPath derives the destination for one input file from the output
// configuration: optional directory override, name suffix, result tag,
// and format.
func outputPath(cfg *config.Config, in, tag string) (string, error) {
	dir := cfg.Output.Dir
	if dir == "" {
		dir = filepath.Dir(in)
	} else if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	ext := filepath.Ext(in)
	if cfg.Output.Format != "" {
		ext = "." + cfg.Output.Format
	}
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))

	return filepath.Join(dir, base+cfg.Output.Suffix+tag+ext), nil
}

// resolveInterp picks the interpolation method, preferring the command's
// --interp flag over the configured default.
func resolveInterp(cmd *cobra.Command, cfg *config.Config) (dense.Interp, error) {
	name := cfg.Transform.Interp
	if cmd.Flags().Changed("interp") {
		name, _ = cmd.Flags().GetString("interp")
	}
	return dense.ParseInterp(name)
}

// resolvePad picks the border mode, preferring the command's --pad flag
// over the configured default.
func resolvePad(cmd *cobra.Command, cfg *config.Config) (dense.Pad, error) {
	name := cfg.Filter.Pad
	if cmd.Flags().Changed("pad") {
		name, _ = cmd.Flags().GetString("pad")
	}
	return dense.ParsePad(name)
}
