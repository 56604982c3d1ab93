// Package batch processes a directory of PDF files into one outline JSON
// file each. Files are independent: they run on parallel workers with no
// shared mutable state, per-file failures never abort the batch, and no
// partial JSON is ever left visible in the output directory.
package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tsawler/contour"
	"github.com/tsawler/contour/model"
)

// Config holds batch runner configuration
type Config struct {
	// InputDir is scanned (non-recursively) for *.pdf files
	InputDir string

	// OutputDir receives one <basename>.json per successful input
	OutputDir string

	// Workers is the number of files processed concurrently
	// (default: 4)
	Workers int

	// FileTimeout bounds processing of a single file; a file that
	// exceeds it is abandoned and treated as a parse failure
	// (default: 60s)
	FileTimeout time.Duration

	// Options is the extraction configuration shared by all workers
	Options contour.Options
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Workers:     4,
		FileTimeout: 60 * time.Second,
		Options:     contour.DefaultOptions(),
	}
}

// Result summarizes a batch run
type Result struct {
	// Processed counts files whose outline JSON was written
	Processed int

	// Failed counts files skipped for parse failures or timeouts
	Failed int
}

// Total returns the number of input files handled
func (r Result) Total() int {
	return r.Processed + r.Failed
}

// HasFailures reports whether any file failed
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Runner executes batch extraction over an input directory
type Runner struct {
	config Config
	log    *slog.Logger
}

// NewRunner creates a batch runner. A nil logger falls back to the
// default slog logger.
func NewRunner(config Config, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	if config.Workers <= 0 {
		config.Workers = 4
	}
	if config.FileTimeout <= 0 {
		config.FileTimeout = 60 * time.Second
	}
	return &Runner{config: config, log: log}
}

// Run processes every PDF in the input directory. It returns an error only
// for catastrophic startup failures (missing input directory, unusable
// output directory); per-file failures are logged and counted.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	files, err := r.listInputs()
	if err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(r.config.OutputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}

	// Bounded concurrency over independent files; each worker owns its
	// own document state, so no locking beyond result collection
	type fileResult struct {
		path string
		ok   bool
	}
	results := make(chan fileResult, len(files))
	sem := make(chan struct{}, r.config.Workers)

	for _, path := range files {
		sem <- struct{}{}
		go func(path string) {
			defer func() { <-sem }()
			results <- fileResult{path: path, ok: r.processFile(ctx, path)}
		}(path)
	}

	var result Result
	for range files {
		fr := <-results
		if fr.ok {
			result.Processed++
		} else {
			result.Failed++
		}
	}

	r.log.Info("batch complete",
		"processed", result.Processed,
		"failed", result.Failed,
		"total", result.Total())
	return result, nil
}

// listInputs returns the sorted PDF paths in the input directory
func (r *Runner) listInputs() ([]string, error) {
	entries, err := os.ReadDir(r.config.InputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, filepath.Join(r.config.InputDir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// extraction carries the result of one file's outline run across the
// goroutine boundary
type extraction struct {
	doc      *model.OutlineDocument
	warnings []contour.Warning
	err      error
}

// abandonReason classifies a context failure for the per-file log line
func abandonReason(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out, file abandoned"
	}
	return "canceled, file abandoned"
}

// processFile extracts one file and writes its JSON. Returns false on any
// failure; no output is emitted for failed files. Extraction runs in its
// own goroutine: the library's calls are synchronous and cannot observe
// the context mid-call, so an expired deadline abandons the file even if
// a call is wedged on pathological input.
func (r *Runner) processFile(ctx context.Context, path string) bool {
	log := r.log.With("file", filepath.Base(path))

	fileCtx, cancel := context.WithTimeout(ctx, r.config.FileTimeout)
	defer cancel()

	start := time.Now()
	done := make(chan extraction, 1)
	go func() {
		doc, warnings, err := contour.Open(path).
			WithOptions(r.config.Options).
			OutlineContext(fileCtx)
		done <- extraction{doc: doc, warnings: warnings, err: err}
	}()

	var ext extraction
	select {
	case ext = <-done:
	case <-fileCtx.Done():
		log.Error(abandonReason(fileCtx.Err()), "timeout", r.config.FileTimeout)
		return false
	}

	doc, warnings, err := ext.doc, ext.warnings, ext.err
	if err != nil {
		if fileCtx.Err() != nil {
			log.Error(abandonReason(fileCtx.Err()), "timeout", r.config.FileTimeout)
		} else {
			log.Error("parse failed", "error", err)
		}
		return false
	}

	for _, w := range warnings {
		log.Warn("page skipped", "page", w.Page, "reason", w.Message)
	}

	outPath := r.outputPath(path)
	if err := writeJSON(outPath, doc); err != nil {
		log.Error("write failed", "output", outPath, "error", err)
		return false
	}

	log.Info("extracted",
		"title", doc.Title,
		"headings", doc.NodeCount(),
		"duration", time.Since(start))
	return true
}

// outputPath maps an input PDF path to its JSON output path
func (r *Runner) outputPath(inputPath string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(r.config.OutputDir, base+".json")
}

// writeJSON writes the document to a temporary file and renames it into
// place, so a crash or full disk never leaves partial JSON behind
func writeJSON(path string, doc *model.OutlineDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), ".contour-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
