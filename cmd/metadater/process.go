package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// processFiles runs the full pipeline: validates the input and output
// directories, walks the top level of the input directory, and for each
// eligible file reconciles metadata and writes the result.
func processFiles(cfg config) error {
	info, err := os.Stat(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("input directory %s: %w", cfg.InputDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path %s is not a directory", cfg.InputDir)
	}

	if info, err := os.Stat(cfg.OutputDir); err == nil && !info.IsDir() {
		return fmt.Errorf("output path %s is not a directory", cfg.OutputDir)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("reading input directory %s: %w", cfg.InputDir, err)
	}

	extractors := newExtractors(cfg.Formats)

	var names []string
	for _, entry := range entries {
		// Stat follows symlinks, so a link to a regular file is
		// processed like the file itself. Dangling links are skipped.
		info, err := os.Stat(filepath.Join(cfg.InputDir, entry.Name()))
		if err != nil {
			log.Debug().Str("file", entry.Name()).Err(err).Msg("skipping")
			continue
		}
		if shouldSkip(entry.Name(), info.Mode().IsRegular()) {
			log.Debug().Str("file", entry.Name()).Msg("skipping")
			continue
		}
		names = append(names, entry.Name())
	}

	if cfg.Jobs <= 1 {
		for _, name := range names {
			if err := processOneFile(cfg, name, extractors); err != nil {
				return err
			}
		}
		return nil
	}

	jobs := make(chan string, len(names))
	errs := make(chan error, len(names))
	done := make(chan struct{})
	var once sync.Once
	var wg sync.WaitGroup

	for i := 0; i < cfg.Jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				// A hard error aborts the run; remaining queued
				// files are drained without being processed.
				select {
				case <-done:
					continue
				default:
				}
				if err := processOneFile(cfg, name, extractors); err != nil {
					errs <- err
					once.Do(func() { close(done) })
				}
			}
		}()
	}

	for _, name := range names {
		jobs <- name
	}
	close(jobs)
	wg.Wait()
	close(errs)

	for err := range errs {
		return err
	}
	return nil
}

// processOneFile reconciles a single file's metadata and writes the output.
func processOneFile(cfg config, name string, extractors map[string]extractor) error {
	srcPath := filepath.Join(cfg.InputDir, name)
	destPath := filepath.Join(cfg.OutputDir, name)

	merged, container, err := reconcile(srcPath, cfg.Strategies, extractors)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	reportFile(name, merged)

	if cfg.DryRun {
		return nil
	}

	return writeResult(srcPath, destPath, merged, container, cfg.Verify)
}

// reportFile emits the per-file summary line.
func reportFile(name string, meta foundMetadata) {
	event := log.Info().Str("file", name)
	if meta.HasDate {
		event = event.Str("date", meta.Date.Format(time.RFC3339))
	} else {
		event = event.Str("date", "missing")
	}
	if meta.HasLocation {
		dec := toDecimal(meta.Location)
		event = event.Str("location", fmt.Sprintf("%.6f,%.6f", dec.Lat, dec.Lon))
	} else {
		event = event.Str("location", "missing")
	}
	event.Msg("processed")
}
