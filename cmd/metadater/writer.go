package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
)

// writeResult applies the reconciled metadata and writes the output file.
//
// With an open container, the date and location are written into its EXIF
// block and the serialized container becomes the output. A location the
// container rejects is skipped (date and bytes still proceed). Without a
// container the source bytes are copied verbatim. In both cases, a found
// date is stamped onto the output's access and modification times.
func writeResult(srcPath, destPath string, meta foundMetadata, container *exifContainer, verify bool) error {
	var output []byte

	if container != nil {
		rootIb, err := container.builder()
		if err != nil {
			return fmt.Errorf("building EXIF for %s: %w", srcPath, err)
		}

		changed := false
		if meta.HasDate {
			if err := container.applyDate(rootIb, meta.Date); err != nil {
				return fmt.Errorf("writing date for %s: %w", srcPath, err)
			}
			changed = true
		}
		if meta.HasLocation {
			if err := container.applyLocation(rootIb, meta.Location); err != nil {
				// The container rejected the GPS shape; leave location
				// metadata unmodified and carry on.
				log.Debug().Str("file", srcPath).Err(err).Msg("skipping location write")
			} else {
				changed = true
			}
		}
		if changed {
			if err := container.commit(rootIb); err != nil {
				return fmt.Errorf("committing EXIF for %s: %w", srcPath, err)
			}
		}

		output, err = container.bytes()
		if err != nil {
			return fmt.Errorf("serializing %s: %w", srcPath, err)
		}
	} else {
		var err error
		output, err = os.ReadFile(srcPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", srcPath, err)
		}
	}

	if err := os.WriteFile(destPath, output, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}

	if verify && container == nil {
		if err := verifyCopy(srcPath, destPath); err != nil {
			return err
		}
	}

	if meta.HasDate {
		if err := setFileTimes(destPath, meta.Date); err != nil {
			return fmt.Errorf("setting times on %s: %w", destPath, err)
		}
	}

	return nil
}

// verifyCopy checks that a pass-through copy is byte-identical to its
// source by comparing checksums.
func verifyCopy(srcPath, destPath string) error {
	srcSum, err := calculateXXHash(srcPath)
	if err != nil {
		return fmt.Errorf("checksumming %s: %w", srcPath, err)
	}
	destSum, err := calculateXXHash(destPath)
	if err != nil {
		return fmt.Errorf("checksumming %s: %w", destPath, err)
	}
	if srcSum != destSum {
		return fmt.Errorf("checksum mismatch: %s (%s) vs %s (%s)", srcPath, srcSum, destPath, destSum)
	}
	return nil
}

func calculateXXHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := xxhash.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hash.Sum64()), nil
}

// setFileTimes sets both the access and modification time of a file.
func setFileTimes(path string, t time.Time) error {
	return os.Chtimes(path, t, t)
}
