package main

import (
	"path/filepath"
	"strings"
)

// containerOpener is the optional extractor capability of producing an
// opened metadata container alongside its result. The container is opened
// at most once per file and handed on to the writer for reuse.
type containerOpener interface {
	extractContainer(path string) (foundMetadata, *exifContainer, error)
}

// reconcile merges the outputs of the named strategies into one result.
//
// The strategy list is iterated in reverse with unconditional
// overwrite-if-found: a later iteration (earlier in the configured list)
// overwrites any value found so far, while absent results never overwrite.
// The net effect is that the first-listed strategy has the highest
// priority. Unrecognized names are ignored; duplicates just re-run.
func reconcile(path string, strategies []string, extractors map[string]extractor) (foundMetadata, *exifContainer, error) {
	var merged foundMetadata
	var container *exifContainer

	for i := len(strategies) - 1; i >= 0; i-- {
		ex, ok := extractors[strings.ToLower(strategies[i])]
		if !ok {
			continue
		}

		var result foundMetadata
		var err error
		if opener, isOpener := ex.(containerOpener); isOpener {
			var opened *exifContainer
			result, opened, err = opener.extractContainer(path)
			if opened != nil {
				container = opened
			}
		} else {
			result, err = ex.extract(path)
		}
		if err != nil {
			return foundMetadata{}, nil, err
		}

		if result.HasDate {
			merged.Date = result.Date
			merged.HasDate = true
		}
		if result.HasLocation {
			merged.Location = result.Location
			merged.HasLocation = true
		}
	}

	return merged, container, nil
}

// shouldSkip reports whether a directory entry is excluded from processing:
// anything that is not a regular file, hidden files, sidecars, and GIFs
// (whose containers we cannot rewrite). Skipped entries produce no output.
func shouldSkip(name string, isRegular bool) bool {
	if !isRegular {
		return true
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".gif":
		return true
	}
	return false
}
