package main

import "time"

// foundMetadata is the result of running one extractor against one file.
// Absent values are signalled with the Has* flags; extractors never report
// ordinary "no data" as an error.
type foundMetadata struct {
	Date        time.Time
	HasDate     bool
	Location    DMSCoordinates
	HasLocation bool
}

// extractor inspects a single information source for one file and reports
// an optional capture date and an optional DMS location.
type extractor interface {
	extract(path string) (foundMetadata, error)
}

// newExtractors builds the strategy registry. Strategy names not present in
// the returned map are ignored by the reconciliation engine.
func newExtractors(formats []string) map[string]extractor {
	exif := &exifExtractor{}
	return map[string]extractor{
		"exif":     exif,
		"json":     &sidecarExtractor{},
		"filename": &filenameExtractor{formats: formats},
	}
}
