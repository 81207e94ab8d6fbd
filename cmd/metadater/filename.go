package main

import (
	"path/filepath"
	"strings"
	"time"
)

// filenameExtractor parses a capture date out of the filename stem using an
// ordered list of strftime-style patterns. It has no failure mode: a stem
// that matches no pattern is simply "no data".
type filenameExtractor struct {
	formats []string
}

func (e *filenameExtractor) extract(path string) (foundMetadata, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	for _, format := range e.formats {
		layout := strftimeToLayout(format)
		if layout == "" {
			continue
		}

		// Patterns match a prefix of the stem: IMG_20230101_120000_edited
		// still parses under IMG_%Y%m%d_%H%M%S.
		candidate := stem
		if len(candidate) > len(layout) {
			candidate = candidate[:len(layout)]
		}

		date, err := time.ParseInLocation(layout, candidate, time.Local)
		if err != nil {
			continue
		}
		return foundMetadata{Date: date, HasDate: true}, nil
	}

	return foundMetadata{}, nil
}

// strftimeTokens maps the supported strftime conversion tokens to Go
// reference-time layout fragments. Patterns are restricted to fixed-width
// tokens so the stem can be truncated to the pattern's rendered length.
var strftimeTokens = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'M': "04",
	'S': "05",
	'%': "%",
}

// strftimeToLayout converts a strftime-style pattern to a Go time layout.
// Returns "" for patterns containing unsupported tokens.
func strftimeToLayout(format string) string {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			b.WriteByte(format[i])
			continue
		}
		i++
		if i >= len(format) {
			return ""
		}
		fragment, ok := strftimeTokens[format[i]]
		if !ok {
			return ""
		}
		b.WriteString(fragment)
	}
	return b.String()
}
