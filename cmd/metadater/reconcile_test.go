package main

import (
	"errors"
	"testing"
	"time"
)

// fakeExtractor returns canned metadata regardless of path.
type fakeExtractor struct {
	meta foundMetadata
	err  error
}

func (e *fakeExtractor) extract(path string) (foundMetadata, error) {
	return e.meta, e.err
}

func dateOnly(t time.Time) foundMetadata {
	return foundMetadata{Date: t, HasDate: true}
}

func TestReconcilePriority(t *testing.T) {
	exifDate := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	jsonDate := time.Date(2021, 2, 2, 0, 0, 0, 0, time.UTC)
	filenameDate := time.Date(2022, 3, 3, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		strategies []string
		extractors map[string]extractor
		wantDate   time.Time
	}{
		{
			"First listed wins over all",
			[]string{"exif", "json", "filename"},
			map[string]extractor{
				"exif":     &fakeExtractor{meta: dateOnly(exifDate)},
				"json":     &fakeExtractor{meta: dateOnly(jsonDate)},
				"filename": &fakeExtractor{meta: dateOnly(filenameDate)},
			},
			exifDate,
		},
		{
			"Order reversal flips the winner",
			[]string{"filename", "json", "exif"},
			map[string]extractor{
				"exif":     &fakeExtractor{meta: dateOnly(exifDate)},
				"json":     &fakeExtractor{meta: dateOnly(jsonDate)},
				"filename": &fakeExtractor{meta: dateOnly(filenameDate)},
			},
			filenameDate,
		},
		{
			"Absent first source falls through",
			[]string{"exif", "json"},
			map[string]extractor{
				"exif": &fakeExtractor{},
				"json": &fakeExtractor{meta: dateOnly(jsonDate)},
			},
			jsonDate,
		},
		{
			"Unknown strategy names are ignored",
			[]string{"bogus", "json", "alsobogus"},
			map[string]extractor{
				"json": &fakeExtractor{meta: dateOnly(jsonDate)},
			},
			jsonDate,
		},
		{
			"Strategy names are case-insensitive",
			[]string{"JSON"},
			map[string]extractor{
				"json": &fakeExtractor{meta: dateOnly(jsonDate)},
			},
			jsonDate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			merged, _, err := reconcile("/photos/any.jpg", tc.strategies, tc.extractors)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !merged.HasDate {
				t.Fatal("Expected a reconciled date")
			}
			if !merged.Date.Equal(tc.wantDate) {
				t.Errorf("Expected date %v, got %v", tc.wantDate, merged.Date)
			}
		})
	}
}

// A source that found nothing must not clobber a lower-priority source
// that found something.
func TestReconcileAbsenceNeverOverwrites(t *testing.T) {
	jsonDate := time.Date(2021, 2, 2, 0, 0, 0, 0, time.UTC)
	location := toDMS(DecimalCoordinates{Lat: 40.7128, Lon: -74.0060})

	extractors := map[string]extractor{
		"exif": &fakeExtractor{},
		"json": &fakeExtractor{meta: foundMetadata{
			Date:        jsonDate,
			HasDate:     true,
			Location:    location,
			HasLocation: true,
		}},
	}

	merged, _, err := reconcile("/photos/any.jpg", []string{"exif", "json"}, extractors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !merged.HasDate || !merged.Date.Equal(jsonDate) {
		t.Errorf("Expected json date to survive, got %+v", merged)
	}
	if !merged.HasLocation {
		t.Error("Expected json location to survive")
	}
}

// Date and location reconcile independently: each field takes the
// highest-priority source that has it.
func TestReconcileFieldsIndependent(t *testing.T) {
	exifDate := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	location := toDMS(DecimalCoordinates{Lat: -33.868, Lon: 151.21})

	extractors := map[string]extractor{
		"exif": &fakeExtractor{meta: dateOnly(exifDate)},
		"json": &fakeExtractor{meta: foundMetadata{
			Date:        time.Date(2021, 2, 2, 0, 0, 0, 0, time.UTC),
			HasDate:     true,
			Location:    location,
			HasLocation: true,
		}},
	}

	merged, _, err := reconcile("/photos/any.jpg", []string{"exif", "json"}, extractors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !merged.Date.Equal(exifDate) {
		t.Errorf("Expected exif date to win, got %v", merged.Date)
	}
	if !merged.HasLocation {
		t.Error("Expected json location to fill the gap")
	}
}

func TestReconcileExtractorError(t *testing.T) {
	boom := errors.New("sidecar schema mismatch")
	extractors := map[string]extractor{
		"json": &fakeExtractor{err: boom},
	}

	_, _, err := reconcile("/photos/any.jpg", []string{"json"}, extractors)
	if !errors.Is(err, boom) {
		t.Fatalf("expected extractor error to propagate, got %v", err)
	}
}

func TestShouldSkip(t *testing.T) {
	testCases := []struct {
		name      string
		fileName  string
		isRegular bool
		want      bool
	}{
		{"Ordinary JPEG", "photo.jpg", true, false},
		{"Hidden file", ".DS_Store", true, true},
		{"Sidecar file", "photo.jpg.json", true, true},
		{"GIF", "animation.gif", true, true},
		{"Uppercase GIF", "ANIMATION.GIF", true, true},
		{"Directory", "subdir", false, true},
		{"Extensionless file", "README", true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := shouldSkip(tc.fileName, tc.isRegular)
			if got != tc.want {
				t.Errorf("shouldSkip(%q, %v) = %v, want %v", tc.fileName, tc.isRegular, got, tc.want)
			}
		})
	}
}
