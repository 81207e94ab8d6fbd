package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// sidecarMetadata mirrors the Takeout sidecar schema, limited to the fields
// reconciliation needs. The timestamp is UTC epoch seconds as a string.
type sidecarMetadata struct {
	PhotoTakenTime struct {
		Timestamp string `json:"timestamp"`
	} `json:"photoTakenTime"`
	GeoData struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"geoData"`
}

// sidecarExtractor reads `<name>.json` next to the target file. A missing
// sidecar is ordinary "no data", but a sidecar that exists and doesn't match
// the schema is a hard failure: its presence implies the contract.
type sidecarExtractor struct{}

func (e *sidecarExtractor) extract(path string) (foundMetadata, error) {
	data, err := os.ReadFile(path + ".json")
	if err != nil {
		if os.IsNotExist(err) {
			return foundMetadata{}, nil
		}
		return foundMetadata{}, fmt.Errorf("reading sidecar for %s: %w", path, err)
	}

	var meta sidecarMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return foundMetadata{}, fmt.Errorf("parsing sidecar for %s: %w", path, err)
	}

	timestamp, err := strconv.ParseInt(meta.PhotoTakenTime.Timestamp, 10, 64)
	if err != nil {
		return foundMetadata{}, fmt.Errorf("parsing sidecar timestamp for %s: %w", path, err)
	}

	result := foundMetadata{
		Date:    time.Unix(timestamp, 0).UTC(),
		HasDate: true,
	}

	// Takeout writes (0,0) when no GPS data was recorded.
	if meta.GeoData.Latitude != 0 || meta.GeoData.Longitude != 0 {
		result.Location = toDMS(DecimalCoordinates{
			Lat: meta.GeoData.Latitude,
			Lon: meta.GeoData.Longitude,
		})
		result.HasLocation = true
	}

	return result, nil
}
