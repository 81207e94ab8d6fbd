package main

import (
	"math"
	"testing"
)

func TestToDecimal(t *testing.T) {
	testCases := []struct {
		name    string
		dms     DMSCoordinates
		wantLat float64
		wantLon float64
	}{
		{
			"New York",
			DMSCoordinates{
				Lat: DegMinSec{40, 42, 46.08}, LatRef: "N",
				Lon: DegMinSec{74, 0, 21.6}, LonRef: "W",
			},
			40.7128, -74.0060,
		},
		{
			"Sydney",
			DMSCoordinates{
				Lat: DegMinSec{33, 52, 4.8}, LatRef: "S",
				Lon: DegMinSec{151, 12, 36.0}, LonRef: "E",
			},
			-33.868, 151.21,
		},
		{
			"Equator and prime meridian",
			DMSCoordinates{
				Lat: DegMinSec{0, 0, 0}, LatRef: "N",
				Lon: DegMinSec{0, 0, 0}, LonRef: "E",
			},
			0, 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dec := toDecimal(tc.dms)
			if math.Abs(dec.Lat-tc.wantLat) > 1e-6 {
				t.Errorf("Expected latitude %v, got %v", tc.wantLat, dec.Lat)
			}
			if math.Abs(dec.Lon-tc.wantLon) > 1e-6 {
				t.Errorf("Expected longitude %v, got %v", tc.wantLon, dec.Lon)
			}
		})
	}
}

func TestToDMSRefs(t *testing.T) {
	testCases := []struct {
		name       string
		dec        DecimalCoordinates
		wantLatRef string
		wantLonRef string
	}{
		{"Northeast", DecimalCoordinates{40.7128, 74.0060}, "N", "E"},
		{"Northwest", DecimalCoordinates{40.7128, -74.0060}, "N", "W"},
		{"Southeast", DecimalCoordinates{-33.868, 151.21}, "S", "E"},
		{"Southwest", DecimalCoordinates{-33.868, -70.65}, "S", "W"},
		{"Origin", DecimalCoordinates{0, 0}, "N", "E"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dms := toDMS(tc.dec)
			if dms.LatRef != tc.wantLatRef {
				t.Errorf("Expected latitude ref %s, got %s", tc.wantLatRef, dms.LatRef)
			}
			if dms.LonRef != tc.wantLonRef {
				t.Errorf("Expected longitude ref %s, got %s", tc.wantLonRef, dms.LonRef)
			}
		})
	}
}

// TestCoordinateRoundTrip checks that converting decimal degrees to
// degrees/minutes/seconds and back preserves the value.
func TestCoordinateRoundTrip(t *testing.T) {
	coords := []DecimalCoordinates{
		{40.7128, -74.0060},
		{-33.868, 151.21},
		{51.5074, -0.1278},
		{-54.8019, -68.3030},
		{89.999, 179.999},
		{-89.999, -179.999},
		{0.0001, -0.0001},
	}

	for _, dec := range coords {
		got := toDecimal(toDMS(dec))
		if math.Abs(got.Lat-dec.Lat) > 1e-6 {
			t.Errorf("Latitude round trip for %v: got %v", dec.Lat, got.Lat)
		}
		if math.Abs(got.Lon-dec.Lon) > 1e-6 {
			t.Errorf("Longitude round trip for %v: got %v", dec.Lon, got.Lon)
		}
	}
}
