package main

import "math"

// DecimalCoordinates is a geographic point in signed decimal degrees.
// Latitude is assumed to be in [-90, 90] and longitude in [-180, 180];
// out-of-range input is not normalized.
type DecimalCoordinates struct {
	Lat float64
	Lon float64
}

// DegMinSec is one coordinate axis in degree/minute/second form, the
// representation EXIF stores natively.
type DegMinSec struct {
	Degrees int
	Minutes int
	Seconds float64
}

// DMSCoordinates pairs latitude and longitude DMS values with their
// hemisphere reference letters (N/S and E/W).
type DMSCoordinates struct {
	Lat    DegMinSec
	LatRef string
	Lon    DegMinSec
	LonRef string
}

func toDecimal(c DMSCoordinates) DecimalCoordinates {
	lat := float64(c.Lat.Degrees) + float64(c.Lat.Minutes)/60 + c.Lat.Seconds/3600
	if c.LatRef != "N" {
		lat = -lat
	}
	lon := float64(c.Lon.Degrees) + float64(c.Lon.Minutes)/60 + c.Lon.Seconds/3600
	if c.LonRef != "E" {
		lon = -lon
	}
	return DecimalCoordinates{Lat: lat, Lon: lon}
}

func toDMS(c DecimalCoordinates) DMSCoordinates {
	latRef := "N"
	if c.Lat < 0 {
		latRef = "S"
	}
	lonRef := "E"
	if c.Lon < 0 {
		lonRef = "W"
	}

	return DMSCoordinates{
		Lat:    axisToDMS(math.Abs(c.Lat)),
		LatRef: latRef,
		Lon:    axisToDMS(math.Abs(c.Lon)),
		LonRef: lonRef,
	}
}

func axisToDMS(abs float64) DegMinSec {
	deg := int(abs)
	min := int((abs - float64(deg)) * 60)
	sec := ((abs-float64(deg))*60 - float64(min)) * 60
	return DegMinSec{Degrees: deg, Minutes: min, Seconds: sec}
}
