package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
	"github.com/evanoberholster/imagemeta"
	"github.com/rs/zerolog/log"
)

// exifDateLayout is the textual date form EXIF uses for DateTime tags.
const exifDateLayout = "2006:01:02 15:04:05"

// exifContainer is an opened handle over a JPEG's segment list. It is opened
// at most once per file, read during extraction, mutated by the writer and
// then serialized back to bytes.
type exifContainer struct {
	segments *jpegstructure.SegmentList
}

// openContainer parses data as a JPEG segment list. Any parse failure means
// the file has no usable metadata container and falls back to pass-through;
// the parser's internal panics are treated the same way.
func openContainer(data []byte) (c *exifContainer) {
	defer func() {
		if r := recover(); r != nil {
			c = nil
		}
	}()

	parser := jpegstructure.NewJpegMediaParser()
	intfc, err := parser.ParseBytes(data)
	if err != nil {
		return nil
	}
	return &exifContainer{segments: intfc.(*jpegstructure.SegmentList)}
}

func (c *exifContainer) readDate() (time.Time, bool) {
	rootIfd, _, err := c.segments.Exif()
	if err != nil {
		return time.Time{}, false
	}

	entries, err := rootIfd.FindTagWithName("DateTime")
	if err != nil || len(entries) == 0 {
		return time.Time{}, false
	}

	value, err := entries[0].Value()
	if err != nil {
		return time.Time{}, false
	}
	text, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}

	return parseExifDate(text)
}

func (c *exifContainer) readLocation() (DMSCoordinates, bool) {
	rootIfd, _, err := c.segments.Exif()
	if err != nil {
		return DMSCoordinates{}, false
	}

	gpsIfd, err := rootIfd.ChildWithIfdPath(exifcommon.IfdGpsInfoStandardIfdIdentity)
	if err != nil {
		return DMSCoordinates{}, false
	}

	// GpsInfo requires the full lat/lon tuple; partial GPS data is treated
	// as no data rather than an error.
	info, err := gpsIfd.GpsInfo()
	if err != nil {
		return DMSCoordinates{}, false
	}

	return DMSCoordinates{
		Lat:    gpsDegreesToDMS(info.Latitude),
		LatRef: string(info.Latitude.Orientation),
		Lon:    gpsDegreesToDMS(info.Longitude),
		LonRef: string(info.Longitude.Orientation),
	}, true
}

func gpsDegreesToDMS(d exif.GpsDegrees) DegMinSec {
	return DegMinSec{
		Degrees: int(d.Degrees),
		Minutes: int(d.Minutes),
		Seconds: d.Seconds,
	}
}

// builder returns an IFD builder seeded from the container's current EXIF
// block, creating one from scratch when the JPEG carries none.
func (c *exifContainer) builder() (*exif.IfdBuilder, error) {
	rootIb, err := c.segments.ConstructExifBuilder()
	if err == nil {
		return rootIb, nil
	}

	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, fmt.Errorf("creating IFD mapping: %w", err)
	}
	ti := exif.NewTagIndex()
	if err := exif.LoadStandardTags(ti); err != nil {
		return nil, fmt.Errorf("loading standard tags: %w", err)
	}

	return exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity,
		exifcommon.EncodeDefaultByteOrder), nil
}

func (c *exifContainer) applyDate(rootIb *exif.IfdBuilder, date time.Time) error {
	ifdIb, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD0")
	if err != nil {
		return fmt.Errorf("getting IFD0 builder: %w", err)
	}
	if err := ifdIb.SetStandardWithName("DateTime", date.Format(exifDateLayout)); err != nil {
		return fmt.Errorf("setting DateTime: %w", err)
	}
	return nil
}

func (c *exifContainer) applyLocation(rootIb *exif.IfdBuilder, loc DMSCoordinates) error {
	gpsIb, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD/GPSInfo")
	if err != nil {
		return fmt.Errorf("getting GPS builder: %w", err)
	}

	if err := gpsIb.SetStandardWithName("GPSVersionID", []byte{2, 3, 0, 0}); err != nil {
		return fmt.Errorf("setting GPSVersionID: %w", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLatitudeRef", loc.LatRef); err != nil {
		return fmt.Errorf("setting GPSLatitudeRef: %w", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLatitude", dmsToRationals(loc.Lat)); err != nil {
		return fmt.Errorf("setting GPSLatitude: %w", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLongitudeRef", loc.LonRef); err != nil {
		return fmt.Errorf("setting GPSLongitudeRef: %w", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLongitude", dmsToRationals(loc.Lon)); err != nil {
		return fmt.Errorf("setting GPSLongitude: %w", err)
	}
	return nil
}

// dmsToRationals encodes one axis as the EXIF rational triplet, e.g.
// 40° 44' 55.04" -> [40/1, 44/1, 550404/10000].
func dmsToRationals(d DegMinSec) []exifcommon.Rational {
	return []exifcommon.Rational{
		{Numerator: uint32(d.Degrees), Denominator: 1},
		{Numerator: uint32(d.Minutes), Denominator: 1},
		{Numerator: uint32(math.Round(d.Seconds * 10000)), Denominator: 10000},
	}
}

func (c *exifContainer) commit(rootIb *exif.IfdBuilder) error {
	return c.segments.SetExif(rootIb)
}

func (c *exifContainer) bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := c.segments.Write(buf); err != nil {
		return nil, fmt.Errorf("serializing JPEG segments: %w", err)
	}
	return buf.Bytes(), nil
}

// parseExifDate parses an EXIF DateTime value, first as an integer
// millisecond epoch timestamp, falling back to the standard textual form.
func parseExifDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)

	if millis, err := strconv.ParseInt(text, 10, 64); err == nil {
		return time.UnixMilli(millis), true
	}

	date, err := time.ParseInLocation(exifDateLayout, text, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// exifExtractor reads date and location from a file's embedded metadata.
// JPEG files get a full read/write container; other known image types are
// read through imagemeta and remain pass-through for writing; video files
// get their capture date from the ISO-BMFF movie header.
type exifExtractor struct{}

func (e *exifExtractor) extract(path string) (foundMetadata, error) {
	result, _, err := e.extractContainer(path)
	return result, err
}

func (e *exifExtractor) extractContainer(path string) (foundMetadata, *exifContainer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Unreadable during extraction is "no data"; the writer will
		// surface the error if the file stays unreadable.
		log.Debug().Str("file", path).Err(err).Msg("cannot read for metadata extraction")
		return foundMetadata{}, nil, nil
	}

	if container := openContainer(data); container != nil {
		var result foundMetadata
		result.Date, result.HasDate = container.readDate()
		result.Location, result.HasLocation = container.readLocation()
		return result, container, nil
	}

	category, fileType := mediaTypeForName(path)
	switch category {
	case processedPicture, rawPicture:
		return readImageMetadata(path), nil, nil
	case video:
		date, err := extractVideoCreationTime(path, fileType)
		if err != nil {
			log.Debug().Str("file", path).Err(err).Msg("no video creation time")
			return foundMetadata{}, nil, nil
		}
		return foundMetadata{Date: date, HasDate: true}, nil, nil
	}

	return foundMetadata{}, nil, nil
}

// readImageMetadata extracts date and GPS from non-JPEG image formats. The
// decoder is panic-guarded; malformed files count as "no data".
func readImageMetadata(path string) (result foundMetadata) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug().Str("file", path).Interface("panic", r).Msg("metadata decode panicked")
			result = foundMetadata{}
		}
	}()

	file, err := os.Open(path)
	if err != nil {
		return foundMetadata{}
	}
	defer file.Close()

	meta, err := imagemeta.Decode(file)
	if err != nil {
		return foundMetadata{}
	}

	for _, ts := range []time.Time{meta.DateTimeOriginal(), meta.CreateDate(), meta.ModifyDate()} {
		if !ts.IsZero() {
			result.Date = ts
			result.HasDate = true
			break
		}
	}

	gps := meta.GPS
	if gps.Latitude() != 0 || gps.Longitude() != 0 {
		result.Location = toDMS(DecimalCoordinates{Lat: gps.Latitude(), Lon: gps.Longitude()})
		result.HasLocation = true
	}

	return result
}
