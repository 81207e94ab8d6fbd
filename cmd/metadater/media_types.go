package main

import (
	"path/filepath"
	"strings"
)

type FileType string

const (
	// Processed picture types
	JPEG FileType = "jpeg"
	PNG  FileType = "png"
	GIF  FileType = "gif"
	BMP  FileType = "bmp"
	TIFF FileType = "tiff"
	WEBP FileType = "webp"
	HEIF FileType = "heif"

	// Raw picture types
	RAW FileType = "raw"

	// Video types
	MP4 FileType = "mp4"
	MOV FileType = "mov"
	M4V FileType = "m4v"
	AVI FileType = "avi"
	MKV FileType = "mkv"
)

type MediaCategory string

const (
	processedPicture MediaCategory = "processed_picture"
	rawPicture       MediaCategory = "raw_picture"
	video            MediaCategory = "video"
)

var fileExtensionToFileType = map[string]FileType{
	"jpg": JPEG, "jpeg": JPEG, "jpe": JPEG, "jif": JPEG, "jfif": JPEG,
	"png":  PNG,
	"gif":  GIF,
	"bmp":  BMP,
	"tiff": TIFF, "tif": TIFF,
	"webp": WEBP,
	"heif": HEIF, "heic": HEIF, "hif": HEIF,

	"arw": RAW, "cr2": RAW, "cr3": RAW, "dng": RAW, "nef": RAW,
	"orf": RAW, "pef": RAW, "raf": RAW, "raw": RAW, "rw2": RAW, "sr2": RAW,

	"mp4": MP4,
	"mov": MOV,
	"m4v": M4V,
	"avi": AVI,
	"mkv": MKV,
}

var fileTypeToMediaCategory = map[FileType]MediaCategory{
	JPEG: processedPicture,
	PNG:  processedPicture,
	GIF:  processedPicture,
	BMP:  processedPicture,
	TIFF: processedPicture,
	WEBP: processedPicture,
	HEIF: processedPicture,

	RAW: rawPicture,

	MP4: video,
	MOV: video,
	M4V: video,
	AVI: video,
	MKV: video,
}

// mediaTypeForName classifies a file by extension. Unknown extensions yield
// empty values; such files still flow through the pipeline as pass-through
// copies.
func mediaTypeForName(name string) (MediaCategory, FileType) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return "", ""
	}

	fileType, ok := fileExtensionToFileType[ext[1:]]
	if !ok {
		return "", ""
	}

	return fileTypeToMediaCategory[fileType], fileType
}
