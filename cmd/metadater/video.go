package main

import (
	"fmt"
	"os"
	"time"

	mp4 "github.com/abema/go-mp4"
)

// appleEpochOffset is the number of seconds between the ISO-BMFF epoch
// (1904-01-01) and the Unix epoch.
const appleEpochOffset = 2082844800

// isoBMFFTypes are the video container formats carrying an mvhd movie
// header. Other video types have no extractable creation time here.
var isoBMFFTypes = map[FileType]bool{
	MP4: true,
	MOV: true,
	M4V: true,
}

// extractVideoCreationTime reads the capture date from the moov/mvhd box of
// an ISO-BMFF container. A zero creation time means the recorder never set
// one and is reported as an error.
func extractVideoCreationTime(path string, fileType FileType) (time.Time, error) {
	if !isoBMFFTypes[fileType] {
		return time.Time{}, fmt.Errorf("no creation time support for file type %s", fileType)
	}

	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	boxes, err := mp4.ExtractBoxWithPayload(file, nil,
		mp4.BoxPath{mp4.BoxTypeMoov(), mp4.BoxTypeMvhd()})
	if err != nil {
		return time.Time{}, fmt.Errorf("reading mvhd box from %s: %w", path, err)
	}
	if len(boxes) == 0 {
		return time.Time{}, fmt.Errorf("no mvhd box in %s", path)
	}

	mvhd, ok := boxes[0].Payload.(*mp4.Mvhd)
	if !ok {
		return time.Time{}, fmt.Errorf("unexpected mvhd payload in %s", path)
	}

	var creation uint64
	if mvhd.Version == 0 {
		creation = uint64(mvhd.CreationTimeV0)
	} else {
		creation = mvhd.CreationTimeV1
	}

	if creation == 0 {
		return time.Time{}, fmt.Errorf("zero creation time in %s", path)
	}

	return time.Unix(int64(creation)-appleEpochOffset, 0).UTC(), nil
}
