package otquery

import (
	"encoding/binary"
	"time"

	"github.com/npillmayer/fontmeta/ot"
)

// FaceInfo is a typed query view over tables 'head' and 'maxp', plus the
// container flavor. It is used for diagnostics of single faces.
// Values are decoded directly from the raw table bytes.
type FaceInfo struct {
	FontType     string // "TrueType", "CFF" or "unknown"
	MajorVersion uint16
	MinorVersion uint16
	FontRevision float64 // 16.16 fixed
	UnitsPerEm   uint16
	Created      time.Time
	Modified     time.Time
	NumGlyphs    int // -1 if table 'maxp' is missing
}

const (
	headTableSize = 54
	maxpMinSize   = 6
)

// head uses LONGDATETIME: seconds since 12:00 midnight, January 1, 1904, UTC.
const longDateTimeEpoch = -2082844800 // as a Unix timestamp

// Info decodes tables 'head' and 'maxp' of a face.
// Returns (info, true) on success, or (partial info, false) if 'head' is
// missing or too short.
func Info(face *ot.FaceTables) (FaceInfo, bool) {
	info := FaceInfo{FontType: FontType(face), NumGlyphs: -1}
	if face == nil {
		return info, false
	}
	if b, err := face.Table(ot.T("maxp")); err == nil && len(b) >= maxpMinSize {
		info.NumGlyphs = int(binary.BigEndian.Uint16(b[4:6]))
	}
	b, err := face.Table(ot.T("head"))
	if err != nil || len(b) < headTableSize {
		return info, false
	}
	info.MajorVersion = binary.BigEndian.Uint16(b[0:2])
	info.MinorVersion = binary.BigEndian.Uint16(b[2:4])
	info.FontRevision = float64(int32(binary.BigEndian.Uint32(b[4:8]))) / 65536.0
	info.UnitsPerEm = binary.BigEndian.Uint16(b[18:20])
	info.Created = longDateTime(b[20:28])
	info.Modified = longDateTime(b[28:36])
	return info, true
}

func longDateTime(b []byte) time.Time {
	secs := int64(binary.BigEndian.Uint64(b))
	return time.Unix(secs+longDateTimeEpoch, 0).UTC()
}

// FontType returns a label for the outline format of a face.
func FontType(face *ot.FaceTables) string {
	if face == nil {
		return "unknown"
	}
	switch face.Flavor {
	case ot.FlavorTrueType, ot.FlavorAppleTrue:
		return "TrueType"
	case ot.FlavorCFF:
		return "CFF"
	case ot.FlavorPostScript:
		return "PostScript"
	}
	return "unknown"
}
