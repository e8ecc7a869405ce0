package ot

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by the OpenType specification as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("cmap"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// Container signatures ("sfnt version" resp. TTC tag).
const (
	FlavorTrueType   uint32 = 0x00010000
	FlavorCFF        uint32 = 0x4f54544f // 'OTTO'
	FlavorAppleTrue  uint32 = 0x74727565 // 'true'
	FlavorPostScript uint32 = 0x74797031 // 'typ1'
	SignatureTTC     uint32 = 0x74746366 // 'ttcf'
)

func isFaceFlavor(flavor uint32) bool {
	switch flavor {
	case FlavorTrueType, FlavorCFF, FlavorAppleTrue, FlavorPostScript:
		return true
	}
	return false
}

// --- Container -------------------------------------------------------------

// Container is an opened font file. It holds either a single face or a
// collection of faces. A Container needs ongoing access to the font's bytes;
// they are assumed immutable while the Container remains in use.
type Container struct {
	data       binarySegm
	collection bool
	dirs       []uint32 // offsets of the table directories, one per face
}

// FaceCount returns the number of faces in the container:
// 1 for simple font files, N for collections.
func (c *Container) FaceCount() int {
	if c == nil {
		return 0
	}
	return len(c.dirs)
}

// IsCollection reports whether the container has been opened from a
// collection header ('ttcf').
func (c *Container) IsCollection() bool {
	return c != nil && c.collection
}

// Face decodes the tables of face number i. Returns an *IndexError if i is
// not in [0, FaceCount), and a *FormatError if the face's table directory
// is corrupt.
func (c *Container) Face(i int) (*FaceTables, error) {
	if i < 0 || i >= c.FaceCount() {
		return nil, &IndexError{Index: i, Count: c.FaceCount()}
	}
	return parseFace(c.data, c.dirs[i], i)
}

// --- Face ------------------------------------------------------------------

// FaceTables gives typed access to the tables of one face. The typed views
// for 'name', 'OS/2', 'head' and 'post' are decoded when the face is created;
// any of them may be absent.
type FaceTables struct {
	Index  int    // index of this face within its container
	Flavor uint32 // sfnt version of the face
	tables map[Tag]binarySegm
	name   Option[*NameTable]
	os2    Option[*OS2Table]
	head   Option[*HeadTable]
	post   Option[*PostTable]
	wc     warningCollector
}

// Name returns the face's 'name' table, if present.
func (f *FaceTables) Name() Option[*NameTable] {
	if f == nil {
		return None[*NameTable]()
	}
	return f.name
}

// OS2 returns the face's 'OS/2' table, if present.
func (f *FaceTables) OS2() Option[*OS2Table] {
	if f == nil {
		return None[*OS2Table]()
	}
	return f.os2
}

// Head returns the face's 'head' table, if present.
func (f *FaceTables) Head() Option[*HeadTable] {
	if f == nil {
		return None[*HeadTable]()
	}
	return f.head
}

// Post returns the face's 'post' table, if present.
func (f *FaceTables) Post() Option[*PostTable] {
	if f == nil {
		return None[*PostTable]()
	}
	return f.post
}

// Table returns the raw bytes of the table for a given tag, or a
// *MissingTableError. The bytes should be treated as read-only by clients,
// as they are a view into the original data.
func (f *FaceTables) Table(tag Tag) ([]byte, error) {
	if f == nil {
		return nil, &MissingTableError{Table: tag}
	}
	b, ok := f.tables[tag]
	if !ok {
		return nil, &MissingTableError{Table: tag}
	}
	return b, nil
}

// TableTags returns a sorted list of tags, one for each table contained in the face.
func (f *FaceTables) TableTags() []Tag {
	if f == nil {
		return nil
	}
	var tags = make([]Tag, 0, len(f.tables))
	for tag := range f.tables {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// CMap decodes the face's best character-to-glyph mapping. The cmap is
// decoded on every call, as it is needed only occasionally.
func (f *FaceTables) CMap() (*CMapTable, error) {
	b, err := f.Table(T("cmap"))
	if err != nil {
		return nil, err
	}
	return parseCMap(b)
}

// Warnings returns all warnings encountered while decoding the face.
func (f *FaceTables) Warnings() []FontWarning {
	if f == nil || f.wc.warnings == nil {
		return []FontWarning{}
	}
	return f.wc.warnings
}

// --- Table 'name' ----------------------------------------------------------

// PlatformID identifies the platform of a name record or cmap subtable.
type PlatformID uint16

const (
	PlatformUnicode   PlatformID = 0
	PlatformMacintosh PlatformID = 1
	PlatformISO       PlatformID = 2 // deprecated
	PlatformWindows   PlatformID = 3
	PlatformCustom    PlatformID = 4
)

// Encoding and language IDs referenced by name resolution.
const (
	EncodingWindowsSymbol  uint16 = 0
	EncodingWindowsBMP     uint16 = 1
	EncodingWindowsFull    uint16 = 10
	EncodingMacRoman       uint16 = 0
	LanguageWindowsEnglish uint16 = 0x0409 // en-US
	LanguageMacEnglish     uint16 = 0
)

// NameRecord is one entry of table 'name'. Value holds the undecoded string
// bytes; use Decode to get a Go string.
type NameRecord struct {
	PlatformID PlatformID
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Value      []byte
}

// NameTable is the OpenType table holding localized human-readable strings
// (family, subfamily, full name, etc.), keyed by platform/encoding/language.
type NameTable struct {
	Format  uint16
	records []NameRecord
}

// Records returns the name records in table order.
func (t *NameTable) Records() []NameRecord {
	if t == nil {
		return nil
	}
	return t.records
}

// Decode converts the record's bytes to a string, following the record's
// platform and encoding. Unsupported encodings and malformed data result in
// a *DecodeError.
func (r NameRecord) Decode() (string, error) {
	var enc encoding.Encoding
	wide := false
	switch r.PlatformID {
	case PlatformUnicode:
		enc, wide = utf16BE, true
	case PlatformWindows:
		switch r.EncodingID {
		case EncodingWindowsSymbol, EncodingWindowsBMP, EncodingWindowsFull:
			enc, wide = utf16BE, true
		}
	case PlatformMacintosh:
		if r.EncodingID == EncodingMacRoman {
			enc = charmap.Macintosh
		}
	case PlatformISO:
		switch r.EncodingID {
		case 0: // 7-bit ASCII
			for _, c := range r.Value {
				if c >= 0x80 {
					return "", r.decodeError(fmt.Errorf("non-ASCII byte 0x%02x", c))
				}
			}
			return strings.TrimRight(string(r.Value), "\x00"), nil
		case 1:
			enc, wide = utf16BE, true
		case 2:
			enc = charmap.ISO8859_1
		}
	}
	if enc == nil {
		return "", r.decodeError(fmt.Errorf("unsupported encoding"))
	}
	if wide && len(r.Value)%2 != 0 {
		return "", r.decodeError(fmt.Errorf("odd length %d for UTF-16", len(r.Value)))
	}
	s, err := enc.NewDecoder().Bytes(r.Value)
	if err != nil {
		return "", r.decodeError(err)
	}
	return strings.TrimRight(string(s), "\x00"), nil
}

func (r NameRecord) decodeError(err error) *DecodeError {
	return &DecodeError{PlatformID: r.PlatformID, EncodingID: r.EncodingID, NameID: r.NameID, Err: err}
}

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// --- Table 'OS/2' ----------------------------------------------------------

// OS2Table contains the subset of table 'OS/2' needed to describe a face:
// weight, width, style selection bits and code page coverage.
// See https://learn.microsoft.com/en-us/typography/opentype/spec/os2
type OS2Table struct {
	Version        uint16
	WeightClass    uint16 // usWeightClass, 1…1000
	WidthClass     uint16 // usWidthClass, 1…9
	FsSelection    uint16
	HasCodePages   bool   // ulCodePageRange fields are present (version ≥ 1)
	CodePageRange1 uint32 // ulCodePageRange1, bit 0 = Latin 1 (cp1252)
	CodePageRange2 uint32
}

// --- Table 'head' ----------------------------------------------------------

// HeadTable gives global information about the font.
// Only a small subset of fields are made public by HeadTable.
type HeadTable struct {
	MagicNumber uint32 // 0x5F0F3CF5
	Flags       uint16
	UnitsPerEm  uint16 // values 16 … 16384 are valid
	MacStyle    uint16
}

// --- Table 'post' ----------------------------------------------------------

// PostTable contains the header fields of table 'post'.
// Glyph names are not decoded.
type PostTable struct {
	Version      uint32
	ItalicAngle  float64 // converted from 16.16 fixed
	IsFixedPitch uint32  // non-zero if the font is monospaced
}
