/*
Package fonttest assembles small synthetic OpenType binaries for tests.

No font files ship with this module. Tests build the tables they need with
the helpers of this package and lay them out either as a single-face font
or as a collection:

	face := fonttest.NewFace().
		Table("name", fonttest.Name(fonttest.WinName(1, "Test Sans"))).
		Table("OS/2", fonttest.OS2(fonttest.OS2Fields{Version: 4, Weight: 700}))
	data := face.Bytes()

Checksums are not computed.
*/
package fonttest

import (
	"encoding/binary"
	"math"
	"sort"
	"unicode/utf16"
)

// Flavors ("sfnt version") of single faces.
const (
	TrueType uint32 = 0x00010000
	CFF      uint32 = 0x4f54544f // 'OTTO'
)

// Face is a builder for one face's table directory and tables.
type Face struct {
	flavor    uint32
	tables    []table
	keepOrder bool
}

type table struct {
	tag  string
	data []byte
}

// NewFace creates a builder for a TrueType-flavored face.
func NewFace() *Face {
	return &Face{flavor: TrueType}
}

// Flavor sets the sfnt version of the face.
func (f *Face) Flavor(flavor uint32) *Face {
	f.flavor = flavor
	return f
}

// Table adds a table. Tags shorter than 4 letters are padded with spaces.
func (f *Face) Table(tag string, data []byte) *Face {
	f.tables = append(f.tables, table{tag: (tag + "    ")[:4], data: data})
	return f
}

// Unsorted keeps the table records in insertion order instead of sorting
// them by tag.
func (f *Face) Unsorted() *Face {
	f.keepOrder = true
	return f
}

// Bytes lays out the face as a single-face font file.
func (f *Face) Bytes() []byte {
	return f.layout(0)
}

// layout returns the directory and tables of the face, with table offsets
// computed relative to the start of the file, given that the directory will
// be placed at base.
func (f *Face) layout(base int) []byte {
	tables := append([]table(nil), f.tables...)
	if !f.keepOrder {
		sort.SliceStable(tables, func(i, j int) bool { return tables[i].tag < tables[j].tag })
	}
	n := len(tables)
	dirSize := pad4(12 + 16*n)
	out := make([]byte, dirSize)
	putU32(out, 0, f.flavor)
	putU16(out, 4, uint16(n))
	sr, es := searchParams(n)
	putU16(out, 6, sr)
	putU16(out, 8, es)
	putU16(out, 10, uint16(16*n)-sr)
	for i, t := range tables {
		rec := 12 + 16*i
		copy(out[rec:rec+4], t.tag)
		putU32(out, rec+8, uint32(base+len(out)))
		putU32(out, rec+12, uint32(len(t.data)))
		out = append(out, t.data...)
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
	}
	return out
}

// Collection lays out faces as a font collection ('ttcf', version 1.0).
func Collection(faces ...*Face) []byte {
	out := make([]byte, 12+4*len(faces))
	copy(out[0:4], "ttcf")
	putU16(out, 4, 1)
	putU32(out, 8, uint32(len(faces)))
	for i, f := range faces {
		putU32(out, 12+4*i, uint32(len(out)))
		out = append(out, f.layout(len(out))...)
	}
	return out
}

// --- name ------------------------------------------------------------------

// NameEntry is a name record to be encoded into a 'name' table.
type NameEntry struct {
	Platform, Encoding, Language, NameID uint16
	Value                                []byte
}

// WinName creates an entry for platform 3, encoding 1, language en-US.
func WinName(nameID uint16, s string) NameEntry {
	return NameEntry{Platform: 3, Encoding: 1, Language: 0x0409, NameID: nameID, Value: UTF16(s)}
}

// MacName creates an entry for platform 1 (Mac Roman, English). s should be ASCII.
func MacName(nameID uint16, s string) NameEntry {
	return NameEntry{Platform: 1, Encoding: 0, Language: 0, NameID: nameID, Value: []byte(s)}
}

// UnicodeName creates an entry for platform 0, encoding 3.
func UnicodeName(nameID uint16, s string) NameEntry {
	return NameEntry{Platform: 0, Encoding: 3, Language: 0, NameID: nameID, Value: UTF16(s)}
}

// UTF16 encodes s as UTF-16BE.
func UTF16(s string) []byte {
	units := utf16.Encode([]rune(s))
	b := make([]byte, 2*len(units))
	for i, u := range units {
		putU16(b, 2*i, u)
	}
	return b
}

// Name encodes a 'name' table, format 0.
func Name(entries ...NameEntry) []byte {
	strOff := 6 + 12*len(entries)
	out := make([]byte, strOff)
	putU16(out, 2, uint16(len(entries)))
	putU16(out, 4, uint16(strOff))
	var strs []byte
	for i, e := range entries {
		rec := 6 + 12*i
		putU16(out, rec, e.Platform)
		putU16(out, rec+2, e.Encoding)
		putU16(out, rec+4, e.Language)
		putU16(out, rec+6, e.NameID)
		putU16(out, rec+8, uint16(len(e.Value)))
		putU16(out, rec+10, uint16(len(strs)))
		strs = append(strs, e.Value...)
	}
	return append(out, strs...)
}

// --- OS/2, head, post ------------------------------------------------------

// OS2Fields are the fields of an 'OS/2' table a test may set.
type OS2Fields struct {
	Version     uint16
	Weight      uint16
	Width       uint16
	FsSelection uint16
	CodePage1   uint32
	CodePage2   uint32
}

// OS2 encodes an 'OS/2' table: 78 bytes for version 0, 96 bytes otherwise.
func OS2(f OS2Fields) []byte {
	size := 96
	if f.Version == 0 {
		size = 78
	}
	b := make([]byte, size)
	putU16(b, 0, f.Version)
	putU16(b, 4, f.Weight)
	putU16(b, 6, f.Width)
	putU16(b, 62, f.FsSelection)
	if f.Version > 0 {
		putU32(b, 78, f.CodePage1)
		putU32(b, 82, f.CodePage2)
	}
	return b
}

// Head encodes a 54-byte 'head' table with 1000 units per em.
func Head(macStyle uint16) []byte {
	b := make([]byte, 54)
	putU32(b, 0, 0x00010000)
	putU32(b, 12, 0x5F0F3CF5)
	putU16(b, 18, 1000)
	putU16(b, 44, macStyle)
	return b
}

// Post encodes a version 3.0 'post' table.
func Post(fixedPitch bool, italicAngle float64) []byte {
	b := make([]byte, 32)
	putU32(b, 0, 0x00030000)
	putU32(b, 4, uint32(int32(math.Round(italicAngle*65536))))
	if fixedPitch {
		putU32(b, 12, 1)
	}
	return b
}

// --- cmap ------------------------------------------------------------------

// Range maps code points Lo…Hi to consecutive glyphs starting at Glyph.
// With Array set, a format 4 encoder uses the glyph index array instead of
// a delta.
type Range struct {
	Lo, Hi rune
	Glyph  uint16
	Array  bool
}

// Latin returns ranges covering A–Z and a–z.
func Latin() []Range {
	return []Range{{Lo: 'A', Hi: 'Z', Glyph: 1}, {Lo: 'a', Hi: 'z', Glyph: 27}}
}

// Subtable is a cmap encoding record together with its subtable.
type Subtable struct {
	Platform, Encoding uint16
	Data               []byte
}

// CMap encodes a 'cmap' table with the given subtables.
func CMap(subtables ...Subtable) []byte {
	out := make([]byte, 4+8*len(subtables))
	putU16(out, 2, uint16(len(subtables)))
	for i, s := range subtables {
		rec := 4 + 8*i
		putU16(out, rec, s.Platform)
		putU16(out, rec+2, s.Encoding)
		putU32(out, rec+4, uint32(len(out)))
		out = append(out, s.Data...)
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
	}
	return out
}

// CMapFormat0 encodes a byte encoding table.
func CMapFormat0(ranges ...Range) []byte {
	b := make([]byte, 262)
	putU16(b, 2, 262)
	for _, r := range ranges {
		for c := r.Lo; c <= r.Hi && c < 256; c++ {
			b[6+c] = byte(int(r.Glyph) + int(c-r.Lo))
		}
	}
	return b
}

// CMapFormat4 encodes a segment mapping. Ranges must be sorted and must not
// include U+FFFF.
func CMapFormat4(ranges ...Range) []byte {
	segs := append(append([]Range(nil), ranges...), Range{Lo: 0xffff, Hi: 0xffff})
	n := len(segs)
	arrayAt := 16 + 8*n
	var glyphs []uint16
	b := make([]byte, arrayAt)
	putU16(b, 0, 4)
	putU16(b, 6, uint16(2*n))
	sr, es := searchParams(n)
	putU16(b, 8, sr/8)
	putU16(b, 10, es)
	putU16(b, 12, uint16(2*n)-sr/8)
	for i, s := range segs {
		putU16(b, 14+2*i, uint16(s.Hi))
		putU16(b, 16+2*n+2*i, uint16(s.Lo))
		rangeOffAt := 16 + 6*n + 2*i
		switch {
		case s.Lo == 0xffff:
			putU16(b, 16+4*n+2*i, 1)
		case s.Array:
			putU16(b, rangeOffAt, uint16(arrayAt+2*len(glyphs)-rangeOffAt))
			for c := s.Lo; c <= s.Hi; c++ {
				glyphs = append(glyphs, s.Glyph+uint16(c-s.Lo))
			}
		default:
			putU16(b, 16+4*n+2*i, s.Glyph-uint16(s.Lo))
		}
	}
	for _, g := range glyphs {
		b = binary.BigEndian.AppendUint16(b, g)
	}
	putU16(b, 2, uint16(len(b)))
	return b
}

// CMapFormat6 encodes a trimmed table mapping.
func CMapFormat6(first uint16, glyphs ...uint16) []byte {
	b := make([]byte, 10, 10+2*len(glyphs))
	putU16(b, 0, 6)
	putU16(b, 6, first)
	putU16(b, 8, uint16(len(glyphs)))
	for _, g := range glyphs {
		b = binary.BigEndian.AppendUint16(b, g)
	}
	putU16(b, 2, uint16(len(b)))
	return b
}

// CMapFormat12 encodes a segmented coverage table. Ranges must be sorted.
func CMapFormat12(ranges ...Range) []byte {
	b := make([]byte, 16, 16+12*len(ranges))
	putU16(b, 0, 12)
	putU32(b, 12, uint32(len(ranges)))
	for _, r := range ranges {
		b = binary.BigEndian.AppendUint32(b, uint32(r.Lo))
		b = binary.BigEndian.AppendUint32(b, uint32(r.Hi))
		b = binary.BigEndian.AppendUint32(b, uint32(r.Glyph))
	}
	putU32(b, 4, uint32(len(b)))
	return b
}

// --- complete faces --------------------------------------------------------

// Spec describes a typical face. Empty names are omitted from the 'name'
// table; NoOS2, NoHead and NoPost omit the respective table.
type Spec struct {
	Family, Subfamily, FullName, PostScriptName string
	TypographicFamily                           string
	Weight, Width                               uint16
	FsSelection, MacStyle                       uint16
	CodePage1                                   uint32
	Monospace                                   bool
	Latin                                       bool // cmap covers A–Z and a–z
	NoOS2, NoHead, NoPost                       bool
}

// Face builds a face from s. Names are written as Windows en-US records.
func (s Spec) Face() *Face {
	var names []NameEntry
	for _, n := range []struct {
		id uint16
		v  string
	}{
		{1, s.Family}, {2, s.Subfamily}, {4, s.FullName},
		{6, s.PostScriptName}, {16, s.TypographicFamily},
	} {
		if n.v != "" {
			names = append(names, WinName(n.id, n.v))
		}
	}
	f := NewFace().Table("name", Name(names...))
	if !s.NoOS2 {
		f.Table("OS/2", OS2(OS2Fields{
			Version:     4,
			Weight:      s.Weight,
			Width:       s.Width,
			FsSelection: s.FsSelection,
			CodePage1:   s.CodePage1,
		}))
	}
	if !s.NoHead {
		f.Table("head", Head(s.MacStyle))
	}
	if !s.NoPost {
		f.Table("post", Post(s.Monospace, 0))
	}
	var ranges []Range
	if s.Latin {
		ranges = Latin()
	} else {
		ranges = []Range{{Lo: '0', Hi: '9', Glyph: 1}}
	}
	f.Table("cmap", CMap(Subtable{Platform: 3, Encoding: 1, Data: CMapFormat4(ranges...)}))
	return f
}

// Bytes is a shortcut for s.Face().Bytes().
func (s Spec) Bytes() []byte {
	return s.Face().Bytes()
}

// ---------------------------------------------------------------------------

func putU16(b []byte, at int, v uint16) {
	binary.BigEndian.PutUint16(b[at:], v)
}

func putU32(b []byte, at int, v uint32) {
	binary.BigEndian.PutUint32(b[at:], v)
}

func pad4(n int) int {
	return (n + 3) &^ 3
}

// searchParams returns searchRange (×16) and entrySelector for n entries.
func searchParams(n int) (uint16, uint16) {
	es, p := 0, 1
	for p*2 <= n {
		p *= 2
		es++
	}
	return uint16(16 * p), uint16(es)
}
