package ot

import (
	"fmt"
	"sort"
)

// From the OpenType specification:
// "This table defines the mapping of character codes to a default glyph index.
// Different subtables may be defined that each contain mappings for different
// character encoding schemes."
//
// We select exactly one subtable, the 'best' one, following the order used by
// most font tools: full Unicode before BMP-only, Windows before Unicode platform
// for identical coverage, and Macintosh Roman as a last resort.

type cmapEncoding struct {
	platform PlatformID
	encoding uint16
}

var cmapPriority = []cmapEncoding{
	{PlatformWindows, 10}, // Unicode full repertoire
	{PlatformUnicode, 6},  // Unicode full repertoire, format 13
	{PlatformUnicode, 4},  // Unicode 2.0 and later, full repertoire
	{PlatformWindows, 1},  // Unicode BMP
	{PlatformUnicode, 3},  // Unicode 2.0 and later, BMP only
	{PlatformUnicode, 2},  // ISO/IEC 10646
	{PlatformUnicode, 1},  // Unicode 1.1
	{PlatformUnicode, 0},  // Unicode 1.0
	{PlatformMacintosh, 0},
}

// CMapTable is the selected character-to-glyph mapping of a face.
type CMapTable struct {
	platform PlatformID
	encoding uint16
	format   uint16
	index    func(rune) GlyphIndex
}

// Lookup returns the glyph index for a code point, or 0 ('.notdef') if the
// code point is not mapped.
func (t *CMapTable) Lookup(r rune) GlyphIndex {
	if t == nil || t.index == nil || r < 0 {
		return 0
	}
	return t.index(r)
}

// Contains reports whether the code point is mapped to a glyph other than '.notdef'.
func (t *CMapTable) Contains(r rune) bool {
	return t.Lookup(r) != 0
}

// Subtable returns platform, encoding and format of the selected subtable.
func (t *CMapTable) Subtable() (PlatformID, uint16, uint16) {
	return t.platform, t.encoding, t.format
}

func parseCMap(b binarySegm) (*CMapTable, error) {
	tag := T("cmap")
	numTables, err := b.u16(2)
	if err != nil {
		return nil, &FormatError{Table: tag, Section: "Header", Issue: "cmap header truncated"}
	}
	type record struct {
		enc    cmapEncoding
		offset uint32
	}
	records := make([]record, 0, numTables)
	for i := range int(numTables) {
		rec, err := b.view(4+8*i, 8)
		if err != nil {
			return nil, &FormatError{Table: tag, Section: "EncodingRecords", Issue: "encoding records truncated"}
		}
		records = append(records, record{
			enc:    cmapEncoding{PlatformID(u16(rec[0:2])), u16(rec[2:4])},
			offset: u32(rec[4:8]),
		})
	}
	for _, want := range cmapPriority {
		for _, rec := range records {
			if rec.enc != want {
				continue
			}
			t, err := parseCMapSubtable(b, rec.offset)
			if err != nil {
				tracer().Debugf("cmap subtable (%d,%d): %v", want.platform, want.encoding, err)
				continue
			}
			t.platform, t.encoding = want.platform, want.encoding
			return t, nil
		}
	}
	return nil, &FormatError{Table: tag, Section: "EncodingRecords", Issue: "no supported subtable"}
}

func parseCMapSubtable(b binarySegm, offset uint32) (*CMapTable, error) {
	if int(offset) >= len(b) {
		return nil, errFontFormat("Subtable", "subtable offset out of bounds", offset)
	}
	sub := b[offset:]
	format, err := sub.u16(0)
	if err != nil {
		return nil, errFontFormat("Subtable", "subtable truncated", offset)
	}
	var index func(rune) GlyphIndex
	switch format {
	case 0:
		index, err = cmapFormat0(sub)
	case 4:
		index, err = cmapFormat4(sub)
	case 6:
		index, err = cmapFormat6(sub)
	case 12:
		index, err = cmapFormat12(sub)
	default:
		return nil, errFontFormat("Subtable", fmt.Sprintf("cmap format %d not supported", format), offset)
	}
	if err != nil {
		return nil, err
	}
	return &CMapTable{format: format, index: index}, nil
}

// Format 0: Byte encoding table.
func cmapFormat0(sub binarySegm) (func(rune) GlyphIndex, error) {
	glyphs, err := sub.view(6, 256)
	if err != nil {
		return nil, errFontFormat("Format0", "glyph array truncated", 0)
	}
	return func(r rune) GlyphIndex {
		if r > 0xff {
			return 0
		}
		return GlyphIndex(glyphs[r])
	}, nil
}

// Format 4: Segment mapping to delta values.
// "This is the standard character-to-glyph-index mapping subtable for fonts
// that support only Unicode Basic Multilingual Plane characters."
func cmapFormat4(sub binarySegm) (func(rune) GlyphIndex, error) {
	segCountX2, err := sub.u16(6)
	if err != nil || segCountX2 == 0 || segCountX2&1 != 0 {
		return nil, errFontFormat("Format4", "invalid segment count", 6)
	}
	n := int(segCountX2)
	// endCode[n], reservedPad, startCode[n], idDelta[n], idRangeOffset[n]
	const endsAt = 14
	startsAt := endsAt + n + 2
	deltasAt := startsAt + n
	rangeOffsAt := deltasAt + n
	if _, err := sub.view(endsAt, rangeOffsAt+n-endsAt); err != nil {
		return nil, errFontFormat("Format4", "segment arrays truncated", endsAt)
	}
	segCount := n / 2
	return func(r rune) GlyphIndex {
		if r > 0xffff {
			return 0
		}
		c := uint16(r)
		// endCode is sorted ascending: find the first segment with endCode >= c
		i := sort.Search(segCount, func(i int) bool {
			return sub.U16(endsAt+2*i) >= c
		})
		if i >= segCount {
			return 0
		}
		start := sub.U16(startsAt + 2*i)
		if c < start {
			return 0
		}
		delta := sub.U16(deltasAt + 2*i)
		rangeOff := sub.U16(rangeOffsAt + 2*i)
		if rangeOff == 0 {
			return GlyphIndex(c + delta) // modulo 65536
		}
		// "glyphId = *(idRangeOffset[i]/2 + (c - startCode[i]) + &idRangeOffset[i])"
		at := rangeOffsAt + 2*i + int(rangeOff) + 2*int(c-start)
		g, err := sub.u16(at)
		if err != nil || g == 0 {
			return 0
		}
		return GlyphIndex(g + delta)
	}, nil
}

// Format 6: Trimmed table mapping.
func cmapFormat6(sub binarySegm) (func(rune) GlyphIndex, error) {
	first, err1 := sub.u16(6)
	count, err2 := sub.u16(8)
	if err1 != nil || err2 != nil {
		return nil, errFontFormat("Format6", "header truncated", 6)
	}
	if count > 0 {
		if _, err := sub.view(10, 2*int(count)); err != nil {
			return nil, errFontFormat("Format6", "glyph array truncated", 10)
		}
	}
	return func(r rune) GlyphIndex {
		if r < rune(first) || r >= rune(first)+rune(count) {
			return 0
		}
		return GlyphIndex(sub.U16(10 + 2*int(r-rune(first))))
	}, nil
}

// Format 12: Segmented coverage.
func cmapFormat12(sub binarySegm) (func(rune) GlyphIndex, error) {
	numGroups, err := sub.u32(12)
	if err != nil {
		return nil, errFontFormat("Format12", "header truncated", 12)
	}
	size, err := checkedMulInt(12, int(numGroups))
	if err != nil {
		return nil, errFontFormat("Format12", err.Error(), 12)
	}
	if numGroups > 0 {
		if _, err := sub.view(16, size); err != nil {
			return nil, errFontFormat("Format12", "groups truncated", 16)
		}
	}
	groups := int(numGroups)
	return func(r rune) GlyphIndex {
		c := uint32(r)
		// groups are sorted by startCharCode
		i := sort.Search(groups, func(i int) bool {
			return sub.U32(16+12*i+4) >= c // endCharCode
		})
		if i >= groups {
			return 0
		}
		start := sub.U32(16 + 12*i)
		if c < start {
			return 0
		}
		glyph := uint64(sub.U32(16+12*i+8)) + uint64(c-start)
		if glyph > 0xFFFF {
			return 0
		}
		return GlyphIndex(glyph)
	}, nil
}
