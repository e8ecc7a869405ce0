package otquery

import "github.com/npillmayer/fontmeta/ot"

// codePageLatin1 is OS/2.ulCodePageRange1 bit 0: Latin 1 (code page 1252).
const codePageLatin1 = 1 << 0

// basicLatin are the code point ranges a cmap has to cover completely for a
// face to be considered Latin.
var basicLatin = [][2]rune{
	{0x0041, 0x005A}, // A–Z
	{0x0061, 0x007A}, // a–z
}

// SupportsLatin reports whether a face supports the Latin script.
//
// A face qualifies if its OS/2 table declares Latin 1 code page coverage, or
// if its best cmap subtable maps every letter A–Z and a–z. A failing test
// (missing table, undecodable cmap) counts as not matching.
func SupportsLatin(face *ot.FaceTables) bool {
	if face == nil {
		return false
	}
	if os2, ok := face.OS2().Unwrap(); ok && os2.HasCodePages && os2.CodePageRange1&codePageLatin1 != 0 {
		return true
	}
	cmap, err := face.CMap()
	if err != nil {
		tracer().Debugf("face %d: no usable cmap: %v", face.Index, err)
		return false
	}
	return coversAll(cmap, basicLatin)
}

func coversAll(cmap *ot.CMapTable, ranges [][2]rune) bool {
	for _, rng := range ranges {
		for r := rng[0]; r <= rng[1]; r++ {
			if !cmap.Contains(r) {
				return false
			}
		}
	}
	return true
}
