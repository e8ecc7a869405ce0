package otquery

import "github.com/npillmayer/fontmeta/ot"

// Style bits, by table of origin.
const (
	fsSelectionItalic  = 1 << 0 // OS/2.fsSelection bit 0: ITALIC
	fsSelectionBold    = 1 << 5 // OS/2.fsSelection bit 5: BOLD
	fsSelectionOblique = 1 << 9 // OS/2.fsSelection bit 9: OBLIQUE (OS/2 version 4)
	macStyleBold       = 1 << 0 // head.macStyle bit 0
	macStyleItalic     = 1 << 1 // head.macStyle bit 1
)

// Defaults for faces without an OS/2 table or with zero entries.
const (
	DefaultWeight = WeightRegular
	DefaultWidth  = 5 // Normal
)

// Style is the normalized style classification of a face.
type Style struct {
	Weight     int    // 100…900
	Width      int    // 1…9
	WeightName string // name of the nearest weight stop
	Bold       bool
	Italic     bool
	Oblique    bool
	Monospace  bool
}

// Classify derives a face's style from tables 'OS/2', 'head' and 'post'.
// Every table is optional:
//
//   - weight is OS/2.usWeightClass, 400 if absent or zero, clamped to [100,900]
//   - width is OS/2.usWidthClass, 5 if absent or zero, capped at 9
//   - bold is OS/2 fsSelection bit 5 or head.macStyle bit 0
//   - italic is OS/2 fsSelection bit 0 or head.macStyle bit 1
//   - oblique is OS/2 fsSelection bit 9 only
//   - monospace is post.isFixedPitch ≠ 0
func Classify(os2 ot.Option[*ot.OS2Table], head ot.Option[*ot.HeadTable], post ot.Option[*ot.PostTable]) Style {
	style := Style{Weight: DefaultWeight, Width: DefaultWidth}
	if t, ok := os2.Unwrap(); ok && t != nil {
		if t.WeightClass > 0 {
			style.Weight = min(max(int(t.WeightClass), WeightThin), WeightBlack)
		}
		if t.WidthClass > 0 {
			style.Width = min(int(t.WidthClass), len(widthNames))
		}
		style.Italic = t.FsSelection&fsSelectionItalic != 0
		style.Bold = t.FsSelection&fsSelectionBold != 0
		style.Oblique = t.FsSelection&fsSelectionOblique != 0
	}
	if t, ok := head.Unwrap(); ok && t != nil {
		style.Bold = style.Bold || t.MacStyle&macStyleBold != 0
		style.Italic = style.Italic || t.MacStyle&macStyleItalic != 0
	}
	if t, ok := post.Unwrap(); ok && t != nil {
		style.Monospace = t.IsFixedPitch != 0
	}
	style.WeightName = WeightClassName(style.Weight)
	return style
}

// ClassifyFace is a shortcut for Classify with the tables of face.
func ClassifyFace(face *ot.FaceTables) Style {
	return Classify(face.OS2(), face.Head(), face.Post())
}
