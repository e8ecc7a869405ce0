package otquery

import (
	"strings"

	"golang.org/x/text/cases"
)

// Standard stops of OS/2.usWeightClass.
const (
	WeightThin       = 100
	WeightExtraLight = 200
	WeightLight      = 300
	WeightRegular    = 400
	WeightMedium     = 500
	WeightSemiBold   = 600
	WeightBold       = 700
	WeightExtraBold  = 800
	WeightBlack      = 900
)

var weightNames = [...]string{
	"Thin", "ExtraLight", "Light", "Regular", "Medium",
	"SemiBold", "Bold", "ExtraBold", "Black",
}

var widthNames = [...]string{
	"UltraCondensed", "ExtraCondensed", "Condensed", "SemiCondensed", "Normal",
	"SemiExpanded", "Expanded", "ExtraExpanded", "UltraExpanded",
}

// WeightClassName returns the name of the standard weight stop nearest to w.
// Values exactly between two stops map to the lighter one. Non-positive values
// are "Unknown".
func WeightClassName(w int) string {
	if w <= 0 {
		return "Unknown"
	}
	best, dist := 0, -1
	for i := range weightNames {
		d := w - (i+1)*100
		if d < 0 {
			d = -d
		}
		if dist < 0 || d < dist { // strict: ties keep the lower stop
			best, dist = i, d
		}
	}
	return weightNames[best]
}

// WidthClassName returns the name of an OS/2.usWidthClass value, or "Unknown"
// for values outside of 1…9.
func WidthClassName(w int) string {
	if w < 1 || w > len(widthNames) {
		return "Unknown"
	}
	return widthNames[w-1]
}

// weightAliases maps (case-folded, without separators) weight names to stops.
var weightAliases = map[string]int{
	"thin": WeightThin, "hairline": WeightThin,
	"extralight": WeightExtraLight, "ultralight": WeightExtraLight,
	"light":   WeightLight,
	"regular": WeightRegular, "normal": WeightRegular, "book": WeightRegular, "roman": WeightRegular,
	"medium":   WeightMedium,
	"semibold": WeightSemiBold, "demibold": WeightSemiBold, "demi": WeightSemiBold,
	"bold":      WeightBold,
	"extrabold": WeightExtraBold, "ultrabold": WeightExtraBold,
	"black": WeightBlack, "heavy": WeightBlack,
}

// ParseWeightName maps a weight name to its standard stop. Matching ignores
// case, blanks, hyphens and underscores, so "Semi Bold", "semi-bold" and
// "SemiBold" are equivalent. Common aliases like "Book" or "Heavy" are
// recognized.
func ParseWeightName(s string) (int, bool) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, cases.Fold().String(s))
	w, ok := weightAliases[key]
	return w, ok
}
