package otquery

import (
	"iter"

	"github.com/npillmayer/fontmeta/ot"
	"golang.org/x/image/font/sfnt"
)

// NameSlot selects a name record ID of table 'name'.
// See https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
type NameSlot sfnt.NameID

// Name slots used for font metadata.
const (
	NameFamily               = NameSlot(sfnt.NameIDFamily)               // 1
	NameSubfamily            = NameSlot(sfnt.NameIDSubfamily)            // 2
	NameFull                 = NameSlot(sfnt.NameIDFull)                 // 4
	NameVersion              = NameSlot(sfnt.NameIDVersion)              // 5
	NamePostScript           = NameSlot(sfnt.NameIDPostScript)           // 6
	NameTypographicFamily    = NameSlot(sfnt.NameIDTypographicFamily)    // 16
	NameTypographicSubfamily = NameSlot(sfnt.NameIDTypographicSubfamily) // 17
)

func (slot NameSlot) String() string {
	switch slot {
	case NameFamily:
		return "family"
	case NameSubfamily:
		return "subfamily"
	case NameFull:
		return "full name"
	case NameVersion:
		return "version"
	case NamePostScript:
		return "PostScript name"
	case NameTypographicFamily:
		return "typographic family"
	case NameTypographicSubfamily:
		return "typographic subfamily"
	}
	return "name"
}

// namePriority lists the record matchers for name resolution, in order.
// The first record (in table order) matching the earliest matcher wins.
var namePriority = []func(ot.NameRecord) bool{
	func(r ot.NameRecord) bool { // Windows, Unicode BMP, en-US
		return r.PlatformID == ot.PlatformWindows && r.EncodingID == ot.EncodingWindowsBMP &&
			r.LanguageID == ot.LanguageWindowsEnglish
	},
	func(r ot.NameRecord) bool { // Macintosh, Roman, English
		return r.PlatformID == ot.PlatformMacintosh && r.EncodingID == ot.EncodingMacRoman &&
			r.LanguageID == ot.LanguageMacEnglish
	},
	func(r ot.NameRecord) bool { // Unicode, any encoding or language
		return r.PlatformID == ot.PlatformUnicode
	},
	func(ot.NameRecord) bool { return true },
}

// Resolve returns the best human-readable string for a name slot.
//
// Preference is given to US-English Windows records, then to English
// Macintosh Roman records, then to any Unicode-platform record and finally to
// any record at all. Records which fail to decode are skipped; the first
// decodable record wins, even if it is empty. If the table is absent or no
// record qualifies, Resolve returns "".
func Resolve(names ot.Option[*ot.NameTable], slot NameSlot) string {
	table, ok := names.Unwrap()
	if !ok || table == nil {
		return ""
	}
	records := table.Records()
	for _, matches := range namePriority {
		for _, rec := range records {
			if rec.NameID != uint16(slot) || !matches(rec) {
				continue
			}
			s, err := rec.Decode()
			if err != nil {
				tracer().Debugf("skipping %s record: %v", slot, err)
				continue
			}
			return s
		}
	}
	return ""
}

// NamesRange yields decoded `(nameID, value)` pairs from a face's table
// 'name', in table order.
//
// Records with unsupported encodings or malformed strings are skipped, as
// are empty strings.
func NamesRange(face *ot.FaceTables) iter.Seq2[sfnt.NameID, string] {
	table, _ := face.Name().Unwrap()
	return func(yield func(sfnt.NameID, string) bool) {
		if table == nil {
			return
		}
		for _, rec := range table.Records() {
			s, err := rec.Decode()
			if err != nil || s == "" {
				continue
			}
			if !yield(sfnt.NameID(rec.NameID), s) {
				return
			}
		}
	}
}
