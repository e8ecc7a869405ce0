package fontinfo

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/npillmayer/fontmeta/otquery"
)

// Record is the normalized description of one font face. Records are plain
// values; they are never mutated after extraction.
type Record struct {
	// identity
	Family         string `yaml:"family" json:"family"`
	Subfamily      string `yaml:"subfamily" json:"subfamily"`
	FullName       string `yaml:"full_name" json:"full_name"`
	PostScriptName string `yaml:"postscript_name" json:"postscript_name"`
	// location
	FilePath string `yaml:"file_path" json:"file_path"`
	Format   string `yaml:"format" json:"format"` // lowercase extension with leading dot
	// style flags
	IsBold      bool `yaml:"is_bold" json:"is_bold"`
	IsItalic    bool `yaml:"is_italic" json:"is_italic"`
	IsOblique   bool `yaml:"is_oblique" json:"is_oblique"`
	IsMonospace bool `yaml:"is_monospace" json:"is_monospace"`
	// metrics
	Weight     int    `yaml:"weight" json:"weight"` // 100…900
	WeightName string `yaml:"weight_name" json:"weight_name"`
	WidthClass int    `yaml:"width_class" json:"width_class"` // 1…9
	// script support
	SupportsLatin bool `yaml:"supports_latin" json:"supports_latin"`
	// name the discovery service knows the face by
	DiscoveryName string `yaml:"discovery_name" json:"discovery_name"`
}

// Key identifies a face for de-duplication.
type Key struct {
	FullName  string
	Subfamily string
	Weight    int
}

// Key returns the de-duplication key of r.
func (r Record) Key() Key {
	return Key{FullName: r.FullName, Subfamily: r.Subfamily, Weight: r.Weight}
}

// SameFace reports whether r and o describe the same face, i.e. have equal keys.
//
// Note that faces from different files with identical full name, subfamily
// and weight are considered the same.
func (r Record) SameFace(o Record) bool {
	return r.Key() == o.Key()
}

// WidthName returns the name of r's width class.
func (r Record) WidthName() string {
	return otquery.WidthClassName(r.WidthClass)
}

// String returns a short description, e.g.
//
//	Test Sans [Bold, Italic] (weight=700, path=TestSans-BoldItalic.ttf)
func (r Record) String() string {
	var style []string
	if r.IsBold {
		style = append(style, "Bold")
	}
	if r.IsItalic {
		style = append(style, "Italic")
	}
	if r.IsOblique {
		style = append(style, "Oblique")
	}
	if r.IsMonospace {
		style = append(style, "Mono")
	}
	if len(style) == 0 {
		style = append(style, "Regular")
	}
	return fmt.Sprintf("%s [%s] (weight=%d, path=%s)", r.Family, strings.Join(style, ", "),
		r.Weight, filepath.Base(r.FilePath))
}

var fieldNames = []string{
	"family", "subfamily", "full_name", "postscript_name",
	"file_path", "format",
	"is_bold", "is_italic", "is_oblique", "is_monospace",
	"weight", "weight_name", "width_class",
	"supports_latin", "discovery_name",
}

// FieldNames returns the keys of ToMap in declaration order, e.g. for use as
// table columns.
func FieldNames() []string {
	return slices.Clone(fieldNames)
}

// ToMap returns a flat key/value view of r with snake_case keys. Values are
// strings, bools and ints only.
func (r Record) ToMap() map[string]any {
	return map[string]any{
		"family":          r.Family,
		"subfamily":       r.Subfamily,
		"full_name":       r.FullName,
		"postscript_name": r.PostScriptName,
		"file_path":       r.FilePath,
		"format":          r.Format,
		"is_bold":         r.IsBold,
		"is_italic":       r.IsItalic,
		"is_oblique":      r.IsOblique,
		"is_monospace":    r.IsMonospace,
		"weight":          r.Weight,
		"weight_name":     r.WeightName,
		"width_class":     r.WidthClass,
		"supports_latin":  r.SupportsLatin,
		"discovery_name":  r.DiscoveryName,
	}
}

// --- Ordering --------------------------------------------------------------

// Compare orders records by (family, weight, italic, bold), with false
// sorting before true.
func Compare(a, b Record) int {
	if c := cmp.Compare(a.Family, b.Family); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Weight, b.Weight); c != 0 {
		return c
	}
	if c := compareBool(a.IsItalic, b.IsItalic); c != 0 {
		return c
	}
	return compareBool(a.IsBold, b.IsBold)
}

// Less reports whether a sorts before b.
func Less(a, b Record) bool {
	return Compare(a, b) < 0
}

// Sort sorts records in place. The sort is stable: records with equal
// ordering keys keep their relative order.
func Sort(records []Record) {
	slices.SortStableFunc(records, Compare)
}

// Dedupe returns the records with distinct keys, keeping the first occurrence
// of every key. The input is not modified.
func Dedupe(records []Record) []Record {
	seen := make(map[Key]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if _, dup := seen[r.Key()]; dup {
			continue
		}
		seen[r.Key()] = struct{}{}
		out = append(out, r)
	}
	return out
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

// NormalizeFormat lowercases a file format and makes sure it has a leading
// dot, e.g. "TTF" → ".ttf". The empty string stays empty.
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" || strings.HasPrefix(format, ".") {
		return format
	}
	return "." + format
}
