package otquery

import (
	"testing"

	"github.com/npillmayer/fontmeta/internal/fonttest"
	"github.com/npillmayer/fontmeta/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func nameTable(t *testing.T, entries ...fonttest.NameEntry) ot.Option[*ot.NameTable] {
	t.Helper()
	return parseFace(t, fonttest.NewFace().Table("name", fonttest.Name(entries...)).Bytes()).Name()
}

func TestResolvePriority(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmeta.query")
	defer teardown()
	//
	german := fonttest.WinName(1, "Deutsch")
	german.Language = 0x0407
	broken := fonttest.WinName(1, "Broken")
	broken.Value = broken.Value[:3] // odd length
	empty := fonttest.WinName(1, "")
	tests := []struct {
		name     string
		entries  []fonttest.NameEntry
		expected string
	}{
		{"Windows before Macintosh",
			[]fonttest.NameEntry{fonttest.MacName(1, "Mac"), fonttest.WinName(1, "Win")}, "Win"},
		{"Macintosh before Unicode",
			[]fonttest.NameEntry{fonttest.UnicodeName(1, "Uni"), fonttest.MacName(1, "Mac")}, "Mac"},
		{"Unicode before other languages",
			[]fonttest.NameEntry{german, fonttest.UnicodeName(1, "Uni")}, "Uni"},
		{"any record as last resort",
			[]fonttest.NameEntry{german}, "Deutsch"},
		{"first record in table order",
			[]fonttest.NameEntry{fonttest.WinName(1, "First"), fonttest.WinName(1, "Second")}, "First"},
		{"undecodable record is skipped",
			[]fonttest.NameEntry{broken, fonttest.MacName(1, "Mac")}, "Mac"},
		{"empty record wins if decodable",
			[]fonttest.NameEntry{empty, fonttest.UnicodeName(1, "Uni")}, ""},
		{"other name IDs are ignored",
			[]fonttest.NameEntry{fonttest.WinName(2, "Bold")}, ""},
		{"no records", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if s := Resolve(nameTable(t, tt.entries...), NameFamily); s != tt.expected {
				t.Errorf("Resolve() = %q; want %q", s, tt.expected)
			}
		})
	}
}

func TestResolveAbsentTable(t *testing.T) {
	if s := Resolve(ot.None[*ot.NameTable](), NameFull); s != "" {
		t.Errorf("expected empty string for absent name table, have %q", s)
	}
	if s := Resolve(ot.Some[*ot.NameTable](nil), NameFull); s != "" {
		t.Errorf("expected empty string for nil name table, have %q", s)
	}
}

func TestNameSlotString(t *testing.T) {
	if NameFull.String() != "full name" || NameSlot(99).String() != "name" {
		t.Errorf("unexpected name slot labels")
	}
	if uint16(NameTypographicFamily) != 16 || uint16(NamePostScript) != 6 {
		t.Errorf("name slots do not match OpenType name IDs")
	}
}
