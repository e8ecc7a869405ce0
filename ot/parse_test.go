package ot

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/npillmayer/fontmeta/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func testFace() *fonttest.Face {
	return fonttest.Spec{
		Family:         "Test Sans",
		Subfamily:      "Bold Italic",
		FullName:       "Test Sans Bold Italic",
		PostScriptName: "TestSans-BoldItalic",
		Weight:         700,
		Width:          5,
		FsSelection:    0x0021,
		MacStyle:       0x0003,
		CodePage1:      1,
		Latin:          true,
	}.Face()
}

func TestParseHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	c, err := Open(testFace().Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if c.FaceCount() != 1 || c.IsCollection() {
		t.Errorf("expected single face, have %d faces (collection=%v)", c.FaceCount(), c.IsCollection())
	}
	face, err := c.Face(0)
	if err != nil {
		t.Fatal(err)
	}
	if face.Flavor != 0x00010000 {
		t.Errorf("expected TrueType flavor, have %x", face.Flavor)
	}
	tags := face.TableTags()
	if len(tags) != 5 {
		t.Errorf("expected 5 tables, have %d: %v", len(tags), tags)
	}
	if len(face.Warnings()) != 0 {
		t.Errorf("expected no warnings, have %v", face.Warnings())
	}
}

func TestParseTypedTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	c, _ := Open(testFace().Bytes())
	face, err := c.Face(0)
	if err != nil {
		t.Fatal(err)
	}
	os2, ok := face.OS2().Unwrap()
	if !ok {
		t.Fatalf("expected OS/2 table")
	}
	if os2.WeightClass != 700 || os2.WidthClass != 5 || os2.FsSelection != 0x21 {
		t.Errorf("unexpected OS/2 fields: %+v", os2)
	}
	if !os2.HasCodePages || os2.CodePageRange1 != 1 {
		t.Errorf("expected code page range 1 = 1, have %+v", os2)
	}
	head, ok := face.Head().Unwrap()
	if !ok {
		t.Fatalf("expected head table")
	}
	if head.MagicNumber != 0x5F0F3CF5 || head.UnitsPerEm != 1000 || head.MacStyle != 3 {
		t.Errorf("unexpected head fields: %+v", head)
	}
	post, ok := face.Post().Unwrap()
	if !ok {
		t.Fatalf("expected post table")
	}
	if post.IsFixedPitch != 0 || post.Version != 0x00030000 {
		t.Errorf("unexpected post fields: %+v", post)
	}
	names, ok := face.Name().Unwrap()
	if !ok {
		t.Fatalf("expected name table")
	}
	if len(names.Records()) != 4 {
		t.Fatalf("expected 4 name records, have %d", len(names.Records()))
	}
	s, err := names.Records()[2].Decode()
	if err != nil || s != "Test Sans Bold Italic" {
		t.Errorf("expected full name, have %q (%v)", s, err)
	}
}

func TestParsePostItalicAngle(t *testing.T) {
	face := fonttest.NewFace().Table("post", fonttest.Post(true, -12.5))
	c, _ := Open(face.Bytes())
	f, err := c.Face(0)
	if err != nil {
		t.Fatal(err)
	}
	post, _ := f.Post().Unwrap()
	if post == nil || post.ItalicAngle != -12.5 || post.IsFixedPitch == 0 {
		t.Errorf("unexpected post table %+v", post)
	}
}

func TestParseOS2Version0(t *testing.T) {
	face := fonttest.NewFace().Table("OS/2", fonttest.OS2(fonttest.OS2Fields{Version: 0, Weight: 300}))
	c, _ := Open(face.Bytes())
	f, _ := c.Face(0)
	os2, ok := f.OS2().Unwrap()
	if !ok {
		t.Fatalf("expected version 0 OS/2 table to be decoded")
	}
	if os2.HasCodePages || os2.WeightClass != 300 {
		t.Errorf("unexpected OS/2 fields: %+v", os2)
	}
}

func TestParseShortTablesAreAbsent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	face := fonttest.NewFace().
		Table("OS/2", fonttest.OS2(fonttest.OS2Fields{Version: 4, Weight: 700})[:40]).
		Table("head", fonttest.Head(1)[:20]).
		Table("post", fonttest.Post(true, 0)[:8]).
		Table("name", []byte{0, 0})
	c, err := Open(face.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	f, err := c.Face(0)
	if err != nil {
		t.Fatal(err)
	}
	if f.OS2().IsSome() || f.Head().IsSome() || f.Post().IsSome() || f.Name().IsSome() {
		t.Errorf("expected truncated tables to be treated as absent")
	}
	if len(f.Warnings()) != 4 {
		t.Errorf("expected 4 warnings, have %d: %v", len(f.Warnings()), f.Warnings())
	}
	for _, w := range f.Warnings() {
		if w.Severity != SeverityMajor {
			t.Errorf("expected dropped-table warning to be major: %v", w)
		}
	}
}

func TestParseOS2Version1WithoutCodePages(t *testing.T) {
	face := fonttest.NewFace().
		Table("OS/2", fonttest.OS2(fonttest.OS2Fields{Version: 1, Weight: 500, CodePage1: 1})[:78])
	c, _ := Open(face.Bytes())
	f, _ := c.Face(0)
	os2, ok := f.OS2().Unwrap()
	if !ok {
		t.Fatalf("expected OS/2 table")
	}
	if os2.HasCodePages || os2.CodePageRange1 != 0 {
		t.Errorf("expected code pages to be unavailable: %+v", os2)
	}
	if len(f.Warnings()) != 1 {
		t.Errorf("expected a minor warning, have %v", f.Warnings())
	}
}

func TestParseMissingTables(t *testing.T) {
	face := fonttest.NewFace().Table("maxp", make([]byte, 6))
	c, _ := Open(face.Bytes())
	f, err := c.Face(0)
	if err != nil {
		t.Fatal(err)
	}
	if f.Name().IsSome() || f.OS2().IsSome() {
		t.Errorf("expected absent tables to be None")
	}
	if _, err := f.Table(T("cmap")); !errors.Is(err, ErrMissingTable) {
		t.Errorf("expected ErrMissingTable, have %v", err)
	}
	if _, err := f.CMap(); !errors.Is(err, ErrMissingTable) {
		t.Errorf("expected ErrMissingTable for CMap(), have %v", err)
	}
	if b, err := f.Table(T("maxp")); err != nil || len(b) != 6 {
		t.Errorf("expected raw maxp table of 6 bytes, have %d (%v)", len(b), err)
	}
}

func TestParseUnsortedDirectory(t *testing.T) {
	face := fonttest.NewFace().Unsorted().
		Table("post", fonttest.Post(false, 0)).
		Table("head", fonttest.Head(0))
	c, _ := Open(face.Bytes())
	f, err := c.Face(0)
	if err != nil {
		t.Fatal(err)
	}
	if f.Head().IsNone() || f.Post().IsNone() {
		t.Errorf("expected tables of unsorted directory to be decoded")
	}
	if len(f.Warnings()) != 1 || f.Warnings()[0].Severity != SeverityMinor {
		t.Errorf("expected one minor warning, have %v", f.Warnings())
	}
}

func TestParseCollection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	regular := fonttest.Spec{Family: "Coll", Subfamily: "Regular", Weight: 400}.Face()
	bold := fonttest.Spec{Family: "Coll", Subfamily: "Bold", Weight: 700}.Face()
	data := fonttest.Collection(regular, bold)
	c, err := Open(data)
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsCollection() || c.FaceCount() != 2 {
		t.Fatalf("expected collection of 2 faces, have %d", c.FaceCount())
	}
	for i, w := range []uint16{400, 700} {
		f, err := c.Face(i)
		if err != nil {
			t.Fatalf("face %d: %v", i, err)
		}
		if f.Index != i {
			t.Errorf("expected face index %d, have %d", i, f.Index)
		}
		os2, _ := f.OS2().Unwrap()
		if os2 == nil || os2.WeightClass != w {
			t.Errorf("face %d: expected weight %d, have %+v", i, w, os2)
		}
	}
	if _, err := c.Face(2); !errors.Is(err, ErrFaceIndex) {
		t.Errorf("expected ErrFaceIndex for face 2, have %v", err)
	}
	if _, err := c.Face(-1); !errors.Is(err, ErrFaceIndex) {
		t.Errorf("expected ErrFaceIndex for face -1, have %v", err)
	}
	if _, err := OpenSingle(data); !errors.Is(err, ErrFormat) {
		t.Errorf("expected OpenSingle to reject a collection, have %v", err)
	}
	if _, err := OpenCollection(regular.Bytes()); !errors.Is(err, ErrFormat) {
		t.Errorf("expected OpenCollection to reject a single face, have %v", err)
	}
}

func TestParseMalformedContainers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	valid := testFace().Bytes()
	hugeTable := append([]byte(nil), valid...)
	binary.BigEndian.PutUint32(hugeTable[12+12:], 0xfffffff0) // length of first table record
	badCount := fonttest.Collection(testFace())
	binary.BigEndian.PutUint32(badCount[8:], 5000)
	badOffset := fonttest.Collection(testFace())
	binary.BigEndian.PutUint32(badOffset[12:], 0x7fffffff)
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"too short", []byte{0, 1}},
		{"unknown signature", []byte("wOFF\x00\x00\x00\x00\x00\x00\x00\x00")},
		{"truncated directory", valid[:20]},
		{"table out of bounds", hugeTable},
		{"no tables", []byte{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"truncated collection", []byte("ttcf\x00\x01\x00\x00")},
		{"implausible face count", badCount},
		{"face offset out of bounds", badOffset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(tt.data)
			if err == nil && c != nil {
				_, err = c.Face(0) // collections check directories lazily
			}
			if err == nil {
				t.Fatalf("expected error")
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("expected *FormatError, have %T: %v", err, err)
			}
		})
	}
}

func TestParseNameRecordOutOfBounds(t *testing.T) {
	name := fonttest.Name(fonttest.WinName(1, "Fam"), fonttest.WinName(2, "Regular"))
	binary.BigEndian.PutUint16(name[6+12+10:], 0x4000) // offset of 2nd string
	c, _ := Open(fonttest.NewFace().Table("name", name).Bytes())
	f, _ := c.Face(0)
	tab, ok := f.Name().Unwrap()
	if !ok {
		t.Fatalf("expected name table")
	}
	if len(tab.Records()) != 1 {
		t.Errorf("expected broken record to be skipped, have %d records", len(tab.Records()))
	}
	if len(f.Warnings()) != 1 {
		t.Errorf("expected one warning, have %v", f.Warnings())
	}
}
