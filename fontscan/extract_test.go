package fontscan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/fontmeta/internal/fonttest"
	"github.com/npillmayer/fontmeta/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

var boldSans = fonttest.Spec{
	Family:         "Test Sans",
	Subfamily:      "Bold",
	FullName:       "Test Sans Bold",
	PostScriptName: "TestSans-Bold",
	Weight:         700,
	FsSelection:    1 << 5,
	Latin:          true,
}

func TestExtractSingleFace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmeta.scan")
	defer teardown()
	//
	path := filepath.Join(tempDir(t), "TestSans-Bold.ttf")
	require.NoError(t, os.WriteFile(path, boldSans.Bytes(), 0o644))
	records, err := NewExtractor().ExtractFile(FaceFromPath(path))
	require.NoError(t, err)
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "Test Sans", r.Family)
	assert.Equal(t, "Bold", r.Subfamily)
	assert.Equal(t, "Test Sans Bold", r.FullName)
	assert.Equal(t, "TestSans-Bold", r.PostScriptName)
	assert.Equal(t, path, r.FilePath)
	assert.Equal(t, ".ttf", r.Format)
	assert.True(t, r.IsBold)
	assert.False(t, r.IsItalic)
	assert.False(t, r.IsOblique)
	assert.False(t, r.IsMonospace)
	assert.Equal(t, 700, r.Weight)
	assert.Equal(t, "Bold", r.WeightName)
	assert.Equal(t, 5, r.WidthClass)
	assert.True(t, r.SupportsLatin)
	assert.Equal(t, "TestSans", r.DiscoveryName)
}

func TestExtractNameFallbacks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmeta.scan")
	defer teardown()
	//
	x := NewExtractor()
	d := DiscoveredFace{Path: "/f/Hint-Italic.otf", HintFamily: "Hint"}
	// typographic family wins, full name falls back to it
	records, err := x.Extract(fonttest.Spec{Family: "Legacy", TypographicFamily: "Typo"}.Bytes(), d)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Typo", records[0].Family)
	assert.Equal(t, "Typo", records[0].FullName)
	assert.Equal(t, ".otf", records[0].Format)
	// no names at all: family from hint, no full name
	records, err = x.Extract(fonttest.Spec{NoOS2: true, NoHead: true, NoPost: true}.Bytes(), d)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Hint", records[0].Family)
	assert.Equal(t, "", records[0].FullName)
	assert.Equal(t, 400, records[0].Weight)
	assert.Equal(t, "Regular", records[0].WeightName)
	assert.Equal(t, 5, records[0].WidthClass)
	assert.False(t, records[0].SupportsLatin)
}

func TestExtractStyles(t *testing.T) {
	x := NewExtractor()
	d := DiscoveredFace{Path: "/f/x.ttf"}
	tests := []struct {
		name  string
		spec  fonttest.Spec
		check func(t *testing.T, bold, italic, oblique, mono bool)
	}{
		{"mac style", fonttest.Spec{Family: "M", MacStyle: 3}, func(t *testing.T, b, i, o, m bool) {
			assert.True(t, b && i)
			assert.False(t, o || m)
		}},
		{"oblique", fonttest.Spec{Family: "O", FsSelection: 1 << 9}, func(t *testing.T, b, i, o, m bool) {
			assert.True(t, o)
			assert.False(t, b || i || m)
		}},
		{"mono", fonttest.Spec{Family: "P", Monospace: true}, func(t *testing.T, b, i, o, m bool) {
			assert.True(t, m)
			assert.False(t, b || i || o)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := x.Extract(tt.spec.Bytes(), d)
			require.NoError(t, err)
			require.Len(t, records, 1)
			r := records[0]
			tt.check(t, r.IsBold, r.IsItalic, r.IsOblique, r.IsMonospace)
		})
	}
}

func TestExtractWeightRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmeta.scan")
	defer teardown()
	//
	x := NewExtractor()
	d := DiscoveredFace{Path: "/f/w.ttf"}
	tests := []struct {
		weightClass uint16
		weight      int
	}{
		{1, 100}, {50, 100}, {99, 100}, {100, 100}, {0, 400}, {950, 900},
	}
	for _, tt := range tests {
		records, err := x.Extract(fonttest.Spec{Family: "W", Weight: tt.weightClass}.Bytes(), d)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, tt.weight, records[0].Weight, "usWeightClass=%d", tt.weightClass)
	}
}

func TestExtractCollection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmeta.scan")
	defer teardown()
	//
	data := fonttest.Collection(
		fonttest.Spec{Family: "Coll", FullName: "Coll Light", Weight: 300}.Face(),
		fonttest.Spec{Family: "Coll", FullName: "Coll Heavy", Weight: 900}.Face(),
	)
	records, err := NewExtractor().Extract(data, DiscoveredFace{Path: "/f/Coll.ttc"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Coll Light", records[0].FullName)
	assert.Equal(t, "Coll Heavy", records[1].FullName)
	assert.Equal(t, "Black", records[1].WeightName)
	assert.Equal(t, ".ttc", records[1].Format)
}

func TestExtractCollectionFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmeta.scan")
	defer teardown()
	//
	records, err := NewExtractor().Extract(boldSans.Bytes(), DiscoveredFace{Path: "/f/NotReally.ttc"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Test Sans Bold", records[0].FullName)
	assert.Equal(t, ".ttc", records[0].Format)
}

func TestExtractBrokenFace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmeta.scan")
	defer teardown()
	//
	broken := fonttest.NewFace().Flavor(0xdeadbeef).Table("name", fonttest.Name())
	data := fonttest.Collection(boldSans.Face(), broken)
	records, err := NewExtractor().Extract(data, DiscoveredFace{Path: "/f/Mixed.otc"})
	require.Len(t, records, 1)
	require.Error(t, err)
	var faceErr *FaceError
	require.True(t, errors.As(err, &faceErr))
	assert.Equal(t, 1, faceErr.Index)
	assert.Equal(t, "/f/Mixed.otc", faceErr.Path)
	assert.ErrorIs(t, err, ot.ErrFormat)
	assert.Len(t, multierr.Errors(err), 1)
}

func TestExtractUnreadable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmeta.scan")
	defer teardown()
	//
	x := NewExtractor()
	records, err := x.Extract([]byte("definitely not a font"), DiscoveredFace{Path: "/f/junk.ttf"})
	assert.Empty(t, records)
	assert.ErrorIs(t, err, ot.ErrFormat)
	// collection fallback fails as well: both errors are reported
	records, err = x.Extract([]byte("junk junk junk"), DiscoveredFace{Path: "/f/junk.ttc"})
	assert.Empty(t, records)
	assert.Len(t, multierr.Errors(err), 2)
	_, err = x.ExtractFile(DiscoveredFace{Path: filepath.Join(t.TempDir(), "missing.ttf")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
