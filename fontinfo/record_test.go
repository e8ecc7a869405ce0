package fontinfo

import (
	"encoding/json"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRecordOrdering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmeta")
	defer teardown()
	//
	records := []Record{
		{Family: "B", Weight: 400},
		{Family: "A", Weight: 700, IsBold: true},
		{Family: "A", Weight: 400, IsItalic: true},
		{Family: "A", Weight: 400, IsItalic: true, IsBold: true},
		{Family: "A", Weight: 400},
		{Family: "A", Weight: 400, IsBold: true},
	}
	Sort(records)
	expected := []Record{
		{Family: "A", Weight: 400},
		{Family: "A", Weight: 400, IsBold: true},
		{Family: "A", Weight: 400, IsItalic: true},
		{Family: "A", Weight: 400, IsItalic: true, IsBold: true},
		{Family: "A", Weight: 700, IsBold: true},
		{Family: "B", Weight: 400},
	}
	assert.Equal(t, expected, records)
	assert.True(t, Less(records[0], records[1]))
	assert.False(t, Less(records[1], records[0]))
	assert.Equal(t, 0, Compare(records[0], Record{Family: "A", Weight: 400, FullName: "other"}))
}

func TestSortIsStable(t *testing.T) {
	records := []Record{
		{Family: "A", FullName: "first"},
		{Family: "A", FullName: "second"},
		{Family: "A", FullName: "third"},
	}
	Sort(records)
	assert.Equal(t, "first", records[0].FullName)
	assert.Equal(t, "third", records[2].FullName)
}

func TestRecordKey(t *testing.T) {
	a := Record{FullName: "X Bold", Subfamily: "Bold", Weight: 700, FilePath: "/a/x.ttf"}
	b := Record{FullName: "X Bold", Subfamily: "Bold", Weight: 700, FilePath: "/b/x.otf"}
	c := Record{FullName: "X Bold", Subfamily: "Bold", Weight: 600}
	assert.True(t, a.SameFace(b), "expected records from different files with equal key to be the same face")
	assert.False(t, a.SameFace(c))
	assert.Equal(t, Key{FullName: "X Bold", Subfamily: "Bold", Weight: 700}, a.Key())
}

func TestDedupe(t *testing.T) {
	records := []Record{
		{FullName: "X", Weight: 400, FilePath: "first"},
		{FullName: "Y", Weight: 400},
		{FullName: "X", Weight: 400, FilePath: "second"},
		{FullName: "X", Weight: 700},
	}
	out := Dedupe(records)
	require.Len(t, out, 3)
	assert.Equal(t, "first", out[0].FilePath, "expected first occurrence to win")
	assert.Len(t, records, 4, "expected input to be untouched")
}

func TestRecordString(t *testing.T) {
	r := Record{Family: "Test Sans", Weight: 700, IsBold: true, IsItalic: true, FilePath: "/fonts/TestSans-BoldItalic.ttf"}
	assert.Equal(t, "Test Sans [Bold, Italic] (weight=700, path=TestSans-BoldItalic.ttf)", r.String())
	r = Record{Family: "Mono", Weight: 400, IsMonospace: true, IsOblique: true, FilePath: "m.otf"}
	assert.Equal(t, "Mono [Oblique, Mono] (weight=400, path=m.otf)", r.String())
	r = Record{Family: "Plain", Weight: 400, FilePath: "p.ttf"}
	assert.Equal(t, "Plain [Regular] (weight=400, path=p.ttf)", r.String())
}

func TestRecordToMap(t *testing.T) {
	r := Record{Family: "F", Weight: 500, WidthClass: 5, IsBold: true, Format: ".ttf", SupportsLatin: true}
	m := r.ToMap()
	assert.Len(t, m, len(FieldNames()))
	for _, name := range FieldNames() {
		v, ok := m[name]
		require.True(t, ok, "missing key %s", name)
		switch v.(type) {
		case string, bool, int:
		default:
			t.Errorf("value of %s has non-primitive type %T", name, v)
		}
	}
	assert.Equal(t, "F", m["family"])
	assert.Equal(t, 500, m["weight"])
	assert.Equal(t, true, m["is_bold"])
	assert.Equal(t, "Normal", r.WidthName())
}

func TestRecordTagsMatchMapKeys(t *testing.T) {
	r := Record{Family: "F", FullName: "F Regular", Weight: 400, WidthClass: 5}
	j, err := json.Marshal(r)
	require.NoError(t, err)
	var fromJSON map[string]any
	require.NoError(t, json.Unmarshal(j, &fromJSON))
	y, err := yaml.Marshal(r)
	require.NoError(t, err)
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(y, &fromYAML))
	for _, name := range FieldNames() {
		assert.Contains(t, fromJSON, name)
		assert.Contains(t, fromYAML, name)
	}
}

func TestNormalizeFormat(t *testing.T) {
	for in, out := range map[string]string{"TTF": ".ttf", ".OTF": ".otf", " ttc ": ".ttc", "": ""} {
		assert.Equal(t, out, NormalizeFormat(in), in)
	}
}
