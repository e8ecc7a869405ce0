package otquery

import (
	"testing"
	"time"

	"github.com/npillmayer/fontmeta/internal/fonttest"
	"github.com/npillmayer/fontmeta/ot"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	face *ot.FaceTables
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmeta.query")
	defer teardown()
	suite.Run(t, new(InfoTestEnviron))
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("font.opentype").SetTraceLevel(tracing.LevelError)
	face := fonttest.Spec{
		Family:            "Test Sans",
		Subfamily:         "Semibold Italic",
		FullName:          "Test Sans Semibold Italic",
		PostScriptName:    "TestSans-SemiboldItalic",
		TypographicFamily: "Test Sans Pro",
		Weight:            600,
		Width:             3,
		FsSelection:       fsSelectionItalic,
		Latin:             true,
	}.Face().Table("maxp", []byte{0, 0, 0x50, 0, 0, 53})
	env.face = parseFace(env.T(), face.Bytes())
}

// run once, after test suite methods
func (env *InfoTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestFontTypeInfo() {
	env.Equal("TrueType", FontType(env.face), "expected font type of test font to be TrueType")
}

func (env *InfoTestEnviron) TestGeneralInfo() {
	env.Equal("Test Sans", Resolve(env.face.Name(), NameFamily))
	env.Equal("Semibold Italic", Resolve(env.face.Name(), NameSubfamily))
	env.Equal("Test Sans Semibold Italic", Resolve(env.face.Name(), NameFull))
	env.Equal("TestSans-SemiboldItalic", Resolve(env.face.Name(), NamePostScript))
	env.Equal("Test Sans Pro", Resolve(env.face.Name(), NameTypographicFamily))
	env.Equal("", Resolve(env.face.Name(), NameVersion), "expected no version string")
}

func (env *InfoTestEnviron) TestNamesRange() {
	names := make(map[sfnt.NameID]string)
	for id, s := range NamesRange(env.face) {
		names[id] = s
	}
	env.Len(names, 5)
	env.Equal("Test Sans", names[sfnt.NameIDFamily])
}

func (env *InfoTestEnviron) TestStyleInfo() {
	style := ClassifyFace(env.face)
	env.Equal(600, style.Weight)
	env.Equal("SemiBold", style.WeightName)
	env.Equal(3, style.Width)
	env.True(style.Italic, "expected italic style")
	env.False(style.Bold, "expected non-bold style")
	env.False(style.Monospace, "expected proportional font")
}

func (env *InfoTestEnviron) TestLatinSupport() {
	env.True(SupportsLatin(env.face), "expected cmap to cover basic Latin")
}

func (env *InfoTestEnviron) TestHeadInfo() {
	info, ok := Info(env.face)
	env.Require().True(ok, "expected to decode table 'head'")
	env.Equal(uint16(1000), info.UnitsPerEm)
	env.Equal(uint16(1), info.MajorVersion)
	env.Equal(53, info.NumGlyphs, "expected numGlyphs from table 'maxp'")
	env.True(info.Created.Equal(time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)),
		"expected zero LONGDATETIME to be the 1904 epoch, is %v", info.Created)
}

// --- Helpers ----------------------------------------------------------

func parseFace(t *testing.T, data []byte) *ot.FaceTables {
	t.Helper()
	c, err := ot.Open(data)
	if err != nil {
		t.Fatalf("cannot open test font: %v", err)
	}
	face, err := c.Face(0)
	if err != nil {
		t.Fatalf("cannot parse test font: %v", err)
	}
	return face
}
