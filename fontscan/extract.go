package fontscan

import (
	"errors"
	"fmt"

	"github.com/npillmayer/fontmeta/fontinfo"
	"github.com/npillmayer/fontmeta/internal/fontload"
	"github.com/npillmayer/fontmeta/ot"
	"github.com/npillmayer/fontmeta/otquery"
	"go.uber.org/multierr"
)

// FaceError reports a face which could not be decoded.
type FaceError struct {
	Path  string
	Index int // face index within the file
	Err   error
}

func (e *FaceError) Error() string {
	return fmt.Sprintf("%s, face %d: %v", e.Path, e.Index, e.Err)
}

func (e *FaceError) Unwrap() error {
	return e.Err
}

// Extractor builds metadata records from font files.
// An Extractor has no mutable state and may be used concurrently.
type Extractor struct {
	readFile func(string) ([]byte, error)
}

// NewExtractor creates an extractor reading font files from the file system.
func NewExtractor() *Extractor {
	return &Extractor{readFile: fontload.ReadFile}
}

// ExtractFile reads the font file of d and extracts its records.
// See Extract.
func (x *Extractor) ExtractFile(d DiscoveredFace) ([]fontinfo.Record, error) {
	read := x.readFile
	if read == nil {
		read = fontload.ReadFile
	}
	data, err := read(d.Path)
	if err != nil {
		return nil, err
	}
	return x.Extract(data, d)
}

// Extract returns one record per face contained in data.
//
// Collections are opened face by face; if a file announced as a collection
// turns out not to be one, it is read as a single-face font. If the
// container cannot be opened at all, Extract returns no records and an error.
// Otherwise every face is extracted independently: the records of all
// decodable faces are returned, and the error (if non-nil) holds a
// *FaceError for every face that failed.
func (x *Extractor) Extract(data []byte, d DiscoveredFace) ([]fontinfo.Record, error) {
	format := d.format()
	c, err := openContainer(data, format)
	if err != nil {
		tracer().Infof("cannot open font file %s: %v", d.Path, err)
		return nil, err
	}
	records := make([]fontinfo.Record, 0, c.FaceCount())
	var errs error
	for i := range c.FaceCount() {
		rec, err := extractFace(c, i, d, format)
		if err != nil {
			tracer().Infof("failed to extract face %d from %s: %v", i, d.Path, err)
			errs = multierr.Append(errs, err)
			continue
		}
		records = append(records, rec)
	}
	return records, errs
}

// openContainer opens font data. Files with a collection extension are tried
// as a collection first and, if that fails with a format error, as a
// single-face font.
func openContainer(data []byte, format string) (*ot.Container, error) {
	if !IsCollectionFormat(format) {
		return ot.Open(data)
	}
	c, err := ot.OpenCollection(data)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ot.ErrFormat) {
		return nil, err
	}
	tracer().Debugf("not a collection, trying single face: %v", err)
	c, errSingle := ot.OpenSingle(data)
	if errSingle != nil {
		return nil, multierr.Combine(err, errSingle)
	}
	return c, nil
}

// extractFace builds the record of face i. Panics from decoding malformed
// data are converted to errors.
func extractFace(c *ot.Container, i int, d DiscoveredFace, format string) (rec fontinfo.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &FaceError{Path: d.Path, Index: i, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	face, err := c.Face(i)
	if err != nil {
		return rec, &FaceError{Path: d.Path, Index: i, Err: err}
	}
	for _, w := range face.Warnings() {
		tracer().Debugf("%s, face %d: %s", d.Path, i, w)
	}
	return BuildRecord(face, d, format), nil
}

// BuildRecord assembles the metadata record of a decoded face.
//
// The family is the typographic family name if present, else the legacy
// family name, else the discovery hint. The full name falls back to the
// family name found in the font.
func BuildRecord(face *ot.FaceTables, d DiscoveredFace, format string) fontinfo.Record {
	names := face.Name()
	family := otquery.Resolve(names, otquery.NameTypographicFamily)
	if family == "" {
		family = otquery.Resolve(names, otquery.NameFamily)
	}
	fullName := otquery.Resolve(names, otquery.NameFull)
	if fullName == "" {
		fullName = family
	}
	if family == "" {
		family = d.HintFamily
	}
	style := otquery.ClassifyFace(face)
	return fontinfo.Record{
		Family:         family,
		Subfamily:      otquery.Resolve(names, otquery.NameSubfamily),
		FullName:       fullName,
		PostScriptName: otquery.Resolve(names, otquery.NamePostScript),
		FilePath:       d.Path,
		Format:         fontinfo.NormalizeFormat(format),
		IsBold:         style.Bold,
		IsItalic:       style.Italic,
		IsOblique:      style.Oblique,
		IsMonospace:    style.Monospace,
		Weight:         style.Weight,
		WeightName:     style.WeightName,
		WidthClass:     style.Width,
		SupportsLatin:  otquery.SupportsLatin(face),
		DiscoveryName:  d.Name(),
	}
}
