package fontload

import (
	"fmt"
	"os"

	"github.com/npillmayer/fontmeta/ot"
	"golang.org/x/image/font/sfnt"
)

// MaxFontFileSize limits the size of font files we are willing to read.
// Large CJK collections are well below this limit.
const MaxFontFileSize = 256 << 20

// ReadFile reads a font file into memory. Files which are not regular
// files, or which exceed MaxFontFileSize, are rejected.
func ReadFile(fontfile string) ([]byte, error) {
	info, err := os.Stat(fontfile)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("font file %s: not a regular file", fontfile)
	}
	if info.Size() > MaxFontFileSize {
		return nil, fmt.Errorf("font file %s: size %d exceeds limit", fontfile, info.Size())
	}
	return os.ReadFile(fontfile)
}

// Font is an opened font file with its original bytes.
type Font struct {
	Filepath  string
	Binary    []byte
	Container *ot.Container
}

// Open loads a font file (TTF, OTF, TTC or OTC) and opens its container.
func Open(fontfile string) (*Font, error) {
	bytez, err := ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	c, err := ot.Open(bytez)
	if err != nil {
		return nil, fmt.Errorf("font file %s: %w", fontfile, err)
	}
	return &Font{Filepath: fontfile, Binary: bytez, Container: c}, nil
}

// SFNTFace is the view of golang.org/x/image/font/sfnt onto a face.
type SFNTFace struct {
	FullName  string
	NumGlyphs int
}

// ParseSFNT decodes font data with golang.org/x/image/font/sfnt, which is
// stricter than package ot: it requires all tables needed for rendering.
// Clients use it to cross-check the metadata of a file.
func ParseSFNT(fbytes []byte) ([]SFNTFace, error) {
	coll, err := sfnt.ParseCollection(fbytes)
	if err != nil {
		return nil, err
	}
	faces := make([]SFNTFace, coll.NumFonts())
	var buf sfnt.Buffer
	for i := range faces {
		f, err := coll.Font(i)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		faces[i].NumGlyphs = f.NumGlyphs()
		if faces[i].FullName, err = f.Name(&buf, sfnt.NameIDFull); err != nil && err != sfnt.ErrNotFound {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
	}
	return faces, nil
}
