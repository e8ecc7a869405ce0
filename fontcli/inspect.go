package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/fontmeta/fontscan"
	"github.com/npillmayer/fontmeta/internal/fontload"
	"github.com/npillmayer/fontmeta/ot"
	"github.com/npillmayer/fontmeta/otquery"
	"github.com/thatisuday/commando"
)

func (app *App) runInspectCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	f, err := fontload.Open(fontPath)
	if err != nil {
		fatalf("%v", err)
	}
	opts := inspectOptions{
		verify:   mustFlagBool(flags["verify"], "verify"),
		warnings: mustFlagBool(flags["errors"], "errors"),
	}
	if err := inspect(os.Stdout, f, opts); err != nil {
		fatalf("%v", err)
	}
}

type inspectOptions struct {
	verify   bool // cross-check with package sfnt
	warnings bool // print decoding warnings
}

// inspect writes a diagnostic report for every face of a font file.
func inspect(w io.Writer, f *fontload.Font, opts inspectOptions) error {
	c := f.Container
	fmt.Fprintf(w, "Path: %s\n", f.Filepath)
	fmt.Fprintf(w, "Size: %d bytes\n", len(f.Binary))
	fmt.Fprintf(w, "Faces: %d (collection=%v)\n", c.FaceCount(), c.IsCollection())
	d := fontscan.FaceFromPath(f.Filepath)
	for i := range c.FaceCount() {
		fmt.Fprintf(w, "\n--- face %d ---\n", i)
		face, err := c.Face(i)
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}
		inspectFace(w, face, d, opts)
	}
	if opts.verify {
		verify(w, f)
	}
	return nil
}

func inspectFace(w io.Writer, face *ot.FaceTables, d fontscan.DiscoveredFace, opts inspectOptions) {
	info, _ := otquery.Info(face)
	fmt.Fprintf(w, "Type: %s\n", info.FontType)
	tags := face.TableTags()
	fmt.Fprintf(w, "Tables (%d):", len(tags))
	for _, tag := range tags {
		fmt.Fprintf(w, " %s", tag.String())
	}
	fmt.Fprintln(w)
	for id, name := range otquery.NamesRange(face) {
		fmt.Fprintf(w, "Name %2d (%s): %s\n", id, otquery.NameSlot(id), name)
	}
	if info.UnitsPerEm > 0 {
		fmt.Fprintf(w, "Revision: %.3f, units/em: %d\n", info.FontRevision, info.UnitsPerEm)
		fmt.Fprintf(w, "Created: %s, modified: %s\n",
			info.Created.Format("2006-01-02"), info.Modified.Format("2006-01-02"))
	}
	if info.NumGlyphs >= 0 {
		fmt.Fprintf(w, "Glyphs: %d\n", info.NumGlyphs)
	}
	if cmap, err := face.CMap(); err == nil {
		platform, encoding, format := cmap.Subtable()
		fmt.Fprintf(w, "CMap: platform=%d encoding=%d format=%d\n", platform, encoding, format)
	} else {
		fmt.Fprintf(w, "CMap: %v\n", err)
	}
	r := fontscan.BuildRecord(face, d, filepath.Ext(d.Path))
	fmt.Fprintf(w, "Record: %s\n", describe(r))
	warnings := face.Warnings()
	fmt.Fprintf(w, "Warnings: %d\n", len(warnings))
	if opts.warnings {
		for _, warning := range warnings {
			fmt.Fprintf(w, "warning: %s\n", warning.String())
		}
	}
}

// verify parses the font with golang.org/x/image/font/sfnt and compares
// glyph counts and full names.
func verify(w io.Writer, f *fontload.Font) {
	faces, err := fontload.ParseSFNT(f.Binary)
	if err != nil {
		fmt.Fprintf(w, "\nsfnt: cannot parse: %v\n", err)
		return
	}
	fmt.Fprintf(w, "\nsfnt: %d faces\n", len(faces))
	for i, sf := range faces {
		face, err := f.Container.Face(i)
		if err != nil {
			continue
		}
		full := otquery.Resolve(face.Name(), otquery.NameFull)
		info, _ := otquery.Info(face)
		status := "ok"
		if full != sf.FullName || info.NumGlyphs != sf.NumGlyphs {
			status = "MISMATCH"
		}
		fmt.Fprintf(w, "sfnt face %d: %q, %d glyphs: %s\n", i, sf.FullName, sf.NumGlyphs, status)
	}
}
