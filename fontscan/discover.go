package fontscan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/npillmayer/fontmeta/fontinfo"
	"github.com/npillmayer/fontmeta/otquery"
)

// SupportedFormats are the file extensions of font files we extract metadata from.
var SupportedFormats = []string{".ttf", ".otf", ".ttc", ".otc"}

// IsSupportedFormat reports whether a file extension (with or without leading
// dot, any case) denotes a supported font format.
func IsSupportedFormat(ext string) bool {
	return slices.Contains(SupportedFormats, fontinfo.NormalizeFormat(ext))
}

// IsCollectionFormat reports whether a file extension denotes a font collection.
func IsCollectionFormat(ext string) bool {
	ext = fontinfo.NormalizeFormat(ext)
	return ext == ".ttc" || ext == ".otc"
}

// DiscoveredFace is a font file found by a discovery service, together with
// hints the service knows about the font.
type DiscoveredFace struct {
	Path       string // location of the font file
	Format     string // ".ttf", ".otf", ".ttc" or ".otc"
	HintFamily string // family name as known to the discovery service
	HintStyle  string // "normal", "italic" or "oblique"
	HintWeight int    // weight class, 0 if unknown
}

// Name is the name the discovery service knows the font by.
func (d DiscoveredFace) Name() string {
	return d.HintFamily
}

// format returns the normalized format of d, derived from the path if unset.
func (d DiscoveredFace) format() string {
	if d.Format != "" {
		return fontinfo.NormalizeFormat(d.Format)
	}
	return fontinfo.NormalizeFormat(filepath.Ext(d.Path))
}

// Discoverer is a service listing available font files.
//
// Implementations return only files with a supported format, each path at
// most once.
type Discoverer interface {
	Discover(ctx context.Context) ([]DiscoveredFace, error)
}

// --- Static discovery ------------------------------------------------------

// StaticDiscoverer is a Discoverer serving a fixed list of faces.
type StaticDiscoverer []DiscoveredFace

// Discover returns the faces of s with supported formats, dropping repeated paths.
func (s StaticDiscoverer) Discover(ctx context.Context) ([]DiscoveredFace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(s))
	faces := make([]DiscoveredFace, 0, len(s))
	for _, d := range s {
		if !IsSupportedFormat(d.format()) {
			tracer().Debugf("skipping non-TrueType/OpenType file: %s", d.Path)
			continue
		}
		if _, dup := seen[d.Path]; dup {
			continue
		}
		seen[d.Path] = struct{}{}
		d.Format = d.format()
		faces = append(faces, d)
	}
	return faces, nil
}

// --- Directory discovery ---------------------------------------------------

// DirDiscoverer finds font files by walking directory trees.
type DirDiscoverer struct {
	Dirs           []string // root directories; missing directories are skipped
	FollowSymlinks bool     // resolve symbolic links to font files
}

// NewDirDiscoverer creates a discoverer for a list of directories. If dirs
// is empty, the platform's default font directories are used.
func NewDirDiscoverer(dirs []string, followSymlinks bool) *DirDiscoverer {
	if len(dirs) == 0 {
		dirs = DefaultFontDirs()
	}
	return &DirDiscoverer{Dirs: dirs, FollowSymlinks: followSymlinks}
}

// Discover walks all directories and returns the font files found, sorted by path.
// Discover returns an error only if ctx is cancelled.
func (dd *DirDiscoverer) Discover(ctx context.Context) ([]DiscoveredFace, error) {
	found := make(map[string]struct{})
	for _, dir := range dd.Dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		root, err := filepath.EvalSymlinks(dir)
		if err != nil {
			tracer().Debugf("font directory %s not accessible: %v", dir, err)
			continue
		}
		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				tracer().Debugf("skipping %s: %v", path, err)
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if entry.IsDir() || !IsSupportedFormat(filepath.Ext(path)) {
				return nil
			}
			if entry.Type()&fs.ModeSymlink != 0 {
				if !dd.FollowSymlinks {
					return nil
				}
				resolved, err := resolveFontLink(path)
				if err != nil {
					tracer().Debugf("skipping link %s: %v", path, err)
					return nil
				}
				path = resolved
			}
			found[path] = struct{}{}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	paths := make([]string, 0, len(found))
	for p := range found {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	faces := make([]DiscoveredFace, len(paths))
	for i, p := range paths {
		faces[i] = FaceFromPath(p)
	}
	tracer().Infof("discovered %d font files in %d directories", len(faces), len(dd.Dirs))
	return faces, nil
}

// resolveFontLink resolves a symbolic link, requiring the target to be a
// regular file with a supported format.
func resolveFontLink(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() || !IsSupportedFormat(filepath.Ext(resolved)) {
		return "", fs.ErrInvalid
	}
	return resolved, nil
}

// DefaultFontDirs returns the conventional font directories of the
// current platform, including per-user directories.
func DefaultFontDirs() []string {
	home, _ := os.UserHomeDir()
	var dirs []string
	switch runtime.GOOS {
	case "darwin":
		dirs = []string{"/System/Library/Fonts", "/Library/Fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		dirs = []string{filepath.Join(windir, "Fonts")}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
	default:
		dirs = []string{"/usr/share/fonts", "/usr/local/share/fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"), filepath.Join(home, ".fonts"))
		}
	}
	return dirs
}

// --- Hints from file names -------------------------------------------------

// FaceFromPath creates a discovered face for a font file, deriving hints
// from the file name. A file "Roboto-BoldItalic.ttf" yields family hint
// "Roboto", style "italic" and weight 700.
func FaceFromPath(path string) DiscoveredFace {
	ext := filepath.Ext(path)
	d := DiscoveredFace{
		Path:       path,
		Format:     fontinfo.NormalizeFormat(ext),
		HintFamily: strings.TrimSuffix(filepath.Base(path), ext),
		HintStyle:  "normal",
	}
	stem := d.HintFamily
	cut := strings.LastIndexAny(stem, "-_")
	if cut <= 0 {
		return d
	}
	style, weight, ok := parseStyleSuffix(stem[cut+1:])
	if !ok {
		return d
	}
	d.HintFamily, d.HintStyle, d.HintWeight = stem[:cut], style, weight
	return d
}

// parseStyleSuffix interprets file name suffixes like "BoldItalic",
// "Oblique", "Regular" or "SemiBold".
func parseStyleSuffix(suffix string) (style string, weight int, ok bool) {
	s := strings.ToLower(suffix)
	style = "normal"
	for _, slant := range []string{"italic", "oblique"} {
		if strings.HasSuffix(s, slant) {
			style, s = slant, strings.TrimSuffix(s, slant)
			break
		}
	}
	if s == "" {
		return style, 0, style != "normal"
	}
	weight, ok = otquery.ParseWeightName(s)
	return style, weight, ok
}
