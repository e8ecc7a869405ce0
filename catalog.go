package fontmeta

import (
	"context"
	"slices"
	"strings"

	"github.com/npillmayer/fontmeta/fontinfo"
	"github.com/npillmayer/fontmeta/fontscan"
	"github.com/npillmayer/fontmeta/internal/config"
	"golang.org/x/text/cases"
)

// Catalog is the query surface over the fonts of a system. It bundles a
// discovery service, an extractor and a ScanCache.
//
// A Catalog is safe for concurrent use.
type Catalog struct {
	discoverer fontscan.Discoverer
	extractor  *fontscan.Extractor
	workers    int
	cache      *ScanCache
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithDiscoverer sets the discovery service. The default walks the
// platform's font directories.
func WithDiscoverer(d fontscan.Discoverer) CatalogOption {
	return func(c *Catalog) {
		if d != nil {
			c.discoverer = d
		}
	}
}

// WithExtractor sets the extractor used for font files.
func WithExtractor(x *fontscan.Extractor) CatalogOption {
	return func(c *Catalog) {
		if x != nil {
			c.extractor = x
		}
	}
}

// WithWorkers sets the number of font files extracted in parallel.
func WithWorkers(n int) CatalogOption {
	return func(c *Catalog) {
		c.workers = max(n, 1)
	}
}

// New creates a catalog. Nothing is scanned until the first query.
func New(opts ...CatalogOption) *Catalog {
	c := &Catalog{workers: 1}
	for _, opt := range opts {
		opt(c)
	}
	if c.discoverer == nil {
		c.discoverer = fontscan.NewDirDiscoverer(nil, true)
	}
	if c.extractor == nil {
		c.extractor = fontscan.NewExtractor()
	}
	c.cache = NewScanCache(c.scan)
	return c
}

// NewFromConfig creates a catalog scanning the directories of cfg.
func NewFromConfig(cfg *config.Config, opts ...CatalogOption) *Catalog {
	base := []CatalogOption{
		WithDiscoverer(fontscan.NewDirDiscoverer(cfg.Dirs, cfg.FollowSymlinks)),
		WithWorkers(cfg.Workers),
	}
	return New(append(base, opts...)...)
}

// scan discovers and extracts all faces. Partial results of a cancelled
// scan are dropped.
func (c *Catalog) scan(ctx context.Context) ([]fontinfo.Record, error) {
	faces, err := c.discoverer.Discover(ctx)
	if err != nil {
		return nil, err
	}
	records := fontscan.ExtractAll(ctx, faces,
		fontscan.WithExtractor(c.extractor), fontscan.WithWorkers(c.workers))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// GetAll returns the records of all faces, optionally restricted to faces
// supporting the Latin script. The result is in canonical order.
func (c *Catalog) GetAll(ctx context.Context, latinOnly bool) ([]fontinfo.Record, error) {
	return c.cache.Get(ctx, latinOnly)
}

// Filter returns the records matching all constraints of criteria. If
// records is nil, the Latin faces of the catalog are filtered.
func (c *Catalog) Filter(ctx context.Context, records []fontinfo.Record, criteria fontinfo.Criteria) ([]fontinfo.Record, error) {
	if records == nil {
		var err error
		if records, err = c.GetAll(ctx, true); err != nil {
			return nil, err
		}
	}
	return fontinfo.Filter(records, criteria), nil
}

// ListFamilies returns the distinct family names, sorted alphabetically.
func (c *Catalog) ListFamilies(ctx context.Context, latinOnly bool) ([]string, error) {
	records, err := c.GetAll(ctx, latinOnly)
	if err != nil {
		return nil, err
	}
	families := make([]string, 0, len(records))
	for _, r := range records {
		families = append(families, r.Family)
	}
	slices.Sort(families)
	return slices.Compact(families), nil
}

// FindByName looks up a single Latin face by name, ignoring case. Candidates
// are, in this order:
//
//   - the first face with a full name equal to name
//   - the first face (in canonical order) with a family name equal to name
//   - the first face with a full name containing name
//
// If no face qualifies, FindByName returns false.
func (c *Catalog) FindByName(ctx context.Context, name string) (fontinfo.Record, bool, error) {
	records, err := c.GetAll(ctx, true)
	if err != nil {
		return fontinfo.Record{}, false, err
	}
	caser := cases.Fold()
	name = caser.String(name)
	matchers := []func(fontinfo.Record) bool{
		func(r fontinfo.Record) bool { return caser.String(r.FullName) == name },
		func(r fontinfo.Record) bool { return caser.String(r.Family) == name },
		func(r fontinfo.Record) bool { return strings.Contains(caser.String(r.FullName), name) },
	}
	for _, match := range matchers {
		if i := slices.IndexFunc(records, match); i >= 0 {
			return records[i], true, nil
		}
	}
	tracer().Debugf("no font named %q", name)
	return fontinfo.Record{}, false, nil
}

// Invalidate drops cached records; the next query scans again.
func (c *Catalog) Invalidate() {
	c.cache.Invalidate()
}

// CacheStats returns the counters of the catalog's cache.
func (c *Catalog) CacheStats() CacheStats {
	return c.cache.Stats()
}
