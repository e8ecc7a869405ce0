package fontmeta

import (
	"context"
	"slices"
	"sync"

	"github.com/npillmayer/fontmeta/fontinfo"
	"golang.org/x/sync/singleflight"
)

// ScanFunc produces the complete, canonically sorted collection of records
// of a system. It is called by a ScanCache whenever the cache is cold.
type ScanFunc func(ctx context.Context) ([]fontinfo.Record, error)

// CacheStats are counters of a ScanCache.
type CacheStats struct {
	Hits   int // requests served from the cache
	Misses int // requests which had to wait for a scan
	Scans  int // scans completed and published
}

// ScanCache memoizes the result of a font scan.
//
// The cache holds exactly one collection, tagged with the Latin-only flag
// it was built for. A request with a different flag replaces the entry.
// Collections are built outside of the lock and published as a whole;
// concurrent requests for the same flag share a single scan.
//
// The zero value is not usable; create caches with NewScanCache.
type ScanCache struct {
	scan  ScanFunc
	group singleflight.Group
	mu    sync.Mutex
	entry *cacheEntry // nil if cold
	gen   uint64      // incremented by Invalidate
	stats CacheStats
}

type cacheEntry struct {
	latinOnly bool
	records   []fontinfo.Record
}

// NewScanCache creates an empty cache on top of a scan function.
func NewScanCache(scan ScanFunc) *ScanCache {
	return &ScanCache{scan: scan}
}

// Get returns the cached collection if it has been built for latinOnly.
// Otherwise it scans, keeps only faces supporting Latin if latinOnly is set,
// caches the result and returns it.
//
// Clients always receive their own copy of the collection. If a scan for the
// same flag is already running, Get waits for it (with the context of the
// request which started the scan). Failed scans are not cached.
func (c *ScanCache) Get(ctx context.Context, latinOnly bool) ([]fontinfo.Record, error) {
	c.mu.Lock()
	if c.entry != nil && c.entry.latinOnly == latinOnly {
		c.stats.Hits++
		records := slices.Clone(c.entry.records)
		c.mu.Unlock()
		return records, nil
	}
	c.stats.Misses++
	gen := c.gen
	c.mu.Unlock()
	//
	key := "all"
	if latinOnly {
		key = "latin"
	}
	v, err, shared := c.group.Do(key, func() (any, error) {
		if records, ok := c.lookup(latinOnly); ok { // published while we were waiting
			return records, nil
		}
		tracer().Infof("scanning fonts (latin only = %v)", latinOnly)
		records, err := c.scan(ctx)
		if err != nil {
			return nil, err
		}
		if latinOnly {
			records = fontinfo.Filter(records, fontinfo.NewCriteria().SupportsLatin(true))
		}
		c.publish(gen, &cacheEntry{latinOnly: latinOnly, records: records})
		return records, nil
	})
	if err != nil {
		tracer().Errorf("font scan failed: %v", err)
		return nil, err
	}
	if shared {
		tracer().Debugf("joined running scan (latin only = %v)", latinOnly)
	}
	return slices.Clone(v.([]fontinfo.Record)), nil
}

func (c *ScanCache) lookup(latinOnly bool) ([]fontinfo.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entry == nil || c.entry.latinOnly != latinOnly {
		return nil, false
	}
	return c.entry.records, true
}

// publish installs a freshly scanned entry, unless the cache has been
// invalidated since the scan was requested.
func (c *ScanCache) publish(gen uint64, entry *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Scans++
	if gen != c.gen {
		tracer().Debugf("cache invalidated during scan, result not cached")
		return
	}
	c.entry = entry
	tracer().Infof("cached %d font records", len(entry.records))
}

// Invalidate drops the cached collection. The next Get will scan again.
func (c *ScanCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
	c.gen++
}

// Stats returns a snapshot of the cache counters.
func (c *ScanCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
