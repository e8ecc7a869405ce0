package fontscan

import (
	"context"

	"github.com/npillmayer/fontmeta/fontinfo"
	"golang.org/x/sync/errgroup"
)

// Option configures ExtractAll.
type Option func(*aggregator)

type aggregator struct {
	workers   int
	extractor *Extractor
}

// WithWorkers sets the number of files extracted in parallel. Values < 1
// are treated as 1 (sequential extraction). The result does not depend on
// the number of workers.
func WithWorkers(n int) Option {
	return func(a *aggregator) {
		a.workers = max(n, 1)
	}
}

// WithExtractor replaces the default extractor.
func WithExtractor(x *Extractor) Option {
	return func(a *aggregator) {
		if x != nil {
			a.extractor = x
		}
	}
}

// ExtractAll extracts the records of all discovered faces.
//
// Records are collected in input order, then duplicates (by
// fontinfo.Record.Key) are removed, keeping the first occurrence, and the
// result is sorted canonically. Files which fail to extract are skipped.
// If ctx is cancelled, no further files are started and the records
// extracted so far are returned.
func ExtractAll(ctx context.Context, faces []DiscoveredFace, opts ...Option) []fontinfo.Record {
	a := aggregator{workers: 1, extractor: NewExtractor()}
	for _, opt := range opts {
		opt(&a)
	}
	perFile := make([][]fontinfo.Record, len(faces))
	g := errgroup.Group{}
	g.SetLimit(a.workers)
	for i, d := range faces {
		if ctx.Err() != nil {
			tracer().Infof("extraction cancelled after %d of %d files", i, len(faces))
			break
		}
		g.Go(func() error {
			records, err := a.extractor.ExtractFile(d)
			if err != nil {
				tracer().Infof("%s: %v", d.Path, err)
			}
			perFile[i] = records
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	var all []fontinfo.Record
	for _, records := range perFile {
		all = append(all, records...)
	}
	unique := fontinfo.Dedupe(all)
	fontinfo.Sort(unique)
	tracer().Infof("extracted metadata for %d unique font faces (from %d files)", len(unique), len(faces))
	return unique
}
