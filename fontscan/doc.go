/*
Package fontscan discovers font files and extracts one metadata record per
face contained in them.

The pipeline consists of three steps:

▪︎ A Discoverer lists candidate font files (DirDiscoverer walks font
directories; StaticDiscoverer serves a fixed list).

▪︎ An Extractor opens a file, decodes every face and builds a
fontinfo.Record for each of them. Collections (*.ttc, *.otc) yield a record
per face.

▪︎ ExtractAll runs the extractor over a list of discovered files, removes
duplicate faces and returns the records in canonical order.

Errors never escape ExtractAll: files or faces which cannot be decoded are
traced and skipped.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontscan

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontmeta.scan'
func tracer() tracing.Trace {
	return tracing.Select("fontmeta.scan")
}
