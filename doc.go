/*
Package fontmeta lists the fonts installed on a system and selects font
files by semantic criteria.

A Catalog discovers font files, extracts a metadata record for every face
(see package fontinfo for the record type) and caches the result. Clients
query the catalog by family, by name or by arbitrary combinations of style
attributes:

	catalog := fontmeta.New()
	records, err := catalog.Filter(ctx, nil, fontinfo.NewCriteria().
		Family("Noto Sans").Bold(true))

There is a certain confusion with the nomenclature of fonts. We will stick to
the following definitions:

▪︎ A "family" is a set of faces sharing a common design. An example is
"Helvetica". A font collection (*.ttc) often holds a complete family.

▪︎ A "face" is a variant of a family with a certain weight, slant, etc. An
example is "Helvetica Bold". Every record of this module describes a face.

Please note that Go (Golang) does use the terms "font" and "face"
differently, actually more or less in an opposite manner.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontmeta

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontmeta'
func tracer() tracing.Trace {
	return tracing.Select("fontmeta")
}
