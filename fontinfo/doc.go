/*
Package fontinfo holds the normalized metadata record of a font face and the
engine for filtering collections of records.

Records are ordered by family, then weight, then italic and bold flags
(false before true). Every collection handed out by this module is in this
canonical order.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontinfo

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontmeta'
func tracer() tracing.Trace {
	return tracing.Select("fontmeta")
}
