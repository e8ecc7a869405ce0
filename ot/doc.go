/*
Package ot provides read-only access to the OpenType tables needed for
describing a font face: 'name', 'OS/2', 'head', 'post' and 'cmap'.

Intended audience for this package are tools which have to select a font
file by its properties (family, weight, slant, script coverage), such as
font catalogs or layout engines resolving a font request.

Package `ot` will not interpret a font beyond decoding table fields. For
example, it will not tell a client whether a font is bold; it will expose the
'OS/2' fsSelection bits and the 'head' macStyle bits, and leave the decision to
the client (see sister package `otquery`). From this point of view, `ot` is a
low-level package.

A font file is opened as a Container. A container holds either a single
face (*.ttf, *.otf) or a collection of faces (*.ttc, *.otc). Faces are
decoded on demand:

	c, err := ot.Open(data)
	...
	for i := range c.FaceCount() {
		face, err := c.Face(i)
		...
		if os2, ok := face.OS2().Unwrap(); ok {
			fmt.Println(os2.WeightClass)
		}
	}

Tables may legitimately be missing from a face ('OS/2' and 'post' are
frequently omitted by older Apple fonts). Absence is always represented
explicitly as an empty Option, never by synthesized default values.

▪︎ Bugs in fonts: many fonts in the wild contain entries that, strictly speaking, infringe
upon the OT specification. Package `ot` will record recoverable problems as
warnings on the face and carry on.

# Status

Variable fonts are not interpreted. Table checksums are not validated.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
