/*
Package otquery derives font metadata from the decoded tables of a face.

Functions in this package never fail: absent or undecodable tables lead to
documented defaults. The package resolves human-readable names from table
'name', classifies a face's style from tables 'OS/2', 'head' and 'post',
and tests whether a face supports the Latin script.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontmeta.query'
func tracer() tracing.Trace {
	return tracing.Select("fontmeta.query")
}
