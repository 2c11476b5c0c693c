/*
Package tagger implements the build-time half of design mode: a
source-to-source transform that stamps every qualifying markup element
with identity attributes (component id, component name, source
location). The transform is deterministic — identical source at
identical positions always yields identical ids — and idempotent:
elements already carrying an identity attribute are never re-tagged, so
the transform may safely run over its own output (incremental rebuilds,
nested pipelines).

The transform is position-anchored text splicing: sources are parsed
with tree-sitter grammars, which are error-tolerant and report exact
byte offsets, and the identity attributes are inserted right after the
tag name (before any author attribute).

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package tagger

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to 'designmode.tagger'.
func tracer() tracing.Trace {
	return tracing.Select("designmode.tagger")
}
