/*
Package dom provides the live document tree the design-mode overlay
operates on.

A Document is parsed from (tagged) HTML and kept as two linked
structures: a generic tree of Node values (package tree) carrying the
document structure, and the underlying golang.org/x/net/html nodes
carrying tag names and attributes. Both are kept in sync under mutation,
so CSS selector matching (package cascadia) keeps working against the
html nodes while tree operations stay concurrency-safe.

Beyond structure, the package offers the two document facilities the
overlay needs at runtime: a document-level event dispatcher with capture
and bubble phases, and a mutation observer that batches insertions and
delivers them asynchronously relative to the mutating call.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to 'designmode.dom'.
func tracer() tracing.Trace {
	return tracing.Select("designmode.dom")
}
