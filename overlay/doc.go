/*
Package overlay implements the runtime half of design mode: a session
attached to a live document which resolves pointer interactions to
tagged elements, auto-tags dynamically rendered content, applies live
text and style edits, and talks to a hosting window through the message
protocol of package protocol.

A session is constructed once per preview document and torn down on
navigation. It has two states, inactive and active, toggled by host
commands. All visual mutation is deferred to the next render frame and
batched; RenderFrame stands in for the browser's animation-frame
callback and is driven by the embedding host.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package overlay

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to a global core-tracer.
func tracer() tracing.Trace {
	return tracing.Select("designmode.overlay")
}
