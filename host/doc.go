/*
Package host connects a design-mode overlay session to hosting windows
over websockets. The bridge is the message channel of the protocol: it
fans overlay messages out to every attached host, feeds host commands
into the session, forwards console errors as telemetry, and reports
navigation with cache-buster parameters stripped.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package host

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to a global core-tracer.
func tracer() tracing.Trace {
	return tracing.Select("designmode.host")
}
