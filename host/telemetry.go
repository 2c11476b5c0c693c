package host

import (
	"net/url"
	"strings"
	"time"

	"github.com/npillmayer/designmode/protocol"
)

// cacheBusterParam is the query parameter preview URLs carry to defeat
// caching. It is noise to the host and stripped from navigation
// reports.
const cacheBusterParam = "_cb"

// ReportError forwards a console or uncaught error to the host windows.
// Cross-origin-restricted reports (an opaque "Script error" with no
// location and no stack) carry no actionable information and are
// filtered out. Forwarding never suppresses subsequent operation.
func (b *Bridge) ReportError(e protocol.ConsoleError) {
	if opaqueError(e) {
		tracer().Debugf("dropping opaque cross-origin error report")
		return
	}
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().UnixMilli()
	}
	b.Publish(e)
}

// opaqueError detects the detail-less "Script error" reports browsers
// emit for cross-origin scripts.
func opaqueError(e protocol.ConsoleError) bool {
	msg := strings.TrimSuffix(strings.TrimSpace(e.Message), ".")
	return msg == "Script error" && e.Filename == "" && e.Stack == ""
}

// ReportNavigation tells the host windows that the preview navigated.
// The cache-buster query parameter is stripped before reporting.
func (b *Bridge) ReportNavigation(rawurl string) {
	b.Publish(protocol.URLChanged{URL: stripCacheBuster(rawurl)})
}

func stripCacheBuster(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return rawurl
	}
	q := u.Query()
	if _, ok := q[cacheBusterParam]; !ok {
		return rawurl
	}
	q.Del(cacheBusterParam)
	u.RawQuery = q.Encode()
	return u.String()
}
