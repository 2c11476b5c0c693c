package overlay

import (
	"github.com/npillmayer/designmode/dom"
	"github.com/npillmayer/designmode/dom/style"
	"github.com/npillmayer/designmode/protocol"
)

// UpdateElement applies a live edit. The edit is deferred to the next
// render frame and the target is resolved at apply time: componentId
// plus instance index (first match when absent). A resolution miss is
// logged and the edit dropped; it never faults.
func (s *Session) UpdateElement(upd protocol.UpdateElement) {
	s.scheduleFrame(func() {
		n := s.resolveInstance(upd.ComponentID, upd.InstanceIndex)
		if n == nil {
			idx := 0
			if upd.InstanceIndex != nil {
				idx = *upd.InstanceIndex
			}
			tracer().Infof("update-element: no element %q instance %d, edit dropped",
				upd.ComponentID, idx)
			return
		}
		if upd.TextContent != nil {
			applyText(n, *upd.TextContent)
		}
		for prop, val := range upd.Styles {
			applyStyle(n, prop, val)
		}
	})
}

// resolveInstance finds the idx-th live element carrying the component
// id, in document order.
func (s *Session) resolveInstance(id string, instance *int) *dom.Node {
	idx := 0
	if instance != nil {
		idx = *instance
	}
	matches := s.doc.ElementsByAttr(s.attrs.ID, id)
	if idx < 0 || idx >= len(matches) {
		return nil
	}
	return matches[idx]
}

// applyText replaces an element's text without harming structure: an
// element without child elements gets its text content replaced whole;
// with children, only the first direct text node is rewritten. No
// direct text node despite children means the update is skipped.
func applyText(n *dom.Node, text string) {
	if n.ChildElementCount() == 0 {
		n.SetTextContent(text)
		return
	}
	if t := n.FirstDirectTextNode(); t != nil {
		t.SetText(text)
		return
	}
	tracer().Infof("text update skipped: element <%s> has children but no direct text", n.TagName())
}

// applyStyle sets one inline style property. An empty string or a
// zero-length dimension is an explicit reset: the inline property is
// removed rather than set literally.
func applyStyle(n *dom.Node, prop, val string) {
	if val == "" || style.ParseDimen(style.Property(val)).IsZero() {
		n.RemoveInlineStyle(prop)
		return
	}
	n.SetInlineStyle(prop, val)
}
