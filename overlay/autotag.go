package overlay

import (
	"strings"

	"github.com/npillmayer/designmode/dom"
	"github.com/npillmayer/designmode/ident"
)

// Tag groups driving the auto-tag heuristic. Interactive controls are
// always worth selecting; the other groups only when they carry
// content.
var (
	semanticTextTags = map[string]bool{
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"p": true, "blockquote": true, "pre": true, "figcaption": true,
	}
	interactiveTags = map[string]bool{
		"button": true, "input": true, "textarea": true, "select": true, "a": true,
	}
	smallInlineTags = map[string]bool{
		"span": true, "label": true, "li": true,
	}
	containerTags = map[string]bool{
		"div": true, "section": true, "article": true,
	}
)

// autotagSubtree applies the auto-tag policy to an inserted or initial
// node and all its descendants. Elements that already carry an identity
// attribute, by build or by an earlier pass, are skipped but their
// descendants are still visited.
func (s *Session) autotagSubtree(n *dom.Node) {
	if n == nil {
		return
	}
	s.doc.WalkSubtree(n, func(e *dom.Node) bool {
		if e.IsElement() {
			s.autotagElement(e)
		}
		return true
	})
}

// autotagElement assigns a synthetic identity to a single element when
// the heuristic admits it. Ids draw on a monotonic counter seeded high
// so they cannot collide with line/column-derived build-time ids.
func (s *Session) autotagElement(e *dom.Node) {
	if e.HasAttr(s.attrs.ID) || e.HasAttr(s.attrs.AutoTagged) {
		return
	}
	if !s.wantsAutoTag(e) {
		return
	}
	s.mu.Lock()
	serial := s.counter
	s.counter++
	s.mu.Unlock()
	tag := e.TagName()
	e.SetAttr(s.attrs.ID, ident.ComponentID(tag, ident.AutoTagBase, serial, 0))
	e.SetAttr(s.attrs.Name, tag)
	e.SetAttr(s.attrs.AutoTagged, "true")
	tracer().Debugf("auto-tagged <%s> as serial %d", tag, serial)
}

// wantsAutoTag is the per-element admission heuristic: the element must
// carry some content (text or children) and fall into one of the
// recognized tag groups.
func (s *Session) wantsAutoTag(e *dom.Node) bool {
	text := strings.TrimSpace(e.TextContent())
	children := e.ChildElementCount()
	if text == "" && children == 0 {
		return false
	}
	tag := e.TagName()
	switch {
	case interactiveTags[tag]:
		return true
	case semanticTextTags[tag]:
		return text != ""
	case smallInlineTags[tag]:
		return text != "" && children < 3
	case containerTags[tag]:
		return strings.TrimSpace(e.DirectText()) != "" || (children >= 1 && children <= 5)
	}
	return false
}
