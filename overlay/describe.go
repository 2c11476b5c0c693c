package overlay

import (
	"strconv"
	"strings"

	"github.com/npillmayer/designmode/dom"
	"github.com/npillmayer/designmode/dom/style/cssom"
	"github.com/npillmayer/designmode/protocol"
)

// styleKeys is the fixed set of computed style properties extracted for
// an element description: color, background, font metrics, box model,
// flex properties, border and gap.
var styleKeys = []string{
	"color", "background-color",
	"font-size", "font-weight", "font-family", "line-height", "text-align",
	"display", "width", "height",
	"margin-top", "margin-right", "margin-bottom", "margin-left",
	"padding-top", "padding-right", "padding-bottom", "padding-left",
	"border", "border-radius",
	"flex-direction", "justify-content", "align-items", "gap",
}

// Describe computes a fresh element description for n: identity,
// content classification, instance index among same-id elements, class
// list without overlay highlight classes, direct text, and the fixed
// set of extracted computed styles. The result is a pure value and is
// never mutated afterwards.
func (s *Session) Describe(n *dom.Node) protocol.ElementDescription {
	id, _ := n.Attr(s.attrs.ID)
	name, _ := n.Attr(s.attrs.Name)
	if name == "" {
		name = n.TagName()
	}
	desc := protocol.ElementDescription{
		ComponentID:      id,
		ComponentName:    name,
		ContentType:      contentType(s, n),
		InstanceIndex:    s.instanceIndex(n, id),
		Tag:              n.TagName(),
		Classes:          visibleClasses(n),
		TextContent:      strings.TrimSpace(n.DirectText()),
		HasChildElements: n.ChildElementCount() > 0,
		Styles:           s.computedStyles(n),
	}
	if file, ok := n.Attr(s.attrs.File); ok {
		desc.File = file
	}
	if line, ok := n.Attr(s.attrs.Line); ok {
		desc.Line, _ = strconv.Atoi(line)
	}
	if col, ok := n.Attr(s.attrs.Column); ok {
		desc.Column, _ = strconv.Atoi(col)
	}
	return desc
}

// instanceIndex locates n among all live elements sharing its component
// id, in document order. Loop-rendered constructs produce several
// elements with one id; the index disambiguates them.
func (s *Session) instanceIndex(n *dom.Node, id string) int {
	if id == "" {
		return 0
	}
	for i, e := range s.doc.ElementsByAttr(s.attrs.ID, id) {
		if e == n {
			return i
		}
	}
	return 0
}

// contentType classifies what the element holds: auto-tagged content is
// dynamic by definition (it was not present at build time), otherwise
// the classification follows structure.
func contentType(s *Session, n *dom.Node) string {
	if n.HasAttr(s.attrs.AutoTagged) {
		return protocol.ContentDynamic
	}
	if n.ChildElementCount() > 0 {
		return protocol.ContentHasChildren
	}
	if strings.TrimSpace(n.TextContent()) != "" {
		return protocol.ContentStaticText
	}
	return protocol.ContentEmpty
}

// visibleClasses returns the element's class list without the overlay's
// own highlight classes.
func visibleClasses(n *dom.Node) []string {
	classes := []string{}
	for _, c := range n.Classes() {
		if c == hoverClass || c == selectedClass || c == activeClass {
			continue
		}
		classes = append(classes, c)
	}
	return classes
}

// computedStyles extracts the fixed style key set from a cascade built
// fresh over the document's current stylesheets and inline styles.
func (s *Session) computedStyles(n *dom.Node) map[string]string {
	styles := cssom.FromDocument(s.doc)
	out := map[string]string{}
	for key, p := range styles.Computed(n, styleKeys) {
		out[key] = p.String()
	}
	return out
}
