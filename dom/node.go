package dom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/npillmayer/designmode/tree"
)

// Node is a single document node (element or text), built on the generic
// tree node and linked to its underlying html node.
type Node struct {
	tree.Node[*Node]
	h   *html.Node
	doc *Document
}

func newNode(doc *Document, h *html.Node) *Node {
	n := &Node{h: h, doc: doc}
	n.Payload = n // Payload always references the node itself
	return n
}

// FromTreeNode recovers the document node from a generic tree node.
func FromTreeNode(tn *tree.Node[*Node]) *Node {
	if tn == nil {
		return nil
	}
	return tn.Payload
}

// HTMLNode returns the underlying html node (selector matching, render).
func (n *Node) HTMLNode() *html.Node { return n.h }

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// IsElement reports whether this node is an element node.
func (n *Node) IsElement() bool { return n != nil && n.h.Type == html.ElementNode }

// IsText reports whether this node is a text node.
func (n *Node) IsText() bool { return n != nil && n.h.Type == html.TextNode }

// TagName returns the element's tag name ("" for non-elements).
func (n *Node) TagName() string {
	if !n.IsElement() {
		return ""
	}
	return n.h.Data
}

// Text returns a text node's content ("" for elements).
func (n *Node) Text() string {
	if !n.IsText() {
		return ""
	}
	return n.h.Data
}

// SetText replaces a text node's content.
func (n *Node) SetText(s string) {
	if n.IsText() {
		n.h.Data = s
	}
}

// --- Attributes --------------------------------------------------------

// Attr returns the value of an attribute and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	if !n.IsElement() {
		return "", false
	}
	for _, a := range n.h.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether an attribute is present.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attr(key)
	return ok
}

// SetAttr sets or replaces an attribute.
func (n *Node) SetAttr(key, val string) {
	if !n.IsElement() {
		return
	}
	for i, a := range n.h.Attr {
		if a.Key == key {
			n.h.Attr[i].Val = val
			return
		}
	}
	n.h.Attr = append(n.h.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr removes an attribute if present.
func (n *Node) RemoveAttr(key string) {
	if !n.IsElement() {
		return
	}
	for i, a := range n.h.Attr {
		if a.Key == key {
			n.h.Attr = append(n.h.Attr[:i], n.h.Attr[i+1:]...)
			return
		}
	}
}

// ID returns the element's id attribute.
func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return id
}

// --- Classes -----------------------------------------------------------

// Classes returns the element's class list.
func (n *Node) Classes() []string {
	cls, _ := n.Attr("class")
	return strings.Fields(cls)
}

// HasClass reports whether the element carries a class.
func (n *Node) HasClass(name string) bool {
	for _, c := range n.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass adds a class to the element (no duplicates).
func (n *Node) AddClass(name string) {
	if !n.IsElement() || n.HasClass(name) {
		return
	}
	cls := append(n.Classes(), name)
	n.SetAttr("class", strings.Join(cls, " "))
}

// RemoveClass removes a class from the element.
func (n *Node) RemoveClass(name string) {
	if !n.IsElement() || !n.HasClass(name) {
		return
	}
	var keep []string
	for _, c := range n.Classes() {
		if c != name {
			keep = append(keep, c)
		}
	}
	if len(keep) == 0 {
		n.RemoveAttr("class")
		return
	}
	n.SetAttr("class", strings.Join(keep, " "))
}

// --- Structure ---------------------------------------------------------

// ParentElement returns the nearest ancestor element, or nil.
func (n *Node) ParentElement() *Node {
	for tn := n.Node.Parent(); tn != nil; tn = tn.Parent() {
		p := tn.Payload
		if p.IsElement() {
			return p
		}
	}
	return nil
}

// ChildNodes returns all child nodes (elements and text).
func (n *Node) ChildNodes() []*Node {
	tchs := n.Node.Children()
	out := make([]*Node, len(tchs))
	for i, tch := range tchs {
		out[i] = tch.Payload
	}
	return out
}

// ChildElements returns the element children only.
func (n *Node) ChildElements() []*Node {
	var out []*Node
	for _, ch := range n.ChildNodes() {
		if ch.IsElement() {
			out = append(out, ch)
		}
	}
	return out
}

// ChildElementCount returns the number of element children.
func (n *Node) ChildElementCount() int {
	return len(n.ChildElements())
}

// AppendChild appends a child node, detaching it from a previous parent
// if necessary, and records the insertion for mutation observers.
func (n *Node) AppendChild(c *Node) {
	if c == nil {
		return
	}
	c.Remove()
	n.Node.AddChild(&c.Node)
	n.h.AppendChild(c.h)
	n.doc.recordInsert(c)
}

// InsertChildAt inserts a child at position i among the current
// children, and records the insertion for mutation observers.
func (n *Node) InsertChildAt(i int, c *Node) {
	if c == nil {
		return
	}
	c.Remove()
	ref, ok := n.Node.Child(i)
	if !ok {
		n.Node.AddChild(&c.Node)
		n.h.AppendChild(c.h)
	} else {
		n.Node.InsertChildAt(i, &c.Node)
		n.h.InsertBefore(c.h, ref.Payload.h)
	}
	n.doc.recordInsert(c)
}

// Remove detaches the node from its parent (both trees). Detached nodes
// keep their subtree and may be re-inserted.
func (n *Node) Remove() {
	if n == nil || n.Node.Parent() == nil {
		return
	}
	n.Node.Isolate()
	if n.h.Parent != nil {
		n.h.Parent.RemoveChild(n.h)
	}
}

// --- Text access -------------------------------------------------------

// TextContent returns the concatenated text of the node and all of its
// descendants.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text()
	}
	var b strings.Builder
	for _, ch := range n.ChildNodes() {
		b.WriteString(ch.TextContent())
	}
	return b.String()
}

// FirstDirectTextNode returns the element's first immediate text child,
// or nil. Text inside descendant elements does not count.
func (n *Node) FirstDirectTextNode() *Node {
	for _, ch := range n.ChildNodes() {
		if ch.IsText() {
			return ch
		}
	}
	return nil
}

// DirectText returns the concatenated immediate text children of the
// element, excluding text inside descendant elements.
func (n *Node) DirectText() string {
	var b strings.Builder
	for _, ch := range n.ChildNodes() {
		if ch.IsText() {
			b.WriteString(ch.Text())
		}
	}
	return b.String()
}

// SetTextContent replaces the element's entire content with a single
// text node. Callers must make sure the element has no child elements
// they want to keep.
func (n *Node) SetTextContent(s string) {
	for _, ch := range n.ChildNodes() {
		ch.Remove()
	}
	n.AppendChild(n.doc.CreateTextNode(s))
}
