package dom

import (
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/npillmayer/designmode/tree"
)

// Document is a live document tree. All structural mutation goes through
// Document/Node methods, which keep the generic tree and the underlying
// html nodes in sync and feed the mutation observers.
type Document struct {
	root *Node // the #document node
	html *Node
	head *Node
	body *Node

	mu        sync.Mutex
	observers []*Observer
	pending   []*Node
	listeners []*listener
	nextLID   ListenerID
}

// FromHTML parses a rendered HTML document. The html, head and body
// elements always exist afterwards (the parser synthesizes them).
func FromHTML(r io.Reader) (*Document, error) {
	hdoc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	d := &Document{}
	d.root = d.wrap(hdoc, nil)
	tree.Walk(&d.root.Node, func(tn *tree.Node[*Node]) bool {
		n := tn.Payload
		switch n.h.DataAtom {
		case atom.Html:
			if d.html == nil {
				d.html = n
			}
		case atom.Head:
			if d.head == nil {
				d.head = n
			}
		case atom.Body:
			if d.body == nil {
				d.body = n
			}
		}
		return true
	})
	tracer().Debugf("dom: parsed document with %d elements", len(d.AllElements()))
	return d, nil
}

// FromHTMLString parses a document held in a string.
func FromHTMLString(s string) (*Document, error) {
	return FromHTML(strings.NewReader(s))
}

// wrap recursively mirrors the html node structure into our tree,
// keeping element and text nodes only.
func (d *Document) wrap(h *html.Node, parent *Node) *Node {
	n := newNode(d, h)
	if parent != nil {
		parent.Node.AddChild(&n.Node)
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode || ch.Type == html.TextNode {
			d.wrap(ch, n)
		}
	}
	return n
}

// Root returns the #document node.
func (d *Document) Root() *Node { return d.root }

// Html returns the html element (the document root element).
func (d *Document) Html() *Node { return d.html }

// Head returns the head element.
func (d *Document) Head() *Node { return d.head }

// Body returns the body element.
func (d *Document) Body() *Node { return d.body }

// CreateElement creates a detached element node owned by this document.
func (d *Document) CreateElement(tag string) *Node {
	h := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return newNode(d, h)
}

// CreateTextNode creates a detached text node owned by this document.
func (d *Document) CreateTextNode(text string) *Node {
	return newNode(d, &html.Node{Type: html.TextNode, Data: text})
}

// WalkElements visits every element in document order. Returning false
// from visit skips the element's descendants.
func (d *Document) WalkElements(visit func(*Node) bool) {
	tree.Walk(&d.root.Node, func(tn *tree.Node[*Node]) bool {
		n := tn.Payload
		if !n.IsElement() {
			return true
		}
		return visit(n)
	})
}

// WalkSubtree visits n and every node below it in document order,
// elements and text nodes alike. Returning false from visit skips the
// node's descendants.
func (d *Document) WalkSubtree(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	tree.Walk(&n.Node, func(tn *tree.Node[*Node]) bool {
		return visit(tn.Payload)
	})
}

// AllElements returns every element in document order.
func (d *Document) AllElements() []*Node {
	var out []*Node
	d.WalkElements(func(n *Node) bool {
		out = append(out, n)
		return true
	})
	return out
}

// ElementsByAttr returns all elements carrying attribute key with value
// val, in document order. The position of an element in this slice is
// its instance index for that identity.
func (d *Document) ElementsByAttr(key, val string) []*Node {
	var out []*Node
	d.WalkElements(func(n *Node) bool {
		if v, ok := n.Attr(key); ok && v == val {
			out = append(out, n)
		}
		return true
	})
	return out
}

// ElementByID returns the first element with the given id attribute.
func (d *Document) ElementByID(id string) *Node {
	var hit *Node
	d.WalkElements(func(n *Node) bool {
		if hit != nil {
			return false
		}
		if n.ID() == id {
			hit = n
			return false
		}
		return true
	})
	return hit
}

// WriteTo serializes the document as HTML.
func (d *Document) WriteTo(w io.Writer) error {
	return html.Render(w, d.root.h)
}

// String renders the document as HTML (debugging).
func (d *Document) String() string {
	var b strings.Builder
	if err := d.WriteTo(&b); err != nil {
		return "<unrenderable document>"
	}
	return b.String()
}
