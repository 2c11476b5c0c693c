/*
Package domdbg implements helpers to debug a live document tree.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package domdbg

import (
	"fmt"
	"io"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/npillmayer/designmode/dom"
	"github.com/npillmayer/designmode/ident"
)

// Dump writes an ASCII tree of a document to w, one line per element,
// including component identities where present.
func Dump(w io.Writer, doc *dom.Document, attrs ident.Attributes) error {
	root := treeprint.New()
	root.SetValue("#document")
	if doc.Html() != nil {
		addNode(root, doc.Html(), attrs)
	}
	_, err := io.WriteString(w, root.String())
	return err
}

func addNode(branch treeprint.Tree, n *dom.Node, attrs ident.Attributes) {
	sub := branch.AddBranch(label(n, attrs))
	for _, ch := range n.ChildNodes() {
		if ch.IsElement() {
			addNode(sub, ch, attrs)
		} else if txt := strings.TrimSpace(ch.Text()); txt != "" {
			sub.AddNode(fmt.Sprintf("%q", clip(txt, 32)))
		}
	}
}

func label(n *dom.Node, attrs ident.Attributes) string {
	var b strings.Builder
	b.WriteString("<" + n.TagName() + ">")
	if id, ok := n.Attr(attrs.ID); ok {
		b.WriteString(" " + id)
	}
	if n.HasAttr(attrs.AutoTagged) {
		b.WriteString(" (auto)")
	}
	for _, c := range n.Classes() {
		b.WriteString(" ." + c)
	}
	return b.String()
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
