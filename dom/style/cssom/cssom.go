/*
Package cssom resolves computed styles for nodes of a live document.

Stylesheets embedded in the document (style elements) are parsed with
douceur and their selectors compiled with cascadia. Computed values
follow the cascade: !important declarations win over inline styles,
inline styles win over normal declarations, matching declarations are
ordered by specificity and source order, and inherited properties fall
back to the parent chain.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	douceur "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/designmode/dom"
	"github.com/npillmayer/designmode/dom/style"
)

// tracer traces to 'designmode.style'.
func tracer() tracing.Trace {
	return tracing.Select("designmode.style")
}

// Styles is a compiled set of style rules for one document.
type Styles struct {
	rules []rule
}

type rule struct {
	sel   cascadia.Sel
	order int // source order over all sheets
	decls []*douceur.Declaration
}

// FromDocument collects and compiles every style element of a document.
// Unparsable sheets and selectors are skipped with a trace message;
// computed styles degrade, the overlay keeps working.
func FromDocument(doc *dom.Document) *Styles {
	st := &Styles{}
	doc.WalkElements(func(n *dom.Node) bool {
		if n.TagName() == "style" {
			st.addSheet(n.TextContent())
		}
		return true
	})
	return st
}

// addSheet parses one stylesheet and compiles its rules.
func (st *Styles) addSheet(text string) {
	sheet, err := parser.Parse(text)
	if err != nil {
		tracer().Infof("cssom: unparsable stylesheet skipped: %v", err)
		return
	}
	for _, r := range sheet.Rules {
		st.addRule(r)
	}
}

func (st *Styles) addRule(r *douceur.Rule) {
	if r.Kind != douceur.QualifiedRule {
		for _, nested := range r.Rules { // e.g. @media blocks
			st.addRule(nested)
		}
		return
	}
	for _, selText := range r.Selectors {
		sel, err := cascadia.ParseWithPseudoElement(strings.TrimSpace(selText))
		if err != nil {
			tracer().Infof("cssom: unparsable selector %q skipped: %v", selText, err)
			continue
		}
		if sel.PseudoElement() != "" {
			continue // pseudo elements are not real nodes
		}
		st.rules = append(st.rules, rule{sel: sel, order: len(st.rules), decls: r.Declarations})
	}
}

// Property resolves the computed value for one property key on a node.
// An empty Property means "not set anywhere".
func (st *Styles) Property(n *dom.Node, key string) style.Property {
	v := st.localProperty(n, key)
	if !v.IsEmpty() && !v.IsInherit() {
		return v
	}
	if !style.IsCascading(key) && !v.IsInherit() {
		return style.NullStyle
	}
	if p := n.ParentElement(); p != nil {
		return st.Property(p, key)
	}
	return style.NullStyle
}

// Computed resolves a fixed set of property keys for a node.
func (st *Styles) Computed(n *dom.Node, keys []string) map[string]style.Property {
	out := make(map[string]style.Property, len(keys))
	for _, key := range keys {
		if v := st.Property(n, key); !v.IsEmpty() {
			out[key] = v
		}
	}
	return out
}

// localProperty resolves a property on the node itself, without
// inheritance: important declarations, then inline style, then normal
// declarations by specificity and source order.
func (st *Styles) localProperty(n *dom.Node, key string) style.Property {
	var best *douceur.Declaration
	var bestRule rule
	var bestImportant bool
	for _, r := range st.rules {
		if !r.sel.Match(n.HTMLNode()) {
			continue
		}
		for _, d := range r.decls {
			if !strings.EqualFold(d.Property, key) {
				continue
			}
			if best == nil || beats(r, d, bestRule, bestImportant) {
				best, bestRule, bestImportant = d, r, d.Important
			}
		}
	}
	if best != nil && bestImportant {
		return style.Property(best.Value)
	}
	if inline := n.InlineStyle(key); inline != "" {
		return style.Property(inline)
	}
	if best != nil {
		return style.Property(best.Value)
	}
	return style.NullStyle
}

// beats reports whether declaration d of rule r takes precedence over
// the current best declaration.
func beats(r rule, d *douceur.Declaration, cur rule, curImportant bool) bool {
	if d.Important != curImportant {
		return d.Important
	}
	if cur.sel.Specificity().Less(r.sel.Specificity()) {
		return true
	}
	if r.sel.Specificity().Less(cur.sel.Specificity()) {
		return false
	}
	return r.order >= cur.order
}
