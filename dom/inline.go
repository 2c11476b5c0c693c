package dom

import (
	"strings"

	"github.com/aymerick/douceur/parser"
)

// Inline styles are kept in the element's style attribute and parsed on
// access; the attribute stays the single source of truth.

// InlineStyle returns the value of an inline style property, or "".
func (n *Node) InlineStyle(prop string) string {
	raw, ok := n.Attr("style")
	if !ok || raw == "" {
		return ""
	}
	decls, err := parser.ParseDeclarations(raw)
	if err != nil {
		tracer().Debugf("dom: unparsable style attribute %q: %v", raw, err)
		return ""
	}
	for _, d := range decls {
		if strings.EqualFold(d.Property, prop) {
			return d.Value
		}
	}
	return ""
}

// SetInlineStyle sets an inline style property, keeping the order of
// other declarations.
func (n *Node) SetInlineStyle(prop, val string) {
	raw, _ := n.Attr("style")
	var parts []string
	replaced := false
	if raw != "" {
		if decls, err := parser.ParseDeclarations(raw); err == nil {
			for _, d := range decls {
				if strings.EqualFold(d.Property, prop) {
					parts = append(parts, prop+": "+val)
					replaced = true
				} else {
					parts = append(parts, declString(d.Property, d.Value, d.Important))
				}
			}
		}
	}
	if !replaced {
		parts = append(parts, prop+": "+val)
	}
	n.SetAttr("style", strings.Join(parts, "; "))
}

// RemoveInlineStyle removes an inline style property. When the last
// declaration goes, the style attribute goes with it.
func (n *Node) RemoveInlineStyle(prop string) {
	raw, ok := n.Attr("style")
	if !ok || raw == "" {
		return
	}
	decls, err := parser.ParseDeclarations(raw)
	if err != nil {
		return
	}
	var parts []string
	for _, d := range decls {
		if !strings.EqualFold(d.Property, prop) {
			parts = append(parts, declString(d.Property, d.Value, d.Important))
		}
	}
	if len(parts) == 0 {
		n.RemoveAttr("style")
		return
	}
	n.SetAttr("style", strings.Join(parts, "; "))
}

func declString(prop, val string, important bool) string {
	if important {
		return prop + ": " + val + " !important"
	}
	return prop + ": " + val
}
