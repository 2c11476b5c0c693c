package tagger

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tshtml "github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// dialect describes a markup-bearing source language: which tree-sitter
// grammar parses it and which node types constitute element openings,
// attributes, and tag names.
type dialect struct {
	name      string
	lang      *sitter.Language
	openers   map[string]bool // opening/self-closing element node types
	attrTypes map[string]bool // attribute node types inside an opener
}

var tsxDialect = &dialect{
	name: "tsx",
	lang: tsx.GetLanguage(),
	openers: map[string]bool{
		"jsx_opening_element":      true,
		"jsx_self_closing_element": true,
	},
	attrTypes: map[string]bool{
		"jsx_attribute":  true,
		"jsx_expression": true, // spread attribute {...props}
	},
}

var htmlDialect = &dialect{
	name: "html",
	lang: tshtml.GetLanguage(),
	openers: map[string]bool{
		"start_tag":        true,
		"self_closing_tag": true,
	},
	attrTypes: map[string]bool{
		"attribute": true,
	},
}

// dialects maps the allowed suffix set to grammar configurations.
var dialects = map[string]*dialect{
	".tsx":  tsxDialect,
	".jsx":  tsxDialect,
	".html": htmlDialect,
	".htm":  htmlDialect,
}

// dialectForFile returns the dialect for a file path, or nil if the file
// is not a markup-bearing source file.
func dialectForFile(path string) *dialect {
	return dialects[strings.ToLower(filepath.Ext(path))]
}

// newParser creates a fresh tree-sitter parser for this dialect.
// Parsers are not safe for concurrent use; every caller gets its own.
func (d *dialect) newParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(d.lang)
	return p
}

// tagNameNode returns the node holding an element's tag/component name,
// or nil for a structural grouping construct with no rendered tag
// (a fragment like <>…</>).
func (d *dialect) tagNameNode(el *sitter.Node) *sitter.Node {
	if n := el.ChildByFieldName("name"); n != nil {
		return n
	}
	for i := 0; i < int(el.ChildCount()); i++ {
		if ch := el.Child(i); ch.Type() == "tag_name" {
			return ch
		}
	}
	return nil
}

// firstAttribute returns an element's first author attribute, or nil.
func (d *dialect) firstAttribute(el *sitter.Node) *sitter.Node {
	for i := 0; i < int(el.ChildCount()); i++ {
		if ch := el.Child(i); d.attrTypes[ch.Type()] {
			return ch
		}
	}
	return nil
}

// attributeNames lists the names of an element's existing attributes.
// Spread attributes have no static name and are skipped.
func (d *dialect) attributeNames(el *sitter.Node, source []byte) []string {
	var names []string
	for i := 0; i < int(el.ChildCount()); i++ {
		ch := el.Child(i)
		if !d.attrTypes[ch.Type()] || ch.ChildCount() == 0 {
			continue
		}
		name := ch.Child(0)
		switch name.Type() {
		case "property_identifier", "attribute_name":
			names = append(names, nodeText(name, source))
		}
	}
	return names
}

// nodeText returns the source text of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
