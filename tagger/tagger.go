package tagger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/npillmayer/designmode/ident"
)

// Options configures a Tagger. The zero value enables the transform in
// development builds only, admits every markup-bearing file, and writes
// the default identity attributes including file path and line numbers.
type Options struct {
	Enabled           *bool    // force on/off; default: development-mode detection
	Include           []string // glob patterns of files to process
	Exclude           []string // glob patterns of files to skip; evaluated first, wins
	AttributeName     string   // id attribute key; default ident.DefaultAttribute
	IncludeFilePath   *bool    // write the file attribute; default true
	IncludeLineNumber *bool    // write line/column attributes; default true
	RootDir           string   // base directory for relative file paths
	Debug             bool     // verbose trace output
}

// Result is a successful transformation: the rewritten source plus a
// source map. A nil *Result signals "no transformation needed".
type Result struct {
	Code string
	Map  *SourceMap
}

// Tagger is the build-time transform. A Tagger is immutable after
// construction and safe for concurrent use across files.
type Tagger struct {
	enabled     bool
	attrs       ident.Attributes
	identitySet map[string]bool
	filter      *fileFilter
	includeFile bool
	includeLine bool
	rootDir     string
	debug       bool
}

// New creates a Tagger from opts.
func New(opts Options) *Tagger {
	t := &Tagger{
		enabled:     boolOpt(opts.Enabled, developmentMode()),
		attrs:       ident.Derive(opts.AttributeName),
		filter:      newFileFilter(opts.Include, opts.Exclude),
		includeFile: boolOpt(opts.IncludeFilePath, true),
		includeLine: boolOpt(opts.IncludeLineNumber, true),
		rootDir:     opts.RootDir,
		debug:       opts.Debug,
	}
	t.identitySet = make(map[string]bool, 6)
	for _, key := range t.attrs.All() {
		t.identitySet[key] = true
	}
	return t
}

// Bool wraps a literal for the optional bool options.
func Bool(b bool) *bool { return &b }

func boolOpt(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// developmentMode reports whether the build environment looks like a
// development build. DESIGNMODE_ENV takes precedence over NODE_ENV.
func developmentMode() bool {
	env := os.Getenv("DESIGNMODE_ENV")
	if env == "" {
		env = os.Getenv("NODE_ENV")
	}
	return env == "development"
}

// Transform rewrites code so that every qualifying markup element carries
// the identity attributes. fileID identifies the source file; it selects
// the dialect and becomes part of every component id.
//
// Transform returns nil if the transform is disabled, the file is not
// eligible, or no element qualifies. A parse failure is a recoverable
// per-file fault: it is logged and the file is left untouched — it never
// aborts a build.
func (t *Tagger) Transform(code, fileID string) *Result {
	if !t.enabled {
		return nil
	}
	d := dialectForFile(fileID)
	if d == nil {
		return nil
	}
	if !t.filter.admits(t.relPath(fileID)) {
		if t.debug {
			tracer().Debugf("tagger: %s excluded by pattern", fileID)
		}
		return nil
	}
	parser := d.newParser()
	src := []byte(code)
	syntree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil || syntree == nil {
		tracer().Errorf("tagger: parse failure in %s: %v", fileID, err)
		return nil
	}
	defer syntree.Close()
	if syntree.RootNode().HasError() {
		tracer().Errorf("tagger: syntax errors in %s, file skipped", fileID)
		return nil
	}
	splices := t.collectSplices(d, syntree.RootNode(), src, fileID)
	if len(splices) == 0 {
		return nil
	}
	out := applySplices(code, splices)
	if t.debug {
		tracer().Debugf("tagger: %s: tagged %d elements", fileID, len(splices))
	}
	return &Result{
		Code: out,
		Map:  lineIdentityMap(code, t.relPath(fileID)),
	}
}

// splice is a pending text insertion at a byte offset.
type splice struct {
	pos  uint32
	text string
}

// collectSplices walks the syntax tree and produces one insertion per
// qualifying element.
func (t *Tagger) collectSplices(d *dialect, root *sitter.Node, src []byte, fileID string) []splice {
	var splices []splice
	relpath := t.relPath(fileID)
	base := ident.FileBase(fileID)
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if d.openers[n.Type()] {
			if sp, ok := t.spliceFor(d, n, src, relpath, base); ok {
				splices = append(splices, sp)
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return splices
}

// spliceFor decides whether an element qualifies for tagging and builds
// its insertion. Fragments (no rendered tag) and elements already
// carrying any identity attribute do not qualify.
func (t *Tagger) spliceFor(d *dialect, el *sitter.Node, src []byte, relpath, base string) (splice, bool) {
	name := d.tagNameNode(el)
	if name == nil {
		return splice{}, false // fragment
	}
	for _, attr := range d.attributeNames(el, src) {
		if t.identitySet[attr] {
			return splice{}, false // already tagged
		}
	}
	tag := nodeText(name, src)
	pt := el.StartPoint()
	line := int(pt.Row) + 1
	col := int(pt.Column)
	attrText := t.attrText(tag, relpath, base, line, col)

	if first := d.firstAttribute(el); first != nil {
		// land before the first author attribute, preserving their order
		return splice{pos: first.StartByte(), text: attrText + " "}, true
	}
	pos := closingPos(el)
	if pos > 0 && isSpace(src[pos-1]) {
		return splice{pos: pos, text: attrText + " "}, true
	}
	return splice{pos: pos, text: " " + attrText}, true
}

// attrText renders the identity attributes for one element.
func (t *Tagger) attrText(tag, relpath, base string, line, col int) string {
	var b strings.Builder
	id := ident.ComponentID(tag, base, line, col)
	fmt.Fprintf(&b, `%s=%q %s=%q`, t.attrs.ID, id, t.attrs.Name, tag)
	if t.includeFile {
		fmt.Fprintf(&b, ` %s=%q`, t.attrs.File, relpath)
	}
	if t.includeLine {
		// attribute columns are 1-based; the id keeps the 0-based column
		fmt.Fprintf(&b, ` %s="%d" %s="%d"`, t.attrs.Line, line, t.attrs.Column, col+1)
	}
	return b.String()
}

// closingPos finds the byte offset of the token closing an element's
// opening construct: the '/' of a self-closing form, else the '>'.
func closingPos(el *sitter.Node) uint32 {
	for i := 0; i < int(el.ChildCount()); i++ {
		if typ := el.Child(i).Type(); typ == "/" || typ == "/>" {
			return el.Child(i).StartByte()
		}
	}
	return el.EndByte() - 1
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// applySplices inserts all pending texts back-to-front, so earlier byte
// offsets stay valid.
func applySplices(code string, splices []splice) string {
	sort.Slice(splices, func(i, j int) bool { return splices[i].pos > splices[j].pos })
	for _, sp := range splices {
		code = code[:sp.pos] + sp.text + code[sp.pos:]
	}
	return code
}

// relPath makes fileID relative to the configured root directory, with
// forward slashes.
func (t *Tagger) relPath(fileID string) string {
	if t.rootDir != "" {
		if rel, err := filepath.Rel(t.rootDir, fileID); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(fileID)
}
