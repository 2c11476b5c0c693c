package tagger

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageSource = "const page =\n  (\n     <div><h1>Hello</h1></div>\n  );\n"

func enabledTagger(opts Options) *Tagger {
	opts.Enabled = Bool(true)
	return New(opts)
}

func TestTagSimpleElement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.tagger")
	defer teardown()
	//
	tg := enabledTagger(Options{})
	res := tg.Transform(pageSource, "Page.tsx")
	require.NotNil(t, res, "expected a transformation")
	assert.Contains(t, res.Code, `data-0x-component-id="div_Page_3_5"`)
	assert.Contains(t, res.Code, `data-0x-component-name="div"`)
	assert.Contains(t, res.Code, `data-0x-component-id="h1_Page_3_10"`)
	assert.Contains(t, res.Code, `data-0x-component-file="Page.tsx"`)
	assert.Contains(t, res.Code, `data-0x-component-line="3"`)
	require.NotNil(t, res.Map)
	assert.Equal(t, 3, res.Map.Version)
}

func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.tagger")
	defer teardown()
	//
	tg := enabledTagger(Options{})
	first := tg.Transform(pageSource, "Page.tsx")
	second := tg.Transform(pageSource, "Page.tsx")
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Code, second.Code)
}

func TestIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.tagger")
	defer teardown()
	//
	tg := enabledTagger(Options{})
	first := tg.Transform(pageSource, "Page.tsx")
	require.NotNil(t, first)
	second := tg.Transform(first.Code, "Page.tsx")
	assert.Nil(t, second, "re-running the transform on tagged output must be a no-op")
	assert.Equal(t, 2, strings.Count(first.Code, "data-0x-component-id="))
}

func TestAttributePlacement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.tagger")
	defer teardown()
	//
	src := "const b = <button className=\"cta\" onClick={go}>Go</button>;\n"
	tg := enabledTagger(Options{})
	res := tg.Transform(src, "Button.tsx")
	require.NotNil(t, res)
	idPos := strings.Index(res.Code, "data-0x-component-id=")
	classPos := strings.Index(res.Code, `className="cta"`)
	clickPos := strings.Index(res.Code, "onClick={go}")
	require.True(t, idPos >= 0 && classPos >= 0 && clickPos >= 0)
	assert.Less(t, idPos, classPos, "identity attributes land before author attributes")
	assert.Less(t, classPos, clickPos, "author attribute order is preserved")
}

func TestSelfClosingElement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.tagger")
	defer teardown()
	//
	src := "const i = <img/>;\n"
	tg := enabledTagger(Options{})
	res := tg.Transform(src, "Image.tsx")
	require.NotNil(t, res)
	assert.Contains(t, res.Code, `<img data-0x-component-id="img_Image_1_10"`)
	assert.Contains(t, res.Code, "/>")
	idPos := strings.Index(res.Code, "data-0x-component-id=")
	slashPos := strings.Index(res.Code, "/>")
	assert.Less(t, idPos, slashPos)
}

func TestFragmentSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.tagger")
	defer teardown()
	//
	src := "const f = <><span>hi</span></>;\n"
	tg := enabledTagger(Options{})
	res := tg.Transform(src, "Frag.tsx")
	require.NotNil(t, res)
	assert.Contains(t, res.Code, `span_Frag_1_12`)
	assert.Equal(t, 1, strings.Count(res.Code, "data-0x-component-id="),
		"the fragment itself must not be tagged")
}

func TestExclusionWinsOverInclusion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.tagger")
	defer teardown()
	//
	tg := enabledTagger(Options{
		Include: []string{"src/**"},
		Exclude: []string{"**/vendor/**"},
	})
	excluded := tg.Transform(pageSource, "src/vendor/Page.tsx")
	assert.Nil(t, excluded, "file matching an exclude glob is never modified")
	included := tg.Transform(pageSource, "src/Page.tsx")
	assert.NotNil(t, included)
}

func TestNoElementsMeansNoResult(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.tagger")
	defer teardown()
	//
	tg := enabledTagger(Options{})
	assert.Nil(t, tg.Transform("const x = 1;\n", "math.tsx"))
	assert.Nil(t, tg.Transform(pageSource, "Page.go"), "unknown suffix")
}

func TestDisabledTaggerIsInert(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.tagger")
	defer teardown()
	//
	tg := New(Options{Enabled: Bool(false)})
	assert.Nil(t, tg.Transform(pageSource, "Page.tsx"))
}

func TestParseFailureIsRecoverable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.tagger")
	defer teardown()
	//
	tg := enabledTagger(Options{})
	res := tg.Transform("const page = (<div>\n", "Broken.tsx")
	assert.Nil(t, res, "syntax errors leave the file untouched")
}

func TestHTMLDialect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.tagger")
	defer teardown()
	//
	src := `<html><body><div id="app">content</div></body></html>`
	tg := enabledTagger(Options{})
	res := tg.Transform(src, "index.html")
	require.NotNil(t, res)
	assert.Contains(t, res.Code, `div_index_1_12`)
	idPos := strings.Index(res.Code, `data-0x-component-id="div_index_1_12"`)
	appPos := strings.Index(res.Code, `id="app"`)
	assert.Less(t, idPos, appPos, "identity attributes land before author attributes")
}

func TestOptionalAttributesOmitted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.tagger")
	defer teardown()
	//
	tg := enabledTagger(Options{
		IncludeFilePath:   Bool(false),
		IncludeLineNumber: Bool(false),
	})
	res := tg.Transform(pageSource, "Page.tsx")
	require.NotNil(t, res)
	assert.NotContains(t, res.Code, "data-0x-component-file=")
	assert.NotContains(t, res.Code, "data-0x-component-line=")
	assert.Contains(t, res.Code, "data-0x-component-id=")
}

func TestCustomAttributeName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.tagger")
	defer teardown()
	//
	tg := enabledTagger(Options{AttributeName: "data-dm-id"})
	res := tg.Transform(pageSource, "Page.tsx")
	require.NotNil(t, res)
	assert.Contains(t, res.Code, `data-dm-id="div_Page_3_5"`)
	assert.Contains(t, res.Code, `data-dm-name="div"`)
}
