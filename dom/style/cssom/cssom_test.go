package cssom

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/designmode/dom"
)

const page = `<html><head><style>
p { color: red; margin-top: 4px; }
#lead { color: blue; }
.big { font-size: 20px; }
div { color: green !important; }
</style></head><body>
<p id="lead" class="big">Hello <span>world</span></p>
<p>plain</p>
<div style="color: yellow">boxed</div>
<section style="color: purple">inline</section>
</body></html>`

func loadStyles(t *testing.T) (*dom.Document, *Styles) {
	t.Helper()
	doc, err := dom.FromHTMLString(page)
	if err != nil {
		t.Fatalf("cannot parse document: %v", err)
	}
	return doc, FromDocument(doc)
}

func TestSpecificityWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.style")
	defer teardown()
	//
	doc, st := loadStyles(t)
	lead := doc.ElementByID("lead")
	if lead == nil {
		t.Fatal("cannot find #lead")
	}
	if got := st.Property(lead, "color"); got != "blue" {
		t.Errorf("expected #lead color blue, have %q", got)
	}
	if got := st.Property(lead, "font-size"); got != "20px" {
		t.Errorf("expected #lead font-size 20px, have %q", got)
	}
}

func TestInheritedProperty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.style")
	defer teardown()
	//
	doc, st := loadStyles(t)
	span := doc.ElementsByAttr("class", "big")[0].ChildElements()[0]
	if got := st.Property(span, "color"); got != "blue" {
		t.Errorf("expected span to inherit color blue, have %q", got)
	}
	if got := st.Property(span, "margin-top"); got != "" {
		t.Errorf("expected margin-top not to inherit, have %q", got)
	}
}

func TestInlineBeatsSheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.style")
	defer teardown()
	//
	doc, st := loadStyles(t)
	section := doc.ElementsByAttr("style", "color: purple")[0]
	if got := st.Property(section, "color"); got != "purple" {
		t.Errorf("expected inline purple, have %q", got)
	}
}

func TestImportantBeatsInline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.style")
	defer teardown()
	//
	doc, st := loadStyles(t)
	div := doc.ElementsByAttr("style", "color: yellow")[0]
	if got := st.Property(div, "color"); got != "green" {
		t.Errorf("expected !important green to beat inline, have %q", got)
	}
}

func TestComputedSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.style")
	defer teardown()
	//
	doc, st := loadStyles(t)
	lead := doc.ElementByID("lead")
	styles := st.Computed(lead, []string{"color", "font-size", "display"})
	if styles["color"] != "blue" || styles["font-size"] != "20px" {
		t.Errorf("unexpected computed set: %v", styles)
	}
	if _, ok := styles["display"]; ok {
		t.Error("expected unset display to be absent from computed set")
	}
}
