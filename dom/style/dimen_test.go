package style

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseDimenZeroForms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.style")
	defer teardown()
	//
	for _, zero := range []string{"0", "0px", "0em", "0pt", "0%"} {
		d := ParseDimen(Property(zero))
		if !d.IsZero() {
			t.Errorf("expected %q to parse as zero-length, didn't", zero)
		}
	}
	for _, nonzero := range []string{"10px", "1.5em", "50%", "auto", "inherit", "initial"} {
		d := ParseDimen(Property(nonzero))
		if d.IsZero() {
			t.Errorf("expected %q not to be zero-length, is", nonzero)
		}
	}
}

// The relative unit codes are enumerated values sharing bits with each
// other; units overlapping the percent code must not be mistaken for
// percentages (which would make every such value look zero-length).
func TestParseDimenRelativeUnitsNotZero(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.style")
	defer teardown()
	//
	for _, nonzero := range []string{"2em", "1.5ch", "10vw", "3vmin", "4vmax", "2rem", "5vh", "1ex"} {
		d := ParseDimen(Property(nonzero))
		if !d.IsRelative() {
			t.Errorf("expected %q to be relative, is %#v", nonzero, d)
		}
		if d.IsZero() {
			t.Errorf("expected %q not to be zero-length, is", nonzero)
		}
	}
	for _, zero := range []string{"0ch", "0vw", "0vmin", "0vmax", "0rem", "0vh", "0ex"} {
		if d := ParseDimen(Property(zero)); !d.IsZero() {
			t.Errorf("expected %q to parse as zero-length, didn't", zero)
		}
	}
}

func TestParseDimenKinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.style")
	defer teardown()
	//
	if d := ParseDimen("auto"); d.IsNone() || d.IsAbsolute() {
		t.Errorf("expected auto to be a keyword dimension, is %#v", d)
	}
	if d := ParseDimen("12px"); !d.IsAbsolute() {
		t.Errorf("expected 12px to be absolute, is %#v", d)
	}
	if d := ParseDimen("2rem"); !d.IsRelative() {
		t.Errorf("expected 2rem to be relative, is %#v", d)
	}
	if d := ParseDimen("banana"); !d.IsNone() {
		t.Errorf("expected garbage to be none, is %#v", d)
	}
	if d := ParseDimen(""); !d.IsNone() {
		t.Errorf("expected empty to be none, is %#v", d)
	}
}

func TestIsCascading(t *testing.T) {
	if !IsCascading("color") {
		t.Error("expected color to cascade")
	}
	if IsCascading("margin-top") {
		t.Error("expected margin-top not to cascade")
	}
}
