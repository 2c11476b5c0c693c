package ident

import "testing"

func TestDeriveCompanions(t *testing.T) {
	a := Derive("")
	if a.ID != DefaultAttribute {
		t.Errorf("expected default id attribute, have %q", a.ID)
	}
	if a.Name != "data-0x-component-name" {
		t.Errorf("unexpected name attribute: %q", a.Name)
	}
	if a.AutoTagged != "data-0x-component-auto-tagged" {
		t.Errorf("unexpected auto-tag attribute: %q", a.AutoTagged)
	}
}

func TestComponentID(t *testing.T) {
	id := ComponentID("div", "Page", 3, 5)
	if id != "div_Page_3_5" {
		t.Errorf("expected div_Page_3_5, have %q", id)
	}
}

func TestFileBase(t *testing.T) {
	if b := FileBase("src/components/Page.tsx"); b != "Page" {
		t.Errorf("expected Page, have %q", b)
	}
	if b := FileBase("index.html"); b != "index" {
		t.Errorf("expected index, have %q", b)
	}
}

func TestParseComponentID(t *testing.T) {
	name, base, line, col, ok := ParseComponentID("My_Button_Page_12_4")
	if !ok {
		t.Fatal("expected id to parse")
	}
	if name != "My_Button" || base != "Page" || line != 12 || col != 4 {
		t.Errorf("unexpected parse: %s %s %d %d", name, base, line, col)
	}
	if _, _, _, _, ok := ParseComponentID("garbage"); ok {
		t.Error("expected garbage not to parse")
	}
}
