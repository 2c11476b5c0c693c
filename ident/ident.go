/*
Package ident defines the identity-attribute vocabulary shared by the
build-time tagger and the runtime overlay. A tagged markup element
carries a component id derived from its static call site, plus companion
attributes for the originating component name and source location.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package ident

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultAttribute is the attribute key for component ids, unless clients
// configure a different one.
const DefaultAttribute = "data-0x-component-id"

// AutoTagSeed is the first counter value used for runtime-assigned ids.
// It is seeded high so that synthetic ids cannot collide with ids derived
// from source line/column positions.
const AutoTagSeed = 10000

// AutoTagBase is the file-base placeholder used in runtime-assigned ids.
const AutoTagBase = "dynamic"

// Attributes holds the full set of identity attribute keys, derived from
// a single configurable id attribute.
type Attributes struct {
	ID         string // component id, unique per static call site
	Name       string // originating tag/component identifier
	File       string // defining source file, relative to project root
	Line       string // 1-based source line of the opening construct
	Column     string // 1-based source column of the opening construct
	AutoTagged string // runtime flag: element was tagged by the overlay
}

// Derive computes companion attribute keys from an id attribute key.
// For the default key "data-0x-component-id" the companions are
// "data-0x-component-name", "data-0x-component-file", and so on.
// An empty idAttr selects the default attribute.
func Derive(idAttr string) Attributes {
	if idAttr == "" {
		idAttr = DefaultAttribute
	}
	base := strings.TrimSuffix(idAttr, "-id")
	if base == idAttr { // key does not follow the …-id convention
		base = idAttr + "-x"
	}
	return Attributes{
		ID:         idAttr,
		Name:       base + "-name",
		File:       base + "-file",
		Line:       base + "-line",
		Column:     base + "-column",
		AutoTagged: base + "-auto-tagged",
	}
}

// All returns every attribute key, id first.
func (a Attributes) All() []string {
	return []string{a.ID, a.Name, a.File, a.Line, a.Column, a.AutoTagged}
}

// ComponentID composes a component id from a tag/component name, the base
// name of the defining file, and the source position of the element's
// opening construct. line is 1-based, col is 0-based. Composition is
// purely positional: identical inputs always yield identical ids.
func ComponentID(name, fileBase string, line, col int) string {
	return fmt.Sprintf("%s_%s_%d_%d", name, fileBase, line, col)
}

// FileBase returns the base name of a source file path with its extension
// stripped, i.e. the "Page" in "src/Page.tsx".
func FileBase(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseComponentID decomposes a component id into its constituents.
// Component names may themselves contain underscores, so the id is split
// from the right. ok is false if id does not look like a component id.
func ParseComponentID(id string) (name, fileBase string, line, col int, ok bool) {
	parts := strings.Split(id, "_")
	if len(parts) < 4 {
		return "", "", 0, 0, false
	}
	var err error
	if col, err = strconv.Atoi(parts[len(parts)-1]); err != nil {
		return "", "", 0, 0, false
	}
	if line, err = strconv.Atoi(parts[len(parts)-2]); err != nil {
		return "", "", 0, 0, false
	}
	fileBase = parts[len(parts)-3]
	name = strings.Join(parts[:len(parts)-3], "_")
	if name == "" || fileBase == "" {
		return "", "", 0, 0, false
	}
	return name, fileBase, line, col, true
}
