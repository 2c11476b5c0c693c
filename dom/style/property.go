package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Property is a raw value for a CSS property. For example, with
//
//	color: black
//
// a property value of "black" is set. Wrapping the raw string into type
// Property buys us a small set of conversion helpers.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial".
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit".
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// inheritedProperties lists the property keys that cascade from parent
// to child when not set locally.
var inheritedProperties = map[string]bool{
	"color":           true,
	"font-family":     true,
	"font-size":       true,
	"font-style":      true,
	"font-weight":     true,
	"line-height":     true,
	"letter-spacing":  true,
	"text-align":      true,
	"text-transform":  true,
	"visibility":      true,
	"white-space":     true,
	"list-style-type": true,
	"cursor":          true,
}

// IsCascading reports whether a property key is inherited along the
// document tree.
func IsCascading(key string) bool {
	return inheritedProperties[key]
}
