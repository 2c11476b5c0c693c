package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	dimenEM      uint32 = 0x0100
	dimenEX      uint32 = 0x0200
	dimenCH      uint32 = 0x0300
	dimenREM     uint32 = 0x0400
	dimenVW      uint32 = 0x0500
	dimenVH      uint32 = 0x0600
	dimenVMIN    uint32 = 0x0700
	dimenVMAX    uint32 = 0x0800
	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

// DimenT is an option type for CSS dimensions.
//
//	DimenT = Auto | Inherit | Initial
//	       | JustDimen dimen
//	       | Percentage percent
//	       | FontRel unit | ViewRel unit
type DimenT struct {
	d       dimen.DU // device units for absolute dimensions
	percent percent.Percent
	rel     float64 // scalar for font-/viewport-relative units
	flags   uint32
}

// Auto creates the CSS dimension "auto".
func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

// Inherit creates the CSS dimension "inherit".
func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

// Initial creates the CSS dimension "initial".
func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value.
func Percentage(n percent.Percent) DimenT {
	return DimenT{percent: n, flags: dimenPercent}
}

// IsNone reports whether d holds no dimension at all (unparsable or
// empty input).
func (d DimenT) IsNone() bool {
	return d.flags == dimenNone
}

// IsAbsolute reports whether d is a fixed dimension.
func (d DimenT) IsAbsolute() bool {
	return d.flags&kindMask == dimenAbsolute
}

// IsRelative reports whether d is font-, viewport- or %-relative.
func (d DimenT) IsRelative() bool {
	return d.flags&relativeMask > 0
}

// IsZero reports whether d is a zero-length dimension: "0", "0px",
// "0em", "0%" and friends. Keyword dimensions (auto, inherit, initial)
// are never zero. The unit codes in the relative field are enumerated
// values, not bit flags, so they must compare against the whole field.
func (d DimenT) IsZero() bool {
	switch {
	case d.IsAbsolute():
		return d.d == 0
	case d.flags&kindMask != dimenNone:
		return false // auto / inherit / initial
	case d.flags&relativeMask == dimenPercent:
		return d.percent == 0
	case d.IsRelative():
		return d.rel == 0
	}
	return false
}

// Unwrap returns the device units of an absolute dimension.
func (d DimenT) Unwrap() dimen.DU {
	return d.d
}

// pxToDU converts CSS pixels to device units (1px = 0.75pt).
func pxToDU(f float64) dimen.DU {
	return dimen.DU(math.Round(f * 0.75 * float64(dimen.PT)))
}

var relUnits = map[string]uint32{
	"em":   dimenEM,
	"ex":   dimenEX,
	"ch":   dimenCH,
	"rem":  dimenREM,
	"vw":   dimenVW,
	"vh":   dimenVH,
	"vmin": dimenVMIN,
	"vmax": dimenVMAX,
}

// ParseDimen parses a CSS dimension value. Unparsable input yields the
// none-dimension (check with IsNone).
func ParseDimen(p Property) DimenT {
	s := strings.TrimSpace(strings.ToLower(p.String()))
	switch s {
	case "":
		return DimenT{}
	case "auto":
		return Auto()
	case "inherit":
		return Inherit()
	case "initial":
		return Initial()
	}
	num, unit := splitUnit(s)
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return DimenT{}
	}
	switch unit {
	case "", "px":
		return JustDimen(pxToDU(f))
	case "pt":
		return JustDimen(dimen.DU(math.Round(f * float64(dimen.PT))))
	case "%":
		return Percentage(percent.Percent(math.Round(f)))
	default:
		if flag, ok := relUnits[unit]; ok {
			return DimenT{rel: f, flags: flag}
		}
	}
	return DimenT{}
}

// splitUnit splits "12.5px" into "12.5" and "px".
func splitUnit(s string) (num, unit string) {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if c >= '0' && c <= '9' || c == '.' || c == '-' {
			break
		}
		i--
	}
	return s[:i], s[i:]
}
