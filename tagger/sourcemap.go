package tagger

import (
	"encoding/json"
	"strings"
)

// SourceMap is a version-3 source map. The tagging transform only ever
// inserts text within lines, so the map it emits is a line-identity map:
// every generated line maps to the same line of the single source.
type SourceMap struct {
	Version  int      `json:"version"`
	File     string   `json:"file,omitempty"`
	Sources  []string `json:"sources"`
	Names    []string `json:"names"`
	Mappings string   `json:"mappings"`
}

// JSON renders the source map in its canonical JSON encoding.
func (m *SourceMap) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// lineIdentityMap builds a source map mapping every line of code onto
// itself in file.
func lineIdentityMap(code, file string) *SourceMap {
	lines := strings.Count(code, "\n") + 1
	var b strings.Builder
	for i := 0; i < lines; i++ {
		if i == 0 {
			// [generated col 0, source 0, source line 0, source col 0]
			b.WriteString(encodeVLQ(0, 0, 0, 0))
		} else {
			b.WriteByte(';')
			b.WriteString(encodeVLQ(0, 0, 1, 0)) // source line +1
		}
	}
	return &SourceMap{
		Version:  3,
		Sources:  []string{file},
		Names:    []string{},
		Mappings: b.String(),
	}
}

const vlqAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// encodeVLQ encodes a mapping segment as base64 VLQ.
func encodeVLQ(values ...int) string {
	var b strings.Builder
	for _, v := range values {
		u := uint32(v) << 1
		if v < 0 {
			u = uint32(-v)<<1 | 1
		}
		for {
			digit := u & 0x1f
			u >>= 5
			if u > 0 {
				digit |= 0x20 // continuation bit
			}
			b.WriteByte(vlqAlphabet[digit])
			if u == 0 {
				break
			}
		}
	}
	return b.String()
}
