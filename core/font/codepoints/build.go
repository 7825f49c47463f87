package codepoints

import (
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"
	"github.com/npillmayer/imetext/core/font"
	"golang.org/x/image/font/sfnt"
)

// MissingFromFont derives a missing-codepoint bitset from the character map
// of a font: every codepoint up to and including maxRune which the font maps
// to .notdef is marked. Surrogates are never marked.
//
// The result may be stored with ToBytes to create a table for a platform
// whose system font is f.
func MissingFromFont(f *font.ScalableFont, maxRune rune) *bitset.BitSet {
	if maxRune > utf8.MaxRune {
		maxRune = utf8.MaxRune
	}
	bs := bitset.New(uint(maxRune) + 1)
	var buf sfnt.Buffer
	for r := rune(0); r <= maxRune; r++ {
		if r >= 0xD800 && r <= 0xDFFF {
			continue
		}
		if !f.HasGlyph(r, &buf) {
			bs.Set(uint(r))
		}
	}
	tracer().Infof("font %s misses %d of %d codepoints", f.Fontname, bs.Count(), maxRune+1)
	return bs
}
