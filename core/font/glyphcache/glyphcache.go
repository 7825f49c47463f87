/*
Package glyphcache memoizes the pixel geometry of single characters of key
labels.

Keyboards measure the same few characters over and over again, in a small
set of sizes and families. A Cache keeps the measured height and width of a
character per (character, size, family) and measures only on the first
request. Entries are never evicted; the key space is bounded by the
characters actually drawn.

Heights and widths live in separate maps guarded by separate locks: a
caller asking for a height never waits for a caller asking for a width.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphcache

import (
	"sync"

	"github.com/npillmayer/imetext/core/font"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'imetext.glyphs'
func tracer() tracing.Trace {
	return tracing.Select("imetext.glyphs")
}

// Offsets added to a cache key per family.
const (
	boldOffset      = 0x1000
	monospaceOffset = 0x2000
)

// Key packs a character, the integer part of a paint's size and the paint's
// family into a single integer: the character is shifted left by 15 bits, the
// size is added, plus 0x1000 for bold and 0x2000 for monospace. Other
// families share the offset of the default family.
//
// Keys are unique as long as sizes are below font.MaxSize.
func Key(ch rune, paint font.Paint) uint64 {
	key := uint64(uint32(ch)) << 15
	key += uint64(int(paint.Size))
	switch paint.Family {
	case font.FamilyBold:
		key += boldOffset
	case font.FamilyMonospace:
		key += monospaceOffset
	}
	return key
}

// metric is one side of the cache, either heights or widths.
type metric struct {
	sync.Mutex
	values map[uint64]float32
	bounds fixed.Rectangle26_6 // scratch, guarded by the mutex
}

// Cache memoizes character heights and widths.
// It is safe for concurrent use.
type Cache struct {
	measurer font.Measurer
	heights  metric
	widths   metric
}

// New creates a cache measuring with m.
func New(m font.Measurer) *Cache {
	if m == nil {
		panic("glyph cache needs a measurer")
	}
	return &Cache{
		measurer: m,
		heights:  metric{values: make(map[uint64]float32)},
		widths:   metric{values: make(map[uint64]float32)},
	}
}

// Height returns the height in pixels of ch drawn with paint.
func (c *Cache) Height(ch rune, paint font.Paint) float32 {
	key := Key(ch, paint)
	c.heights.Lock()
	defer c.heights.Unlock()
	if h, ok := c.heights.values[key]; ok {
		return h
	}
	c.heights.bounds = c.measurer.TextBounds(string(ch), paint)
	h := font.Height(c.heights.bounds)
	tracer().Debugf("height of %#U at %.1f/%s = %.2f", ch, paint.Size, paint.Family, h)
	c.heights.values[key] = h
	return h
}

// Width returns the width in pixels of ch drawn with paint.
func (c *Cache) Width(ch rune, paint font.Paint) float32 {
	key := Key(ch, paint)
	c.widths.Lock()
	defer c.widths.Unlock()
	if w, ok := c.widths.values[key]; ok {
		return w
	}
	c.widths.bounds = c.measurer.TextBounds(string(ch), paint)
	w := font.Width(c.widths.bounds)
	tracer().Debugf("width of %#U at %.1f/%s = %.2f", ch, paint.Size, paint.Family, w)
	c.widths.values[key] = w
	return w
}

// StringWidth measures the width of s without caching. It shares the scratch
// bounds of the width side and therefore waits for concurrent Width calls.
func (c *Cache) StringWidth(s string, paint font.Paint) float32 {
	c.widths.Lock()
	defer c.widths.Unlock()
	c.widths.bounds = c.measurer.TextBounds(s, paint)
	return font.Width(c.widths.bounds)
}

// LabelWidth measures the width of label without caching and without
// touching shared state.
func (c *Cache) LabelWidth(label string, paint font.Paint) float32 {
	bounds := c.measurer.TextBounds(label, paint)
	return font.Width(bounds)
}

// Len returns the number of cached heights and widths.
func (c *Cache) Len() (heights int, widths int) {
	c.heights.Lock()
	heights = len(c.heights.values)
	c.heights.Unlock()
	c.widths.Lock()
	widths = len(c.widths.values)
	c.widths.Unlock()
	return
}
