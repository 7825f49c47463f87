/*
Package codepoints decides whether a label can be drawn on a platform version.

For every supported platform version there is a bitset, indexed by Unicode
codepoint, where a set bit means "this codepoint has no glyph on this
version". Tables exist for versions 16, 19 and 21. Any other version uses
the table of 21 if it is above 21 or equal to 20, and the table of 16
otherwise.

Tables are loaded once and never modified afterwards, so lookups need no
locking. Loading does not fail on unreadable tables: an empty table is
substituted, which flags no codepoint at all. A label is therefore rather
treated as drawable than suppressed.

Bitsets are stored little-endian: bit n is bit n%8 of byte n/8.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package codepoints

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bitset"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/imetext/core"
	"github.com/npillmayer/imetext/core/locate/resources"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'imetext.codepoints'
func tracer() tracing.Trace {
	return tracing.Select("imetext.codepoints")
}

// Versions with a table of their own.
var tableResources = map[int]resources.ID{
	16: resources.UnicodeAPI16,
	19: resources.UnicodeAPI19,
	21: resources.UnicodeAPI21,
}

// FallbackVersion returns the table version to use for a platform version
// without a table of its own.
func FallbackVersion(version int) int {
	if version > 21 || version == 20 {
		return 21
	}
	return 16
}

// Table holds the missing-codepoint bitsets per platform version.
type Table struct {
	tables    *treemap.Map // int -> *bitset.BitSet
	platform  int
	effective int
	incidents core.IncidentHandler
}

// Option configures a table.
type Option func(*Table)

// WithIncidents sets a handler for unreadable tables and version fallbacks.
func WithIncidents(h core.IncidentHandler) Option {
	return func(t *Table) {
		if h != nil {
			t.incidents = h
		}
	}
}

// Load reads the tables for all versions from loader and selects the table
// for the running platform version. Tables which cannot be read are replaced
// by empty ones. The error is non-nil only if loader is nil.
func Load(loader resources.Loader, platform int, opts ...Option) (*Table, error) {
	if loader == nil {
		return nil, core.Error(core.EINVALID, "codepoint tables need a resource loader")
	}
	t := &Table{
		tables:    treemap.NewWithIntComparator(),
		platform:  platform,
		incidents: core.Discard,
	}
	for _, opt := range opts {
		opt(t)
	}
	for version, id := range tableResources {
		data := resources.ReadOrEmpty(loader, id, t.incidents)
		bs := FromBytes(data)
		tracer().Debugf("API %d: %d codepoints missing", version, bs.Count())
		t.tables.Put(version, bs)
	}
	t.effective = t.resolve(platform)
	return t, nil
}

// resolve maps a platform version to a version with a table.
func (t *Table) resolve(version int) int {
	if _, ok := t.tables.Get(version); ok {
		return version
	}
	fallback := FallbackVersion(version)
	tracer().Infof("warning: no missing codepoints for API %d; falling back to %d", version, fallback)
	t.incidents.Incident(core.Error(core.EUNSUPPORTED,
		"no missing codepoints for API %d; falling back to %d", version, fallback))
	return fallback
}

// Platform returns the running platform version the table was loaded for.
func (t *Table) Platform() int {
	return t.platform
}

// EffectiveVersion returns the version whose table is used for the running
// platform.
func (t *Table) EffectiveVersion() int {
	return t.effective
}

// Versions returns the versions with a table of their own, ascending.
func (t *Table) Versions() []int {
	keys := t.tables.Keys()
	versions := make([]int, len(keys))
	for i, k := range keys {
		versions[i] = k.(int)
	}
	return versions
}

// IsGlyphDrawable returns true if no codepoint of text is marked as missing
// for the running platform. The empty string is drawable.
func (t *Table) IsGlyphDrawable(text string) bool {
	return drawable(t.bitset(t.effective), text)
}

// IsGlyphDrawableOn is IsGlyphDrawable for an arbitrary platform version.
func (t *Table) IsGlyphDrawableOn(version int, text string) bool {
	if version == t.platform {
		return t.IsGlyphDrawable(text)
	}
	return drawable(t.bitset(t.resolve(version)), text)
}

// Missing returns the codepoints of text which are marked as missing for the
// running platform, in order of appearance.
func (t *Table) Missing(text string) []rune {
	bs := t.bitset(t.effective)
	var missing []rune
	for _, r := range text {
		if isMissing(bs, r) {
			missing = append(missing, r)
		}
	}
	return missing
}

func (t *Table) bitset(version int) *bitset.BitSet {
	if bs, ok := t.tables.Get(version); ok {
		return bs.(*bitset.BitSet)
	}
	return &bitset.BitSet{}
}

func drawable(bs *bitset.BitSet, text string) bool {
	for _, r := range text {
		if isMissing(bs, r) {
			return false
		}
	}
	return true
}

func isMissing(bs *bitset.BitSet, r rune) bool {
	if r < 0 {
		return false
	}
	return bs.Test(uint(r))
}

// --- Encoding --------------------------------------------------------------

// FromBytes decodes a little-endian bitset. An empty slice gives an empty set.
func FromBytes(data []byte) *bitset.BitSet {
	words := make([]uint64, (len(data)+7)/8)
	var chunk [8]byte
	for i := range words {
		n := copy(chunk[:], data[i*8:])
		for j := n; j < 8; j++ {
			chunk[j] = 0
		}
		words[i] = binary.LittleEndian.Uint64(chunk[:])
	}
	return bitset.From(words)
}

// ToBytes encodes a bitset little-endian, trimming trailing zero bytes.
func ToBytes(bs *bitset.BitSet) []byte {
	words := bs.Bytes()
	data := make([]byte, 8*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint64(data[i*8:], w)
	}
	n := len(data)
	for n > 0 && data[n-1] == 0 {
		n--
	}
	return data[:n]
}
