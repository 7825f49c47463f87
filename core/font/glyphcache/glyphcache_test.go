package glyphcache

import (
	"sync"
	"testing"
	"time"

	"github.com/npillmayer/imetext/core/font"
	"github.com/npillmayer/imetext/core/font/fontregistry"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/fixed"
)

// countingMeasurer reports a box of size×(size/2) for every text and counts calls.
type countingMeasurer struct {
	mx    sync.Mutex
	calls map[string]int
}

func (m *countingMeasurer) TextBounds(text string, paint font.Paint) fixed.Rectangle26_6 {
	m.mx.Lock()
	defer m.mx.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[text]++
	w := fixed.I(int(paint.Size) * len([]rune(text)))
	h := fixed.I(int(paint.Size) / 2)
	return fixed.Rectangle26_6{Max: fixed.Point26_6{X: w, Y: h}}
}

func (m *countingMeasurer) count(text string) int {
	m.mx.Lock()
	defer m.mx.Unlock()
	return m.calls[text]
}

func TestCachedHeightAndWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "imetext.glyphs")
	defer teardown()
	//
	m := &countingMeasurer{}
	c := New(m)
	p := font.Paint{Size: 20, Family: font.FamilyBold}
	h1 := c.Height('a', p)
	h2 := c.Height('a', p)
	assert.Equal(t, float32(10), h1)
	assert.Equal(t, h1, h2)
	assert.Equal(t, 1, m.count("a"), "expected a single measurement for the height")
	w1 := c.Width('a', p)
	w2 := c.Width('a', p)
	assert.Equal(t, float32(20), w1)
	assert.Equal(t, w1, w2)
	assert.Equal(t, 2, m.count("a"), "expected a single measurement for the width")
	c.Width('a', font.Paint{Size: 20.7, Family: font.FamilyBold}) // same integer size
	assert.Equal(t, 2, m.count("a"))
	c.Width('a', font.Paint{Size: 20, Family: font.FamilyMonospace})
	assert.Equal(t, 3, m.count("a"))
	hs, ws := c.Len()
	assert.Equal(t, 1, hs)
	assert.Equal(t, 2, ws)
}

func TestUncachedWidths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "imetext.glyphs")
	defer teardown()
	//
	m := &countingMeasurer{}
	c := New(m)
	p := font.Paint{Size: 10}
	assert.Equal(t, float32(30), c.StringWidth("abc", p))
	assert.Equal(t, float32(30), c.StringWidth("abc", p))
	assert.Equal(t, float32(40), c.LabelWidth("Shft", p))
	assert.Equal(t, float32(40), c.LabelWidth("Shft", p))
	assert.Equal(t, 2, m.count("abc"))
	assert.Equal(t, 2, m.count("Shft"))
	hs, ws := c.Len()
	assert.Zero(t, hs+ws)
}

func TestKeyFamilies(t *testing.T) {
	p := font.Paint{Size: 17}
	assert.Equal(t, uint64('A')<<15+17, Key('A', p))
	p.Family = font.FamilyBold
	assert.Equal(t, uint64('A')<<15+17+0x1000, Key('A', p))
	p.Family = font.FamilyMonospace
	assert.Equal(t, uint64('A')<<15+17+0x2000, Key('A', p))
	p.Family = font.FamilyCustom
	assert.Equal(t, Key('A', font.Paint{Size: 17}), Key('A', p), "other families use the default offset")
}

func TestKeyInjective(t *testing.T) {
	type triple struct {
		ch   rune
		size int
		fam  font.Family
	}
	seen := make(map[uint64]triple)
	chars := []rune{}
	for ch := rune(0); ch < 0x180; ch++ {
		chars = append(chars, ch)
	}
	for ch := rune(0x1FF80); ch < 0x20000; ch++ {
		chars = append(chars, ch)
	}
	sizes := []int{0, 1, 2, 11, 12, 48, 255, 256, 1000, 0x0FFE, font.MaxSize - 1}
	fams := []font.Family{font.FamilyDefault, font.FamilyBold, font.FamilyMonospace}
	for _, ch := range chars {
		for _, s := range sizes {
			for _, f := range fams {
				k := Key(ch, font.Paint{Size: float32(s), Family: f})
				tr := triple{ch, s, f}
				if other, dup := seen[k]; dup {
					t.Fatalf("key collision between %v and %v", other, tr)
				}
				seen[k] = tr
			}
		}
	}
}

// blockingMeasurer blocks measurements of size 99 until released.
type blockingMeasurer struct {
	entered chan struct{}
	release chan struct{}
}

func (m *blockingMeasurer) TextBounds(text string, paint font.Paint) fixed.Rectangle26_6 {
	if paint.Size == 99 {
		m.entered <- struct{}{}
		<-m.release
	}
	return fixed.Rectangle26_6{Max: fixed.Point26_6{X: fixed.I(1), Y: fixed.I(1)}}
}

func TestHeightDoesNotBlockWidth(t *testing.T) {
	m := &blockingMeasurer{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := New(m)
	done := make(chan float32)
	go func() {
		done <- c.Height('x', font.Paint{Size: 99})
	}()
	<-m.entered // height side is now locked and measuring
	widthDone := make(chan struct{})
	go func() {
		c.Width('x', font.Paint{Size: 12})
		close(widthDone)
	}()
	select {
	case <-widthDone:
	case <-time.After(2 * time.Second):
		t.Fatal("width lookup waited for a height measurement")
	}
	close(m.release)
	assert.Equal(t, float32(1), <-done)
}

func TestConcurrentLookups(t *testing.T) {
	m := &countingMeasurer{}
	c := New(m)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, ch := range "qwertzuiop" {
				c.Height(ch, font.Paint{Size: 14})
				c.Width(ch, font.Paint{Size: 14})
			}
		}()
	}
	wg.Wait()
	for _, ch := range "qwertzuiop" {
		assert.Equal(t, 2, m.count(string(ch)), "expected one height and one width measurement for %q", ch)
	}
}

func TestWithFontRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "imetext.glyphs")
	defer teardown()
	//
	c := New(fontregistry.NewRegistry())
	p := font.Paint{Size: 40}
	assert.Greater(t, c.Height('H', p), c.Height('x', p))
	assert.Greater(t, c.Width('W', p), c.Width('i', p))
	assert.InDelta(t, c.StringWidth("H", p), c.Width('H', p), 0.001)
}
