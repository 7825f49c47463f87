/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Helvetica".

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

* A "typecase" is a scaled font, i.e. a font in a certain size.
The name is reminiscend on the wooden boxes of typesetters in the
era of metal type.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Keyboard labels are drawn in one of a small number of font families,
identified by a Family tag. Measurement of labels is done through the
Measurer interface, which is implemented by package fontregistry.
Sizes are given in pixels; typecases are prepared at 72 DPI, so one
point equals one pixel.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"fmt"
	"os"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'imetext.font'
func tracer() tracing.Trace {
	return tracing.Select("imetext.font")
}

// MaxSize is the exclusive upper bound for pixel sizes of typecases.
// Sizes have to fit into 12 bits to keep glyph cache keys of different
// families apart.
const MaxSize = 0x1000

// --- Families --------------------------------------------------------------

// Family is a tag for a font family. Families are decided by the caller,
// not derived from the identity of a font object.
type Family int

// Known families. Values from FamilyCustom upwards may be used for
// application-defined families; they have to be stored in a registry
// before use.
const (
	FamilyDefault Family = iota
	FamilyBold
	FamilyMonospace
	FamilyCustom
)

func (fam Family) String() string {
	switch fam {
	case FamilyDefault:
		return "default"
	case FamilyBold:
		return "bold"
	case FamilyMonospace:
		return "monospace"
	}
	return fmt.Sprintf("custom-%d", int(fam-FamilyCustom))
}

// ParseFamily maps a family name (as returned by String) to a family tag.
func ParseFamily(name string) (Family, bool) {
	switch name {
	case "default", "regular", "":
		return FamilyDefault, true
	case "bold":
		return FamilyBold, true
	case "monospace", "mono":
		return FamilyMonospace, true
	}
	var n int
	if _, err := fmt.Sscanf(name, "custom-%d", &n); err == nil && n >= 0 {
		return FamilyCustom + Family(n), true
	}
	return FamilyDefault, false
}

// FamilyFor derives a family tag from style descriptor fields.
// Monospace wins over weight.
func FamilyFor(weight xfont.Weight, monospace bool) Family {
	if monospace {
		return FamilyMonospace
	}
	if weight >= xfont.WeightSemiBold {
		return FamilyBold
	}
	return FamilyDefault
}

// Paint describes how text is to be drawn: a pixel size and a family.
type Paint struct {
	Size   float32
	Family Family
}

// --- Measuring -------------------------------------------------------------

// Measurer is the text-measurement primitive. TextBounds returns the ink
// bounds of text, drawn with paint, relative to the origin of the first glyph.
type Measurer interface {
	TextBounds(text string, paint Paint) fixed.Rectangle26_6
}

// Width returns the width of bounds in pixels.
func Width(bounds fixed.Rectangle26_6) float32 {
	return float32(bounds.Max.X-bounds.Min.X) / 64
}

// Height returns the height of bounds in pixels.
func Height(bounds fixed.Rectangle26_6) float32 {
	return float32(bounds.Max.Y-bounds.Min.Y) / 64
}

// --- Fonts and typecases ---------------------------------------------------

// ScalableFont is an internal representation of an outline-font of type
// TTF of OTF.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// TypeCase is a scalable font prepared for a size.
// Faces of package x/image are not safe for concurrent use, therefore
// measuring is serialized per typecase.
type TypeCase struct {
	sync.Mutex
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size               float32
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err == nil {
		f.Filepath = fontfile
	}
	return f, err
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err != nil {
		tracer().Debugf("font has no full name: %v", err)
		err = nil
	}
	return
}

// PrepareCase creates a typecase of a given pixel size.
// Sizes outside of [1, MaxSize) are clamped.
func (sf *ScalableFont) PrepareCase(size float32) (*TypeCase, error) {
	typecase := &TypeCase{scalableFontParent: sf}
	if size < 1 {
		tracer().Errorf("font size must be at least 1px, is %g (set to 1px)", size)
		size = 1
	} else if size >= MaxSize {
		tracer().Errorf("font size must be below %dpx, is %g (clamped)", MaxSize, size)
		size = MaxSize - 1
	}
	options := &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: xfont.HintingNone,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, err
	}
	typecase.face = f
	typecase.size = size
	return typecase, nil
}

// ScalableFontParent returns the font a typecase has been derived from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// PxSize returns the pixel size of a typecase.
func (tc *TypeCase) PxSize() float32 {
	return tc.size
}

// Bounds measures the ink bounds of text.
func (tc *TypeCase) Bounds(text string) fixed.Rectangle26_6 {
	tc.Lock()
	defer tc.Unlock()
	bounds, _ := xfont.BoundString(tc.face, text)
	return bounds
}

// Metrics returns the metrics of the typecase's face.
func (tc *TypeCase) Metrics() xfont.Metrics {
	tc.Lock()
	defer tc.Unlock()
	return tc.face.Metrics()
}

// HasGlyph reports whether the font maps r to a glyph other than .notdef.
func (sf *ScalableFont) HasGlyph(r rune, buf *sfnt.Buffer) bool {
	gid, err := sf.SFNT.GlyphIndex(buf, r)
	return err == nil && gid != 0
}

// --- Fallback fonts --------------------------------------------------------

// FallbackFont returns the font to be used for a family if nothing else has
// been configured. It is always present. We use the Go fonts: Go Regular,
// Go Bold and Go Mono. Custom families fall back to Go Regular.
func FallbackFont(fam Family) *ScalableFont {
	switch fam {
	case FamilyBold:
		fallbackBold.Do(func() { fallbackFonts[1] = loadFallbackFont("Go Bold", gobold.TTF) })
		return fallbackFonts[1]
	case FamilyMonospace:
		fallbackMono.Do(func() { fallbackFonts[2] = loadFallbackFont("Go Mono", gomono.TTF) })
		return fallbackFonts[2]
	}
	fallbackRegular.Do(func() { fallbackFonts[0] = loadFallbackFont("Go Regular", goregular.TTF) })
	return fallbackFonts[0]
}

var fallbackRegular, fallbackBold, fallbackMono sync.Once

var fallbackFonts [3]*ScalableFont

func loadFallbackFont(name string, ttf []byte) *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: name,
		Filepath: "internal",
		Binary:   ttf,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load fallback font " + name) // this cannot happen
	}
	return gofont
}
