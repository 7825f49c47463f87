package fontregistry

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/imetext/core"
	"github.com/npillmayer/imetext/core/font"
	"github.com/npillmayer/imetext/core/parameters"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/math/fixed"
)

// Registry is a type for holding information about loaded fonts for
// measuring key labels. It holds one scalable font per family and caches
// typecases per family and size.
type Registry struct {
	sync.Mutex
	fonts     map[font.Family]*font.ScalableFont
	typecases map[string]*font.TypeCase
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide registry using the fallback fonts.
// Applications which configure fonts should create their own registry with
// Setup and pass it around.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty registry. Families without a stored font will
// be measured with font.FallbackFont.
func NewRegistry() *Registry {
	fr := &Registry{
		fonts:     make(map[font.Family]*font.ScalableFont),
		typecases: make(map[string]*font.TypeCase),
	}
	return fr
}

// Setup creates a registry and loads the system fonts configured for the
// families default, bold and monospace. Configuration values may be a font
// file path or a font file name to be searched in the system font
// directories. Fonts which cannot be found are reported as incidents with
// code core.EMISSING; the family will then use its fallback font.
func Setup(conf schuko.Configuration, incidents core.IncidentHandler) *Registry {
	if incidents == nil {
		incidents = core.Discard
	}
	fr := NewRegistry()
	for fam, key := range map[font.Family]string{
		font.FamilyDefault:   parameters.FontDefault,
		font.FamilyBold:      parameters.FontBold,
		font.FamilyMonospace: parameters.FontMonospace,
	} {
		name := parameters.String(conf, key, "")
		if name == "" {
			continue
		}
		f, err := LoadSystemFont(name)
		if err != nil {
			tracer().Errorf("cannot load %s font %q: %v", fam, name, err)
			incidents.Incident(err)
			continue
		}
		fr.StoreFont(fam, f)
	}
	return fr
}

// LoadSystemFont loads a font from a path or, if the path does not point to
// a file, searches the system font directories for it.
func LoadSystemFont(name string) (*font.ScalableFont, error) {
	fpath := name
	if !filepath.IsAbs(name) {
		var err error
		if fpath, err = findfont.Find(name); err != nil {
			return nil, core.WrapError(err, core.EMISSING, "font not found: %s", name)
		}
	}
	tracer().Debugf("loading font from %s", fpath)
	f, err := font.LoadOpenTypeFont(fpath)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "font not loadable: %s", fpath)
	}
	return f, nil
}

// StoreFont associates a font with a family.
//
// Typecases previously derived for the family are dropped, as they refer
// to the old font.
func (fr *Registry) StoreFont(fam font.Family, f *font.ScalableFont) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	tracer().Debugf("registry stores font %s as %s", f.Fontname, fam)
	fr.fonts[fam] = f
	prefix := fam.String() + "-"
	for k := range fr.typecases {
		if strings.HasPrefix(k, prefix) {
			delete(fr.typecases, k)
		}
	}
}

// TypeCase returns a typecase for a family and pixel size.
// If a suitable typecase has already been cached, TypeCase will return the cached
// typecase. If a font has previously been stored for the family, a typecase will
// be derived from this font.
//
// If no font is stored for the family, TypeCase will derive a typecase from the
// family's fallback font and return it, together with an error message.
func (fr *Registry) TypeCase(fam font.Family, size float32) (*font.TypeCase, error) {
	tname := appendSize(fam.String(), size)
	fr.Lock()
	defer fr.Unlock()
	if t, ok := fr.typecases[tname]; ok {
		return t, nil
	}
	var err error
	f, ok := fr.fonts[fam]
	if !ok {
		tracer().Debugf("registry does not contain font for %s", fam)
		err = errors.New("no font for family " + fam.String() + " in registry")
		f = font.FallbackFont(fam)
	}
	t, e := f.PrepareCase(size)
	if e != nil {
		return nil, e
	}
	tracer().Infof("font registry caches %s for %s at %.2f", f.Fontname, fam, size)
	fr.typecases[tname] = t
	return t, err
}

// TextBounds implements font.Measurer.
func (fr *Registry) TextBounds(text string, paint font.Paint) fixed.Rectangle26_6 {
	tc, err := fr.TypeCase(paint.Family, paint.Size)
	if tc == nil {
		tracer().Errorf("cannot measure %q: %v", text, err)
		return fixed.Rectangle26_6{}
	}
	return tc.Bounds(text)
}

// LogFontList is a helper function to dump the list of known fonts and typecases
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for k, v := range fr.fonts {
		tracer().Infof("font [%s] = %v", k, v.Fontname)
	}
	for _, k := range fr.typecaseNames() {
		tracer().Infof("typecase [%s] = %v", k, fr.typecases[k].ScalableFontParent().Fontname)
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

// TypeCaseNames lists the keys of cached typecases, sorted.
func (fr *Registry) TypeCaseNames() []string {
	fr.Lock()
	defer fr.Unlock()
	return fr.typecaseNames()
}

func (fr *Registry) typecaseNames() []string {
	names := make([]string, 0, len(fr.typecases))
	for k := range fr.typecases {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func appendSize(fname string, size float32) string {
	fname = fmt.Sprintf("%s-%.2f", fname, size)
	return fname
}

var _ font.Measurer = &Registry{}
