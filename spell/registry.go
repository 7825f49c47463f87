package spell

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/npillmayer/imetext/core"
	"golang.org/x/text/language"
)

// Registry is an Engine holding one speller per language. Spellers are
// loaded in the background; until loading has completed, Resolve reports
// the language as not ready.
//
// Locales are matched against registered languages by BCP 47 matching, so
// a speller registered for "se" serves sessions for "se_NO".
type Registry struct {
	mx      sync.RWMutex
	tags    []language.Tag
	entries []*entry
	matcher language.Matcher
}

type entry struct {
	tag     language.Tag
	speller Speller
	err     error
	ready   chan struct{}
}

// SpellerLoader loads a speller. It is called exactly once per registration,
// on a goroutine of its own.
type SpellerLoader func() (Speller, error)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register starts loading a speller for a language. A previous registration
// for the same language is replaced.
func (r *Registry) Register(lang string, load SpellerLoader) error {
	tag, err := ParseLocale(lang)
	if err != nil {
		return err
	}
	if load == nil {
		return core.Error(core.EINVALID, "no speller loader for %s", lang)
	}
	e := &entry{tag: tag, ready: make(chan struct{})}
	r.put(e)
	go func(e *entry) {
		sp, err := load()
		if err == nil && isNil(sp) {
			err = core.Error(core.EMISSING, "loader for %s delivered no speller", e.tag)
		}
		if err != nil {
			sp = nil
		}
		r.mx.Lock()
		e.speller, e.err = sp, err
		r.mx.Unlock()
		if err != nil {
			tracer().Errorf("cannot load speller for %s: %v", e.tag, err)
		} else {
			tracer().Infof("speller for %s loaded", e.tag)
		}
		close(e.ready)
	}(e)
	return nil
}

// Add registers a speller which is ready immediately.
func (r *Registry) Add(lang string, sp Speller) error {
	tag, err := ParseLocale(lang)
	if err != nil {
		return err
	}
	if sp == nil {
		return core.Error(core.EINVALID, "cannot register null speller for %s", lang)
	}
	e := &entry{tag: tag, speller: sp, ready: make(chan struct{})}
	close(e.ready)
	r.put(e)
	return nil
}

func (r *Registry) put(e *entry) {
	r.mx.Lock()
	defer r.mx.Unlock()
	replaced := false
	for i, t := range r.tags {
		if t == e.tag {
			r.entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		r.tags = append(r.tags, e.tag)
		r.entries = append(r.entries, e)
		r.matcher = language.NewMatcher(r.tags)
	}
}

// lookup finds the entry matching a locale.
func (r *Registry) lookup(lang string) *entry {
	tag, err := ParseLocale(lang)
	if err != nil {
		tracer().Debugf("cannot resolve %q: %v", lang, err)
		return nil
	}
	r.mx.RLock()
	defer r.mx.RUnlock()
	if r.matcher == nil {
		return nil
	}
	_, index, confidence := r.matcher.Match(tag)
	if confidence == language.No || index < 0 || index >= len(r.entries) {
		return nil
	}
	return r.entries[index]
}

// Resolve implements Engine. It never blocks on a loading speller.
func (r *Registry) Resolve(lang string) (Speller, bool) {
	e := r.lookup(lang)
	if e == nil {
		return nil, false
	}
	select {
	case <-e.ready:
	default:
		return nil, false
	}
	r.mx.RLock()
	defer r.mx.RUnlock()
	if e.err != nil || e.speller == nil {
		return nil, false
	}
	return e.speller, true
}

// Await waits until the speller for a language has been loaded, or ctx is done.
func (r *Registry) Await(ctx context.Context, lang string) (Speller, error) {
	e := r.lookup(lang)
	if e == nil {
		return nil, core.Error(core.ENOTREADY, "no speller registered for %s", lang)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-e.ready:
	}
	r.mx.RLock()
	defer r.mx.RUnlock()
	return e.speller, e.err
}

// Languages returns the registered languages, sorted.
func (r *Registry) Languages() []string {
	r.mx.RLock()
	defer r.mx.RUnlock()
	langs := make([]string, len(r.tags))
	for i, t := range r.tags {
		langs[i] = t.String()
	}
	sort.Strings(langs)
	return langs
}

// isNil is true for a nil interface and for an interface holding a nil pointer.
func isNil(sp Speller) bool {
	if sp == nil {
		return true
	}
	v := reflect.ValueOf(sp)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

var _ Engine = &Registry{}
