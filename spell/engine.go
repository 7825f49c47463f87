package spell

import (
	"strings"

	"github.com/npillmayer/imetext/core"
	"golang.org/x/text/language"
)

// Suggestion is a candidate correction together with the engine's weight
// for it. Engines deliver suggestions best first; weights are not compared
// by this package.
type Suggestion struct {
	Candidate string
	Weight    float32
}

// Speller checks words of one language.
type Speller interface {
	Spell(word string) bool
	Suggest(word string) []Suggestion
}

// Engine resolves the speller for a language. Resolve has to be cheap and
// idempotent, as it is called for every request. It reports false if no
// speller is ready for the language, e.g. because its dictionary is still
// loading or the language is not supported.
type Engine interface {
	Resolve(lang string) (Speller, bool)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(lang string) (Speller, bool)

// Resolve calls f(lang).
func (f EngineFunc) Resolve(lang string) (Speller, bool) {
	return f(lang)
}

// ParseLocale parses a locale identifier of the host platform, e.g. "en_US"
// or "se-NO", into a BCP 47 language tag.
func ParseLocale(locale string) (language.Tag, error) {
	locale = strings.TrimSpace(locale)
	if i := strings.Index(locale, "_#"); i >= 0 { // script suffix of Android locales
		locale = locale[:i]
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.Und, core.WrapError(err, core.EINVALID, "invalid locale %q", locale)
	}
	return tag, nil
}
