package spell

import (
	"github.com/npillmayer/imetext/core"
	"github.com/npillmayer/imetext/core/parameters"
	"github.com/npillmayer/schuko"
)

// Attribute flags of a SuggestionsInfo. Values are those of the host
// framework.
type Attribute int

const (
	AttrInDictionary              Attribute = 0x0001
	AttrLooksLikeTypo             Attribute = 0x0002
	AttrHasRecommendedSuggestions Attribute = 0x0004
)

func (a Attribute) String() string {
	switch {
	case a&AttrInDictionary != 0:
		return "in-dictionary"
	case a&AttrLooksLikeTypo != 0:
		return "looks-like-typo"
	}
	return "none"
}

// TextInfo is a piece of text handed over by the host. Cookie and Sequence
// are opaque to the session and are copied to the answer.
type TextInfo struct {
	Text     string
	Cookie   int
	Sequence int
}

// SuggestionsInfo is the answer for a TextInfo.
type SuggestionsInfo struct {
	Attributes  Attribute
	Suggestions []string
	Cookie      int
	Sequence    int
}

// Kind classifies the result of a word check.
type Kind int

const (
	NoSpellerAvailable Kind = iota // no speller ready; treated as correct
	CorrectlySpelled
	Typo
)

func (k Kind) String() string {
	switch k {
	case NoSpellerAvailable:
		return "no-speller"
	case CorrectlySpelled:
		return "correct"
	case Typo:
		return "typo"
	}
	return "?"
}

// Result of checking a single word. Suggestions are in the order the engine
// delivered them and are empty unless Kind is Typo.
type Result struct {
	Kind        Kind
	Suggestions []string
}

// Info converts a result into the host's answer format. If limit is positive,
// at most limit suggestions are returned. A typo with at least one suggestion
// additionally carries AttrHasRecommendedSuggestions.
func (r Result) Info(limit int) SuggestionsInfo {
	if r.Kind != Typo {
		return SuggestionsInfo{Attributes: AttrInDictionary, Suggestions: []string{}}
	}
	suggestions := r.Suggestions
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	attrs := AttrLooksLikeTypo
	if len(suggestions) > 0 {
		attrs |= AttrHasRecommendedSuggestions
	}
	return SuggestionsInfo{Attributes: attrs, Suggestions: suggestions}
}

// --- Service ---------------------------------------------------------------

// Service creates sessions which share an engine.
type Service struct {
	engine    Engine
	incidents core.IncidentHandler
	unlimited bool
}

// Option configures a service.
type Option func(*Service)

// WithIncidents sets a handler which is told about every request answered
// without a speller.
func WithIncidents(h core.IncidentHandler) Option {
	return func(s *Service) {
		if h != nil {
			s.incidents = h
		}
	}
}

// WithUnlimitedSuggestions makes sessions ignore the suggestion limits
// requested by the host and deliver all suggestions of the engine.
func WithUnlimitedSuggestions() Option {
	return func(s *Service) {
		s.unlimited = true
	}
}

// WithConfig applies configuration values, currently `spell.unlimited`.
func WithConfig(conf schuko.Configuration) Option {
	return func(s *Service) {
		if parameters.Bool(conf, parameters.SpellUnlimited, false) {
			s.unlimited = true
		}
	}
}

// NewService creates a service for an engine. It is an error to create a
// service without an engine.
func NewService(engine Engine, opts ...Option) (*Service, error) {
	if engine == nil {
		return nil, core.Error(core.EINVALID, "spell service needs an engine")
	}
	s := &Service{engine: engine, incidents: core.Discard}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateSession creates a session for a locale. The locale is fixed for the
// lifetime of the session.
func (s *Service) CreateSession(locale string) *Session {
	tracer().Debugf("creating session for locale %q", locale)
	return &Session{service: s, locale: locale}
}

// --- Session ---------------------------------------------------------------

// Session answers spelling requests for a single locale.
// Sessions hold no mutable state and may be used concurrently, provided the
// engine's spellers may.
type Session struct {
	service *Service
	locale  string
}

// Locale returns the locale the session has been created for.
func (sess *Session) Locale() string {
	return sess.locale
}

// CheckWord checks a single word.
func (sess *Session) CheckWord(word string) Result {
	speller, ok := sess.service.engine.Resolve(sess.locale)
	if !ok || speller == nil {
		tracer().Infof("warning: speller for language '%s' wasn't ready", sess.locale)
		sess.service.incidents.Incident(core.Error(core.ENOTREADY,
			"speller for language '%s' wasn't ready", sess.locale))
		return Result{Kind: NoSpellerAvailable, Suggestions: []string{}}
	}
	if speller.Spell(word) {
		return Result{Kind: CorrectlySpelled, Suggestions: []string{}}
	}
	suggs := speller.Suggest(word)
	suggestions := make([]string, len(suggs))
	for i, s := range suggs {
		suggestions[i] = s.Candidate
	}
	tracer().Debugf("'%s' looks like a typo, %d suggestions", word, len(suggestions))
	return Result{Kind: Typo, Suggestions: suggestions}
}

// OnGetSuggestions answers a request for a single word. If limit is positive,
// no more than limit suggestions are returned, unless the service has been
// created with WithUnlimitedSuggestions.
func (sess *Session) OnGetSuggestions(text TextInfo, limit int) SuggestionsInfo {
	if sess.service.unlimited {
		limit = 0
	}
	info := sess.CheckWord(text.Text).Info(limit)
	info.Cookie, info.Sequence = text.Cookie, text.Sequence
	return info
}

// OnGetSuggestionsMultiple answers a batch of single-word requests, in order.
func (sess *Session) OnGetSuggestionsMultiple(texts []TextInfo, limit int) []SuggestionsInfo {
	infos := make([]SuggestionsInfo, len(texts))
	for i, text := range texts {
		infos[i] = sess.OnGetSuggestions(text, limit)
	}
	return infos
}
