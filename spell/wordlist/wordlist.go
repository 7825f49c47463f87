/*
Package wordlist implements a speller over a plain word list.

It is a stand-in for a morphological spelling engine: a word is correct if
it is contained in the list (or is a capitalized or upper-case form of a
listed word), and suggestions are the listed words within a small edit
distance, closest first, more frequent first among equals.

Word list files contain one word per line, optionally followed by a tab and
a frequency count. Lines starting with '#' are comments.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package wordlist

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/derekparker/trie"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/npillmayer/imetext/core"
	"github.com/npillmayer/imetext/spell"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// tracer traces with key 'imetext.spell'
func tracer() tracing.Trace {
	return tracing.Select("imetext.spell")
}

// Defaults for suggestion search.
const (
	DefaultMaxDistance    = 2
	DefaultMaxSuggestions = 10
)

// Speller checks words against a word list.
// It is safe for concurrent use once created.
type Speller struct {
	words          *trie.Trie // word -> frequency
	vocabulary     []string
	folded         []string // lower-case forms of vocabulary
	maxDistance    int
	maxSuggestions int
}

// Option configures a speller.
type Option func(*Speller)

// MaxDistance sets the maximum edit distance of suggestions.
func MaxDistance(d int) Option {
	return func(sp *Speller) {
		if d > 0 {
			sp.maxDistance = d
		}
	}
}

// MaxSuggestions sets the maximum number of suggestions per word.
func MaxSuggestions(n int) Option {
	return func(sp *Speller) {
		if n > 0 {
			sp.maxSuggestions = n
		}
	}
}

// New creates a speller for a list of words, all with frequency 1.
func New(words []string, opts ...Option) *Speller {
	sp := newSpeller(opts...)
	for _, w := range words {
		sp.add(w, 1)
	}
	return sp
}

func newSpeller(opts ...Option) *Speller {
	sp := &Speller{
		words:          trie.New(),
		maxDistance:    DefaultMaxDistance,
		maxSuggestions: DefaultMaxSuggestions,
	}
	for _, opt := range opts {
		opt(sp)
	}
	return sp
}

func (sp *Speller) add(word string, freq int) {
	word = norm.NFC.String(strings.TrimSpace(word))
	if word == "" {
		return
	}
	if n, ok := sp.words.Find(word); ok {
		n.Meta().(*int64Counter).n += int64(freq)
		return
	}
	sp.words.Add(word, &int64Counter{n: int64(freq)})
	sp.vocabulary = append(sp.vocabulary, word)
	sp.folded = append(sp.folded, toLower(word))
}

type int64Counter struct{ n int64 }

// Load reads a word list.
func Load(r io.Reader, opts ...Option) (*Speller, error) {
	sp := newSpeller(opts...)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		freq := 1
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) == 2 {
			if f, err := strconv.Atoi(strings.TrimSpace(fields[1])); err == nil && f > 0 {
				freq = f
			}
		}
		sp.add(fields[0], freq)
	}
	if err := scanner.Err(); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read word list")
	}
	tracer().Debugf("word list has %d entries", len(sp.vocabulary))
	return sp, nil
}

// LoadFile reads a word list from a file.
func LoadFile(path string, opts ...Option) (*Speller, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "word list not found: %s", path)
	}
	defer f.Close()
	return Load(f, opts...)
}

// Len returns the number of distinct words.
func (sp *Speller) Len() int {
	return len(sp.vocabulary)
}

// Spell reports whether word is in the list. A capitalized word is also
// accepted if its lower-case form is listed, an upper-case word if its
// lower-case or capitalized form is listed.
func (sp *Speller) Spell(word string) bool {
	word = norm.NFC.String(word)
	if word == "" {
		return true
	}
	if sp.contains(word) {
		return true
	}
	switch capitalization(word) {
	case caseCapitalized:
		return sp.contains(toLower(word))
	case caseUpper:
		lower := toLower(word)
		return sp.contains(lower) || sp.contains(toTitle(lower))
	}
	return false
}

func (sp *Speller) contains(word string) bool {
	_, ok := sp.words.Find(word)
	return ok
}

// Suggest returns listed words within the maximum edit distance of word.
// The weight of a suggestion is its edit distance. Suggestions for a
// capitalized word are capitalized.
func (sp *Speller) Suggest(word string) []spell.Suggestion {
	word = norm.NFC.String(word)
	capz := capitalization(word)
	probe := word
	if capz != caseLower {
		probe = toLower(word)
	}
	type candidate struct {
		word string
		dist int
		freq int64
	}
	var candidates []candidate
	plen := utf8.RuneCountInString(probe)
	for i, w := range sp.vocabulary {
		if abs(utf8.RuneCountInString(w)-plen) > sp.maxDistance {
			continue
		}
		d := fuzzy.LevenshteinDistance(probe, sp.folded[i])
		if d > sp.maxDistance || w == word {
			continue
		}
		n, _ := sp.words.Find(w)
		candidates = append(candidates, candidate{w, d, n.Meta().(*int64Counter).n})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		if candidates[i].freq != candidates[j].freq {
			return candidates[i].freq > candidates[j].freq
		}
		return candidates[i].word < candidates[j].word
	})
	var suggestions []spell.Suggestion
	seen := make(map[string]bool)
	for _, c := range candidates {
		if len(suggestions) == sp.maxSuggestions {
			break
		}
		s := c.word
		switch capz {
		case caseCapitalized:
			s = toTitle(s)
		case caseUpper:
			s = cases.Upper(language.Und).String(s)
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		suggestions = append(suggestions, spell.Suggestion{Candidate: s, Weight: float32(c.dist)})
	}
	return suggestions
}

type caseClass int

const (
	caseLower caseClass = iota
	caseCapitalized
	caseUpper
)

func capitalization(word string) caseClass {
	first, size := utf8.DecodeRuneInString(word)
	if !unicode.IsUpper(first) {
		return caseLower
	}
	rest := word[size:]
	if rest != "" && strings.IndexFunc(rest, unicode.IsLower) < 0 {
		return caseUpper
	}
	return caseCapitalized
}

// Casers are not safe for concurrent use, so we create them per call.

func toLower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func toTitle(s string) string {
	return cases.Title(language.Und).String(s)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// RegisterDirectory registers a loader for every file '<lang>.dic' in dir
// with a spell registry. It returns the number of registered languages.
func RegisterDirectory(reg *spell.Registry, dir string, opts ...Option) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.dic"))
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "cannot scan dictionary directory %s", dir)
	}
	n := 0
	for _, f := range files {
		lang := strings.TrimSuffix(filepath.Base(f), ".dic")
		path := f
		err := reg.Register(lang, func() (spell.Speller, error) {
			sp, err := LoadFile(path, opts...)
			if err != nil {
				return nil, err
			}
			return sp, nil
		})
		if err != nil {
			tracer().Errorf("skipping dictionary %s: %v", f, err)
			continue
		}
		n++
	}
	tracer().Infof("registered %d dictionaries from %s", n, dir)
	return n, nil
}

var _ spell.Speller = &Speller{}
