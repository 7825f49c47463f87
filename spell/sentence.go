package spell

import (
	"strings"
	"unicode"

	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax29"
)

// SentenceSuggestionsInfo holds the answers for the words of a sentence
// which look like typos. Infos[i] refers to the word at byte offset
// Offsets[i] with a byte length of Lengths[i].
type SentenceSuggestionsInfo struct {
	Infos   []SuggestionsInfo
	Offsets []int
	Lengths []int
}

// Words splits text into words following UAX #29 word boundaries. Segments
// without letters (spaces, punctuation, numbers) are skipped.
// Offsets are byte offsets into text.
func Words(text string) (words []string, offsets []int) {
	breaker := uax29.NewWordBreaker(1)
	seg := segment.NewSegmenter(breaker)
	seg.Init(strings.NewReader(text))
	pos := 0
	for seg.Next() {
		s := seg.Text()
		if strings.IndexFunc(s, unicode.IsLetter) >= 0 {
			words = append(words, s)
			offsets = append(offsets, pos)
		}
		pos += len(s)
	}
	return
}

// OnGetSentenceSuggestions answers a batch of sentence requests. Every text is
// split into words, and every word is checked. Only words which look like
// typos are reported. Cookie and sequence of a text are copied to all of its
// answers.
func (sess *Session) OnGetSentenceSuggestions(texts []TextInfo, limit int) []SentenceSuggestionsInfo {
	if sess.service.unlimited {
		limit = 0
	}
	sentences := make([]SentenceSuggestionsInfo, len(texts))
	for i, text := range texts {
		words, offsets := Words(text.Text)
		tracer().Debugf("sentence %d has %d words", i, len(words))
		for j, w := range words {
			r := sess.CheckWord(w)
			if r.Kind != Typo {
				continue
			}
			info := r.Info(limit)
			info.Cookie, info.Sequence = text.Cookie, text.Sequence
			sentences[i].Infos = append(sentences[i].Infos, info)
			sentences[i].Offsets = append(sentences[i].Offsets, offsets[j])
			sentences[i].Lengths = append(sentences[i].Lengths, len(w))
		}
	}
	return sentences
}
