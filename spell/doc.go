/*
Package spell adapts a spelling engine to the session protocol of a host
text-service framework.

The host creates one Session per requested locale and asks it for
suggestions, word by word or sentence by sentence. A session resolves the
speller for its language from an Engine on every request; it never keeps a
speller of its own. If the engine has no speller ready for the language,
the word is answered as correctly spelled and a warning is recorded: a
spell checker which is still loading must not flag every word of the user.

	engine := spell.NewRegistry()
	engine.Register("se", loadNorthernSami)
	service, _ := spell.NewService(engine)
	session := service.CreateSession("se_NO")
	info := session.OnGetSuggestions(spell.TextInfo{Text: "boahtit"}, 5)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package spell

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'imetext.spell'
func tracer() tracing.Trace {
	return tracing.Select("imetext.spell")
}
