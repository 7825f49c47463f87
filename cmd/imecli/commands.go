package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/imetext/core"
	"github.com/npillmayer/imetext/core/font"
	"github.com/npillmayer/imetext/spell"
	"github.com/pterm/pterm"
)

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.execute(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type commandFunc func(intp *Intp, args []string) (bool, error)

var commands map[string]commandFunc

func init() {
	commands = map[string]commandFunc{
		"quit":     quitOp,
		"help":     helpOp,
		"check":    checkOp,
		"sentence": sentenceOp,
		"limit":    limitOp,
		"drawable": drawableOp,
		"missing":  missingOp,
		"version":  versionOp,
		"width":    widthOp,
		"height":   heightOp,
		"string":   stringOp,
		"label":    labelOp,
		"fonts":    fontsOp,
		"stats":    statsOp,
	}
}

// execute splits a command line into a command word and its arguments.
func (intp *Intp) execute(line string) (bool, error) {
	fields := strings.Fields(line)
	tracer().Debugf("command = %v", fields)
	f, ok := commands[strings.ToLower(fields[0])]
	if !ok {
		return helpOp(intp, nil)
	}
	return f(intp, fields[1:])
}

func quitOp(intp *Intp, args []string) (bool, error) {
	return true, nil
}

const helpText = `
	check <word>                    spell check a word
	sentence <text>                 spell check every word of a text
	limit <n>                       set the suggestion limit (0 = none)
	drawable <text> [<version>]     can the platform draw text?
	missing <text>                  list characters the platform cannot draw
	version                         platform and codepoint table versions
	width <char> [<size> [<family>]]
	height <char> [<size> [<family>]]
	string <size> <family> <text>   width of a string (not cached)
	label <size> <family> <text>    width of a label (not cached)
	fonts                           list loaded type cases
	stats                           cache sizes and incidents
	quit
	`

func helpOp(intp *Intp, args []string) (bool, error) {
	pterm.Info.Println("Commands")
	pterm.Println(helpText)
	return false, nil
}

// --- Spelling ---------------------------------------------------------

func checkOp(intp *Intp, args []string) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("usage: check <word>")
	}
	for _, word := range args {
		info := intp.session.OnGetSuggestions(spell.TextInfo{Text: word}, intp.limit)
		printInfo(word, info)
	}
	return false, nil
}

func sentenceOp(intp *Intp, args []string) (bool, error) {
	text := strings.Join(args, " ")
	sentences := intp.session.OnGetSentenceSuggestions([]spell.TextInfo{{Text: text}}, intp.limit)
	s := sentences[0]
	if len(s.Infos) == 0 {
		pterm.Success.Println("no typos")
		return false, nil
	}
	for i, info := range s.Infos {
		word := text[s.Offsets[i] : s.Offsets[i]+s.Lengths[i]]
		printInfo(fmt.Sprintf("%s @%d", word, s.Offsets[i]), info)
	}
	return false, nil
}

func printInfo(word string, info spell.SuggestionsInfo) {
	if info.Attributes&spell.AttrLooksLikeTypo != 0 {
		pterm.Warning.Printf("%s: %s %v\n", word, info.Attributes, info.Suggestions)
		return
	}
	pterm.Success.Printf("%s: %s\n", word, info.Attributes)
}

func limitOp(intp *Intp, args []string) (bool, error) {
	if len(args) == 0 {
		pterm.Printf("suggestion limit is %d\n", intp.limit)
		return false, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return false, core.WrapError(err, core.EINVALID, "not a number: %s", args[0])
	}
	intp.limit = n
	return false, nil
}

// --- Codepoints -------------------------------------------------------

func drawableOp(intp *Intp, args []string) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("usage: drawable <text> [<version>]")
	}
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return false, core.WrapError(err, core.EINVALID, "not a version: %s", args[1])
		}
		pterm.Printf("%s on %d: %v\n", args[0], v, intp.table.IsGlyphDrawableOn(v, args[0]))
		return false, nil
	}
	pterm.Printf("%s: %v\n", args[0], intp.table.IsGlyphDrawable(args[0]))
	return false, nil
}

func missingOp(intp *Intp, args []string) (bool, error) {
	text := strings.Join(args, " ")
	missing := intp.table.Missing(text)
	if len(missing) == 0 {
		pterm.Success.Println("all characters are drawable")
		return false, nil
	}
	for _, r := range missing {
		pterm.Printf("U+%04X %c\n", r, r)
	}
	return false, nil
}

func versionOp(intp *Intp, args []string) (bool, error) {
	pterm.Printf("platform version  %d\n", intp.table.Platform())
	pterm.Printf("codepoint table   %d\n", intp.table.EffectiveVersion())
	pterm.Printf("available tables  %v\n", intp.table.Versions())
	return false, nil
}

// --- Metrics ----------------------------------------------------------

// paintArgs reads size and family from args, starting at position i.
func paintArgs(args []string, i int) (font.Paint, error) {
	paint := font.Paint{Size: 12, Family: font.FamilyDefault}
	if len(args) > i {
		size, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return paint, core.WrapError(err, core.EINVALID, "not a size: %s", args[i])
		}
		paint.Size = float32(size)
	}
	if len(args) > i+1 {
		fam, ok := font.ParseFamily(args[i+1])
		if !ok {
			return paint, core.Error(core.EINVALID, "unknown family: %s", args[i+1])
		}
		paint.Family = fam
	}
	return paint, nil
}

func glyphArg(args []string) (rune, font.Paint, error) {
	if len(args) == 0 {
		return 0, font.Paint{}, fmt.Errorf("usage: width|height <char> [<size> [<family>]]")
	}
	ch, _ := utf8.DecodeRuneInString(args[0])
	paint, err := paintArgs(args, 1)
	return ch, paint, err
}

func widthOp(intp *Intp, args []string) (bool, error) {
	ch, paint, err := glyphArg(args)
	if err != nil {
		return false, err
	}
	pterm.Printf("width of '%c' at %.1f/%s = %.2f\n", ch, paint.Size, paint.Family, intp.glyphs.Width(ch, paint))
	return false, nil
}

func heightOp(intp *Intp, args []string) (bool, error) {
	ch, paint, err := glyphArg(args)
	if err != nil {
		return false, err
	}
	pterm.Printf("height of '%c' at %.1f/%s = %.2f\n", ch, paint.Size, paint.Family, intp.glyphs.Height(ch, paint))
	return false, nil
}

func textArgs(args []string) (string, font.Paint, error) {
	if len(args) < 3 {
		return "", font.Paint{}, fmt.Errorf("usage: string|label <size> <family> <text>")
	}
	paint, err := paintArgs(args, 0)
	return strings.Join(args[2:], " "), paint, err
}

func stringOp(intp *Intp, args []string) (bool, error) {
	text, paint, err := textArgs(args)
	if err != nil {
		return false, err
	}
	pterm.Printf("string width = %.2f\n", intp.glyphs.StringWidth(text, paint))
	return false, nil
}

func labelOp(intp *Intp, args []string) (bool, error) {
	text, paint, err := textArgs(args)
	if err != nil {
		return false, err
	}
	pterm.Printf("label width = %.2f\n", intp.glyphs.LabelWidth(text, paint))
	return false, nil
}

func fontsOp(intp *Intp, args []string) (bool, error) {
	intp.fonts.LogFontList()
	for _, name := range intp.fonts.TypeCaseNames() {
		pterm.Println(name)
	}
	return false, nil
}

func statsOp(intp *Intp, args []string) (bool, error) {
	heights, widths := intp.glyphs.Len()
	data := [][]string{
		{"Item", "Count"},
		{"cached heights", strconv.Itoa(heights)},
		{"cached widths", strconv.Itoa(widths)},
		{"missing resources", strconv.Itoa(intp.incidents.Count(core.EMISSING))},
		{"speller not ready", strconv.Itoa(intp.incidents.Count(core.ENOTREADY))},
		{"unsupported versions", strconv.Itoa(intp.incidents.Count(core.EUNSUPPORTED))},
		{"incidents total", strconv.Itoa(intp.incidents.Total())},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return false, err
	}
	if last := intp.incidents.Last(); last != nil {
		pterm.Printf("last incident: %v\n", last)
	}
	pterm.Printf("dictionaries: %v\n", intp.spellers.Languages())
	return false, nil
}
