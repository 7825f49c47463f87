/*
Command imecli is an interactive shell for the text services of an input method:
glyph metrics, codepoint availability per platform version and spell checking.

	imecli -platform 22 -dict ./dictionaries -lang en_US

Type 'help' at the prompt for a list of commands, quit with <ctrl>D.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/chzyer/readline"
	"github.com/npillmayer/imetext/core"
	"github.com/npillmayer/imetext/core/font/codepoints"
	"github.com/npillmayer/imetext/core/font/fontregistry"
	"github.com/npillmayer/imetext/core/font/glyphcache"
	"github.com/npillmayer/imetext/core/locate/resources"
	"github.com/npillmayer/imetext/core/parameters"
	"github.com/npillmayer/imetext/spell"
	"github.com/npillmayer/imetext/spell/wordlist"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'imetext.cli'
func tracer() tracing.Trace {
	return tracing.Select("imetext.cli")
}

var tracers = []string{
	"imetext.cli",
	"imetext.codepoints",
	"imetext.font",
	"imetext.glyphs",
	"imetext.resources",
	"imetext.spell",
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":          "go",
		"trace.imetext.cli":        "Info",
		"trace.imetext.codepoints": "Info",
		"trace.imetext.font":       "Info",
		"trace.imetext.glyphs":     "Info",
		"trace.imetext.resources":  "Info",
		"trace.imetext.spell":      "Info",
		parameters.AppKey:          "imetext",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	platform := flag.Int("platform", parameters.DefaultPlatformVersion, "Platform version (API level)")
	dictdir := flag.String("dict", "", "Directory of <lang>.dic word lists")
	resdir := flag.String("resources", "", "Directory overlaying packaged resources")
	lang := flag.String("lang", "en_US", "Locale of the spell checking session")
	unlimited := flag.Bool("unlimited", false, "Ignore suggestion limits")
	flag.Parse()
	conf[parameters.PlatformVersion] = strconv.Itoa(*platform)
	conf[parameters.SpellDictionaries] = *dictdir
	conf[parameters.ResourcesDir] = *resdir
	conf[parameters.SpellUnlimited] = strconv.FormatBool(*unlimited)
	for _, key := range tracers {
		tracing.Select(key).SetTraceLevel(tracing.LevelError) // will set the correct level later
	}
	pterm.Info.Println("Welcome to the IME text services CLI")
	//
	// set up REPL
	repl, err := readline.New("ime > ")
	if err != nil {
		core.UserError(err)
		os.Exit(3)
	}
	intp, err := setup(conf, *lang)
	if err != nil {
		core.UserError(err)
		os.Exit(4)
	}
	intp.repl = repl
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D")
	level := tracing.LevelError
	switch *tlevel {
	case "Debug":
		level = tracing.LevelDebug
	case "Info":
		level = tracing.LevelInfo
	case "Error":
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	for _, key := range tracers {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl      *readline.Instance
	incidents *core.IncidentCounter
	fonts     *fontregistry.Registry
	glyphs    *glyphcache.Cache
	table     *codepoints.Table
	spellers  *spell.Registry
	session   *spell.Session
	limit     int
}

// setup wires the services from the configuration. Missing resources and
// dictionaries are reported as incidents, but do not stop the CLI.
func setup(conf testconfig.Conf, lang string) (*Intp, error) {
	intp := &Intp{incidents: &core.IncidentCounter{}, limit: 5}
	incidents := core.Fanout(intp.incidents, core.IncidentFunc(func(err error) {
		tracer().Debugf("incident: %v", err)
	}))
	intp.fonts = fontregistry.Setup(conf, incidents)
	intp.glyphs = glyphcache.New(intp.fonts)
	platform := parameters.Int(conf, parameters.PlatformVersion, parameters.DefaultPlatformVersion)
	table, err := codepoints.Load(resources.Configured(conf), platform, codepoints.WithIncidents(incidents))
	if err != nil {
		return nil, err
	}
	intp.table = table
	intp.spellers = spell.NewRegistry()
	if dir := parameters.String(conf, parameters.SpellDictionaries, ""); dir != "" {
		if _, err := wordlist.RegisterDirectory(intp.spellers, dir); err != nil {
			incidents.Incident(err)
		}
	}
	service, err := spell.NewService(intp.spellers, spell.WithIncidents(incidents), spell.WithConfig(conf))
	if err != nil {
		return nil, err
	}
	intp.session = service.CreateSession(lang)
	return intp, nil
}
