/*
Package parameters collects the configuration keys of imetext and helpers
to read typed values from a schuko configuration.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
)

// Configuration keys
const (
	AppKey            = "app-key"            // application key, names the user cache sub-folder
	PlatformVersion   = "platform.version"   // API level of the running platform
	FontDefault       = "font.default"       // system font replacing Go Regular
	FontBold          = "font.bold"          // system font replacing Go Bold
	FontMonospace     = "font.monospace"     // system font replacing Go Mono
	ResourcesDir      = "resources.dir"      // directory overlaying packaged resources
	SpellDictionaries = "spell.dictionaries" // directory of <lang>.dic word lists
	SpellUnlimited    = "spell.unlimited"    // ignore suggestion limits if "true"
)

// DefaultPlatformVersion is used if no platform version is configured.
const DefaultPlatformVersion = 21

// String returns the configured value for key, or dflt if conf is nil or the
// value is empty.
func String(conf schuko.Configuration, key string, dflt string) string {
	if conf == nil {
		return dflt
	}
	if s := strings.TrimSpace(conf.GetString(key)); s != "" {
		return s
	}
	return dflt
}

// Int returns the configured integer value for key, or dflt if the key is not
// set or not numeric.
func Int(conf schuko.Configuration, key string, dflt int) int {
	s := String(conf, key, "")
	if s == "" {
		return dflt
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return dflt
	}
	return n
}

// Bool returns the configured boolean value for key, or dflt if the key is
// not set or not parseable.
func Bool(conf schuko.Configuration, key string, dflt bool) bool {
	s := String(conf, key, "")
	if s == "" {
		return dflt
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return dflt
	}
	return b
}
