/*
Package resources resolves raw resources for an application.

Resources are identified by a numeric ID and are delivered as byte slices.
Packaged resources are compiled into the binary; a directory loader reads
the same file names from disk, and an overlay prefers a user's directory
over packaged data. Clients which cannot do without a resource should
use ReadOrEmpty, which never fails but reports read errors as incidents.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'imetext.resources'.
func tracer() tracing.Trace {
	return tracing.Select("imetext.resources")
}
