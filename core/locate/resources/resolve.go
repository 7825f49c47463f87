package resources

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/npillmayer/imetext/core"
)

// ID identifies a raw resource.
type ID int

// Known resources. Each names a bitset of codepoints which cannot be drawn
// on a platform version.
const (
	UnicodeAPI16 ID = 16
	UnicodeAPI19 ID = 19
	UnicodeAPI21 ID = 21
)

var resourceFiles = map[ID]string{
	UnicodeAPI16: "unicode/unicode_api16.bin",
	UnicodeAPI19: "unicode/unicode_api19.bin",
	UnicodeAPI21: "unicode/unicode_api21.bin",
}

// Filename returns the file name of a resource, relative to a resource root.
func Filename(id ID) (string, bool) {
	f, ok := resourceFiles[id]
	return f, ok
}

func (id ID) String() string {
	if f, ok := resourceFiles[id]; ok {
		return path.Base(f)
	}
	return fmt.Sprintf("resource-%d", int(id))
}

// NotFound returns an application error for a missing resource.
func NotFound(id ID, cause error) error {
	if cause == nil {
		cause = fmt.Errorf("resource missing: %v", id)
	}
	return core.WrapError(cause, core.EMISSING, "resource not readable: %s", id)
}

// Loader delivers the bytes of a resource.
type Loader interface {
	Load(id ID) ([]byte, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(id ID) ([]byte, error)

// Load calls f(id).
func (f LoaderFunc) Load(id ID) ([]byte, error) {
	return f(id)
}

//go:embed packaged/*
var packaged embed.FS

// Packaged returns a loader for resources compiled into the binary.
func Packaged() Loader {
	sub, err := fs.Sub(packaged, "packaged")
	if err != nil {
		panic("packaged resources not embedded") // this cannot happen
	}
	return fsLoader{fsys: sub, name: "packaged"}
}

// Directory returns a loader reading resources from a directory tree with the
// same layout as the packaged resources.
func Directory(dir string) Loader {
	return fsLoader{fsys: os.DirFS(dir), name: dir}
}

type fsLoader struct {
	fsys fs.FS
	name string
}

func (l fsLoader) Load(id ID) ([]byte, error) {
	fname, ok := resourceFiles[id]
	if !ok {
		return nil, NotFound(id, nil)
	}
	data, err := fs.ReadFile(l.fsys, fname)
	if err != nil {
		return nil, NotFound(id, err)
	}
	tracer().Debugf("loaded %s from %s (%d bytes)", fname, l.name, len(data))
	return data, nil
}

// Overlay returns a loader which asks every loader in turn and delivers the
// first successful result. If all loaders fail, the error of the last one is
// returned.
func Overlay(loaders ...Loader) Loader {
	return LoaderFunc(func(id ID) ([]byte, error) {
		err := NotFound(id, nil)
		for _, l := range loaders {
			if l == nil {
				continue
			}
			var data []byte
			if data, err = l.Load(id); err == nil {
				return data, nil
			}
			tracer().Debugf("overlay: %v", err)
		}
		return nil, err
	})
}

// ReadOrEmpty loads a resource. If loading fails, the error is traced and
// handed to incidents, and an empty byte slice is returned.
func ReadOrEmpty(loader Loader, id ID, incidents core.IncidentHandler) []byte {
	data, err := loader.Load(id)
	if err != nil {
		if core.Code(err) != core.EMISSING {
			err = NotFound(id, err)
		}
		tracer().Errorf("failed to read %s: %v", id, err)
		if incidents != nil {
			incidents.Incident(err)
		}
		return []byte{}
	}
	return data
}
