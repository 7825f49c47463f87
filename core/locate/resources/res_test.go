package resources

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/imetext/core"
	"github.com/npillmayer/imetext/core/parameters"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPackaged(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "imetext.resources")
	defer teardown()
	//
	for _, id := range []ID{UnicodeAPI16, UnicodeAPI19, UnicodeAPI21} {
		data, err := Packaged().Load(id)
		require.NoError(t, err, "resource %s", id)
		assert.NotEmpty(t, data)
	}
	_, err := Packaged().Load(ID(42))
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.Equal(t, "unicode_api21.bin", UnicodeAPI21.String())
}

func TestDirectoryOverlay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "imetext.resources")
	defer teardown()
	//
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "unicode"), 0755))
	fname, _ := Filename(UnicodeAPI19)
	require.NoError(t, os.WriteFile(filepath.Join(dir, fname), []byte{0xff}, 0644))
	//
	l := Overlay(Directory(dir), Packaged())
	data, err := l.Load(UnicodeAPI19)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff}, data, "expected the directory to win")
	data, err = l.Load(UnicodeAPI16)
	require.NoError(t, err)
	assert.Greater(t, len(data), 1, "expected packaged data for API 16")
	//
	_, err = Overlay(Directory(dir)).Load(UnicodeAPI21)
	assert.Error(t, err)
}

func TestReadOrEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "imetext.resources")
	defer teardown()
	//
	incidents := &core.IncidentCounter{}
	broken := LoaderFunc(func(id ID) ([]byte, error) {
		return nil, errors.New("disk on fire")
	})
	data := ReadOrEmpty(broken, UnicodeAPI21, incidents)
	assert.NotNil(t, data)
	assert.Empty(t, data)
	assert.Equal(t, 1, incidents.Count(core.EMISSING))
	//
	data = ReadOrEmpty(Packaged(), UnicodeAPI21, incidents)
	assert.NotEmpty(t, data)
	assert.Equal(t, 1, incidents.Total())
}

func TestConfiguredLoader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "imetext.resources")
	defer teardown()
	//
	_, err := CacheDirPath(testconfig.Conf{})
	assert.Equal(t, core.EINVALID, core.Code(err))
	//
	dir := t.TempDir()
	l := Configured(testconfig.Conf{parameters.ResourcesDir: dir})
	data, err := l.Load(UnicodeAPI16)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
