package resources

import (
	"os"
	"path/filepath"

	"github.com/npillmayer/imetext/core"
	"github.com/npillmayer/imetext/core/parameters"
	"github.com/npillmayer/schuko"
)

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key, taken as `app-key` from the configuration.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(conf schuko.Configuration, subfolders ...string) (string, error) {
	appkey := parameters.String(conf, parameters.AppKey, "")
	tracer().Debugf("config[%s] = %s", parameters.AppKey, appkey)
	if appkey == "" {
		return "", core.Error(core.EINVALID, "application key is not set")
	}
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	subs := filepath.Join(subfolders...)
	cachedir = filepath.Join(cachedir, appkey, subs)
	tracer().Infof("caching in %s", cachedir)
	_, err = os.Stat(cachedir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(cachedir, 0755)
		if err != nil {
			return "", err
		}
	}
	return cachedir, nil
}

// Configured returns the loader an application should use: a directory
// configured as `resources.dir`, or else the user cache folder 'resources',
// overlaying the packaged resources. If neither directory is available, the
// packaged resources are used alone.
func Configured(conf schuko.Configuration) Loader {
	if dir := parameters.String(conf, parameters.ResourcesDir, ""); dir != "" {
		tracer().Infof("resources overlayed from %s", dir)
		return Overlay(Directory(dir), Packaged())
	}
	if dir, err := CacheDirPath(conf, "resources"); err == nil {
		return Overlay(Directory(dir), Packaged())
	}
	return Packaged()
}
