// Package loader reads raw configuration maps for imepad.
//
// Each source, a TOML file or the process environment, produces a nested
// map[string]any keyed by section and setting. The config package merges
// the maps in order over its defaults and converts values by setting type.
package loader

import "os"

// Loader produces one configuration layer. A source that does not exist
// yields nil, nil.
type Loader interface {
	Load() (map[string]any, error)
}

var (
	_ Loader = (*TOMLLoader)(nil)
	_ Loader = (*EnvLoader)(nil)
)

// FileSystem reads configuration files. fstest.MapFS satisfies it for
// relative paths.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the operating system.
type OSFS struct{}

// ReadFile calls os.ReadFile.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
