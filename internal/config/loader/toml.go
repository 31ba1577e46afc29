package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// IncludeKey is the top-level key listing files merged beneath a config.
const IncludeKey = "@include"

// MaxIncludeDepth bounds nested @include directives.
const MaxIncludeDepth = 8

// ErrIncludeDepthExceeded indicates too many nested @include directives.
var ErrIncludeDepthExceeded = errors.New("include depth exceeded")

// TOMLLoader loads a TOML file together with the files it includes.
type TOMLLoader struct {
	fsys     FileSystem
	path     string
	maxDepth int
}

// NewTOMLLoader creates a loader for path read through fsys.
func NewTOMLLoader(fsys FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{fsys: fsys, path: path, maxDepth: MaxIncludeDepth}
}

// Load reads the file and merges each file named by its @include key
// beneath it, so the including file wins. Relative includes resolve
// against the including file's directory. Missing files, at the top or
// included, contribute nothing.
func (l *TOMLLoader) Load() (map[string]any, error) {
	return l.load(l.path, l.maxDepth)
}

func (l *TOMLLoader) load(path string, depth int) (map[string]any, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w for %s", ErrIncludeDepthExceeded, path)
	}

	data, err := l.fsys.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	config, err := parse(path, data)
	if err != nil {
		return nil, err
	}

	includes, err := includeList(config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	delete(config, IncludeKey)

	baseDir := filepath.Dir(path)
	for _, inc := range includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(baseDir, inc)
		}
		incConfig, err := l.load(inc, depth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include: %w", err)
		}
		config = DeepMerge(incConfig, config)
	}

	return config, nil
}

// includeList returns the paths named by the @include key, which may be a
// string or an array of strings.
func includeList(config map[string]any) ([]string, error) {
	switch v := config[IncludeKey].(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s entries must be strings, got %T", IncludeKey, item)
			}
			list = append(list, s)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("%s must be string or array of strings, got %T", IncludeKey, v)
	}
}

// parse decodes TOML data, reporting the error position when go-toml
// provides one.
func parse(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	if config == nil {
		config = make(map[string]any)
	}
	return config, nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
// Maps are merged recursively; other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}

	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = srcVal
	}

	return dst
}
