// Package levels supplies the ordered level catalog: YAML files from a
// directory or the embedded default pack.
package levels

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-klotski/internal/games/klotski/levels/formats"
)

// Loader handles loading levels from a file system tree.
type Loader struct {
	FS     fs.FS
	Root   string // Walk start inside FS
	Name   string // Shown in errors
	Logger *log.Logger
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(dir string) *Loader {
	return &Loader{FS: os.DirFS(dir), Root: ".", Name: dir}
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.New(io.Discard)
	}
	return l.Logger
}

// LoadAll recursively scans and loads all level files.
// Files that fail to parse or validate are skipped and logged.
// Returns levels sorted by order, then ID, for deterministic ordering.
func (l *Loader) LoadAll() ([]formats.Level, error) {
	var levels []formats.Level

	err := fs.WalkDir(l.FS, l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			l.logger().Warn("skipping level file", "path", path, "err", err)
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Name, err)
	}

	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Order != levels[j].Order {
			return levels[i].Order < levels[j].Order
		}
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(path string) (formats.Level, error) {
	data, err := fs.ReadFile(l.FS, path)
	if err != nil {
		return formats.Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return formats.Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	if err := parsed.ToEngine().Validate(); err != nil {
		return formats.Level{}, fmt.Errorf("validating file %s: %w", path, err)
	}

	return parsed, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
