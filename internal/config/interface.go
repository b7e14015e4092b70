package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/weasel/internal/ctxlog"
)

// ErrUnsupportedFormat is returned when no loader handles a file's extension.
var ErrUnsupportedFormat = errors.New("unsupported config file format")

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the file at path and translates it into the
	// format-agnostic Settings.
	Load(ctx context.Context, path string) (*Settings, error)
}

// Loaders maps a lowercase file extension, including the dot, to its loader.
type Loaders map[string]Loader

// Load picks the loader registered for path's extension and runs it.
func Load(ctx context.Context, path string, loaders Loaders) (*Settings, error) {
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := loaders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	ctxlog.FromContext(ctx).Debug("Loading config file.", "path", path, "format", ext)

	s, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return s, nil
}
