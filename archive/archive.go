// SPDX-License-Identifier: MIT

// Package archive stores serialized genomes by name.
//
// The engine treats file transport as "text in, text out": an Archive only
// moves opaque text blobs produced by codec.Encode and consumed by
// codec.Decode. Two backends are provided:
//
//   - Badger: an embedded key/value store (on disk or in memory).
//   - Dir: one "<name>.genome" file per entry in a directory.
//
// Names are non-empty, at most 255 bytes, and may not contain path
// separators, NUL, or be "." or "..".
package archive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrNotFound indicates no entry exists under the name.
	ErrNotFound = errors.New("archive: not found")

	// ErrEmptyName indicates an empty entry name.
	ErrEmptyName = errors.New("archive: empty name")

	// ErrInvalidName indicates a name that cannot be stored safely.
	ErrInvalidName = errors.New("archive: invalid name")

	// ErrUnknownBackend indicates an unsupported backend selector.
	ErrUnknownBackend = errors.New("archive: unknown backend")
)

// Archive is a named store of serialized genomes. Save overwrites.
type Archive interface {
	Save(ctx context.Context, name, text string) error
	Load(ctx context.Context, name string) (string, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// Backend selects an Archive implementation.
type Backend string

// Supported backends.
const (
	BackendBadger Backend = "badger"
	BackendDir    Backend = "dir"
	BackendMemory Backend = "memory"
)

// Open returns the archive for backend. path is ignored by BackendMemory.
func Open(backend Backend, path string, logger *zap.Logger) (Archive, error) {
	switch backend {
	case BackendBadger:
		cfg := DefaultConfig()
		cfg.Path = path
		cfg.Logger = logger
		return OpenBadger(cfg)
	case BackendMemory:
		cfg := InMemoryConfig()
		cfg.Logger = logger
		return OpenBadger(cfg)
	case BackendDir:
		return OpenDir(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// CheckName validates an entry name.
func CheckName(name string) error {
	switch {
	case name == "":
		return ErrEmptyName
	case len(name) > 255,
		name == ".", name == "..",
		strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
