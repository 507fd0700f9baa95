// Package storage provides the durable key-value store behind favorites,
// ratings and recent searches.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

//go:generate mockgen -destination=mocks/mock_kv.go -package=mocks github.com/vmunix/marquee/internal/storage KV

var (
	// ErrNotFound indicates the requested key doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrConstraint indicates a constraint violation in the backing database.
	ErrConstraint = errors.New("constraint violation")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store closed")

	// ErrUnknownDriver is returned by Open for an unsupported driver name.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Driver names.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

// KV is a flat byte-valued key-value store.
// Get reports a missing key as (nil, false, nil).
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Config selects and locates a store.
type Config struct {
	Driver string
	Path   string
}

// Open creates the store named by cfg.Driver. An empty driver means sqlite.
func Open(cfg Config) (KV, error) {
	switch cfg.Driver {
	case "", DriverSQLite:
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		return OpenSQLite(cfg.Path)
	case DriverBolt:
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		return OpenBolt(cfg.Path)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

func ensureDir(path string) error {
	if path == "" {
		return errors.New("storage path is required")
	}
	if path == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	return nil
}
