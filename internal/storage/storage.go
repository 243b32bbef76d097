package storage

import (
	"context"
	"fmt"
	"strings"

	"useradmin/internal/config"
)

const (
	// TypeLocal stores avatars on the local filesystem.
	TypeLocal = "local"
	// TypeS3 stores avatars in Amazon S3 or any S3-compatible backend.
	TypeS3 = "s3"
)

// SaveOptions controls where an avatar is persisted. BaseName is the stable
// object name (uploads for the same user overwrite each other); Extension is
// the preferred file extension without the leading dot.
type SaveOptions struct {
	BaseName  string
	Extension string
}

// Storage persists binary data and returns a storage-specific identifier
// (a relative path for local storage, an object key for S3).
type Storage interface {
	Save(ctx context.Context, data []byte, opts SaveOptions) (string, error)
}

// LocalBaseDirProvider is implemented by storage drivers that expose a local
// directory which can be served directly over HTTP.
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// NewStorage instantiates the configured storage backend.
func NewStorage(cfg config.Config) (Storage, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}
