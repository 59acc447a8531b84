package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Open when no artifact is stored under the name.
var ErrNotExist = errors.New("artifact does not exist")

// Store persists rendered artifacts by name. Save overwrites an existing artifact.
type Store interface {
	Save(ctx context.Context, name string, data []byte) error
	Open(ctx context.Context, name string) ([]byte, error)
}
