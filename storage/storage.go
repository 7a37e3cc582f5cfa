package storage

import (
	"context"
	"errors"
)

// Driver identifies a key-value backend.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverFile     Driver = "file"
	DriverSQLite   Driver = "sqlite"
	DriverRedis    Driver = "redis"
	DriverPostgres Driver = "postgres"
)

// ErrNoKey is returned by Get when the key has never been written.
var ErrNoKey = errors.New("storage: key not found")

// KV is the persistence substrate the domain store synchronizes to.
// Collections are written as whole JSON blobs under a fixed key each, so
// the interface is deliberately minimal.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, blob []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}
