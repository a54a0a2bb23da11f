package kv

import "errors"

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("kv: key not found")

// Store is the key-value persistence port for the storefront core. The
// production backend is a per-key file under a data directory; tests use the
// in-memory implementation.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
