// Package storage provides the opaque key-value persistence the conversation
// store writes through. Values are byte blobs (JSON in practice) and the
// store is oblivious to their shape.
//
// Two backends are provided: FileKV keeps one file per key in a directory,
// SQLiteKV keeps a single-table database. Both satisfy KV.
package storage

import "errors"

// ErrKeyNotFound is returned by Get when the key has never been set.
var ErrKeyNotFound = errors.New("key not found")

// KV is a minimal get/set/delete store.
type KV interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
