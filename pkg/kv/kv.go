// Package kv is the key-value layer under the recording store. Keys are
// hierarchical paths of string segments (e.g. ["recording", id]) joined with
// ':' in storage. Badger is the on-disk implementation; Memory backs tests.
package kv

import (
	"context"
	"errors"
	"iter"
	"strings"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("kv: not found")

// Separator joins key segments in storage. Segments must not contain it.
const Separator byte = ':'

// Key is a hierarchical path of string segments.
type Key []string

// String returns the encoded form of the key.
func (k Key) String() string {
	return strings.Join(k, string(Separator))
}

func encode(k Key) []byte {
	return []byte(k.String())
}

func decode(b []byte) Key {
	return Key(strings.Split(string(b), string(Separator)))
}

// Entry is a key-value pair yielded by List.
type Entry struct {
	Key   Key
	Value []byte
}

// Store is a key-value store with path-based keys.
type Store interface {
	// Get retrieves the value for a key, ErrNotFound if absent.
	Get(ctx context.Context, key Key) ([]byte, error)

	// Set stores a key-value pair, overwriting any existing value.
	Set(ctx context.Context, key Key, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key Key) error

	// List iterates entries whose key is strictly under the given prefix,
	// in lexicographic order of the encoded key.
	List(ctx context.Context, prefix Key) iter.Seq2[Entry, error]

	// Close releases store resources.
	Close() error
}

// listPrefix returns the encoded prefix with a trailing separator, so the
// prefix ["a","b"] matches "a:b:c" but not "a:bc". An empty prefix matches
// everything.
func listPrefix(prefix Key) []byte {
	if len(prefix) == 0 {
		return nil
	}
	return append(encode(prefix), Separator)
}
