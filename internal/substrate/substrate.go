// Package substrate provides the durable key-value layer both stores persist
// to. It is a narrow capability (get/set/remove by key) injected at store
// construction; backends are interchangeable and the stores never assume more
// than "the write either lands or errors".
package substrate

import (
	"context"
	"errors"
)

// The three slots the stores use. The whole value is rewritten on every
// mutation of the owning store.
const (
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
	KeyPosts       = "posts"
)

// ErrNotFound indicates the key has no persisted value.
var ErrNotFound = errors.New("substrate: key not found")

// Substrate is a synchronous string-keyed persistent map. Writes may fail
// (quota, backend error); callers must not assume a failed write corrupted
// previously stored values.
type Substrate interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
