// Package storage abstracts where the run-history ledger lives. The engine
// only needs three verbs, so the interface stays small enough that a remote
// backend can slot in later without touching pkg/history.
package storage

import "context"

// BlobStore is the minimal key/value surface the history ledger needs.
// Missing keys on Get surface the backend's native not-found error
// (os.IsNotExist for LocalStore) so callers can treat an empty ledger as a
// fresh start.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}
