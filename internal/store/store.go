// Package store persists budget documents. One budget is one document,
// keyed by budget name; stores never look inside the bytes, the document
// package owns structure.
package store

import "context"

// Store is the durable home of encoded budget documents.
type Store interface {
	// Put writes the full document for the named budget, replacing any
	// previous version. Persistence is always a whole-snapshot write.
	Put(ctx context.Context, name string, doc []byte) error

	// Get returns the document for the named budget, or an error wrapping
	// core.ErrNotFound when no such budget is stored.
	Get(ctx context.Context, name string) ([]byte, error)

	// Names lists stored budget names.
	Names(ctx context.Context) ([]string, error)

	// Close releases underlying resources.
	Close() error
}
