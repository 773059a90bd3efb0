// Package store defines the document-store contract the registries depend
// on: a mapping from (collection, id) to a JSON-serializable record with
// create/read/update/delete semantics. Backends live in subpackages.
package store

import (
	"context"
	"errors"
)

// Collections used by the registries.
const (
	CollectionUsers  = "users"
	CollectionTokens = "tokens"
	CollectionChecks = "checks"
)

var (
	// ErrNotFound is returned by Read, Update and Delete when no record
	// exists under the given id.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned by Create when a record already exists
	// under the given id.
	ErrAlreadyExists = errors.New("record already exists")
)

// Store is the per-record document store. Individual operations are
// serialized by the backend; there are no cross-record transactions.
type Store interface {
	// Create persists doc under (collection, id). Fails with
	// ErrAlreadyExists if the id is taken.
	Create(ctx context.Context, collection, id string, doc any) error

	// Read loads the record under (collection, id) into out.
	// Fails with ErrNotFound if absent.
	Read(ctx context.Context, collection, id string, out any) error

	// Update replaces the record under (collection, id).
	// Fails with ErrNotFound if absent.
	Update(ctx context.Context, collection, id string, doc any) error

	// Delete removes the record under (collection, id).
	// Fails with ErrNotFound if absent.
	Delete(ctx context.Context, collection, id string) error
}
