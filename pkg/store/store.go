// Package store persists rendered scenes.
//
// A scene record pairs the recorded emitter output with the hash of the
// deck it was rendered from, so the render service can serve earlier
// renders by id and detect when a stored scene is stale. Two backends
// are provided:
//   - memory: in-process storage for development and tests
//   - mongo: MongoDB-backed storage for the render service
package store

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/deckdraw/pkg/emit"
)

// ErrNotFound is returned when a scene record does not exist.
var ErrNotFound = errors.New("scene not found")

// Record is one persisted scene.
type Record struct {
	ID        string     `json:"id" bson:"_id"`
	DeckHash  string     `json:"deck_hash" bson:"deck_hash"`
	SlideID   string     `json:"slide_id" bson:"slide_id"`
	Scene     emit.Scene `json:"scene" bson:"scene"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}

// Store is the scene persistence boundary.
type Store interface {
	// Put stores a record, replacing any record with the same id.
	Put(ctx context.Context, rec Record) error

	// Get retrieves a record by id. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (Record, error)

	// ListByDeck returns all records rendered from the given deck hash,
	// newest first.
	ListByDeck(ctx context.Context, deckHash string) ([]Record, error)

	// Delete removes a record. Deleting an absent record is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases the backend connection.
	Close(ctx context.Context) error
}
