package store

import (
	"context"

	"github.com/halverson/recall-api/internal/domain"
)

// CollectionKey is the single key under which the whole topic collection is
// persisted. The engine never performs partial writes or migrations of the
// payload; the serialized array is rewritten wholesale after every mutation.
const CollectionKey = "topics"

// TopicStore defines the interface for topic collection persistence.
//
// The collection is the unit of storage: Load is called once at startup and
// Save replaces the full serialized array after every committed mutation.
type TopicStore interface {
	// Load retrieves the full topic collection. A store with no prior state
	// returns an empty collection, not an error.
	Load(ctx context.Context) ([]*domain.Topic, error)

	// Save replaces the persisted collection with the given snapshot.
	Save(ctx context.Context, topics []*domain.Topic) error
}
