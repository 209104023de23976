package repository

import (
	"context"
	"errors"

	"github.com/playtrove/gamestore/internal/domain/entity"
)

// ErrDuplicateEdge marks an insert of an already-present entity/tag pair.
// Callers may treat it as success-already-satisfied; it is never a 5xx.
var ErrDuplicateEdge = errors.New("association already exists")

// AssociationRepository manages the many-to-many edges between an owning
// entity and its tags: the transactional reconcile write path plus the
// read-side queries over the same table.
type AssociationRepository interface {
	// Reconcile atomically rewrites the stored tag set for entityID to equal
	// exactly tagIDs. On any failure the transaction is rolled back and no
	// partial edge set is ever visible. Callers must pass a proper set;
	// duplicate ids are rejected by the database's composite key.
	Reconcile(ctx context.Context, entityID int64, tagIDs []int64) error

	// AddEdge inserts a single edge, returning ErrDuplicateEdge if present.
	AddEdge(ctx context.Context, entityID, tagID int64) error
	// RemoveEdge deletes a single edge and reports whether a row was removed.
	RemoveEdge(ctx context.Context, entityID, tagID int64) (bool, error)
	HasEdge(ctx context.Context, entityID, tagID int64) (bool, error)

	// ListTags returns the tags associated with an entity, name-joined.
	ListTags(ctx context.Context, entityID int64) ([]entity.Tag, error)
	// ListEntityIDs returns the ids of entities carrying a tag.
	ListEntityIDs(ctx context.Context, tagID int64) ([]int64, error)
	CountEntities(ctx context.Context, tagID int64) (int64, error)
}
