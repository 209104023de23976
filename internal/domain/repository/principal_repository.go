package repository

import (
	"context"
	"errors"

	"github.com/playtrove/gamestore/internal/domain/entity"
)

// ErrNotFound marks an absent row, distinct from a genuine storage failure.
var ErrNotFound = errors.New("not found")

// PrincipalRepository defines read access to the credential store.
type PrincipalRepository interface {
	GetByHandle(ctx context.Context, handle string) (*entity.Principal, error)
}
