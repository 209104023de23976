package repository

import (
	"context"

	"github.com/playtrove/gamestore/internal/domain/entity"
)

// GameRepository defines the interface for game catalog rows.
type GameRepository interface {
	Create(ctx context.Context, g *entity.Game) error
	GetByID(ctx context.Context, id int64) (*entity.Game, error)
	List(ctx context.Context) ([]entity.Game, error)
}
