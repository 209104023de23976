package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playtrove/gamestore/internal/domain/entity"
	"github.com/playtrove/gamestore/internal/domain/repository"
)

type GameRepository struct {
	pool *pgxpool.Pool
}

func NewGameRepository(pool *pgxpool.Pool) *GameRepository {
	return &GameRepository{pool: pool}
}

func (r *GameRepository) Create(ctx context.Context, g *entity.Game) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO games (title, description)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, g.Title, g.Description)

	return row.Scan(&g.ID, &g.CreatedAt)
}

func (r *GameRepository) GetByID(ctx context.Context, id int64) (*entity.Game, error) {
	g := &entity.Game{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, created_at
		FROM games
		WHERE id = $1
	`, id)

	if err := row.Scan(&g.ID, &g.Title, &g.Description, &g.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return g, nil
}

func (r *GameRepository) List(ctx context.Context) ([]entity.Game, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, created_at
		FROM games
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Game
	for rows.Next() {
		var g entity.Game
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

var _ repository.GameRepository = (*GameRepository)(nil)
