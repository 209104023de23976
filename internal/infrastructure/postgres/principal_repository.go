package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playtrove/gamestore/internal/domain/entity"
	"github.com/playtrove/gamestore/internal/domain/repository"
)

type PrincipalRepository struct {
	pool *pgxpool.Pool
}

func NewPrincipalRepository(pool *pgxpool.Pool) *PrincipalRepository {
	return &PrincipalRepository{pool: pool}
}

func (r *PrincipalRepository) GetByHandle(ctx context.Context, handle string) (*entity.Principal, error) {
	p := &entity.Principal{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, handle, secret_hash, role, created_at
		FROM principals
		WHERE handle = $1
	`, handle)

	if err := row.Scan(&p.ID, &p.Handle, &p.SecretHash, &p.Role, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

var _ repository.PrincipalRepository = (*PrincipalRepository)(nil)
