package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playtrove/gamestore/internal/domain/entity"
	"github.com/playtrove/gamestore/internal/domain/repository"
)

const uniqueViolation = "23505"

// AssociationRepository implements the edge store over one join table.
// Identifiers are fixed at construction, never taken from request input.
type AssociationRepository struct {
	pool      *pgxpool.Pool
	table     string // join table, e.g. game_genres
	entityCol string // owning-entity column, e.g. game_id
	tagCol    string // tag column, e.g. genre_id
	tagTable  string // tag table for name joins, e.g. genres
}

// NewGameGenres returns the repository over the game_genres join table.
func NewGameGenres(pool *pgxpool.Pool) *AssociationRepository {
	return &AssociationRepository{pool: pool, table: "game_genres", entityCol: "game_id", tagCol: "genre_id", tagTable: "genres"}
}

// NewGamePlatforms returns the repository over the game_platforms join table.
func NewGamePlatforms(pool *pgxpool.Pool) *AssociationRepository {
	return &AssociationRepository{pool: pool, table: "game_platforms", entityCol: "game_id", tagCol: "platform_id", tagTable: "platforms"}
}

// Reconcile rewrites the stored tag set for entityID to equal exactly tagIDs
// inside a single transaction on a dedicated pooled connection.
//
// Delete-then-insert is simpler than computing a diff and correct here: no
// caller can observe the empty intermediate state from outside the
// transaction. The full-rewrite cost on unchanged sets is accepted.
func (r *AssociationRepository) Reconcile(ctx context.Context, entityID int64, tagIDs []int64) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	// No-op after a successful commit; guarantees rollback on every other
	// exit path, including context cancellation mid-transaction.
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, r.table, r.entityCol),
		entityID,
	); err != nil {
		return fmt.Errorf("clear associations: %w", err)
	}

	if len(tagIDs) > 0 {
		rows := make([][]any, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			rows = append(rows, []any{entityID, tagID})
		}
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{r.table},
			[]string{r.entityCol, r.tagCol},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("insert associations: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *AssociationRepository) AddEdge(ctx context.Context, entityID, tagID int64) error {
	_, err := r.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, r.table, r.entityCol, r.tagCol),
		entityID, tagID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEdge
		}
		return err
	}
	return nil
}

func (r *AssociationRepository) RemoveEdge(ctx context.Context, entityID, tagID int64) (bool, error) {
	res, err := r.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, r.table, r.entityCol, r.tagCol),
		entityID, tagID,
	)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *AssociationRepository) HasEdge(ctx context.Context, entityID, tagID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`, r.table, r.entityCol, r.tagCol),
		entityID, tagID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *AssociationRepository) ListTags(ctx context.Context, entityID int64) ([]entity.Tag, error) {
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`
			SELECT t.id, t.name
			FROM %s t
			JOIN %s j ON j.%s = t.id
			WHERE j.%s = $1
			ORDER BY t.name
		`, r.tagTable, r.table, r.tagCol, r.entityCol),
		entityID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Tag
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *AssociationRepository) ListEntityIDs(ctx context.Context, tagID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`, r.entityCol, r.table, r.tagCol, r.entityCol),
		tagID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *AssociationRepository) CountEntities(ctx context.Context, tagID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, r.table, r.tagCol),
		tagID,
	).Scan(&n)
	return n, err
}

var _ repository.AssociationRepository = (*AssociationRepository)(nil)
