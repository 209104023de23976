package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/playtrove/gamestore/config"
	"github.com/playtrove/gamestore/internal/domain/entity"
	"github.com/playtrove/gamestore/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	adminID := seedPrincipal(db, "admin", "admin123", entity.RoleAdmin)
	customerID := seedPrincipal(db, "demo", "demo1234", entity.RoleCustomer)
	fmt.Printf("principals ensured: admin=%d customer=%d\n", adminID, customerID)

	genreIDs := seedTags(db, "genres", []string{"RPG", "Shooter", "Strategy", "Platformer", "Co-op"})
	platformIDs := seedTags(db, "platforms", []string{"PC", "PlayStation 5", "Xbox Series X", "Switch"})
	fmt.Printf("tags ensured: %d genres, %d platforms\n", len(genreIDs), len(platformIDs))

	var gameID int64
	err = db.QueryRow(`
		INSERT INTO games (title, description)
		VALUES ($1, $2)
		ON CONFLICT (title) DO UPDATE SET description = EXCLUDED.description
		RETURNING id
	`, "Starfall Vanguard", "Squad-based sci-fi shooter with a co-op campaign").Scan(&gameID)
	if err != nil {
		log.Fatalf("failed to seed game: %v", err)
	}

	for _, gid := range genreIDs[:2] {
		if _, err := db.Exec(`
			INSERT INTO game_genres (game_id, genre_id)
			VALUES ($1, $2)
			ON CONFLICT (game_id, genre_id) DO NOTHING
		`, gameID, gid); err != nil {
			log.Fatalf("failed to seed game genre: %v", err)
		}
	}
	for _, pid := range platformIDs[:1] {
		if _, err := db.Exec(`
			INSERT INTO game_platforms (game_id, platform_id)
			VALUES ($1, $2)
			ON CONFLICT (game_id, platform_id) DO NOTHING
		`, gameID, pid); err != nil {
			log.Fatalf("failed to seed game platform: %v", err)
		}
	}
	fmt.Printf("seeded game id=%d with initial genres and platforms\n", gameID)
}

func seedPrincipal(db *sql.DB, handle, secret, role string) int64 {
	hash, err := helpers.HashSecret(secret)
	if err != nil {
		log.Fatalf("failed to hash secret: %v", err)
	}
	var id int64
	err = db.QueryRow(`
		INSERT INTO principals (handle, secret_hash, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (handle) DO UPDATE SET role = EXCLUDED.role
		RETURNING id
	`, handle, hash, role).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed principal %s: %v", handle, err)
	}
	return id
}

func seedTags(db *sql.DB, table string, names []string) []int64 {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		var id int64
		err := db.QueryRow(fmt.Sprintf(`
			INSERT INTO %s (name)
			VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, table), name).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed %s %q: %v", table, name, err)
		}
		ids = append(ids, id)
	}
	return ids
}
