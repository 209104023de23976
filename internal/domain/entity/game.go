package entity

import "time"

// Game is the owning side of the genre and platform associations.
// Many-to-many with Tag via game_genres and game_platforms.
type Game struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   time.Time
}
