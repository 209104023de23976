package entity

// Tag is a uniquely named label with its own lifecycle, referenced by
// associations. Genres and platforms share this shape; they live in
// separate tables.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
