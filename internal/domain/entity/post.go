package entity

import "time"

// Post references its Category and authoring User by id. Both references are
// nullable: deleting a category or user leaves the post in place with the
// reference cleared.
type Post struct {
	ID         string
	Title      string
	Content    string
	ImageURL   string
	CategoryID string
	AuthorID   string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Resolved on read (JOIN), empty when the reference is gone.
	CategoryName   string
	AuthorUsername string
}
