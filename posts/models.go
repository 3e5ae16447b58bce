// Package posts implements the post store: listing, retrieval, and
// owner-gated create/update/delete, with slugs derived from titles.
package posts

import "time"

// Post is a blog post. UserID is fixed at creation; only the owner may
// update or delete the post. The slug is recomputed whenever the title
// changes, and the old slug is not redirected.
type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaginatedPosts is the envelope for GET /posts.
type PaginatedPosts struct {
	Data        []Post `json:"data"`
	Total       int64  `json:"total"`
	PerPage     int    `json:"per_page"`
	CurrentPage int    `json:"current_page"`
	LastPage    int    `json:"last_page"`
}
