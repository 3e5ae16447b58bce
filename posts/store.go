package posts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoRecord is returned by Store implementations when no post matches.
var ErrNoRecord = errors.New("record not found")

// Store is the persistence boundary for posts.
type Store interface {
	Insert(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]Post, error)
	Count(ctx context.Context) (int64, error)
	CountSlugPrefix(ctx context.Context, prefix string) (int64, error)
}

type pgStore struct {
	db *pgxpool.Pool
}

// NewStore creates a PostgreSQL-backed Store.
func NewStore(db *pgxpool.Pool) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Insert(ctx context.Context, post *Post) error {
	query := `INSERT INTO posts (user_id, title, slug, content)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	return s.db.QueryRow(ctx, query, post.UserID, post.Title, post.Slug, post.Content).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

func (s *pgStore) GetByID(ctx context.Context, id int64) (*Post, error) {
	var post Post
	query := `SELECT id, user_id, title, slug, content, created_at, updated_at
	          FROM posts WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.UserID, &post.Title, &post.Slug, &post.Content,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRecord
		}
		return nil, err
	}
	return &post, nil
}

func (s *pgStore) Update(ctx context.Context, post *Post) error {
	query := `UPDATE posts
	          SET title = $1, slug = $2, content = $3, updated_at = now()
	          WHERE id = $4
	          RETURNING updated_at`
	err := s.db.QueryRow(ctx, query, post.Title, post.Slug, post.Content, post.ID).
		Scan(&post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNoRecord
		}
		return err
	}
	return nil
}

func (s *pgStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRecord
	}
	return nil
}

// List returns posts in creation order. BIGSERIAL ids are assigned in
// insertion order, so ordering by id matches ordering by creation.
func (s *pgStore) List(ctx context.Context, limit, offset int) ([]Post, error) {
	query := `SELECT id, user_id, title, slug, content, created_at, updated_at
	          FROM posts ORDER BY id ASC LIMIT $1 OFFSET $2`
	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]Post, 0, limit)
	for rows.Next() {
		var post Post
		if err := rows.Scan(
			&post.ID, &post.UserID, &post.Title, &post.Slug, &post.Content,
			&post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, post)
	}
	return result, rows.Err()
}

func (s *pgStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count)
	return count, err
}

func (s *pgStore) CountSlugPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM posts WHERE slug LIKE $1 || '%'`, prefix).Scan(&count)
	return count, err
}
