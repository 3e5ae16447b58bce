package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// Sentinel errors returned by Store implementations. Services translate
// these into apperror values; the sentinels keep pgx out of the service layer.
var (
	ErrNoRecord       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Store is the persistence boundary for users and personal access tokens.
type Store interface {
	CreateUser(ctx context.Context, name, email, hashedPassword string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)

	CreateToken(ctx context.Context, userID int64, name, hash string) (*Token, error)
	GetTokenByID(ctx context.Context, id int64) (*Token, error)
	DeleteToken(ctx context.Context, id int64) error
	DeleteTokensForUser(ctx context.Context, userID int64) error
}

type pgStore struct {
	db *pgxpool.Pool
}

// NewStore creates a PostgreSQL-backed Store.
func NewStore(db *pgxpool.Pool) Store {
	return &pgStore{db: db}
}

func (s *pgStore) CreateUser(ctx context.Context, name, email, hashedPassword string) (*User, error) {
	user := &User{
		Name:           name,
		Email:          strings.ToLower(email),
		HashedPassword: hashedPassword,
	}
	query := `INSERT INTO users (name, email, password)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at, updated_at`
	err := s.db.QueryRow(ctx, query, user.Name, user.Email, user.HashedPassword).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

func (s *pgStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT id, name, email, password, created_at, updated_at
	          FROM users WHERE email = $1`
	err := s.db.QueryRow(ctx, query, strings.ToLower(email)).Scan(
		&user.ID, &user.Name, &user.Email, &user.HashedPassword,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRecord
		}
		return nil, err
	}
	return &user, nil
}

func (s *pgStore) GetUserByID(ctx context.Context, id int64) (*User, error) {
	var user User
	query := `SELECT id, name, email, password, created_at, updated_at
	          FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.HashedPassword,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRecord
		}
		return nil, err
	}
	return &user, nil
}

func (s *pgStore) CreateToken(ctx context.Context, userID int64, name, hash string) (*Token, error) {
	token := &Token{
		UserID: userID,
		Name:   name,
		Hash:   hash,
	}
	query := `INSERT INTO personal_access_tokens (user_id, name, token)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query, token.UserID, token.Name, token.Hash).
		Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (s *pgStore) GetTokenByID(ctx context.Context, id int64) (*Token, error) {
	var token Token
	query := `SELECT id, user_id, name, token, created_at
	          FROM personal_access_tokens WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).Scan(
		&token.ID, &token.UserID, &token.Name, &token.Hash, &token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRecord
		}
		return nil, err
	}
	return &token, nil
}

func (s *pgStore) DeleteToken(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM personal_access_tokens WHERE id = $1`, id)
	return err
}

func (s *pgStore) DeleteTokensForUser(ctx context.Context, userID int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM personal_access_tokens WHERE user_id = $1`, userID)
	return err
}
