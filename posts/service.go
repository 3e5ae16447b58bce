package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/validation"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// Service defines the post operations exposed to the HTTP layer.
type Service interface {
	List(ctx context.Context, page, perPage int) (*PaginatedPosts, error)
	Get(ctx context.Context, id int64) (*Post, error)
	Create(ctx context.Context, ownerID int64, req PostRequest) (*Post, error)
	Update(ctx context.Context, id, requesterID int64, req PostRequest) (*Post, error)
	Delete(ctx context.Context, id, requesterID int64) error
}

type service struct {
	store Store
}

// NewService creates a post Service backed by the given Store.
func NewService(store Store) Service {
	return &service{store: store}
}

// List returns posts in creation order, paginated. Out-of-range pages yield
// an empty data slice with the real total, never an error.
func (s *service) List(ctx context.Context, page, perPage int) (*PaginatedPosts, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to count posts", err)
	}

	items, err := s.store.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	return &PaginatedPosts{
		Data:        items,
		Total:       total,
		PerPage:     perPage,
		CurrentPage: page,
		LastPage:    lastPage,
	}, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Post, error) {
	post, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, apperror.NewNotFoundError("Post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}
	return post, nil
}

func (s *service) Create(ctx context.Context, ownerID int64, req PostRequest) (*Post, error) {
	if appErr := validation.Struct(req); appErr != nil {
		return nil, appErr
	}

	slug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	post := &Post{
		UserID:  ownerID,
		Title:   req.Title,
		Slug:    slug,
		Content: req.Content,
	}
	if err := s.store.Insert(ctx, post); err != nil {
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}
	return post, nil
}

func (s *service) Update(ctx context.Context, id, requesterID int64, req PostRequest) (*Post, error) {
	post, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, apperror.NewNotFoundError("Post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}

	if post.UserID != requesterID {
		return nil, apperror.NewForbiddenError("You do not have permission to modify this post.", nil)
	}

	if appErr := validation.Struct(req); appErr != nil {
		return nil, appErr
	}

	slug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	post.Title = req.Title
	post.Slug = slug
	post.Content = req.Content
	if err := s.store.Update(ctx, post); err != nil {
		return nil, apperror.NewDatabaseError("failed to update post", err)
	}
	return post, nil
}

func (s *service) Delete(ctx context.Context, id, requesterID int64) error {
	post, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return apperror.NewNotFoundError("Post not found", nil)
		}
		return apperror.NewDatabaseError("failed to get post", err)
	}

	if post.UserID != requesterID {
		return apperror.NewForbiddenError("You do not have permission to delete this post.", nil)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return apperror.NewDatabaseError("failed to delete post", err)
	}
	return nil
}

// uniqueSlug disambiguates by counting existing slugs sharing the prefix and
// appending that count as a suffix. The count-then-write sequence is not
// transactional, so two concurrent creates with the same title can still
// collide; the slug column is deliberately not unique.
func (s *service) uniqueSlug(ctx context.Context, title string) (string, error) {
	slug := Slugify(title)
	count, err := s.store.CountSlugPrefix(ctx, slug)
	if err != nil {
		return "", apperror.NewDatabaseError("failed to count slugs", err)
	}
	if count == 0 {
		return slug, nil
	}
	return fmt.Sprintf("%s-%d", slug, count), nil
}
