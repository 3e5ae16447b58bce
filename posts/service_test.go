package posts

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/blogapi-go/apperror"
)

// fakeStore is an in-memory Store backed by a slice. Not safe for concurrent
// use; the service under test is exercised from a single goroutine.
type fakeStore struct {
	posts  []Post
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1}
}

func (f *fakeStore) Insert(_ context.Context, post *Post) error {
	post.ID = f.nextID
	f.nextID++
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	f.posts = append(f.posts, *post)
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*Post, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			post := f.posts[i]
			return &post, nil
		}
	}
	return nil, ErrNoRecord
}

func (f *fakeStore) Update(_ context.Context, post *Post) error {
	for i := range f.posts {
		if f.posts[i].ID == post.ID {
			post.UpdatedAt = time.Now()
			f.posts[i] = *post
			return nil
		}
	}
	return ErrNoRecord
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return ErrNoRecord
}

func (f *fakeStore) List(_ context.Context, limit, offset int) ([]Post, error) {
	if offset >= len(f.posts) {
		return []Post{}, nil
	}
	end := offset + limit
	if end > len(f.posts) {
		end = len(f.posts)
	}
	return append([]Post{}, f.posts[offset:end]...), nil
}

func (f *fakeStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.posts)), nil
}

func (f *fakeStore) CountSlugPrefix(_ context.Context, prefix string) (int64, error) {
	var count int64
	for i := range f.posts {
		if strings.HasPrefix(f.posts[i].Slug, prefix) {
			count++
		}
	}
	return count, nil
}

func seedPosts(t *testing.T, svc Service, ownerID int64, titles ...string) []*Post {
	t.Helper()
	created := make([]*Post, 0, len(titles))
	for _, title := range titles {
		post, err := svc.Create(context.Background(), ownerID, PostRequest{
			Title:   title,
			Content: "content for " + title,
		})
		require.NoError(t, err)
		created = append(created, post)
	}
	return created
}

func TestCreateSetsOwnerAndSlug(t *testing.T) {
	svc := NewService(newFakeStore())

	post, err := svc.Create(context.Background(), 7, PostRequest{
		Title:   "Hello, World!",
		Content: "First post.",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), post.UserID)
	assert.Equal(t, "Hello, World!", post.Title)
	assert.Equal(t, "hello-world", post.Slug)
	assert.NotZero(t, post.ID)
}

func TestCreateDisambiguatesSlug(t *testing.T) {
	svc := NewService(newFakeStore())

	first, err := svc.Create(context.Background(), 1, PostRequest{Title: "Hello World", Content: "a"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), 1, PostRequest{Title: "Hello World", Content: "b"})
	require.NoError(t, err)
	third, err := svc.Create(context.Background(), 2, PostRequest{Title: "Hello World", Content: "c"})
	require.NoError(t, err)

	assert.Equal(t, "hello-world", first.Slug)
	assert.Equal(t, "hello-world-1", second.Slug)
	assert.Equal(t, "hello-world-2", third.Slug)
}

func TestCreateValidates(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Create(context.Background(), 1, PostRequest{Title: "", Content: ""})
	require.Error(t, err)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.ValidationError, appErr.Type)
	assert.Contains(t, appErr.Fields, "title")
	assert.Contains(t, appErr.Fields, "content")
}

func TestGetNotFound(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Get(context.Background(), 42)
	assert.True(t, apperror.IsNotFound(err))
}

func TestListPaginates(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	titles := make([]string, 18)
	for i := range titles {
		titles[i] = "Post " + strings.Repeat("x", i+1)
	}
	seedPosts(t, svc, 1, titles...)

	page1, err := svc.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, page1.Data, 10)
	assert.Equal(t, int64(18), page1.Total)
	assert.Equal(t, 10, page1.PerPage)
	assert.Equal(t, 1, page1.CurrentPage)
	assert.Equal(t, 2, page1.LastPage)

	page2, err := svc.List(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Len(t, page2.Data, 8)
	assert.Equal(t, 2, page2.CurrentPage)

	// Creation order: page 2 starts where page 1 stopped.
	assert.Equal(t, page1.Data[9].ID+1, page2.Data[0].ID)
}

func TestListOutOfRangePage(t *testing.T) {
	svc := NewService(newFakeStore())
	seedPosts(t, svc, 1, "Only Post")

	resp, err := svc.List(context.Background(), 5, 10)
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 5, resp.CurrentPage)
	assert.Equal(t, 1, resp.LastPage)
}

func TestListClampsParameters(t *testing.T) {
	svc := NewService(newFakeStore())
	seedPosts(t, svc, 1, "A Post")

	resp, err := svc.List(context.Background(), -3, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.CurrentPage)
	assert.Equal(t, defaultPerPage, resp.PerPage)

	resp, err = svc.List(context.Background(), 1, 100000)
	require.NoError(t, err)
	assert.Equal(t, maxPerPage, resp.PerPage)
}

func TestListEmpty(t *testing.T) {
	svc := NewService(newFakeStore())

	resp, err := svc.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Equal(t, int64(0), resp.Total)
	assert.Equal(t, 1, resp.LastPage)
}

func TestUpdateByOwner(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	created := seedPosts(t, svc, 1, "Original Title")[0]

	updated, err := svc.Update(context.Background(), created.ID, 1, PostRequest{
		Title:   "New Title",
		Content: "new content",
	})
	require.NoError(t, err)

	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "new-title", updated.Slug)
	assert.Equal(t, "new content", updated.Content)

	stored, err := store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", stored.Title)
}

func TestUpdateByNonOwnerForbidden(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	created := seedPosts(t, svc, 1, "Owned Post")[0]

	_, err := svc.Update(context.Background(), created.ID, 2, PostRequest{
		Title:   "Hijacked",
		Content: "x",
	})
	assert.True(t, apperror.IsForbidden(err))

	// The post is untouched.
	stored, getErr := store.GetByID(context.Background(), created.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "Owned Post", stored.Title)
}

func TestUpdateNotFound(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Update(context.Background(), 99, 1, PostRequest{Title: "T", Content: "c"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteByOwner(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	created := seedPosts(t, svc, 1, "Doomed Post")[0]

	require.NoError(t, svc.Delete(context.Background(), created.ID, 1))

	_, err := store.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestDeleteByNonOwnerForbidden(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	created := seedPosts(t, svc, 1, "Protected Post")[0]

	err := svc.Delete(context.Background(), created.ID, 2)
	assert.True(t, apperror.IsForbidden(err))

	_, getErr := store.GetByID(context.Background(), created.ID)
	assert.NoError(t, getErr)
}

func TestDeleteNotFound(t *testing.T) {
	svc := NewService(newFakeStore())
	err := svc.Delete(context.Background(), 99, 1)
	assert.True(t, apperror.IsNotFound(err))
}
