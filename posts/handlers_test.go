package posts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
)

// newTestRouter wires the post handlers the way main does, minus the auth
// middleware: protected routes read the user straight from the request
// context, which withUser injects.
func newTestRouter(svc Service) *chi.Mux {
	h := NewHandlers(svc)
	r := chi.NewRouter()
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", h.HandleList())
		r.Get("/{id}", h.HandleGet())
		r.Post("/", h.HandleCreate())
		r.Put("/{id}", h.HandleUpdate())
		r.Delete("/{id}", h.HandleDelete())
	})
	return r
}

func withUser(r *http.Request, userID int64) *http.Request {
	user := &auth.User{ID: userID, Name: "Tester", Email: "tester@example.com"}
	return r.WithContext(auth.NewContextWithUser(r.Context(), user, 1))
}

func postBody(t *testing.T, title, content string) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(PostRequest{Title: title, Content: content})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperror.ErrorResponse {
	t.Helper()
	var resp apperror.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHandleCreate(t *testing.T) {
	router := newTestRouter(NewService(newFakeStore()))

	req := httptest.NewRequest(http.MethodPost, "/posts", postBody(t, "Hello World", "First post."))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withUser(req, 5))

	require.Equal(t, http.StatusCreated, rec.Code)

	var post Post
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&post))
	assert.Equal(t, int64(5), post.UserID)
	assert.Equal(t, "hello-world", post.Slug)
}

func TestHandleCreateUnauthenticated(t *testing.T) {
	router := newTestRouter(NewService(newFakeStore()))

	req := httptest.NewRequest(http.MethodPost, "/posts", postBody(t, "Hello", "x"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleCreateValidation(t *testing.T) {
	router := newTestRouter(NewService(newFakeStore()))

	req := httptest.NewRequest(http.MethodPost, "/posts", postBody(t, "", ""))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withUser(req, 1))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decodeError(t, rec)
	assert.Equal(t, "The given data was invalid.", resp.Error)
	assert.Contains(t, resp.Errors, "title")
	assert.Contains(t, resp.Errors, "content")
}

func TestHandleCreateMalformedJSON(t *testing.T) {
	router := newTestRouter(NewService(newFakeStore()))

	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withUser(req, 1))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGet(t *testing.T) {
	svc := NewService(newFakeStore())
	created := seedPosts(t, svc, 1, "Readable Post")[0]
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/posts/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var post Post
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&post))
	assert.Equal(t, created.ID, post.ID)
	assert.Equal(t, "Readable Post", post.Title)
}

func TestHandleGetNotFound(t *testing.T) {
	router := newTestRouter(NewService(newFakeStore()))

	for _, path := range []string{"/posts/42", "/posts/banana"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "Post not found", decodeError(t, rec).Error, path)
	}
}

func TestHandleList(t *testing.T) {
	svc := NewService(newFakeStore())
	seedPosts(t, svc, 1, "First", "Second", "Third")
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/posts?page=1&per_page=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp PaginatedPosts
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 2, resp.PerPage)
	assert.Equal(t, 1, resp.CurrentPage)
	assert.Equal(t, 2, resp.LastPage)
}

func TestHandleListDefaults(t *testing.T) {
	svc := NewService(newFakeStore())
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/posts?page=junk&per_page=", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp PaginatedPosts
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.CurrentPage)
	assert.Equal(t, defaultPerPage, resp.PerPage)
}

func TestHandleUpdate(t *testing.T) {
	svc := NewService(newFakeStore())
	seedPosts(t, svc, 1, "Before")
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/posts/1", postBody(t, "After", "updated"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withUser(req, 1))

	require.Equal(t, http.StatusOK, rec.Code)

	var post Post
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&post))
	assert.Equal(t, "After", post.Title)
	assert.Equal(t, "after", post.Slug)
}

func TestHandleUpdateForbidden(t *testing.T) {
	svc := NewService(newFakeStore())
	seedPosts(t, svc, 1, "Owned")
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/posts/1", postBody(t, "Stolen", "x"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withUser(req, 2))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You do not have permission to modify this post.", decodeError(t, rec).Error)
}

func TestHandleDelete(t *testing.T) {
	svc := NewService(newFakeStore())
	seedPosts(t, svc, 1, "Doomed")
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/posts/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withUser(req, 1))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	verify := httptest.NewRequest(http.MethodGet, "/posts/1", nil)
	verifyRec := httptest.NewRecorder()
	router.ServeHTTP(verifyRec, verify)
	assert.Equal(t, http.StatusNotFound, verifyRec.Code)
}

func TestHandleDeleteForbidden(t *testing.T) {
	svc := NewService(newFakeStore())
	seedPosts(t, svc, 1, "Protected")
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/posts/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withUser(req, 2))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You do not have permission to delete this post.", decodeError(t, rec).Error)
}
