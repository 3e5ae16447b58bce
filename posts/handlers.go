package posts

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
)

// Handlers exposes the post endpoints over HTTP.
type Handlers struct {
	service Service
}

// NewHandlers creates post Handlers.
func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// HandleList godoc
// @Summary List posts
// @Description Returns posts in creation order, paginated.
// @Tags Posts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Success 200 {object} posts.PaginatedPosts
// @Router /posts [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", 1)
		perPage := queryInt(r, "per_page", defaultPerPage)

		resp, err := h.service.List(r.Context(), page, perPage)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleGet godoc
// @Summary Retrieve a post
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} posts.Post
// @Failure 404 {object} apperror.ErrorResponse
// @Router /posts/{id} [get]
func (h *Handlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			auth.WriteError(w, r, apperror.NewNotFoundError("Post not found", nil))
			return
		}

		post, err := h.service.Get(r.Context(), id)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, post)
	}
}

// HandleCreate godoc
// @Summary Create a post
// @Description Creates a post owned by the authenticated user. The slug is derived from the title.
// @Tags Posts
// @Accept json
// @Produce json
// @Param postBody body posts.PostRequest true "Post fields"
// @Success 201 {object} posts.Post
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 422 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Unauthenticated.", nil))
			return
		}

		var req PostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		post, err := h.service.Create(r.Context(), user.ID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusCreated, post)
	}
}

// HandleUpdate godoc
// @Summary Update a post
// @Description Updates a post. Only the owner may update; the slug is recomputed from the new title.
// @Tags Posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param postBody body posts.PostRequest true "Post fields"
// @Success 200 {object} posts.Post
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 422 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [put]
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Unauthenticated.", nil))
			return
		}

		id, idOK := pathID(r)
		if !idOK {
			auth.WriteError(w, r, apperror.NewNotFoundError("Post not found", nil))
			return
		}

		var req PostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		post, err := h.service.Update(r.Context(), id, user.ID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, post)
	}
}

// HandleDelete godoc
// @Summary Delete a post
// @Description Permanently deletes a post. Only the owner may delete.
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 204 "Post deleted"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Unauthenticated.", nil))
			return
		}

		id, idOK := pathID(r)
		if !idOK {
			auth.WriteError(w, r, apperror.NewNotFoundError("Post not found", nil))
			return
		}

		if err := h.service.Delete(r.Context(), id, user.ID); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// pathID parses the {id} route parameter. A non-numeric id is treated the
// same as an id no post has.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
