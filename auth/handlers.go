package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/user/blogapi-go/apperror"
)

// AuthService is the interface the handlers need; *Service satisfies it.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, tokenID int64) error
	LogoutAll(ctx context.Context, userID int64) error
}

// Handlers exposes the auth endpoints over HTTP.
type Handlers struct {
	service AuthService
}

// NewHandlers creates auth Handlers.
func NewHandlers(service AuthService) *Handlers {
	return &Handlers{service: service}
}

// HandleRegister godoc
// @Summary Register a user
// @Description Registers a new user, sends a welcome email asynchronously, and returns the user plus a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "Registration details"
// @Success 201 {object} auth.AuthResponse
// @Failure 422 {object} apperror.ErrorResponse "Validation failure with field messages"
// @Router /register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		resp, err := h.service.Register(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusCreated, resp)
	}
}

// HandleLogin godoc
// @Summary Log in
// @Description Authenticates by email and password and mints a new bearer token for this device.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "Credentials"
// @Success 201 {object} auth.AuthResponse
// @Failure 401 {object} apperror.ErrorResponse "Invalid credentials"
// @Failure 422 {object} apperror.ErrorResponse
// @Router /login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusCreated, resp)
	}
}

// HandleLogout godoc
// @Summary Log out
// @Description Revokes the token presented on this request. Other devices stay logged in.
// @Tags Auth
// @Produce json
// @Success 204 "Token revoked"
// @Failure 401 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /logout [post]
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenID, ok := TokenIDFromContext(r.Context())
		if !ok {
			WriteError(w, r, apperror.NewAuthError("Unauthenticated.", nil))
			return
		}
		if err := h.service.Logout(r.Context(), tokenID); err != nil {
			WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleLogoutAll godoc
// @Summary Log out all devices
// @Description Revokes every token owned by the authenticated user.
// @Tags Auth
// @Produce json
// @Success 204 "All tokens revoked"
// @Failure 401 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /logout-all-devices [post]
func (h *Handlers) HandleLogoutAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteError(w, r, apperror.NewAuthError("Unauthenticated.", nil))
			return
		}
		if err := h.service.LogoutAll(r.Context(), user.ID); err != nil {
			WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// WriteJSON serializes data to the response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError converts any error into the standardized JSON error response.
// Errors that are not *AppError become opaque 500s.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
