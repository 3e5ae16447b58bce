// DTOs for the auth endpoints. Validate tags drive the 422 field messages;
// example tags feed the generated API docs.
package auth

// RegisterRequest is the payload for POST /register.
type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,max=255" example:"Anthony"`
	Email                string `json:"email" validate:"required,email,max=255" example:"user@example.com"`
	Password             string `json:"password" validate:"required,min=8,password" example:"Abc12345!"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password" example:"Abc12345!"`
}

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required" example:"Abc12345!"`
}

// AuthResponse is returned by register and login: the user plus the plaintext
// bearer token for this device.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token" example:"12|f3a8c96b42d1e07a5b88c13d9e64f20a71c55d08"`
}
