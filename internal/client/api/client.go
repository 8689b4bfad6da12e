package api

import "context"

// User is the identity returned by the auth server.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Credentials is the result of a successful credential exchange:
// a bearer token plus the user it belongs to.
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest carries the raw registration form values. Field-level
// validation happens in the form layer; the values are forwarded as-is.
type RegisterRequest struct {
	Firstname       string `json:"firstname"`
	Lastname        string `json:"lastname"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// Client defines the auth API operations used by the session manager.
//
// Contract:
//   - Verify: exchange a stored bearer token for a fresh identity.
//   - Login: exchange email/password for a token and identity.
//   - Register: create an account; same result shape as Login.
//   - Close: release underlying transport resources.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	Verify(ctx context.Context, token string) (*User, error)
	Login(ctx context.Context, email string, password string) (*Credentials, error)
	Register(ctx context.Context, req RegisterRequest) (*Credentials, error)
	Close() error
}
