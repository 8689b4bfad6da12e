package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestClient talks to the auth server over its JSON/HTTP contract:
//
//	GET  /auth/verify  (bearer header)            -> { id, username }
//	POST /login        { email, password }        -> { token, user: { id, username } }
//	POST /register     { firstname, ... }         -> { token, user: { id, username } }
//
// Failures carry an optional { error } body which is mapped to APIError.Reason.
type RestClient struct {
	http *resty.Client
}

// errorBody is the shape of a non-2xx response body, when the server sends one.
type errorBody struct {
	Error string `json:"error"`
}

// NewRestClient returns a RestClient bound to baseURL. A zero timeout
// disables the client-side deadline and leaves only per-call contexts.
func NewRestClient(baseURL string, timeout time.Duration) *RestClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &RestClient{http: c}
}

// Verify exchanges a stored bearer token for the identity it belongs to.
// A 401 maps to ErrUnauthorized; other non-2xx statuses map to APIError.
func (c *RestClient) Verify(ctx context.Context, token string) (*User, error) {
	var (
		user   User
		apiErr errorBody
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&user).
		SetError(&apiErr).
		Get("/auth/verify")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, &APIError{Status: resp.StatusCode(), Reason: apiErr.Error})
	}
	if resp.IsError() {
		return nil, &APIError{Status: resp.StatusCode(), Reason: apiErr.Error}
	}
	return &user, nil
}

// Login exchanges credentials for a token and identity.
func (c *RestClient) Login(ctx context.Context, email string, password string) (*Credentials, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	return c.exchange(ctx, "/login", body)
}

// Register creates an account. The form values are forwarded untouched.
func (c *RestClient) Register(ctx context.Context, req RegisterRequest) (*Credentials, error) {
	return c.exchange(ctx, "/register", req)
}

// exchange POSTs body to path and decodes the shared credential response shape.
func (c *RestClient) exchange(ctx context.Context, path string, body any) (*Credentials, error) {
	var (
		creds  Credentials
		apiErr errorBody
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&creds).
		SetError(&apiErr).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, &APIError{Status: resp.StatusCode(), Reason: apiErr.Error}
	}
	return &creds, nil
}

// Close releases idle transport connections.
func (c *RestClient) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}
