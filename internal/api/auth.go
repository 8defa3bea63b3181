package api

import (
	"context"
	"net/http"
)

// AuthResult is the outcome of a successful login or registration. The
// backend omits the account type for regular shoppers, so it defaults to
// "user".
type AuthResult struct {
	Token       string `json:"token"`
	AccountType string `json:"type"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. It never retries and
// does not touch the session store; recording the session is the caller's
// job.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.doOnce(ctx, http.MethodPost, "/auth/user/login", loginRequest{
		Email:    email,
		Password: password,
	}, &result)
	if err != nil {
		return nil, err
	}

	if result.AccountType == "" {
		result.AccountType = "user"
	}

	return &result, nil
}

// Register creates an account and returns a bearer token for it. Same
// contract as Login.
func (c *Client) Register(ctx context.Context, name, email, phone, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.doOnce(ctx, http.MethodPost, "/auth/user/register", registerRequest{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: password,
	}, &result)
	if err != nil {
		return nil, err
	}

	if result.AccountType == "" {
		result.AccountType = "user"
	}

	return &result, nil
}
