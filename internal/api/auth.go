package api

import (
	"context"
	"net/http"
	"net/url"
)

// Signup registers a new account. A server-declared failure (duplicate
// email, taken nickname) is returned as *Error with the server message.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", nil, req, &resp); err != nil {
		return AuthResponse{}, err
	}
	if !resp.Success {
		return AuthResponse{}, &Error{Message: resp.Message}
	}
	return resp, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &resp); err != nil {
		return AuthResponse{}, err
	}
	if !resp.Success {
		return AuthResponse{}, &Error{Message: resp.Message}
	}
	return resp, nil
}

// CheckNickname asks the server whether a nickname is still available.
// The returned response reports availability through Success/Message;
// an unavailable nickname is not an error.
func (c *Client) CheckNickname(ctx context.Context, nickname string) (AuthResponse, error) {
	values := url.Values{}
	values.Set("nickname", nickname)
	var resp AuthResponse
	if err := c.get(ctx, "/api/auth/check-nickname", values, &resp); err != nil {
		return AuthResponse{}, err
	}
	return resp, nil
}
