package api

import (
	"context"
	"fmt"
	"net/http"
)

// UserProfile fetches a user's profile with activity counters.
func (c *Client) UserProfile(ctx context.Context, userID int64) (UserProfile, error) {
	path := fmt.Sprintf("/api/users/%d/profile", userID)
	var profile UserProfile
	if err := c.get(ctx, path, nil, &profile); err != nil {
		return UserProfile{}, err
	}
	return profile, nil
}

// UpdateProfile changes nickname and/or bio.
func (c *Client) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (AuthResponse, error) {
	path := fmt.Sprintf("/api/users/%d/profile", userID)
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPut, path, nil, req, &resp); err != nil {
		return AuthResponse{}, err
	}
	if !resp.Success {
		return AuthResponse{}, &Error{Message: resp.Message}
	}
	return resp, nil
}

// ChangePassword replaces the account password after the server
// verifies the current one.
func (c *Client) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) (AuthResponse, error) {
	body := struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}{CurrentPassword: currentPassword, NewPassword: newPassword}
	path := fmt.Sprintf("/api/users/%d/password", userID)
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPut, path, nil, body, &resp); err != nil {
		return AuthResponse{}, err
	}
	if !resp.Success {
		return AuthResponse{}, &Error{Message: resp.Message}
	}
	return resp, nil
}
