package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CreateGroup creates a new study group led by userID.
func (c *Client) CreateGroup(ctx context.Context, userID int64, req GroupRequest) (Group, error) {
	var group Group
	if err := c.do(ctx, http.MethodPost, "/api/groups", userIDQuery(userID), req, &group); err != nil {
		return Group{}, err
	}
	return group, nil
}

// Groups lists every group. Membership flags are relative to userID.
func (c *Client) Groups(ctx context.Context, userID int64) ([]Group, error) {
	return c.groupList(ctx, "/api/groups", userID)
}

// GroupsByCategory lists groups in one category.
func (c *Client) GroupsByCategory(ctx context.Context, category Category, userID int64) ([]Group, error) {
	return c.groupList(ctx, "/api/groups/category/"+string(category), userID)
}

// MyGroups lists the groups userID belongs to.
func (c *Client) MyGroups(ctx context.Context, userID int64) ([]Group, error) {
	return c.groupList(ctx, "/api/groups/my-groups", userID)
}

func (c *Client) groupList(ctx context.Context, path string, userID int64) ([]Group, error) {
	var resp GroupListResponse
	if err := c.get(ctx, path, userIDQuery(userID), &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &Error{Message: resp.Message}
	}
	return resp.Groups, nil
}

// JoinGroup requests membership with a greeting message.
func (c *Client) JoinGroup(ctx context.Context, groupID, userID int64, greeting string) error {
	body := struct {
		Greeting string `json:"greeting"`
	}{Greeting: greeting}
	path := fmt.Sprintf("/api/groups/%d/join", groupID)
	var resp envelope
	if err := c.do(ctx, http.MethodPost, path, userIDQuery(userID), body, &resp); err != nil {
		return err
	}
	if resp.Success != nil && !*resp.Success {
		return &Error{Message: resp.Message}
	}
	return nil
}

// LeaveGroup removes userID from the group. The endpoint returns no body.
func (c *Client) LeaveGroup(ctx context.Context, groupID, userID int64) error {
	path := fmt.Sprintf("/api/groups/%d/leave", groupID)
	return c.do(ctx, http.MethodDelete, path, userIDQuery(userID), nil, nil)
}

// KickMember removes targetUserID from the group. Only the group leader
// may do this; leaderID identifies the caller.
func (c *Client) KickMember(ctx context.Context, groupID, targetUserID, leaderID int64) error {
	path := fmt.Sprintf("/api/groups/%d/members/%d", groupID, targetUserID)
	values := url.Values{}
	values.Set("leaderId", formatID(leaderID))
	var resp envelope
	if err := c.do(ctx, http.MethodDelete, path, values, nil, &resp); err != nil {
		return err
	}
	if resp.Success != nil && !*resp.Success {
		return &Error{Message: resp.Message}
	}
	return nil
}

// GroupDetail fetches one group with its member list. Joined/Leader
// flags are relative to userID.
func (c *Client) GroupDetail(ctx context.Context, groupID, userID int64) (GroupDetail, error) {
	path := fmt.Sprintf("/api/groups/%d/detail", groupID)
	var detail GroupDetail
	if err := c.get(ctx, path, userIDQuery(userID), &detail); err != nil {
		return GroupDetail{}, err
	}
	return detail, nil
}
