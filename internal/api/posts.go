package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Posts lists every post on a group's board.
func (c *Client) Posts(ctx context.Context, groupID int64) ([]Post, error) {
	path := fmt.Sprintf("/api/groups/%d/posts", groupID)
	var resp postListResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

// PostsByType lists posts filtered to one post type (FREE or NOTICE).
func (c *Client) PostsByType(ctx context.Context, groupID int64, postType PostType) ([]Post, error) {
	path := fmt.Sprintf("/api/groups/%d/posts", groupID)
	values := url.Values{}
	values.Set("postType", string(postType))
	var resp postListResponse
	if err := c.get(ctx, path, values, &resp); err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

// PostDetail fetches one post with its comments.
func (c *Client) PostDetail(ctx context.Context, postID, userID int64) (PostDetail, error) {
	path := fmt.Sprintf("/api/posts/%d", postID)
	var detail PostDetail
	if err := c.get(ctx, path, userIDQuery(userID), &detail); err != nil {
		return PostDetail{}, err
	}
	return detail, nil
}

// CreatePost publishes a new post on the group's board.
func (c *Client) CreatePost(ctx context.Context, groupID, userID int64, req CreatePostRequest) error {
	path := fmt.Sprintf("/api/groups/%d/posts", groupID)
	var resp envelope
	if err := c.do(ctx, http.MethodPost, path, userIDQuery(userID), req, &resp); err != nil {
		return err
	}
	if resp.Success != nil && !*resp.Success {
		return &Error{Message: resp.Message}
	}
	return nil
}

// UpdatePost edits an existing post and returns the updated copy.
func (c *Client) UpdatePost(ctx context.Context, postID, userID int64, req UpdatePostRequest) (Post, error) {
	path := fmt.Sprintf("/api/posts/%d", postID)
	var post Post
	if err := c.do(ctx, http.MethodPut, path, userIDQuery(userID), req, &post); err != nil {
		return Post{}, err
	}
	return post, nil
}

// DeletePost removes a post. A non-zero groupID invokes the group
// leader's moderation permission.
func (c *Client) DeletePost(ctx context.Context, postID, userID, groupID int64) error {
	path := fmt.Sprintf("/api/posts/%d", postID)
	return c.deleteWithLeaderScope(ctx, path, userID, groupID)
}

// CreateComment adds a comment to a post.
func (c *Client) CreateComment(ctx context.Context, postID, userID int64, content string) error {
	body := struct {
		Content string `json:"content"`
	}{Content: content}
	path := fmt.Sprintf("/api/posts/%d/comments", postID)
	var resp envelope
	if err := c.do(ctx, http.MethodPost, path, userIDQuery(userID), body, &resp); err != nil {
		return err
	}
	if resp.Success != nil && !*resp.Success {
		return &Error{Message: resp.Message}
	}
	return nil
}

// DeleteComment removes a comment. A non-zero groupID invokes the
// group leader's moderation permission.
func (c *Client) DeleteComment(ctx context.Context, commentID, userID, groupID int64) error {
	path := fmt.Sprintf("/api/comments/%d", commentID)
	return c.deleteWithLeaderScope(ctx, path, userID, groupID)
}

func (c *Client) deleteWithLeaderScope(ctx context.Context, path string, userID, groupID int64) error {
	values := userIDQuery(userID)
	if groupID > 0 {
		values.Set("groupId", formatID(groupID))
	}
	var resp envelope
	if err := c.do(ctx, http.MethodDelete, path, values, nil, &resp); err != nil {
		return err
	}
	if resp.Success != nil && !*resp.Success {
		return &Error{Message: resp.Message}
	}
	return nil
}
