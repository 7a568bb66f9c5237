package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Messages fetches the full message history for a group's chat.
func (c *Client) Messages(ctx context.Context, groupID int64) ([]Message, error) {
	path := fmt.Sprintf("/api/groups/%d/messages", groupID)
	var messages []Message
	if err := c.get(ctx, path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MessagesAfter fetches messages created strictly after the given
// server timestamp. This is the incremental poll used by the chat
// controller.
func (c *Client) MessagesAfter(ctx context.Context, groupID int64, after string) ([]Message, error) {
	path := fmt.Sprintf("/api/groups/%d/messages/after", groupID)
	values := url.Values{}
	values.Set("after", after)
	var messages []Message
	if err := c.get(ctx, path, values, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage posts a message and returns the server-confirmed copy
// with its assigned id and timestamp.
func (c *Client) SendMessage(ctx context.Context, groupID, userID int64, content string) (Message, error) {
	body := struct {
		Content string `json:"content"`
	}{Content: content}
	path := fmt.Sprintf("/api/groups/%d/messages", groupID)
	var message Message
	if err := c.do(ctx, http.MethodPost, path, userIDQuery(userID), body, &message); err != nil {
		return Message{}, err
	}
	return message, nil
}
