package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadPhoto sends a photo to the group gallery as a multipart form
// with the file contents and an optional description part.
func (c *Client) UploadPhoto(ctx context.Context, groupID, userID int64, file io.Reader, filename, description string) (Photo, error) {
	if c == nil {
		return Photo{}, fmt.Errorf("client is nil")
	}
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return Photo{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return Photo{}, fmt.Errorf("copy file contents: %w", err)
	}
	if description != "" {
		if err := writer.WriteField("description", description); err != nil {
			return Photo{}, fmt.Errorf("write description field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return Photo{}, fmt.Errorf("finalize multipart body: %w", err)
	}

	path := fmt.Sprintf("/api/groups/%d/photos", groupID)
	req, err := c.newRequest(ctx, http.MethodPost, path, userIDQuery(userID), &buf)
	if err != nil {
		return Photo{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var photo Photo
	if err := c.send(req, &photo); err != nil {
		return Photo{}, err
	}
	return photo, nil
}

// GroupPhotos lists the group's gallery.
func (c *Client) GroupPhotos(ctx context.Context, groupID int64) ([]Photo, error) {
	path := fmt.Sprintf("/api/groups/%d/photos", groupID)
	var photos []Photo
	if err := c.get(ctx, path, nil, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// DeletePhoto removes a photo. A non-zero groupID invokes the group
// leader's moderation permission.
func (c *Client) DeletePhoto(ctx context.Context, photoID, userID, groupID int64) error {
	path := fmt.Sprintf("/api/photos/%d", photoID)
	return c.deleteWithLeaderScope(ctx, path, userID, groupID)
}
