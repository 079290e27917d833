package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Buzzy89/client/models"
)

// Profile fetches a user's public profile with recent activity.
func (c *Client) Profile(ctx context.Context, userID int) (*models.Profile, error) {
	var out models.Profile
	if err := c.getJSON(ctx, fmt.Sprintf("/users/profile/%d", userID), "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadAvatar replaces the user's avatar and returns the updated
// user record.
func (c *Client) UploadAvatar(ctx context.Context, token string, userID int, filename string, r io.Reader) (*models.User, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile("avatar", filename)
	if err != nil {
		return nil, fmt.Errorf("api: create avatar part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("api: copy avatar: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("api: finish multipart body: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%d/avatar", userID), token, w.FormDataContentType(), buf)
	if err != nil {
		return nil, err
	}
	var out models.User
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("api: decode avatar response: %w", err)
	}
	return &out, nil
}
