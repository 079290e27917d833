package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Buzzy89/client/models"
)

// HomePosts fetches one page of the main feed.
func (c *Client) HomePosts(ctx context.Context, page, size int) (*models.Page[models.Post], error) {
	path := fmt.Sprintf("/posts/main?page=%d&size=%d", page, size)
	var out models.Page[models.Post]
	if err := c.getJSON(ctx, path, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostByID fetches a single post with its comments.
func (c *Client) PostByID(ctx context.Context, id int) (*models.Post, error) {
	var out models.Post
	if err := c.getJSON(ctx, fmt.Sprintf("/posts/%d", id), "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostsByUser fetches every post owned by a user.
func (c *Client) PostsByUser(ctx context.Context, userID int) ([]models.Post, error) {
	var out []models.Post
	if err := c.getJSON(ctx, fmt.Sprintf("/posts/user/%d", userID), "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchPosts fetches one page of posts matching query.
func (c *Client) SearchPosts(ctx context.Context, query string, page, size int) (*models.Page[models.Post], error) {
	path := fmt.Sprintf("/posts/search?query=%s&page=%d&size=%d", url.QueryEscape(query), page, size)
	var out models.Page[models.Post]
	if err := c.getJSON(ctx, path, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePost submits a new post as multipart form data. Array fields
// are JSON-encoded strings and the numeric dimensions travel as plain
// strings, matching what the API expects from the browser client.
func (c *Client) CreatePost(ctx context.Context, token string, form *models.PostForm) (*models.Post, error) {
	return c.sendPostForm(ctx, http.MethodPost, "/posts/create", token, form)
}

// UpdatePost replaces an existing post with the same multipart shape
// as CreatePost.
func (c *Client) UpdatePost(ctx context.Context, token string, id int, form *models.PostForm) (*models.Post, error) {
	return c.sendPostForm(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", id), token, form)
}

func (c *Client) sendPostForm(ctx context.Context, method, path, token string, form *models.PostForm) (*models.Post, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	body, contentType, err := encodePostForm(form)
	if err != nil {
		return nil, err
	}

	data, err := c.do(ctx, method, path, token, contentType, body)
	if err != nil {
		return nil, err
	}
	var out models.Post
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("api: decode %s response: %w", path, err)
	}
	return &out, nil
}

func encodePostForm(form *models.PostForm) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := map[string]string{
		"title":       form.Title,
		"description": form.Description,
		"weight":      strconv.FormatFloat(form.Weight, 'f', -1, 64),
		"height":      strconv.FormatFloat(form.Height, 'f', -1, 64),
		"width":       strconv.FormatFloat(form.Width, 'f', -1, 64),
		"depth":       strconv.FormatFloat(form.Depth, 'f', -1, 64),
		"userId":      strconv.Itoa(form.UserID),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("api: write field %s: %w", name, err)
		}
	}

	labels := form.WikiDataLabels
	if labels == nil {
		labels = []models.WikiDataLabel{}
	}
	tags := form.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	jsonFields := map[string]any{
		"shapes":         emptyIfNil(form.Shapes),
		"colors":         emptyIfNil(form.Colors),
		"materials":      emptyIfNil(form.Materials),
		"wikiDataLabels": labels,
		"tags":           tags,
	}
	for name, value := range jsonFields {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, "", fmt.Errorf("api: encode field %s: %w", name, err)
		}
		if err := w.WriteField(name, string(encoded)); err != nil {
			return nil, "", fmt.Errorf("api: write field %s: %w", name, err)
		}
	}

	if form.Media != nil {
		part, err := w.CreateFormFile("media", form.MediaName)
		if err != nil {
			return nil, "", fmt.Errorf("api: create media part: %w", err)
		}
		if _, err := io.Copy(part, form.Media); err != nil {
			return nil, "", fmt.Errorf("api: copy media: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("api: finish multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
