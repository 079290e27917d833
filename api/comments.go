package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Buzzy89/client/models"
)

// CreateComment submits a new comment or reply.
func (c *Client) CreateComment(ctx context.Context, token string, req models.CommentRequest) (*models.Comment, error) {
	var out models.Comment
	if err := c.postJSON(ctx, http.MethodPost, "/comments/create", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CommentsByPost fetches the full comment tree of a post. Replies
// arrive nested; the composer only walks them.
func (c *Client) CommentsByPost(ctx context.Context, postID int) ([]models.Comment, error) {
	var out []models.Comment
	if err := c.getJSON(ctx, fmt.Sprintf("/comments/post/%d", postID), "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CommentsByUser fetches a user's comments across all posts.
func (c *Client) CommentsByUser(ctx context.Context, userID int) ([]models.Comment, error) {
	var out []models.Comment
	if err := c.getJSON(ctx, fmt.Sprintf("/comments/user/%d", userID), "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteComment removes a comment the token's owner is allowed to
// delete. The server enforces ownership.
func (c *Client) DeleteComment(ctx context.Context, token string, commentID int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", commentID), token, "", nil)
	return err
}
