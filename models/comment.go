package models

import "time"

// Comment belongs to exactly one post and optionally to a parent
// comment on the same post. Replies arrive already nested from the
// API; the client never recomputes the tree.
type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	PostID    int       `json:"postId"`
	UserID    int       `json:"userId"`
	User      User      `json:"user"`
	ParentID  *int      `json:"parentId,omitempty"`
	Replies   []Comment `json:"replies"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentRequest is the create payload for POST /comments/create.
type CommentRequest struct {
	Content  string `json:"content"`
	PostID   int    `json:"postId"`
	UserID   int    `json:"userId"`
	ParentID *int   `json:"parentId,omitempty"`
}
