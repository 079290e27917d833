// Package comments renders a post's comment tree and handles
// submission of top-level comments and nested replies.
package comments

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Buzzy89/client/api"
	"github.com/Buzzy89/client/models"
)

var (
	// ErrEmptyContent rejects a submission whose content is empty
	// after trimming. Checked before any network call.
	ErrEmptyContent = errors.New("comment content is empty")
	// ErrNotAuthenticated rejects a submission without an author.
	ErrNotAuthenticated = errors.New("comment requires an authenticated author")
	// ErrSubmissionInFlight rejects a submission while the previous
	// one on the same form has not settled yet.
	ErrSubmissionInFlight = errors.New("comment submission already in flight")
)

// MaxDepth caps how deep the rendered tree nests. The server should
// never produce cycles, but a malformed payload must not take the
// renderer down with it; rows beyond the cap are clamped to MaxDepth.
const MaxDepth = 32

// Submission is one comment form submission.
type Submission struct {
	Content  string
	PostID   int
	AuthorID int
	ParentID *int
}

// formKey identifies one comment form instance: the top-level form of
// a post, or the reply form under a specific parent comment.
type formKey struct {
	postID   int
	parentID int
	authorID int
}

func (s Submission) key() formKey {
	k := formKey{postID: s.PostID, authorID: s.AuthorID}
	if s.ParentID != nil {
		k.parentID = *s.ParentID
	}
	return k
}

// Composer validates and submits comments against the remote API.
// Each form instance gets at most one in-flight submission; different
// forms on the same post stay independent.
type Composer struct {
	client *api.Client
	logger *zap.Logger

	mu       sync.Mutex
	inFlight map[formKey]bool
}

// NewComposer creates a Composer. A nil logger disables logging.
func NewComposer(client *api.Client, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{
		client:   client,
		logger:   logger,
		inFlight: make(map[formKey]bool),
	}
}

// Submit validates and sends one comment. Validation failures surface
// before any request is issued. On success the caller is expected to
// refetch the post's comment list — the authoritative tree lives on
// the server and is never spliced locally. On failure the caller keeps
// the content for a manual retry; nothing retries automatically.
func (c *Composer) Submit(ctx context.Context, token string, sub Submission) (*models.Comment, error) {
	content := strings.TrimSpace(sub.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if sub.AuthorID == 0 || token == "" {
		return nil, ErrNotAuthenticated
	}

	key := sub.key()
	c.mu.Lock()
	if c.inFlight[key] {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	c.inFlight[key] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inFlight, key)
		c.mu.Unlock()
	}()

	created, err := c.client.CreateComment(ctx, token, models.CommentRequest{
		Content:  content,
		PostID:   sub.PostID,
		UserID:   sub.AuthorID,
		ParentID: sub.ParentID,
	})
	if err != nil {
		c.logger.Warn("comment submission failed",
			zap.Int("postId", sub.PostID),
			zap.Error(err))
		return nil, err
	}

	c.logger.Info("comment created",
		zap.Int("postId", sub.PostID),
		zap.Int("commentId", created.ID))
	return created, nil
}

// Row is one rendered comment with its indentation depth.
type Row struct {
	Comment *models.Comment
	Depth   int
}

// Indent is the pixel offset templates use to indent a row.
func (r Row) Indent() int {
	return r.Depth * 24
}

// Flatten walks the nested comment list depth first and returns render
// rows: every reply appears strictly after its parent and before the
// parent's later siblings. The traversal is iterative — an explicit
// stack instead of recursion — so adversarial nesting cannot exhaust
// the call stack.
func Flatten(list []models.Comment) []Row {
	type frame struct {
		comment *models.Comment
		depth   int
	}

	var rows []Row
	var stack []frame

	// Push top-level comments in reverse so the stack pops them in
	// their original order.
	for i := len(list) - 1; i >= 0; i-- {
		stack = append(stack, frame{comment: &list[i], depth: 0})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		depth := top.depth
		if depth > MaxDepth {
			depth = MaxDepth
		}
		rows = append(rows, Row{Comment: top.comment, Depth: depth})

		replies := top.comment.Replies
		for i := len(replies) - 1; i >= 0; i-- {
			stack = append(stack, frame{comment: &replies[i], depth: top.depth + 1})
		}
	}
	return rows
}

// Count returns the total number of comments in the tree, replies
// included.
func Count(list []models.Comment) int {
	return len(Flatten(list))
}
