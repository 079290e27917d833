package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Buzzy89/client/comments"
)

// SubmitComment handles a comment or reply form. On success the
// browser is redirected back to the post, which refetches the full
// comment list — the authoritative tree lives on the server. On
// failure the post page re-renders with the draft content intact so
// the author can retry.
func SubmitComment(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)
		auth := sess.AuthState()

		postID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			d.renderError(w, sess, http.StatusBadRequest, "Invalid post ID")
			return
		}
		if !auth.IsAuthenticated {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		content := r.FormValue("content")
		var parentID *int
		if raw := r.FormValue("parentId"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				d.renderError(w, sess, http.StatusBadRequest, "Invalid parent comment")
				return
			}
			parentID = &n
		}

		_, err = d.Composer.Submit(r.Context(), sess.Token(), comments.Submission{
			Content:  content,
			PostID:   postID,
			AuthorID: auth.User.ID,
			ParentID: parentID,
		})
		if err == nil {
			http.Redirect(w, r, "/post/"+strconv.Itoa(postID), http.StatusSeeOther)
			return
		}

		message := "Failed to post comment. Please try again."
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, comments.ErrEmptyContent):
			message = "Comment cannot be empty"
			status = http.StatusBadRequest
		case errors.Is(err, comments.ErrSubmissionInFlight):
			message = "Your previous comment is still being posted"
			status = http.StatusConflict
		case errors.Is(err, comments.ErrNotAuthenticated):
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		d.Logger.Info("comment rejected", zap.Int("postId", postID), zap.Error(err))

		view, viewStatus, errMessage := d.loadPostView(r, auth, postID)
		if view == nil {
			d.renderError(w, sess, viewStatus, errMessage)
			return
		}
		view.CommentError = message
		view.CommentDraft = content
		view.CommentParent = parentID
		d.renderStatus(w, status, "post", *view)
	}
}

// DeleteComment removes one of the signed-in user's comments and
// reloads the post. Ownership is enforced by the server.
func DeleteComment(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)
		auth := sess.AuthState()
		if !auth.IsAuthenticated {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		commentID, err := strconv.Atoi(mux.Vars(r)["commentId"])
		if err != nil {
			d.renderError(w, sess, http.StatusBadRequest, "Invalid comment ID")
			return
		}

		if err := d.API.DeleteComment(r.Context(), sess.Token(), commentID); err != nil {
			d.Logger.Warn("comment delete failed", zap.Int("commentId", commentID), zap.Error(err))
			d.renderError(w, sess, http.StatusBadGateway, "Failed to delete comment")
			return
		}

		if back := r.FormValue("postId"); back != "" {
			http.Redirect(w, r, "/post/"+back, http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
