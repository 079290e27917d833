package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Buzzy89/client/api"
	"github.com/Buzzy89/client/comments"
	"github.com/Buzzy89/client/models"
	"github.com/Buzzy89/client/session"
)

const defaultPageSize = 20

type homeView struct {
	baseView
	Posts []models.Post
	Page  *models.Page[models.Post]
	Error string
}

// Home renders the first page of the main feed as post cards. A feed
// failure renders the page with an inline error instead of failing.
func Home(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)
		view := homeView{baseView: baseView{Title: "Mystical Object Emporium", Auth: sess.AuthState()}}

		page := queryInt(r, "page", 0)
		feed, err := d.API.HomePosts(r.Context(), page, defaultPageSize)
		if err != nil {
			d.Logger.Warn("home feed fetch failed", zap.Error(err))
			view.Error = "Failed to load posts"
		} else {
			view.Posts = feed.Content
			view.Page = feed
		}
		d.render(w, "home", view)
	}
}

type postView struct {
	baseView
	Post         *models.Post
	CommentRows  []comments.Row
	CommentCount int
	IsOwner      bool

	// Draft state for a failed comment submission: the content is
	// kept so the author can retry by hand.
	CommentError  string
	CommentDraft  string
	CommentParent *int
}

// IsReplyDraft reports whether the failed draft belongs to the reply
// form under the given comment.
func (v postView) IsReplyDraft(commentID int) bool {
	return v.CommentParent != nil && *v.CommentParent == commentID
}

// IsTopDraft reports whether the failed draft belongs to the post's
// top-level comment form.
func (v postView) IsTopDraft() bool {
	return v.CommentError != "" && v.CommentParent == nil
}

// PostDetail renders a post with its attribute panels and the comment
// tree, depth first.
func PostDetail(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)

		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			d.renderError(w, sess, http.StatusBadRequest, "Invalid post ID")
			return
		}

		view, status, errMessage := d.loadPostView(r, sess.AuthState(), id)
		if view == nil {
			d.renderError(w, sess, status, errMessage)
			return
		}
		d.render(w, "post", *view)
	}
}

// loadPostView fetches a post and its comment tree. The comment fetch
// is best-effort: a failed comment load still shows the post.
func (d *Deps) loadPostView(r *http.Request, auth session.AuthState, id int) (*postView, int, string) {
	post, err := d.API.PostByID(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			return nil, http.StatusNotFound, "Post not found"
		}
		d.Logger.Warn("post fetch failed", zap.Int("id", id), zap.Error(err))
		return nil, http.StatusBadGateway, "Failed to load post"
	}

	list, err := d.API.CommentsByPost(r.Context(), id)
	if err != nil {
		d.Logger.Warn("comment fetch failed", zap.Int("postId", id), zap.Error(err))
		list = post.Comments
	}
	rows := comments.Flatten(list)

	view := &postView{
		baseView:     baseView{Title: post.Title, Auth: auth},
		Post:         post,
		CommentRows:  rows,
		CommentCount: len(rows),
	}
	if auth.User != nil {
		view.IsOwner = auth.User.ID == post.UserID
	}
	return view, http.StatusOK, ""
}

type searchView struct {
	baseView
	Query string
	Posts []models.Post
	Page  *models.Page[models.Post]
	Error string
}

// SearchPosts renders paginated search results.
func SearchPosts(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)
		query := r.URL.Query().Get("query")
		view := searchView{
			baseView: baseView{Title: "Search", Auth: sess.AuthState()},
			Query:    query,
		}

		if query != "" {
			page := queryInt(r, "page", 0)
			result, err := d.API.SearchPosts(r.Context(), query, page, defaultPageSize)
			if err != nil {
				d.Logger.Warn("search failed", zap.String("query", query), zap.Error(err))
				view.Error = "Search failed"
			} else {
				view.Posts = result.Content
				view.Page = result
			}
		}
		d.render(w, "search", view)
	}
}

type profileView struct {
	baseView
	Profile *models.Profile
	Error   string
	IsSelf  bool
}

// OwnProfile shows the signed-in user's profile with the avatar
// upload form.
func OwnProfile(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)
		auth := sess.AuthState()
		if !auth.IsAuthenticated {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		profile, err := d.API.Profile(r.Context(), auth.User.ID)
		if err != nil {
			d.Logger.Warn("own profile fetch failed", zap.Int("userId", auth.User.ID), zap.Error(err))
			// Fall back to the session's user record so the page
			// still renders.
			profile = &models.Profile{User: *auth.User}
		}
		d.render(w, "profile", profileView{
			baseView: baseView{Title: "Profile", Auth: auth},
			Profile:  profile,
			IsSelf:   true,
		})
	}
}

// PublicProfile shows another user's profile with recent activity.
// A missing profile redirects home, matching the original behavior.
func PublicProfile(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)
		auth := sess.AuthState()

		userID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			d.renderError(w, sess, http.StatusBadRequest, "Invalid user ID")
			return
		}

		profile, err := d.API.Profile(r.Context(), userID)
		if err != nil {
			if api.IsNotFound(err) {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			d.Logger.Warn("profile fetch failed", zap.Int("userId", userID), zap.Error(err))
			d.renderError(w, sess, http.StatusBadGateway, "Failed to load profile")
			return
		}

		d.render(w, "profile", profileView{
			baseView: baseView{Title: profile.Username, Auth: auth},
			Profile:  profile,
			IsSelf:   auth.User != nil && auth.User.ID == userID,
		})
	}
}

// UploadAvatar replaces the signed-in user's avatar and refreshes the
// session user so the new URL shows up immediately.
func UploadAvatar(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)
		auth := sess.AuthState()
		if !auth.IsAuthenticated {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		file, header, err := r.FormFile("avatar")
		if err != nil {
			d.renderError(w, sess, http.StatusBadRequest, "Avatar file is required")
			return
		}
		defer file.Close()

		if _, err := d.API.UploadAvatar(r.Context(), sess.Token(), auth.User.ID, header.Filename, file); err != nil {
			d.Logger.Warn("avatar upload failed", zap.Int("userId", auth.User.ID), zap.Error(err))
			d.renderError(w, sess, http.StatusBadGateway, "Failed to upload avatar")
			return
		}

		if err := sess.RefreshUser(r.Context()); err != nil {
			d.Logger.Warn("user refresh after avatar upload failed", zap.Error(err))
		}
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
