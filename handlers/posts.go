package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Buzzy89/client/api"
	"github.com/Buzzy89/client/models"
)

// maxUploadBytes bounds the in-memory portion of a media upload.
const maxUploadBytes = 32 << 20

type postFormView struct {
	baseView
	Editing bool
	PostID  int
	Error   string
	Form    postFormValues
}

// postFormValues echoes the submitted values back into the form after
// a validation failure.
type postFormValues struct {
	Title          string
	Description    string
	Shapes         string
	Colors         string
	Materials      string
	Tags           string
	Weight         string
	Height         string
	Width          string
	Depth          string
	WikiDataLabels string
}

// CreatePostPage renders the post form for a signed-in user.
func CreatePostPage(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)
		if !sess.AuthState().IsAuthenticated {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		d.render(w, "post_form", postFormView{
			baseView: baseView{Title: "Create Post", Auth: sess.AuthState()},
		})
	}
}

// CreatePost submits the post form to the remote API. Validation
// failures re-render the form inline with the submitted values and
// never reach the network.
func CreatePost(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)
		auth := sess.AuthState()
		if !auth.IsAuthenticated {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		form, values, err := parsePostForm(r, auth.User.ID)
		if err != nil {
			d.renderStatus(w, http.StatusBadRequest, "post_form", postFormView{
				baseView: baseView{Title: "Create Post", Auth: auth},
				Error:    err.Error(),
				Form:     values,
			})
			return
		}

		created, err := d.API.CreatePost(r.Context(), sess.Token(), form)
		if err != nil {
			d.Logger.Warn("post create failed", zap.Error(err))
			d.renderStatus(w, http.StatusBadGateway, "post_form", postFormView{
				baseView: baseView{Title: "Create Post", Auth: auth},
				Error:    "Failed to create post. Please try again.",
				Form:     values,
			})
			return
		}

		http.Redirect(w, r, "/post/"+strconv.Itoa(created.ID), http.StatusSeeOther)
	}
}

// EditPostPage renders the post form pre-filled with an existing
// post. Only the owner may edit.
func EditPostPage(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)
		auth := sess.AuthState()
		if !auth.IsAuthenticated {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			d.renderError(w, sess, http.StatusBadRequest, "Invalid post ID")
			return
		}

		post, err := d.API.PostByID(r.Context(), id)
		if err != nil {
			if api.IsNotFound(err) {
				d.renderError(w, sess, http.StatusNotFound, "Post not found")
				return
			}
			d.Logger.Warn("post fetch failed", zap.Int("id", id), zap.Error(err))
			d.renderError(w, sess, http.StatusBadGateway, "Failed to load post")
			return
		}
		if post.UserID != auth.User.ID {
			d.renderError(w, sess, http.StatusForbidden, "Only the owner can edit this post")
			return
		}

		d.render(w, "post_form", postFormView{
			baseView: baseView{Title: "Edit Post", Auth: auth},
			Editing:  true,
			PostID:   post.ID,
			Form:     formValuesFromPost(post),
		})
	}
}

// EditPost submits the edit form with the same multipart shape as
// CreatePost.
func EditPost(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)
		auth := sess.AuthState()
		if !auth.IsAuthenticated {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			d.renderError(w, sess, http.StatusBadRequest, "Invalid post ID")
			return
		}

		form, values, err := parsePostForm(r, auth.User.ID)
		if err != nil {
			d.renderStatus(w, http.StatusBadRequest, "post_form", postFormView{
				baseView: baseView{Title: "Edit Post", Auth: auth},
				Editing:  true,
				PostID:   id,
				Error:    err.Error(),
				Form:     values,
			})
			return
		}

		if _, err := d.API.UpdatePost(r.Context(), sess.Token(), id, form); err != nil {
			d.Logger.Warn("post update failed", zap.Int("id", id), zap.Error(err))
			d.renderStatus(w, http.StatusBadGateway, "post_form", postFormView{
				baseView: baseView{Title: "Edit Post", Auth: auth},
				Editing:  true,
				PostID:   id,
				Error:    "Failed to update post. Please try again.",
				Form:     values,
			})
			return
		}

		http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
	}
}

// parsePostForm reads the multipart post form. Attribute inputs are
// comma-separated and get split, trimmed, and cleared of blanks; the
// WikiData label selection arrives as a JSON array in a hidden field
// and is validated (qid and title present, no duplicate qids) before
// anything is sent.
func parsePostForm(r *http.Request, userID int) (*models.PostForm, postFormValues, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, postFormValues{}, fmt.Errorf("invalid form submission")
	}

	values := postFormValues{
		Title:          strings.TrimSpace(r.FormValue("title")),
		Description:    strings.TrimSpace(r.FormValue("description")),
		Shapes:         r.FormValue("shapes"),
		Colors:         r.FormValue("colors"),
		Materials:      r.FormValue("materials"),
		Tags:           r.FormValue("tags"),
		Weight:         r.FormValue("weight"),
		Height:         r.FormValue("height"),
		Width:          r.FormValue("width"),
		Depth:          r.FormValue("depth"),
		WikiDataLabels: r.FormValue("wikiDataLabels"),
	}

	form := &models.PostForm{
		Title:       values.Title,
		Description: values.Description,
		Shapes:      models.SplitAttributes(values.Shapes),
		Colors:      models.SplitAttributes(values.Colors),
		Materials:   models.SplitAttributes(values.Materials),
		UserID:      userID,
	}

	for _, name := range models.SplitAttributes(values.Tags) {
		form.Tags = append(form.Tags, models.Tag{Name: name})
	}

	var err error
	if form.Weight, err = parseDimension(values.Weight); err != nil {
		return nil, values, fmt.Errorf("invalid weight")
	}
	if form.Height, err = parseDimension(values.Height); err != nil {
		return nil, values, fmt.Errorf("invalid height")
	}
	if form.Width, err = parseDimension(values.Width); err != nil {
		return nil, values, fmt.Errorf("invalid width")
	}
	if form.Depth, err = parseDimension(values.Depth); err != nil {
		return nil, values, fmt.Errorf("invalid depth")
	}

	if raw := values.WikiDataLabels; raw != "" {
		if err := json.Unmarshal([]byte(raw), &form.WikiDataLabels); err != nil {
			return nil, values, fmt.Errorf("invalid WikiData labels")
		}
	}

	if file, header, err := r.FormFile("media"); err == nil {
		form.Media = file
		form.MediaName = header.Filename
	} else if err != http.ErrMissingFile {
		return nil, values, fmt.Errorf("invalid media upload")
	}

	if err := form.Validate(); err != nil {
		closeMedia(form.Media)
		return nil, values, err
	}
	return form, values, nil
}

func parseDimension(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid dimension %q", raw)
	}
	return v, nil
}

func closeMedia(media io.Reader) {
	if f, ok := media.(multipart.File); ok && f != nil {
		f.Close()
	}
}

func formValuesFromPost(post *models.Post) postFormValues {
	tags := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, tag.Name)
	}
	labels, _ := json.Marshal(post.WikiDataLabels)

	return postFormValues{
		Title:          post.Title,
		Description:    post.Description,
		Shapes:         strings.Join(post.Shapes, ", "),
		Colors:         strings.Join(post.Colors, ", "),
		Materials:      strings.Join(post.Materials, ", "),
		Tags:           strings.Join(tags, ", "),
		Weight:         strconv.FormatFloat(post.Weight, 'f', -1, 64),
		Height:         strconv.FormatFloat(post.Height, 'f', -1, 64),
		Width:          strconv.FormatFloat(post.Width, 'f', -1, 64),
		Depth:          strconv.FormatFloat(post.Depth, 'f', -1, 64),
		WikiDataLabels: string(labels),
	}
}
