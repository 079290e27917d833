// Package handlers contains the page and form handlers of the
// frontend. Every handler recovers errors at its own boundary and
// renders an inline error view; nothing here is allowed to take the
// whole page down.
package handlers

import (
	"html/template"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Buzzy89/client/api"
	"github.com/Buzzy89/client/comments"
	"github.com/Buzzy89/client/session"
	"github.com/Buzzy89/client/wikidata"
)

// Deps bundles the collaborators shared by all handlers.
type Deps struct {
	API       *api.Client
	Wiki      *wikidata.Client
	Composer  *comments.Composer
	Templates *template.Template
	Logger    *zap.Logger
}

// NewDeps parses the view templates and wires the handler
// dependencies.
func NewDeps(apiClient *api.Client, wiki *wikidata.Client, templatesDir string, logger *zap.Logger) (*Deps, error) {
	tmpl, err := template.ParseGlob(filepath.Join(templatesDir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &Deps{
		API:       apiClient,
		Wiki:      wiki,
		Composer:  comments.NewComposer(apiClient, logger),
		Templates: tmpl,
		Logger:    logger,
	}, nil
}

// newSession builds the per-request session manager from the token
// cookie and restores it. Restoration failures degrade to an
// unauthenticated session rather than an error page.
func (d *Deps) newSession(w http.ResponseWriter, r *http.Request) *session.Manager {
	sess := session.New(d.API, session.NewCookieStore(w, r), session.WithLogger(d.Logger))
	if err := sess.Initialize(r.Context()); err != nil {
		d.Logger.Warn("session restore failed", zap.Error(err))
	}
	return sess
}

// render executes a page template. A template failure at this point
// means the response is already partially written, so it is only
// logged.
func (d *Deps) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := d.Templates.ExecuteTemplate(w, name, data); err != nil {
		d.Logger.Error("template render failed",
			zap.String("template", name),
			zap.Error(err))
	}
}

// renderStatus renders a page template with a non-200 status.
func (d *Deps) renderStatus(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := d.Templates.ExecuteTemplate(w, name, data); err != nil {
		d.Logger.Error("template render failed",
			zap.String("template", name),
			zap.Error(err))
	}
}

// renderError shows the dedicated error view with the given status.
func (d *Deps) renderError(w http.ResponseWriter, sess *session.Manager, status int, message string) {
	d.renderStatus(w, status, "error", errorView{
		baseView: baseView{Title: "Error", Auth: sess.AuthState()},
		Status:   status,
		Message:  message,
	})
}

// baseView carries the fields every page template needs.
type baseView struct {
	Title string
	Auth  session.AuthState
}

type errorView struct {
	baseView
	Status  int
	Message string
}
