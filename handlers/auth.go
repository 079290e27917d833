package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Buzzy89/client/session"
)

type authView struct {
	baseView
	Error    string
	Username string
	Email    string
}

// LoginPage renders the sign-in form. An already authenticated
// session goes straight home.
func LoginPage(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)
		if sess.AuthState().IsAuthenticated {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		d.render(w, "login", authView{baseView: baseView{Title: "Sign In", Auth: sess.AuthState()}})
	}
}

// Login handles the sign-in form submission. Failure re-renders the
// form with an inline message and leaves the session untouched.
func Login(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)

		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")
		if username == "" || password == "" {
			d.renderStatus(w, http.StatusBadRequest, "login", authView{
				baseView: baseView{Title: "Sign In", Auth: sess.AuthState()},
				Error:    "Username and password are required",
				Username: username,
			})
			return
		}

		if err := sess.Login(r.Context(), username, password); err != nil {
			message := "Login failed. Please try again."
			status := http.StatusBadGateway
			if errors.Is(err, session.ErrAuthentication) {
				message = "Login failed. Please check your credentials."
				status = http.StatusUnauthorized
			}
			d.Logger.Info("login rejected", zap.String("username", username), zap.Error(err))
			d.renderStatus(w, status, "login", authView{
				baseView: baseView{Title: "Sign In", Auth: sess.AuthState()},
				Error:    message,
				Username: username,
			})
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// RegisterPage renders the registration form.
func RegisterPage(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)
		if sess.AuthState().IsAuthenticated {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		d.render(w, "register", authView{baseView: baseView{Title: "Register", Auth: sess.AuthState()}})
	}
}

// Register handles the registration form. A successful registration
// authenticates the session immediately and redirects home.
func Register(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)

		username := strings.TrimSpace(r.FormValue("username"))
		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")
		if username == "" || email == "" || password == "" {
			d.renderStatus(w, http.StatusBadRequest, "register", authView{
				baseView: baseView{Title: "Register", Auth: sess.AuthState()},
				Error:    "Username, email, and password are required",
				Username: username,
				Email:    email,
			})
			return
		}

		if err := sess.Register(r.Context(), username, email, password); err != nil {
			message := "Registration failed. Please try again."
			status := http.StatusBadGateway
			if errors.Is(err, session.ErrAuthentication) {
				message = "Registration failed. The username may already be taken."
				status = http.StatusUnauthorized
			}
			d.Logger.Info("registration rejected", zap.String("username", username), zap.Error(err))
			d.renderStatus(w, status, "register", authView{
				baseView: baseView{Title: "Register", Auth: sess.AuthState()},
				Error:    message,
				Username: username,
				Email:    email,
			})
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Logout tears the session down and returns to the sign-in page.
func Logout(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := d.newSession(w, r)
		sess.Logout()
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
