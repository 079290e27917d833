package session

import (
	"net/http"
	"time"
)

// TokenCookie is the well-known storage key for the session token.
const TokenCookie = "token"

// CookieStore persists the token in the browser via the session
// cookie. One store is built per request; writes go to the pending
// response, reads come from the incoming request.
type CookieStore struct {
	r *http.Request
	w http.ResponseWriter
}

// NewCookieStore binds a store to one request/response pair.
func NewCookieStore(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{r: r, w: w}
}

func (s *CookieStore) Read() (string, error) {
	cookie, err := s.r.Cookie(TokenCookie)
	if err != nil {
		if err == http.ErrNoCookie {
			return "", nil
		}
		return "", err
	}
	return cookie.Value, nil
}

func (s *CookieStore) Write(token string) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *CookieStore) Clear() error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
	return nil
}

// MemoryStore is an in-process TokenStore used by tests.
type MemoryStore struct {
	token string
}

// NewMemoryStore creates a MemoryStore seeded with a token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Read() (string, error) { return s.token, nil }

func (s *MemoryStore) Write(token string) error {
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.token = ""
	return nil
}
