package models

// User is the identity record returned by the remote API. Avatar is a
// URL and may be null for accounts that never uploaded one.
type User struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Avatar   *string `json:"avatar"`
}

// AvatarURL returns the avatar URL or the fallback placeholder.
func (u *User) AvatarURL() string {
	if u == nil || u.Avatar == nil || *u.Avatar == "" {
		return "/static/default-avatar.svg"
	}
	return *u.Avatar
}

// Initial returns the uppercase first letter of the username, used in
// place of a missing avatar.
func (u *User) Initial() string {
	if u == nil || u.Username == "" {
		return "?"
	}
	r := []rune(u.Username)
	if r[0] >= 'a' && r[0] <= 'z' {
		return string(r[0] - 'a' + 'A')
	}
	return string(r[0])
}

// Profile is a user together with their recent activity, as served by
// GET /users/profile/{userId}.
type Profile struct {
	User
	RecentPosts    []Post    `json:"recentPosts"`
	RecentComments []Comment `json:"recentComments"`
}
