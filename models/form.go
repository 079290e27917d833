package models

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// PostForm carries the create/edit payload for a post. Media is
// streamed through rather than buffered.
type PostForm struct {
	Title          string
	Description    string
	MediaName      string
	Media          io.Reader
	Shapes         []string
	Colors         []string
	Materials      []string
	WikiDataLabels []WikiDataLabel
	Tags           []Tag
	Weight         float64
	Height         float64
	Width          float64
	Depth          float64
	UserID         int
}

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
)

// SplitAttributes turns a comma-separated attribute input into a label
// set: items trimmed, blanks dropped.
func SplitAttributes(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the form before any network call. WikiData labels
// must carry both a QID and a title, and QIDs must be unique within
// the post.
func (f *PostForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(f.Description) == "" {
		return ErrDescriptionRequired
	}
	seen := make(map[string]bool, len(f.WikiDataLabels))
	for _, label := range f.WikiDataLabels {
		if label.QID == "" || label.Title == "" {
			return fmt.Errorf("invalid WikiData label %q", label.Title)
		}
		if seen[label.QID] {
			return fmt.Errorf("duplicate WikiData label %s", label.QID)
		}
		seen[label.QID] = true
	}
	return nil
}
