package models

import "time"

// Post is a shared object described by its physical attributes, tagged
// with WikiData labels and free-form tags.
type Post struct {
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	MediaURL       *string         `json:"mediaUrl"`
	UserID         int             `json:"userId"`
	User           User            `json:"user"`
	Tags           []Tag           `json:"tags"`
	Shapes         []string        `json:"shapes"`
	Colors         []string        `json:"colors"`
	Materials      []string        `json:"materials"`
	WikiDataLabels []WikiDataLabel `json:"wikiDataLabels"`
	Weight         float64         `json:"weight"`
	Height         float64         `json:"height"`
	Width          float64         `json:"width"`
	Depth          float64         `json:"depth"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Comments       []Comment       `json:"comments"`
}

// Edited reports whether the post was changed after creation. The API
// keeps updatedAt equal to createdAt until the first edit.
func (p *Post) Edited() bool {
	return !p.UpdatedAt.IsZero() && !p.UpdatedAt.Equal(p.CreatedAt)
}

// WikiDataLabel references a knowledge-base entity. QID is unique
// within a single post's label set.
type WikiDataLabel struct {
	QID         string `json:"qid"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Page is the paginated envelope used by the post listing endpoints.
type Page[T any] struct {
	Content       []T  `json:"content"`
	PageNumber    int  `json:"pageNumber"`
	PageSize      int  `json:"pageSize"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	Last          bool `json:"last"`
}

// DisplayPage is the one-based page number shown to users; the API
// counts pages from zero.
func (p *Page[T]) DisplayPage() int {
	return p.PageNumber + 1
}

func (p *Page[T]) PrevPage() int {
	return p.PageNumber - 1
}

func (p *Page[T]) NextPage() int {
	return p.PageNumber + 1
}
