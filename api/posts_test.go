package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Buzzy89/client/models"
)

func TestHomePostsQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/main", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("size"))
		json.NewEncoder(w).Encode(models.Page[models.Post]{
			Content:    []models.Post{{ID: 1, Title: "Obsidian Mirror"}},
			PageNumber: 2,
			TotalPages: 5,
		})
	})

	page, err := client.HomePosts(context.Background(), 2, 20)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Obsidian Mirror", page.Content[0].Title)
	assert.Equal(t, 3, page.DisplayPage())
}

func TestSearchPostsEscapesQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/search", r.URL.Path)
		assert.Equal(t, "cursed amulet & chain", r.URL.Query().Get("query"))
		json.NewEncoder(w).Encode(models.Page[models.Post]{})
	})

	_, err := client.SearchPosts(context.Background(), "cursed amulet & chain", 0, 10)
	require.NoError(t, err)
}

func TestCreatePostMultipartEncoding(t *testing.T) {
	media := strings.NewReader("fake image bytes")
	form := &models.PostForm{
		Title:       "Whispering Skull",
		Description: "It whispers.",
		Shapes:      []string{"round"},
		Colors:      []string{"bone white"},
		Materials:   nil,
		Tags:        []models.Tag{{Name: "cursed"}},
		WikiDataLabels: []models.WikiDataLabel{
			{QID: "Q48422", Title: "skull", Description: "bony structure"},
		},
		Weight:    1.5,
		Height:    20,
		UserID:    7,
		Media:     media,
		MediaName: "skull.jpg",
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/posts/create", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Whispering Skull", r.FormValue("title"))
		assert.Equal(t, "It whispers.", r.FormValue("description"))
		assert.Equal(t, "1.5", r.FormValue("weight"))
		assert.Equal(t, "20", r.FormValue("height"))
		assert.Equal(t, "0", r.FormValue("width"))
		assert.Equal(t, "7", r.FormValue("userId"))

		// Array fields travel as JSON-encoded strings; nil slices
		// become empty arrays, never null.
		assert.JSONEq(t, `["round"]`, r.FormValue("shapes"))
		assert.JSONEq(t, `["bone white"]`, r.FormValue("colors"))
		assert.JSONEq(t, `[]`, r.FormValue("materials"))
		assert.JSONEq(t, `[{"name":"cursed"}]`, r.FormValue("tags"))
		assert.JSONEq(t,
			`[{"qid":"Q48422","title":"skull","description":"bony structure"}]`,
			r.FormValue("wikiDataLabels"))

		file, header, err := r.FormFile("media")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "skull.jpg", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(content))

		json.NewEncoder(w).Encode(models.Post{ID: 11, Title: "Whispering Skull"})
	})

	created, err := client.CreatePost(context.Background(), "tok", form)
	require.NoError(t, err)
	assert.Equal(t, 11, created.ID)
}

func TestCreatePostWithoutMedia(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("media")
		assert.Error(t, err, "no media part expected")
		json.NewEncoder(w).Encode(models.Post{ID: 12})
	})

	_, err := client.CreatePost(context.Background(), "tok", &models.PostForm{
		Title:       "Plain Stone",
		Description: "Just a stone.",
		UserID:      7,
	})
	require.NoError(t, err)
}

func TestCreatePostValidatesBeforeSending(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid form must not reach the network")
	})

	_, err := client.CreatePost(context.Background(), "tok", &models.PostForm{
		Description: "missing title",
		UserID:      7,
	})
	require.ErrorIs(t, err, models.ErrTitleRequired)
}

func TestUpdatePostUsesPut(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/posts/42", r.URL.Path)
		json.NewEncoder(w).Encode(models.Post{ID: 42})
	})

	_, err := client.UpdatePost(context.Background(), "tok", 42, &models.PostForm{
		Title:       "Renamed Relic",
		Description: "Updated.",
		UserID:      7,
	})
	require.NoError(t, err)
}
