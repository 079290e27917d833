package wikidata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMapsEntities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/w/api.php", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "wbsearchentities", q.Get("action"))
		assert.Equal(t, "skull", q.Get("search"))
		assert.Equal(t, "en", q.Get("language"))
		assert.Equal(t, "json", q.Get("format"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"search": [
				{"id": "Q48422", "label": "skull", "description": "bony structure of the head"},
				{"id": "Q1", "label": "universe", "description": ""}
			]
		}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	labels, err := client.Search(context.Background(), "skull")
	require.NoError(t, err)
	require.Len(t, labels, 2)

	assert.Equal(t, "Q48422", labels[0].QID)
	assert.Equal(t, "skull", labels[0].Title)
	assert.Equal(t, "bony structure of the head", labels[0].Description)
	assert.Equal(t, "Q1", labels[1].QID)
	assert.Empty(t, labels[1].Description)
}

func TestSearchBlankQuerySkipsNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("blank query must not reach the network")
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	labels, err := client.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestSearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	_, err := client.Search(context.Background(), "skull")
	require.Error(t, err)
}

func TestDefaultBaseURL(t *testing.T) {
	client := New(Config{})
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}
