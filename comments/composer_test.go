package comments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Buzzy89/client/api"
	"github.com/Buzzy89/client/models"
)

func testClient(t *testing.T, handler http.Handler) (*api.Client, *atomic.Int64) {
	t.Helper()
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	client, err := api.New(api.Config{BaseURL: server.URL})
	require.NoError(t, err)
	return client, &requests
}

func TestFlattenDepthFirst(t *testing.T) {
	tree := []models.Comment{
		{ID: 1, Content: "first", Replies: []models.Comment{
			{ID: 2, Content: "reply to first", Replies: []models.Comment{
				{ID: 3, Content: "nested reply"},
			}},
			{ID: 4, Content: "second reply to first"},
		}},
		{ID: 5, Content: "second"},
	}

	rows := Flatten(tree)
	require.Len(t, rows, 5)

	var ids []int
	var depths []int
	for _, row := range rows {
		ids = append(ids, row.Comment.ID)
		depths = append(depths, row.Depth)
	}
	// Every reply comes strictly after its parent and before the
	// parent's later siblings.
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)
	assert.Equal(t, []int{0, 1, 2, 1, 0}, depths)
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
	assert.Empty(t, Flatten([]models.Comment{}))
}

func TestFlattenClampsDepth(t *testing.T) {
	// A single chain nested twice past the cap.
	leaf := models.Comment{ID: MaxDepth * 2}
	for i := MaxDepth*2 - 1; i >= 0; i-- {
		leaf = models.Comment{ID: i, Replies: []models.Comment{leaf}}
	}

	rows := Flatten([]models.Comment{leaf})
	require.Len(t, rows, MaxDepth*2+1)
	last := rows[len(rows)-1]
	assert.Equal(t, MaxDepth, last.Depth, "depth beyond the cap must be clamped")
}

func TestCount(t *testing.T) {
	tree := []models.Comment{
		{ID: 1, Replies: []models.Comment{{ID: 2}, {ID: 3, Replies: []models.Comment{{ID: 4}}}}},
	}
	assert.Equal(t, 4, Count(tree))
}

func TestSubmitRejectsEmptyContentBeforeNetwork(t *testing.T) {
	client, requests := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	composer := NewComposer(client, nil)

	_, err := composer.Submit(context.Background(), "tok", Submission{
		Content:  "   \n\t ",
		PostID:   1,
		AuthorID: 2,
	})

	require.ErrorIs(t, err, ErrEmptyContent)
	assert.Equal(t, int64(0), requests.Load())
}

func TestSubmitRequiresAuthentication(t *testing.T) {
	client, requests := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	composer := NewComposer(client, nil)

	_, err := composer.Submit(context.Background(), "", Submission{
		Content: "hello", PostID: 1, AuthorID: 2,
	})
	require.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = composer.Submit(context.Background(), "tok", Submission{
		Content: "hello", PostID: 1,
	})
	require.ErrorIs(t, err, ErrNotAuthenticated)

	assert.Equal(t, int64(0), requests.Load())
}

func TestSubmitSendsRequest(t *testing.T) {
	parent := 8
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comments/create", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req models.CommentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a fine relic", req.Content)
		assert.Equal(t, 1, req.PostID)
		assert.Equal(t, 2, req.UserID)
		require.NotNil(t, req.ParentID)
		assert.Equal(t, parent, *req.ParentID)

		json.NewEncoder(w).Encode(models.Comment{ID: 42, Content: req.Content})
	}))
	composer := NewComposer(client, nil)

	created, err := composer.Submit(context.Background(), "tok", Submission{
		Content:  "  a fine relic  ",
		PostID:   1,
		AuthorID: 2,
		ParentID: &parent,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, created.ID)
}

func TestSubmitGuardsInFlightForms(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var first atomic.Bool
	first.Store(true)
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if first.CompareAndSwap(true, false) {
			close(entered)
			<-release
		}
		json.NewEncoder(w).Encode(models.Comment{ID: 1})
	}))
	composer := NewComposer(client, nil)

	sub := Submission{Content: "slow one", PostID: 1, AuthorID: 2}
	done := make(chan error, 1)
	go func() {
		_, err := composer.Submit(context.Background(), "tok", sub)
		done <- err
	}()
	<-entered

	// Same form, still in flight.
	_, err := composer.Submit(context.Background(), "tok", sub)
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)

	// The guard lifts once the first submission settles.
	_, err = composer.Submit(context.Background(), "tok", sub)
	require.NoError(t, err)
}

func TestSubmitDistinctFormsAreIndependent(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var first atomic.Bool
	first.Store(true)
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if first.CompareAndSwap(true, false) {
			close(entered)
			<-release
		}
		json.NewEncoder(w).Encode(models.Comment{ID: 1})
	}))
	composer := NewComposer(client, nil)

	done := make(chan error, 1)
	go func() {
		_, err := composer.Submit(context.Background(), "tok", Submission{
			Content: "top level", PostID: 1, AuthorID: 2,
		})
		done <- err
	}()
	<-entered

	// A reply form under a different parent is a different form and
	// must not be blocked by the top-level submission.
	parent := 9
	_, err := composer.Submit(context.Background(), "tok", Submission{
		Content: "a reply", PostID: 1, AuthorID: 2, ParentID: &parent,
	})
	require.NoError(t, err)

	close(release)
	require.NoError(t, <-done)
}
