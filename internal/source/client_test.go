package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recommender/data", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"users":[],"products":[],"orderHistories":[]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "/recommender/data")
	body, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(body), `"success":true`)
}

func TestFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "/recommender/data")
	_, err := c.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // servidor caído

	c := NewClient(srv.URL, "/recommender/data")
	_, err := c.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>mantenimiento</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "/recommender/data")
	_, err := c.Fetch(context.Background())
	assert.Error(t, err)
}
