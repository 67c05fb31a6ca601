package db

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/config"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty([]byte("")))
	assert.True(t, IsEmpty([]byte("[]")))
	assert.True(t, IsEmpty([]byte(" []\n")))
	assert.True(t, IsEmpty([]byte("null")))
	assert.False(t, IsEmpty([]byte(`[{"id":"1"}]`)))
}

func TestRpcSurfacesClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"routine does not exist"}`)
	}))
	defer srv.Close()

	cfg := &config.Config{SupabaseURL: srv.URL, SupabaseAnonKey: "anon-key"}
	c := NewClient(cfg)

	_, err := Rpc(c.UserClient("token"), "missing_routine", map[string]string{})
	require.Error(t, err)
}

func TestRpcReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/echo", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	cfg := &config.Config{SupabaseURL: srv.URL, SupabaseAnonKey: "anon-key"}
	c := NewClient(cfg)

	body, err := Rpc(c.UserClient("token"), "echo", map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, body)
}
