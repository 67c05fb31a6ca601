package db

import (
	"bytes"

	"github.com/supabase-community/postgrest-go"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/config"
)

type Client struct {
	baseURL   string
	anonKey   string
	secretKey string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:   cfg.SupabaseURL,
		anonKey:   cfg.SupabaseAnonKey,
		secretKey: cfg.SupabaseSecretKey,
	}
}

// UserClient returns a PostgREST client for authenticated user requests.
// Uses the provided JWT token for authentication; clients are built per
// request to avoid shared state.
func (c *Client) UserClient(token string) *postgrest.Client {
	restURL := c.baseURL + "/rest/v1"

	headers := map[string]string{
		"apikey": c.anonKey,
	}

	client := postgrest.NewClient(restURL, "", headers)

	if token != "" {
		client.SetAuthToken(token)
	} else {
		client.SetAuthToken(c.anonKey)
	}

	return client
}

// SystemClient returns a PostgREST client for system-level operations.
// Uses the secret key, which bypasses row-level security.
func (c *Client) SystemClient() *postgrest.Client {
	restURL := c.baseURL + "/rest/v1"

	headers := map[string]string{
		"apikey": c.secretKey,
	}

	client := postgrest.NewClient(restURL, "", headers)
	client.SetAuthToken(c.secretKey)

	return client
}

// IsEmpty reports whether a PostgREST response body holds no rows.
// Absence of a matching row comes back as an empty JSON array, not an
// error.
func IsEmpty(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("[]")) || bytes.Equal(trimmed, []byte("null"))
}

// Rpc invokes a server-side routine and surfaces the client error that
// postgrest-go stashes on the client instead of returning.
func Rpc(client *postgrest.Client, name string, params any) (string, error) {
	res := client.Rpc(name, "", params)
	if client.ClientError != nil {
		return "", client.ClientError
	}
	return res, nil
}
