package auth

import (
	"github.com/supabase-community/gotrue-go"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/config"
)

type Client struct {
	AuthClient gotrue.Client
}

func NewClient(cfg *config.Config) *Client {
	client := gotrue.New(
		cfg.SupabaseProjectRef,
		cfg.SupabaseAnonKey,
	)
	if cfg.SupabaseAuthURL != "" {
		client = client.WithCustomGoTrueURL(cfg.SupabaseAuthURL)
	}
	return &Client{
		AuthClient: client,
	}
}
