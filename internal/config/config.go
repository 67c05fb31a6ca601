package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Port               string
	SupabaseURL        string
	SupabaseProjectRef string
	SupabaseAnonKey    string
	SupabaseSecretKey  string

	// Overrides the GoTrue URL derived from the project ref.
	// Needed for self-hosted stacks and tests.
	SupabaseAuthURL string

	// Refresh token of a previously established session, restored on
	// startup when present.
	SessionRefreshToken string

	StorageBucket   string
	SignedURLExpiry time.Duration
	UploadTimeout   time.Duration
	MaxUploadBytes  int64

	// Role resolution: fixed backoff between attempts and a hard cap on
	// retries while the profile row has not appeared yet.
	ResolveDelay      time.Duration
	ResolveMaxRetries int
}

func LoadConfig() (*Config, error) {
	key := os.Getenv("SUPABASE_ANON_KEY")
	if key == "" {
		key = os.Getenv("SUPABASE_KEY")
	}

	supabaseURL := os.Getenv("SUPABASE_URL")

	// Extract project ref key
	projectRef := strings.TrimPrefix(supabaseURL, "https://")
	if idx := strings.Index(projectRef, ".supabase.co"); idx != -1 {
		projectRef = projectRef[:idx]
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		bucket = "outfit-images"
	}

	cfg := &Config{
		Port:                port,
		SupabaseURL:         supabaseURL,
		SupabaseProjectRef:  projectRef,
		SupabaseAnonKey:     key,
		SupabaseSecretKey:   os.Getenv("SUPABASE_SECRET_KEY"),
		SupabaseAuthURL:     os.Getenv("SUPABASE_AUTH_URL"),
		SessionRefreshToken: os.Getenv("SESSION_REFRESH_TOKEN"),
		StorageBucket:       bucket,
		SignedURLExpiry:     7 * 24 * time.Hour,
		UploadTimeout:       30 * time.Second,
		MaxUploadBytes:      5_000_000,
		ResolveDelay:        time.Second,
		ResolveMaxRetries:   5,
	}

	if v := os.Getenv("RESOLVE_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ResolveMaxRetries = n
		}
	}

	return cfg, nil
}
