package models

import "time"

// Role is the access-level classification of a profile.
type Role string

const (
	RoleUser       Role = "user"
	RoleBrandAdmin Role = "brand_admin"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the authenticated identity for the running instance.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	User         User   `json:"user"`
}

// UserProfile is created by the backend at sign-up time, possibly after
// a delay; this client only ever reads it.
type UserProfile struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	BrandID string `json:"brand_id,omitempty"`
	Email   string `json:"email,omitempty"`
}

// BrandInfo is present only for brand_admin profiles.
type BrandInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

type ClothingItem struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"image_url"`
	LikesCount  int       `json:"likes_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type OutfitPost struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url"`
	LikesCount  int       `json:"likes_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Like is an existence-only join row, unique per (user, item).
type Like struct {
	UserID string `json:"user_id"`
	ItemID string `json:"item_id"`
}

// OutfitPoint anchors a garment reference to a pixel coordinate on an
// outfit image.
type OutfitPoint struct {
	OutfitID       string  `json:"outfit_id"`
	PointNumber    int     `json:"point_number"`
	XPosition      float64 `json:"x_position"`
	YPosition      float64 `json:"y_position"`
	ClothingItemID string  `json:"clothing_item_id,omitempty"`
}

type UserPreferences struct {
	UserID             string   `json:"user_id"`
	ClothingCategories []string `json:"clothing_categories"`
	Aesthetics         []string `json:"aesthetics"`
}

type SearchResult struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url,omitempty"`
	Type     string `json:"type"`
	Subtitle string `json:"subtitle,omitempty"`
}

// SavedItem is the projection shown on the profile's saved/uploaded tabs.
type SavedItem struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"image_url"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Auth structs
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type BrandSignupRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	BrandName        string `json:"brand_name"`
	BrandDescription string `json:"brand_description,omitempty"`
	BrandWebsite     string `json:"brand_website,omitempty"`
}

type AuthResponse struct {
	Message string   `json:"message"`
	Session *Session `json:"session,omitempty"`
}

// SessionState is the read view the bootstrap manager exposes.
type SessionState struct {
	Session   *Session   `json:"session,omitempty"`
	Role      Role       `json:"role,omitempty"`
	Brand     *BrandInfo `json:"brand,omitempty"`
	Resolving bool       `json:"resolving"`
}
