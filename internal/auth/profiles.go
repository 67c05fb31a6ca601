package auth

import (
	"encoding/json"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/db"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/errs"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/models"
)

// ProfileStore reads user_profiles and brands rows. Profiles are created
// by the backend at sign-up time and never mutated from here, except for
// the initial insert of a plain user profile.
type ProfileStore struct {
	db *db.Client
}

func NewProfileStore(dbClient *db.Client) *ProfileStore {
	return &ProfileStore{db: dbClient}
}

// Get returns the profile row for userID. A missing row is a not-found
// condition, not a data-access failure; role resolution retries on it.
func (p *ProfileStore) Get(userID string) (*models.UserProfile, error) {
	resp, _, err := p.db.SystemClient().
		From("user_profiles").
		Select("id, role, brand_id", "", false).
		Eq("id", userID).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, errs.DataAccess("fetching user profile", err)
	}
	if db.IsEmpty(resp) {
		return nil, errs.NotFound("no profile row for user " + userID)
	}

	var profiles []models.UserProfile
	if err := json.Unmarshal(resp, &profiles); err != nil {
		return nil, errs.DataAccess("decoding user profile", err)
	}
	if len(profiles) == 0 {
		return nil, errs.NotFound("no profile row for user " + userID)
	}
	return &profiles[0], nil
}

// GetBrand returns the brand row referenced by a brand_admin profile.
func (p *ProfileStore) GetBrand(brandID string) (*models.BrandInfo, error) {
	resp, _, err := p.db.SystemClient().
		From("brands").
		Select("*", "", false).
		Eq("id", brandID).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, errs.DataAccess("fetching brand info", err)
	}
	if db.IsEmpty(resp) {
		return nil, errs.NotFound("no brand row " + brandID)
	}

	var brands []models.BrandInfo
	if err := json.Unmarshal(resp, &brands); err != nil {
		return nil, errs.DataAccess("decoding brand info", err)
	}
	if len(brands) == 0 {
		return nil, errs.NotFound("no brand row " + brandID)
	}
	return &brands[0], nil
}

// CreateUserProfile inserts the profile row for a freshly signed-up
// plain user account.
func (p *ProfileStore) CreateUserProfile(userID, email string) error {
	row := map[string]any{
		"id":    userID,
		"role":  string(models.RoleUser),
		"email": email,
	}
	_, _, err := p.db.SystemClient().
		From("user_profiles").
		Insert(row, false, "", "", "").
		Execute()
	if err != nil {
		return errs.DataAccess("creating user profile", err)
	}
	return nil
}
