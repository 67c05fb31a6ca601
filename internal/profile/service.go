// Package profile stores the style preferences picked during onboarding.
package profile

import (
	"encoding/json"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/db"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/errs"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/models"
)

type Service struct {
	db *db.Client
}

func NewService(dbClient *db.Client) *Service {
	return &Service{db: dbClient}
}

// SavePreferences upserts the user's category and aesthetic picks.
func (s *Service) SavePreferences(token string, prefs models.UserPreferences) error {
	_, _, err := s.db.UserClient(token).
		From("user_preferences").
		Upsert(prefs, "user_id", "", "").
		Execute()
	if err != nil {
		return errs.DataAccess("saving preferences", err)
	}
	return nil
}

// Preferences returns the stored picks, or empty lists when the user
// has not set any yet.
func (s *Service) Preferences(token, userID string) (*models.UserPreferences, error) {
	resp, _, err := s.db.UserClient(token).
		From("user_preferences").
		Select("*", "", false).
		Eq("user_id", userID).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, errs.DataAccess("fetching preferences", err)
	}

	if db.IsEmpty(resp) {
		return &models.UserPreferences{
			UserID:             userID,
			ClothingCategories: []string{},
			Aesthetics:         []string{},
		}, nil
	}

	var prefs []models.UserPreferences
	if err := json.Unmarshal(resp, &prefs); err != nil || len(prefs) == 0 {
		return nil, errs.DataAccess("decoding preferences", err)
	}
	return &prefs[0], nil
}
