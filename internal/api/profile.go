package api

import (
	"encoding/json"
	"net/http"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/auth"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/feed"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/models"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/profile"
)

type ProfileHandler struct {
	feed    *feed.Service
	profile *profile.Service
}

func NewProfileHandler(feedSvc *feed.Service, profileSvc *profile.Service) *ProfileHandler {
	return &ProfileHandler{feed: feedSvc, profile: profileSvc}
}

// Saved lists the liked items of one kind for the saved tabs.
func (h *ProfileHandler) Saved(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var items []models.SavedItem
	var err error
	switch r.PathValue("kind") {
	case "clothes":
		items, err = h.feed.SavedClothes(auth.BearerToken(r), user.ID)
	case "outfits":
		items, err = h.feed.SavedOutfits(auth.BearerToken(r), user.ID)
	default:
		http.Error(w, "Unknown item kind", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ProfileHandler) Uploads(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.feed.Uploads(auth.BearerToken(r), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ProfileHandler) Preferences(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	prefs, err := h.profile.Preferences(auth.BearerToken(r), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (h *ProfileHandler) SavePreferences(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var prefs models.UserPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// The caller can only write their own preferences
	prefs.UserID = user.ID

	if err := h.profile.SavePreferences(auth.BearerToken(r), prefs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}
