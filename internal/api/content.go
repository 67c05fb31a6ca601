package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/auth"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/content"
)

type ContentHandler struct {
	content  *content.Service
	maxBytes int64
}

func NewContentHandler(svc *content.Service, maxBytes int64) *ContentHandler {
	return &ContentHandler{content: svc, maxBytes: maxBytes}
}

// CreateClothing inserts a clothing item for a brand admin. Clothes
// reference an existing image URL; no storage upload happens here.
func (h *ContentHandler) CreateClothing(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req content.NewClothingItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.ImageURL == "" {
		http.Error(w, "Please fill in all required fields", http.StatusBadRequest)
		return
	}

	item, err := h.content.CreateClothingItem(auth.BearerToken(r), user.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// CreateOutfit takes a multipart form with the outfit image, title,
// optional description and an optional JSON array of tagged points.
func (h *ContentHandler) CreateOutfit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// One extra byte past the limit is enough for the uploader to reject
	// the payload as too large
	if err := r.ParseMultipartForm(h.maxBytes + 1); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	if title == "" {
		http.Error(w, "Please fill in all required fields", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Please select an image", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		http.Error(w, "Failed to read image", http.StatusBadRequest)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	var points []content.NewOutfitPoint
	if raw := r.FormValue("points"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &points); err != nil {
			http.Error(w, "Invalid points payload", http.StatusBadRequest)
			return
		}
	}

	post, err := h.content.CreateOutfitPost(r.Context(), auth.BearerToken(r), user.ID, title, r.FormValue("description"), data, contentType, points)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *ContentHandler) OutfitPoints(w http.ResponseWriter, r *http.Request) {
	outfitID := r.PathValue("id")
	if outfitID == "" {
		http.Error(w, "Missing ID", http.StatusBadRequest)
		return
	}

	points, err := h.content.OutfitPoints(auth.BearerToken(r), outfitID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}
