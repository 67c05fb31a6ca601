package api

import (
	"net/http"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/auth"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/likes"
)

type LikeHandler struct {
	likes *likes.Service
}

func NewLikeHandler(svc *likes.Service) *LikeHandler {
	return &LikeHandler{likes: svc}
}

func (h *LikeHandler) Status(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	kind, ok := likes.ParseKind(r.PathValue("kind"))
	if !ok {
		http.Error(w, "Unknown item kind", http.StatusBadRequest)
		return
	}
	itemID := r.PathValue("id")
	if itemID == "" {
		http.Error(w, "Missing ID", http.StatusBadRequest)
		return
	}

	liked, err := h.likes.IsLiked(auth.BearerToken(r), kind, user.ID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	kind, ok := likes.ParseKind(r.PathValue("kind"))
	if !ok {
		http.Error(w, "Unknown item kind", http.StatusBadRequest)
		return
	}
	itemID := r.PathValue("id")
	if itemID == "" {
		http.Error(w, "Missing ID", http.StatusBadRequest)
		return
	}

	result, err := h.likes.Toggle(auth.BearerToken(r), kind, user.ID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
