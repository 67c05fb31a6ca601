package api

import (
	"net/http"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/auth"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/feed"
)

type FeedHandler struct {
	feed *feed.Service
}

func NewFeedHandler(svc *feed.Service) *FeedHandler {
	return &FeedHandler{feed: svc}
}

func (h *FeedHandler) Clothes(w http.ResponseWriter, r *http.Request) {
	items, err := h.feed.Clothes(auth.BearerToken(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *FeedHandler) Outfits(w http.ResponseWriter, r *http.Request) {
	posts, err := h.feed.Outfits(auth.BearerToken(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *FeedHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "Missing query", http.StatusBadRequest)
		return
	}
	filter := feed.ParseFilter(r.URL.Query().Get("filter"))

	results, err := h.feed.Search(auth.BearerToken(r), query, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
