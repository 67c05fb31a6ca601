package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/auth"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/config"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/content"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/db"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/errs"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/feed"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/likes"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/profile"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/storage"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/ws"
)

// CORS middleware
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RegisterRoutes(mux *http.ServeMux, cfg *config.Config, manager *auth.Manager, hub *ws.Hub) {
	dbClient := db.NewClient(cfg)
	authClient := auth.NewClient(cfg)
	profiles := auth.NewProfileStore(dbClient)

	authHandlers := auth.NewHandlers(manager)
	feedHandler := NewFeedHandler(feed.NewService(dbClient))
	likeHandler := NewLikeHandler(likes.NewService(dbClient, hub))
	contentHandler := NewContentHandler(content.NewService(dbClient, storage.NewUploader(cfg)), cfg.MaxUploadBytes)
	profileHandler := NewProfileHandler(feedHandler.feed, profile.NewService(dbClient))

	open := func(h http.HandlerFunc) http.Handler {
		return corsMiddleware(h)
	}
	authed := func(h http.HandlerFunc) http.Handler {
		return corsMiddleware(authClient.AuthMiddleware(h))
	}
	brandOnly := func(h http.HandlerFunc) http.Handler {
		return corsMiddleware(authClient.AuthMiddleware(auth.RequireBrandAdmin(profiles, h)))
	}

	// Method-qualified patterns never match OPTIONS, so preflight
	// requests need their own route into the CORS middleware
	mux.Handle("OPTIONS /", corsMiddleware(http.NotFoundHandler()))

	// Health Check
	mux.HandleFunc("GET /health/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "pong"}`))
	})

	mux.Handle("POST /auth/signup", open(authHandlers.Signup))
	mux.Handle("POST /auth/signup/brand", open(authHandlers.SignupBrand))
	mux.Handle("POST /auth/signin", open(authHandlers.Signin))
	mux.Handle("POST /auth/signout", open(authHandlers.Signout))
	mux.Handle("POST /auth/refresh", open(authHandlers.Refresh))
	mux.Handle("GET /auth/session", open(authHandlers.Session))

	mux.Handle("GET /feed/clothes", authed(feedHandler.Clothes))
	mux.Handle("GET /feed/outfits", authed(feedHandler.Outfits))
	mux.Handle("GET /search", authed(feedHandler.Search))

	mux.Handle("GET /items/{kind}/{id}/liked", authed(likeHandler.Status))
	mux.Handle("POST /items/{kind}/{id}/like", authed(likeHandler.Toggle))

	mux.Handle("POST /items/clothing", brandOnly(contentHandler.CreateClothing))
	mux.Handle("POST /outfits", authed(contentHandler.CreateOutfit))
	mux.Handle("GET /outfits/{id}/points", authed(contentHandler.OutfitPoints))

	mux.Handle("GET /profile/saved/{kind}", authed(profileHandler.Saved))
	mux.Handle("GET /profile/uploads", authed(profileHandler.Uploads))
	mux.Handle("GET /profile/preferences", authed(profileHandler.Preferences))
	mux.Handle("POST /profile/preferences", authed(profileHandler.SavePreferences))

	// Live like counters; the WebSocket handshake is a GET
	mux.HandleFunc("GET /ws/likes", hub.SubscribeHandler)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError logs the real failure and sends the user-facing message for
// its class.
func writeError(w http.ResponseWriter, err error) {
	log.Printf("Request failed: %v", err)
	http.Error(w, errs.UserMessage(err), errs.CodeOf(err).HTTPStatus())
}
