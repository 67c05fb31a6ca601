package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/models"
)

type contextKey string

const UserContextKey contextKey = "user"

func (c *Client) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		token := parts[1]

		// Validate token against GoTrue
		user, err := c.AuthClient.WithToken(token).GetUser()
		if err != nil {
			http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
			return
		}

		clientUser := models.User{
			ID:    user.ID.String(),
			Email: user.Email,
		}

		// Inject into context
		ctx := context.WithValue(r.Context(), UserContextKey, clientUser)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFrom returns the authenticated user injected by AuthMiddleware.
func UserFrom(r *http.Request) (models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(models.User)
	return user, ok
}

// RequireBrandAdmin gates brand-only endpoints. A session whose role
// cannot be resolved counts as unauthenticated here.
func RequireBrandAdmin(profiles *ProfileStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFrom(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		profile, err := profiles.Get(user.ID)
		if err != nil || profile.Role != models.RoleBrandAdmin {
			http.Error(w, "Forbidden: brand accounts only", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// BearerToken extracts the raw bearer token so per-request PostgREST
// clients can act as the calling user.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}
