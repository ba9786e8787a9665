package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/marketplace/application/user"
	"github.com/muhammadheryan/marketplace/constant"
	utilsContext "github.com/muhammadheryan/marketplace/utils/context"
	"github.com/muhammadheryan/marketplace/utils/errors"
)

// AuthMiddleware returns a middleware that validates JWT sessions using UserApp.
// It allows public endpoints (like /login, /register, /swagger/) without token.
func AuthMiddleware(userApp user.UserApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Public paths
			path := r.URL.Path
			if isPublicPath(path, r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			// Check Authorization header
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			// Validate token via UserApp; the session record is authoritative
			// for the role, not the token claims alone
			userID, role, err := userApp.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			ctx := utilsContext.SetUser(r.Context(), userID, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(path, method string) bool {
	if strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/") {
		return true
	}
	if path == "/login" || path == "/register" {
		return true
	}
	// The storefront browses the catalog anonymously
	if method == http.MethodGet && (path == "/products" || strings.HasPrefix(path, "/products/")) {
		return true
	}

	return false
}
