package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/coreybb/scribe/auth"
	"github.com/coreybb/scribe/webutil"
)

const bearerPrefix = "Bearer "

// RequireAuth gates every protected route. It demands an Authorization
// header of the exact form "Bearer <token>", verifies the token, and
// attaches the verified identity to the request context. Missing, malformed
// and failed-verification cases are all 401; handlers behind this middleware
// never read the Authorization header themselves.
func RequireAuth(authenticator *auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(webutil.HeaderAuthorization)
			token, found := strings.CutPrefix(header, bearerPrefix)
			if !found || token == "" {
				webutil.RespondWithError(w, http.StatusUnauthorized, "Unauthorized: no token provided")
				return
			}

			identity, err := authenticator.Verify(token)
			if err != nil {
				slog.Warn("Rejected bearer token", "path", r.URL.Path, "method", r.Method, "error", err)
				webutil.RespondWithError(w, http.StatusUnauthorized, "Unauthorized: invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}

// CORS allows the browser client, served from a different origin, to call
// the API. Preflight requests are answered without hitting the router.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
