package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/coreybb/scribe/auth"
	rh "github.com/coreybb/scribe/route-handlers"
	"github.com/coreybb/scribe/webutil"
)

const (
	signupPath    = "/signup"
	loginPath     = "/login"
	notesBasePath = "/notes"
)

const (
	paramID = "id" // General parameter name for resource IDs
)

func SetupRoutes(
	authHandler *rh.AuthHandler,
	noteHandler *rh.NoteHandler,
	authenticator *auth.Authenticator,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)                    // Log every request
	r.Use(middleware.Recoverer)                 // Recover from panics
	r.Use(middleware.Timeout(60 * time.Second)) // Set a timeout context for requests
	r.Use(CORS)

	// Public routes: signup and login are the only unauthenticated operations.
	r.Post(signupPath, webutil.MakeHandler(authHandler.HandleSignup))
	r.Post(loginPath, webutil.MakeHandler(authHandler.HandleLogin))

	// Protected routes: everything under /notes sits behind the access
	// boundary, which attaches the verified identity to the context.
	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(authenticator))
		configureNoteRoutes(r, noteHandler)
	})

	// Health check endpoint
	r.Get("/healthz", handleHealthCheck)

	return r
}

// Helper for constructing paths with a parameter
func pathWithParam(basePath string, paramName string) string {
	if basePath == "" {
		return "/{" + paramName + "}"
	}
	return basePath + "/{" + paramName + "}"
}

func configureNoteRoutes(r chi.Router, handler *rh.NoteHandler) {
	specificNotePath := pathWithParam("", paramID) // e.g., "/{id}"

	r.Route(notesBasePath, func(r chi.Router) {
		r.Get("/", webutil.MakeHandler(handler.HandleGetNotes))
		r.Post("/", webutil.MakeHandler(handler.HandleCreateNote))
		r.Route(specificNotePath, func(r chi.Router) {
			r.Put("/", webutil.MakeHandler(handler.HandleUpdateNote))
			r.Delete("/", webutil.MakeHandler(handler.HandleDeleteNote))
		})
	})
}

// handleHealthCheck responds to a health check request.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
