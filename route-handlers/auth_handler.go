package routehandlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strings"

	"github.com/coreybb/scribe/auth"
	"github.com/coreybb/scribe/webutil"
)

// AuthHandler holds dependencies for the signup and login routes.
type AuthHandler struct {
	Auth *auth.Authenticator
}

func NewAuthHandler(authenticator *auth.Authenticator) *AuthHandler {
	return &AuthHandler{Auth: authenticator}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignup registers a new user. Duplicate emails are a 409; the
// password is one-way hashed before it ever reaches the store.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) error {
	var req signupRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Name) == "" {
		return webutil.ErrBadRequest("Name is required")
	}
	if req.Email == "" {
		return webutil.ErrBadRequest("Email is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return webutil.ErrBadRequest("Invalid email address")
	}
	if req.Password == "" {
		return webutil.ErrBadRequest("Password is required")
	}

	user, err := h.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return webutil.ErrConflict("Email is already registered")
		}
		return webutil.ErrInternalServerWrap("Failed to register user", err)
	}

	log.Printf("INFO: User registered: ID=%s", user.ID)
	webutil.RespondWithMessage(w, http.StatusCreated, "User registered successfully")
	return nil
}

// HandleLogin verifies credentials and returns a bearer token plus the
// user's display name. The failure message is deliberately identical for an
// unknown email and a wrong password.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	if req.Email == "" || req.Password == "" {
		return webutil.ErrBadRequest("Email and password are required")
	}

	token, name, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return webutil.ErrUnauthorized("Invalid credentials")
		}
		return webutil.ErrInternalServerWrap("Failed to log in", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"token": token,
		"name":  name,
	})
	return nil
}
