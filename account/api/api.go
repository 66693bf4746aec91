// Package api exposes the account service over HTTP: registration,
// login, token verification for peer services, profile and health.
package api

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/taskbox/taskbox/account"
	"github.com/taskbox/taskbox/account/token"
	"github.com/taskbox/taskbox/internal/database"
	"github.com/taskbox/taskbox/internal/webapi"
)

type (
	handler struct {
		store    *account.Store
		issuer   *token.Issuer
		verifier *token.Verifier
	}

	credentialsBody struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
)

// AsHandler wires the account routes. The verifier answers the
// /api/auth/verify calls other services make before touching any
// user-owned resource.
func AsHandler(db *database.DB, store *account.Store, issuer *token.Issuer, verifier *token.Verifier) http.Handler {
	h := handler{store: store, issuer: issuer, verifier: verifier}
	router := httprouter.New()
	router.HandlerFunc("GET", "/health", webapi.HealthHandler("auth-service", func(r *http.Request) bool {
		return db.Healthy(r.Context())
	}))
	router.HandlerFunc("POST", "/api/auth/register", h.register)
	router.HandlerFunc("POST", "/api/auth/login", h.login)
	router.HandlerFunc("POST", "/api/auth/verify", h.verify)
	router.HandlerFunc("POST", "/api/auth/logout", h.logout)
	router.HandlerFunc("GET", "/api/auth/profile", h.profile)
	return webapi.WithRequestLogger(router)
}

func (h handler) register(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if !webapi.Decode(w, r, &body) {
		return
	}
	user, err := h.store.Register(r.Context(), body.Username, body.Password)
	var validation account.ValidationError
	var conflict account.ConflictError
	switch {
	case errors.As(err, &validation):
		webapi.Fail(w, r, http.StatusBadRequest, validation.Msg)
	case errors.As(err, &conflict):
		webapi.Fail(w, r, http.StatusConflict, "Username already exists")
	case err != nil:
		webapi.Internal(w, r, err)
	default:
		webapi.JSON(w, r, http.StatusCreated, struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			UserID  string `json:"userId"`
		}{true, "Account created successfully", user.ID})
	}
}

func (h handler) login(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if !webapi.Decode(w, r, &body) {
		return
	}
	if body.Username == "" || body.Password == "" {
		webapi.Fail(w, r, http.StatusBadRequest, "Username and password are required")
		return
	}
	user, err := h.store.Authenticate(r.Context(), body.Username, body.Password)
	if errors.Is(err, account.ErrInvalidCredentials) {
		webapi.Fail(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	} else if err != nil {
		webapi.Internal(w, r, err)
		return
	}
	signed, err := h.issuer.Issue(user.ID, user.Username)
	if err != nil {
		webapi.Internal(w, r, err)
		return
	}
	webapi.JSON(w, r, http.StatusOK, struct {
		Success  bool   `json:"success"`
		Token    string `json:"token"`
		UserID   string `json:"userId"`
		Username string `json:"username"`
	}{true, signed, user.ID, user.Username})
}

func (h handler) verify(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(r)
	if !ok {
		webapi.Fail(w, r, http.StatusUnauthorized, "Invalid token")
		return
	}
	webapi.JSON(w, r, http.StatusOK, struct {
		Success  bool   `json:"success"`
		UserID   string `json:"userId"`
		Username string `json:"username"`
	}{true, identity.UserID, identity.Username})
}

func (h handler) logout(w http.ResponseWriter, r *http.Request) {
	// tokens are self-contained, logout is a client-side discard
	webapi.JSON(w, r, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "Logged out successfully"})
}

func (h handler) profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(r)
	if !ok {
		webapi.Fail(w, r, http.StatusUnauthorized, "Invalid token")
		return
	}
	user, err := h.store.Profile(r.Context(), identity.UserID)
	var notFound account.NotFoundError
	if errors.As(err, &notFound) {
		webapi.Fail(w, r, http.StatusNotFound, "User not found")
		return
	} else if err != nil {
		webapi.Internal(w, r, err)
		return
	}
	webapi.JSON(w, r, http.StatusOK, struct {
		Success bool         `json:"success"`
		User    account.User `json:"user"`
	}{true, user})
}

func (h handler) identity(r *http.Request) (token.Identity, bool) {
	tk, ok := webapi.BearerToken(r)
	if !ok {
		return token.Identity{}, false
	}
	identity, err := h.verifier.Verify(r.Context(), tk)
	if err != nil {
		return token.Identity{}, false
	}
	return identity, true
}
