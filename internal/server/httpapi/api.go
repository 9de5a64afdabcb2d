// Package httpapi adapts the authentication service to HTTP. Handlers only
// translate between JSON bodies and service calls; all policy, including the
// collapse of security-sensitive failures, lives in the service layer.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/authkeep/authkeep/internal/common"
	"github.com/authkeep/authkeep/internal/logging"
	"github.com/authkeep/authkeep/internal/server/users"
)

type API struct {
	users  *users.Service
	logger logging.Logger
}

func New(us *users.Service, l logging.Logger) *API {
	return &API{users: us, logger: l.With("module", "httpapi")}
}

// Handler builds the route table.
func (a *API) Handler() http.Handler {
	router := httprouter.New()
	router.HandlerFunc(http.MethodPost, "/api/v1/register", a.register)
	router.HandlerFunc(http.MethodPost, "/api/v1/login", a.login)
	router.HandlerFunc(http.MethodGet, "/api/v1/ping", a.ping)
	router.Handler(http.MethodGet, "/api/v1/profile", a.RequireAuth(http.HandlerFunc(a.profile)))
	return router
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := a.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			writeError(w, http.StatusBadRequest, "username and password are required")
		case errors.Is(err, common.ErrDuplicateUsername):
			writeError(w, http.StatusConflict, "username already taken")
		default:
			a.logger.Error(r.Context(), "registration failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	a.logger.Info(r.Context(), "registered", "username", user.UserName)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "user created"})
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tok, err := a.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			// One body for wrong password and unknown user alike.
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		a.logger.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

// profile is the token-protected resource: it just echoes the authenticated
// subject resolved by RequireAuth.
func (a *API) profile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"username": Subject(r.Context())})
}

func (a *API) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
