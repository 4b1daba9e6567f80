package httpapi

import (
	"net/http"
	"strings"
	"time"

	"patrimoine.mr/internal/identity"
	"patrimoine.mr/internal/obs"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      identity.User `json:"user"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if a.directory == nil {
		a.writeError(w, r, http.StatusServiceUnavailable, "errorLogin", "authentication unavailable")
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, http.StatusBadRequest, "errorInvalid", err.Error())
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		a.writeError(w, r, http.StatusBadRequest, "errorLogin", "username and password are required")
		return
	}

	user, ok, err := a.directory.Resolve(r.Context(), req.Username, req.Password)
	if err != nil {
		a.writeError(w, r, http.StatusInternalServerError, "errorLogin", "authentication error")
		return
	}
	if !ok {
		// same answer for unknown user and wrong password
		a.writeError(w, r, http.StatusUnauthorized, "errorLogin", "invalid credentials")
		return
	}

	token, err := identity.GenerateToken(user, a.opts.TokenTTL)
	if err != nil {
		a.writeError(w, r, http.StatusInternalServerError, "errorLogin", "token generation failed")
		return
	}

	obs.LogEvent(map[string]any{
		"event":    "auth.login",
		"username": user.Username,
		"role":     string(user.Role),
	})

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(a.opts.TokenTTL),
		User:      user,
	})
}
