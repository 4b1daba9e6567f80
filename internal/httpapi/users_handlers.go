package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"patrimoine.mr/internal/authz"
	"patrimoine.mr/internal/identity"
	"patrimoine.mr/internal/obs"
)

type createUserRequest struct {
	Username   string     `json:"username"`
	Password   string     `json:"password"`
	FullName   string     `json:"fullName"`
	Role       authz.Role `json:"role"`
	MinistryID string     `json:"ministryId"`
}

func (a *API) handleUsersCollection(w http.ResponseWriter, r *http.Request) {
	if a.users == nil {
		a.writeError(w, r, http.StatusServiceUnavailable, "errorLoad", "user store unavailable")
		return
	}
	switch r.Method {
	case http.MethodGet:
		if _, ok := a.ensurePermission(w, r, authz.PermViewUsers); !ok {
			return
		}
		users, err := a.users.ListUsers(r.Context())
		if err != nil {
			a.handleRegistryError(w, r, err, "errorLoad")
			return
		}
		writeJSON(w, http.StatusOK, users)
	case http.MethodPost:
		if _, ok := a.ensurePermission(w, r, authz.PermManageUsers); !ok {
			return
		}
		var req createUserRequest
		if err := decodeJSON(r, &req); err != nil {
			a.writeError(w, r, http.StatusBadRequest, "errorInvalid", err.Error())
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || req.Password == "" {
			a.writeError(w, r, http.StatusBadRequest, "errorInvalid", "username and password are required")
			return
		}
		if !req.Role.Valid() {
			a.writeError(w, r, http.StatusBadRequest, "errorInvalid", "unknown role")
			return
		}
		user, err := a.users.CreateUser(r.Context(), identity.User{
			Username:   req.Username,
			FullName:   req.FullName,
			Role:       req.Role,
			MinistryID: req.MinistryID,
		}, req.Password)
		if err != nil {
			a.handleRegistryError(w, r, err, "errorSave")
			return
		}
		obs.LogEvent(map[string]any{
			"event":    "users.create",
			"username": user.Username,
			"role":     string(user.Role),
		})
		w.Header().Set("Location", fmt.Sprintf("/v1/users/%s", user.ID))
		writeJSON(w, http.StatusCreated, user)
	default:
		a.methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleUserResource(w http.ResponseWriter, r *http.Request) {
	if a.users == nil {
		a.writeError(w, r, http.StatusServiceUnavailable, "errorLoad", "user store unavailable")
		return
	}
	id := resourceID(r.URL.Path, "/v1/users/")
	if id == "" {
		a.writeError(w, r, http.StatusNotFound, "errorNotFound", "resource not found")
		return
	}
	if r.Method != http.MethodDelete {
		a.methodNotAllowed(w, r, http.MethodDelete)
		return
	}
	user, ok := a.ensurePermission(w, r, authz.PermManageUsers)
	if !ok {
		return
	}
	if user.ID == id {
		a.writeError(w, r, http.StatusBadRequest, "errorInvalid", "cannot delete own account")
		return
	}
	if err := a.users.DeleteUser(r.Context(), id); err != nil {
		a.handleRegistryError(w, r, err, "errorDelete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
