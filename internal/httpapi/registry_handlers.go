package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"patrimoine.mr/internal/authz"
	"patrimoine.mr/internal/identity"
	"patrimoine.mr/internal/registry"
)

type createGroupRequest struct {
	Name       string   `json:"name"`
	ContactIDs []string `json:"contactIds"`
}

func (a *API) handleContactsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := a.ensurePermission(w, r, authz.PermViewAssets); !ok {
			return
		}
		contacts, err := a.registry.ListContacts(r.Context())
		if err != nil {
			a.handleRegistryError(w, r, err, "errorLoad")
			return
		}
		writeJSON(w, http.StatusOK, contacts)
	case http.MethodPost:
		if _, ok := a.ensurePermission(w, r, authz.PermEditAssets); !ok {
			return
		}
		var req []registry.MinistryContact
		if err := decodeJSON(r, &req); err != nil {
			a.writeError(w, r, http.StatusBadRequest, "errorInvalid", err.Error())
			return
		}
		saved, err := a.registry.AddContacts(r.Context(), req)
		if err != nil {
			a.handleRegistryError(w, r, err, "errorSave")
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	default:
		a.methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleContactResource(w http.ResponseWriter, r *http.Request) {
	id := resourceID(r.URL.Path, "/v1/contacts/")
	if id == "" {
		a.writeError(w, r, http.StatusNotFound, "errorNotFound", "resource not found")
		return
	}
	switch r.Method {
	case http.MethodPut:
		if _, ok := a.ensurePermission(w, r, authz.PermEditAssets); !ok {
			return
		}
		var req registry.MinistryContact
		if err := decodeJSON(r, &req); err != nil {
			a.writeError(w, r, http.StatusBadRequest, "errorInvalid", err.Error())
			return
		}
		req.ID = id
		updated, err := a.registry.UpdateContact(r.Context(), req)
		if err != nil {
			a.handleRegistryError(w, r, err, "errorSave")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if _, ok := a.ensurePermission(w, r, authz.PermEditAssets); !ok {
			return
		}
		if err := a.registry.DeleteContact(r.Context(), id); err != nil {
			a.handleRegistryError(w, r, err, "errorDelete")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		a.methodNotAllowed(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) handleAssetsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		user, ok := a.ensurePermission(w, r, authz.PermViewAssets)
		if !ok {
			return
		}
		assets, err := a.listAssetsFor(r, user)
		if err != nil {
			a.handleRegistryError(w, r, err, "errorLoad")
			return
		}
		writeJSON(w, http.StatusOK, assets)
	case http.MethodPost:
		user, ok := a.ensurePermission(w, r, authz.PermEditAssets)
		if !ok {
			return
		}
		var req registry.AssetDeclaration
		if err := decodeJSON(r, &req); err != nil {
			a.writeError(w, r, http.StatusBadRequest, "errorInvalid", err.Error())
			return
		}
		if !a.mayTouchAsset(user, req.MinistryID) {
			a.writeError(w, r, http.StatusForbidden, "errorForbidden", "asset belongs to another ministry")
			return
		}
		saved, err := a.registry.AddAsset(r.Context(), req)
		if err != nil {
			a.handleRegistryError(w, r, err, "errorSave")
			return
		}
		w.Header().Set("Location", fmt.Sprintf("/v1/assets/%s", saved.ID))
		writeJSON(w, http.StatusCreated, saved)
	default:
		a.methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleAssetResource(w http.ResponseWriter, r *http.Request) {
	id := resourceID(r.URL.Path, "/v1/assets/")
	if id == "" {
		a.writeError(w, r, http.StatusNotFound, "errorNotFound", "resource not found")
		return
	}
	switch r.Method {
	case http.MethodPut:
		user, ok := a.ensurePermission(w, r, authz.PermEditAssets)
		if !ok {
			return
		}
		var req registry.AssetDeclaration
		if err := decodeJSON(r, &req); err != nil {
			a.writeError(w, r, http.StatusBadRequest, "errorInvalid", err.Error())
			return
		}
		req.ID = id
		stored, err := a.storedAsset(r, id)
		if err != nil {
			a.handleRegistryError(w, r, err, "errorSave")
			return
		}
		// ownership is decided by the stored record, not by what the body claims
		if !a.mayTouchAsset(user, stored.MinistryID) || !a.mayTouchAsset(user, req.MinistryID) {
			a.writeError(w, r, http.StatusForbidden, "errorForbidden", "asset belongs to another ministry")
			return
		}
		updated, err := a.registry.UpdateAsset(r.Context(), req)
		if err != nil {
			a.handleRegistryError(w, r, err, "errorSave")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		user, ok := a.ensurePermission(w, r, authz.PermEditAssets)
		if !ok {
			return
		}
		stored, err := a.storedAsset(r, id)
		if err != nil {
			a.handleRegistryError(w, r, err, "errorDelete")
			return
		}
		if !a.mayTouchAsset(user, stored.MinistryID) {
			a.writeError(w, r, http.StatusForbidden, "errorForbidden", "asset belongs to another ministry")
			return
		}
		if err := a.registry.DeleteAsset(r.Context(), id); err != nil {
			a.handleRegistryError(w, r, err, "errorDelete")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		a.methodNotAllowed(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) handleGroupsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := a.ensurePermission(w, r, authz.PermViewAssets); !ok {
			return
		}
		groups, err := a.registry.ListWorkGroups(r.Context())
		if err != nil {
			a.handleRegistryError(w, r, err, "errorLoad")
			return
		}
		writeJSON(w, http.StatusOK, groups)
	case http.MethodPost:
		if _, ok := a.ensurePermission(w, r, authz.PermEditAssets); !ok {
			return
		}
		var req createGroupRequest
		if err := decodeJSON(r, &req); err != nil {
			a.writeError(w, r, http.StatusBadRequest, "errorInvalid", err.Error())
			return
		}
		group, err := a.registry.CreateWorkGroup(r.Context(), req.Name, req.ContactIDs)
		if err != nil {
			a.handleRegistryError(w, r, err, "errorSave")
			return
		}
		w.Header().Set("Location", fmt.Sprintf("/v1/work-groups/%s", group.ID))
		writeJSON(w, http.StatusCreated, group)
	default:
		a.methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleGroupResource(w http.ResponseWriter, r *http.Request) {
	id := resourceID(r.URL.Path, "/v1/work-groups/")
	if id == "" {
		a.writeError(w, r, http.StatusNotFound, "errorNotFound", "resource not found")
		return
	}
	if r.Method != http.MethodDelete {
		a.methodNotAllowed(w, r, http.MethodDelete)
		return
	}
	if _, ok := a.ensurePermission(w, r, authz.PermEditAssets); !ok {
		return
	}
	if err := a.registry.DeleteWorkGroup(r.Context(), id); err != nil {
		a.handleRegistryError(w, r, err, "errorDelete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listAssetsFor narrows the listing to the caller's ministry unless the role
// can see everything.
func (a *API) listAssetsFor(r *http.Request, user identity.User) ([]registry.AssetDeclaration, error) {
	assets, err := a.registry.ListAssets(r.Context())
	if err != nil {
		return nil, err
	}
	if authz.HasPermission(user.Role, authz.PermViewAllAssets) {
		return assets, nil
	}
	scoped := make([]registry.AssetDeclaration, 0, len(assets))
	for _, asset := range assets {
		if asset.MinistryID == user.MinistryID {
			scoped = append(scoped, asset)
		}
	}
	return scoped, nil
}

// storedAsset resolves the persisted declaration so ownership checks run
// against what the store holds rather than against request input.
func (a *API) storedAsset(r *http.Request, id string) (registry.AssetDeclaration, error) {
	assets, err := a.registry.ListAssets(r.Context())
	if err != nil {
		return registry.AssetDeclaration{}, err
	}
	for _, asset := range assets {
		if asset.ID == id {
			return asset, nil
		}
	}
	return registry.AssetDeclaration{}, fmt.Errorf("%w: asset %s", registry.ErrNotFound, id)
}

func (a *API) mayTouchAsset(user identity.User, ministryID string) bool {
	if authz.HasPermission(user.Role, authz.PermViewAllAssets) {
		return true
	}
	return ministryID == user.MinistryID
}

func resourceID(path, prefix string) string {
	id := strings.TrimPrefix(path, prefix)
	id = strings.Trim(id, "/")
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
