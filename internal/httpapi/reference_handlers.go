package httpapi

import (
	"net/http"

	"patrimoine.mr/internal/authz"
	"patrimoine.mr/internal/i18n"
	"patrimoine.mr/internal/obs"
	"patrimoine.mr/internal/registry"
)

// handleReference serves the static lookup data clients build their forms
// from. The tab list is narrowed to the caller's role.
func (a *API) handleReference(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	user, ok := UserFromContext(r.Context())
	if !ok {
		a.writeError(w, r, http.StatusUnauthorized, "errorLogin", "authentication required")
		return
	}

	accessible := make([]authz.Tab, 0, len(authz.AllTabs))
	for _, tab := range authz.AllTabs {
		if authz.CanAccessTab(user.Role, tab) {
			accessible = append(accessible, tab)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"wilayas":            registry.Wilayas,
		"assetCategories":    registry.AssetCategories,
		"ministryStructures": registry.MinistryStructures,
		"roles":              authz.AllRoles,
		"tabs":               accessible,
	})
}

func (a *API) handleTexts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := UserFromContext(r.Context()); !ok {
			a.writeError(w, r, http.StatusUnauthorized, "errorLogin", "authentication required")
			return
		}
		a.textsMu.RLock()
		table := make(i18n.Table, len(a.texts))
		for k, v := range a.texts {
			table[k] = v
		}
		a.textsMu.RUnlock()
		writeJSON(w, http.StatusOK, table)
	case http.MethodPut:
		if _, ok := a.ensurePermission(w, r, authz.PermManageSettings); !ok {
			return
		}
		if a.textStore == nil {
			a.writeError(w, r, http.StatusServiceUnavailable, "errorSave", "text overrides unavailable")
			return
		}
		var overrides i18n.Table
		if err := decodeJSON(r, &overrides); err != nil {
			a.writeError(w, r, http.StatusBadRequest, "errorInvalid", err.Error())
			return
		}
		merged, err := i18n.Merge(i18n.Defaults(), overrides)
		if err != nil {
			a.writeError(w, r, http.StatusBadRequest, "errorInvalid", err.Error())
			return
		}
		if err := a.textStore.Save(overrides); err != nil {
			a.writeError(w, r, http.StatusInternalServerError, "errorSave", "saving overrides failed")
			return
		}
		a.textsMu.Lock()
		a.texts = merged
		a.textsMu.Unlock()
		obs.LogEvent(map[string]any{
			"event": "settings.texts_updated",
			"count": len(overrides),
		})
		writeJSON(w, http.StatusOK, merged)
	default:
		a.methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}
