// Package httpapi is the HTTP surface of the service. It authenticates
// requests, enforces role permissions and translates between JSON payloads
// and the registry facade.
package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"patrimoine.mr/internal/i18n"
	"patrimoine.mr/internal/identity"
	"patrimoine.mr/internal/obs"
	"patrimoine.mr/internal/registry"
)

// ReadyProbe reports readiness, pinging the database when one is wired.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Registry is the subset of the registry facade the HTTP layer calls.
type Registry interface {
	ListContacts(ctx context.Context) ([]registry.MinistryContact, error)
	AddContacts(ctx context.Context, contacts []registry.MinistryContact) ([]registry.MinistryContact, error)
	UpdateContact(ctx context.Context, c registry.MinistryContact) (registry.MinistryContact, error)
	DeleteContact(ctx context.Context, id string) error

	ListAssets(ctx context.Context) ([]registry.AssetDeclaration, error)
	AddAsset(ctx context.Context, a registry.AssetDeclaration) (registry.AssetDeclaration, error)
	UpdateAsset(ctx context.Context, a registry.AssetDeclaration) (registry.AssetDeclaration, error)
	DeleteAsset(ctx context.Context, id string) error

	ListWorkGroups(ctx context.Context) ([]registry.WorkGroup, error)
	CreateWorkGroup(ctx context.Context, name string, contactIDs []string) (registry.WorkGroup, error)
	DeleteWorkGroup(ctx context.Context, id string) error
}

// UserStore manages login accounts. Optional; user administration endpoints
// answer 503 when it is absent.
type UserStore interface {
	ListUsers(ctx context.Context) ([]identity.User, error)
	CreateUser(ctx context.Context, user identity.User, password string) (identity.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Options tunes the HTTP layer. Zero values fall back to sane defaults.
type Options struct {
	TokenTTL           time.Duration
	RateLimitPerSecond float64
	RateLimitBurst     int
	MaxBodyBytes       int64
}

func (o Options) withDefaults() Options {
	if o.TokenTTL <= 0 {
		o.TokenTTL = 12 * time.Hour
	}
	if o.RateLimitPerSecond <= 0 {
		o.RateLimitPerSecond = 20
	}
	if o.RateLimitBurst <= 0 {
		o.RateLimitBurst = 40
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 1 << 20
	}
	return o
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string
	directory  identity.Directory
	registry   Registry
	users      UserStore
	opts       Options

	textStore *i18n.FileStore
	textsMu   sync.RWMutex
	texts     i18n.Table
}

func New(rp ReadyProbe, version string, dir identity.Directory, reg Registry, users UserStore, textStore *i18n.FileStore, opts Options) *API {
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: rp,
		version:    version,
		directory:  dir,
		registry:   reg,
		users:      users,
		opts:       opts.withDefaults(),
		textStore:  textStore,
		texts:      i18n.Defaults(),
	}
	a.reloadTexts()

	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	a.mux.HandleFunc("/v1/auth/login", a.handleLogin)

	a.mux.HandleFunc("/v1/contacts", a.handleContactsCollection)
	a.mux.HandleFunc("/v1/contacts/", a.handleContactResource)

	a.mux.HandleFunc("/v1/assets", a.handleAssetsCollection)
	a.mux.HandleFunc("/v1/assets/export", a.handleAssetsExport)
	a.mux.HandleFunc("/v1/assets/", a.handleAssetResource)

	a.mux.HandleFunc("/v1/work-groups", a.handleGroupsCollection)
	a.mux.HandleFunc("/v1/work-groups/", a.handleGroupResource)

	a.mux.HandleFunc("/v1/users", a.handleUsersCollection)
	a.mux.HandleFunc("/v1/users/", a.handleUserResource)

	a.mux.HandleFunc("/v1/reference", a.handleReference)
	a.mux.HandleFunc("/v1/settings/texts", a.handleTexts)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the full middleware chain around the mux.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.withAuth(h)
	h = MaxBodyBytes(h, a.opts.MaxBodyBytes)
	h = RateLimit(h, a.opts.RateLimitBurst, a.opts.RateLimitPerSecond)
	h = CORS(h)
	h = SecurityHeaders(h)
	h = Logging(h)
	return obs.Instrument(h)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "patrimoine-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "patrimoine-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers with the developer message plus the bilingual text for
// key, when the table carries one.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, code int, key, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	a.textsMu.RLock()
	if v, ok := a.texts[key]; ok {
		payload["message"] = v
	}
	a.textsMu.RUnlock()
	writeJSON(w, code, payload)
}

func (a *API) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	a.writeError(w, r, http.StatusMethodNotAllowed, "errorInvalid", "method not allowed")
}

// decodeJSON reads the request body, already capped by the MaxBodyBytes
// middleware, without applying a second limit of its own.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

// handleRegistryError maps facade sentinels to HTTP statuses. fallbackKey
// selects the localized message for unexpected failures.
func (a *API) handleRegistryError(w http.ResponseWriter, r *http.Request, err error, fallbackKey string) {
	switch {
	case errors.Is(err, registry.ErrInvalidInput):
		a.writeError(w, r, http.StatusBadRequest, "errorInvalid", err.Error())
	case errors.Is(err, registry.ErrConflict):
		a.writeError(w, r, http.StatusConflict, "errorConflict", err.Error())
	case errors.Is(err, registry.ErrNotFound):
		a.writeError(w, r, http.StatusNotFound, "errorNotFound", err.Error())
	default:
		a.writeError(w, r, http.StatusInternalServerError, fallbackKey, "internal error")
	}
}

func (a *API) reloadTexts() {
	if a.textStore == nil {
		return
	}
	overrides, err := a.textStore.Load()
	if err != nil {
		obs.LogEvent(map[string]any{"event": "texts.load_failed", "error": err.Error()})
		return
	}
	merged, err := i18n.Merge(i18n.Defaults(), overrides)
	if err != nil {
		obs.LogEvent(map[string]any{"event": "texts.merge_failed", "error": err.Error()})
		return
	}
	a.textsMu.Lock()
	a.texts = merged
	a.textsMu.Unlock()
}
