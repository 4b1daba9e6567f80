package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"patrimoine.mr/internal/authz"
	"patrimoine.mr/internal/identity"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

var (
	errMissingToken = errors.New("missing bearer token")
	errBadScheme    = errors.New("invalid authorization scheme")
)

var publicPaths = []string{
	"/v1/auth/login",
	"/metrics",
	"/healthz",
	"/readyz",
	"/v1/info",
	"/",
}

type userContextKey struct{}

// UserFromContext returns the authenticated user attached by withAuth.
func UserFromContext(ctx context.Context) (identity.User, bool) {
	u, ok := ctx.Value(userContextKey{}).(identity.User)
	return u, ok
}

// ContextWithUser is exported for handler tests.
func ContextWithUser(ctx context.Context, u identity.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			a.writeError(w, r, http.StatusUnauthorized, "errorLogin", err.Error())
			return
		}

		user, err := identity.ParseAndValidate(token)
		if err != nil {
			a.writeError(w, r, http.StatusUnauthorized, "errorLogin", "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// ensurePermission answers false after writing a 401/403 when the request
// user is missing or lacks perm.
func (a *API) ensurePermission(w http.ResponseWriter, r *http.Request, perm string) (identity.User, bool) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		a.writeError(w, r, http.StatusUnauthorized, "errorLogin", "authentication required")
		return identity.User{}, false
	}
	if !authz.HasPermission(user.Role, perm) {
		a.writeError(w, r, http.StatusForbidden, "errorForbidden", "permission denied")
		return identity.User{}, false
	}
	return user, true
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errMissingToken
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errBadScheme
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errMissingToken
	}
	return token, nil
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}
