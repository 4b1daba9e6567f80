// Package identity resolves login credentials to sanitized user records.
// The directory behind the resolver is pluggable so that the static demo
// list can be swapped for a real identity backend without touching the
// permission model.
package identity

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"patrimoine.mr/internal/authz"
)

// User is a sanitized identity record. It deliberately has no field for
// secret material: a credential can never leak past the resolver.
type User struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	FullName   string     `json:"fullName"`
	Role       authz.Role `json:"role"`
	MinistryID string     `json:"ministryId,omitempty"`
}

// Directory resolves credentials to a user. A failed match is reported via
// the boolean, not an error: wrong passwords are an expected outcome.
// Errors are reserved for backend failures.
type Directory interface {
	Resolve(ctx context.Context, username, password string) (User, bool, error)
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) == 0 {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password with a stored bcrypt hash.
func VerifyPassword(hash, password string) error {
	if hash == "" {
		return errors.New("password hash is empty")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

type staticRecord struct {
	user User
	hash string
}

// StaticDirectory is an in-memory credential list. It stands in for a remote
// identity provider in demo deployments.
type StaticDirectory struct {
	records map[string]staticRecord
}

// StaticUser seeds one directory entry. The plaintext password is hashed at
// construction and never retained.
type StaticUser struct {
	User     User
	Password string
}

// NewStaticDirectory builds a directory from the given entries.
func NewStaticDirectory(users []StaticUser) (*StaticDirectory, error) {
	records := make(map[string]staticRecord, len(users))
	for _, u := range users {
		username := strings.TrimSpace(u.User.Username)
		if username == "" {
			return nil, errors.New("identity: username is required")
		}
		if !u.User.Role.Valid() {
			return nil, errors.New("identity: unknown role for user " + username)
		}
		if _, ok := records[username]; ok {
			return nil, errors.New("identity: duplicate username " + username)
		}
		hash, err := HashPassword(u.Password)
		if err != nil {
			return nil, err
		}
		records[username] = staticRecord{user: u.User, hash: hash}
	}
	return &StaticDirectory{records: records}, nil
}

// Resolve implements Directory by exact username match and constant-time
// password comparison.
func (d *StaticDirectory) Resolve(_ context.Context, username, password string) (User, bool, error) {
	rec, ok := d.records[strings.TrimSpace(username)]
	if !ok {
		return User{}, false, nil
	}
	if err := VerifyPassword(rec.hash, password); err != nil {
		return User{}, false, nil
	}
	return rec.user, true, nil
}

// DemoDirectory returns the built-in demo credential list.
func DemoDirectory() *StaticDirectory {
	dir, err := NewStaticDirectory([]StaticUser{
		{
			User: User{
				ID:       "demo-super",
				Username: "admin",
				FullName: "Administrateur Système",
				Role:     authz.RoleSuperAdmin,
			},
			Password: "admin123",
		},
		{
			User: User{
				ID:         "demo-ministry",
				Username:   "finances",
				FullName:   "M. Ahmed (Finances)",
				Role:       authz.RoleMinistryAdmin,
				MinistryID: "00000000-0000-0000-0000-000000000001",
			},
			Password: "finances123",
		},
		{
			User: User{
				ID:         "demo-editor",
				Username:   "sante",
				FullName:   "Dr. Fatimetou (Santé)",
				Role:       authz.RoleEditor,
				MinistryID: "00000000-0000-0000-0000-000000000002",
			},
			Password: "sante123",
		},
	})
	if err != nil {
		panic(err)
	}
	return dir
}
