package pg

import (
	"context"
	"database/sql"
	"errors"

	"patrimoine.mr/internal/identity"
	"patrimoine.mr/internal/ids"
	"patrimoine.mr/internal/registry"
)

var _ identity.Directory = (*Store)(nil)

// Resolve implements identity.Directory against the users table. A missing
// username or failed password comparison is an expected miss, not an error.
func (s *Store) Resolve(ctx context.Context, username, password string) (identity.User, bool, error) {
	var (
		user     identity.User
		hash     string
		ministry sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		select id, username, full_name, role, ministry_id, password_hash
		from users
		where username = $1
	`, username).Scan(&user.ID, &user.Username, &user.FullName, &user.Role, &ministry, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return identity.User{}, false, nil
	}
	if err != nil {
		return identity.User{}, false, err
	}
	if err := identity.VerifyPassword(hash, password); err != nil {
		return identity.User{}, false, nil
	}
	if ministry.Valid {
		user.MinistryID = ministry.String
	}
	return user, true, nil
}

// ListUsers returns every account, newest first, without secret material.
func (s *Store) ListUsers(ctx context.Context) ([]identity.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, username, full_name, role, ministry_id
		from users
		order by created_at desc, id desc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []identity.User
	for rows.Next() {
		var (
			user     identity.User
			ministry sql.NullString
		)
		if err := rows.Scan(&user.ID, &user.Username, &user.FullName, &user.Role, &ministry); err != nil {
			return nil, err
		}
		if ministry.Valid {
			user.MinistryID = ministry.String
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser inserts an account with a freshly hashed password and returns
// the sanitized record.
func (s *Store) CreateUser(ctx context.Context, user identity.User, password string) (identity.User, error) {
	if !user.Role.Valid() {
		return identity.User{}, registry.ErrInvalidInput
	}
	if user.ID == "" {
		user.ID = ids.New()
	}
	hash, err := identity.HashPassword(password)
	if err != nil {
		return identity.User{}, err
	}
	var created identity.User
	var out sql.NullString
	// ministry_id is NOT NULL; an unscoped account stores the empty string
	err = s.db.QueryRowContext(ctx, `
		insert into users (id, username, full_name, role, ministry_id, password_hash)
		values ($1, $2, $3, $4, $5, $6)
		returning id, username, full_name, role, ministry_id
	`, user.ID, user.Username, user.FullName, user.Role, user.MinistryID, hash).
		Scan(&created.ID, &created.Username, &created.FullName, &created.Role, &out)
	if err != nil {
		return identity.User{}, translateErr(err)
	}
	if out.Valid {
		created.MinistryID = out.String
	}
	return created, nil
}

// DeleteUser removes an account by id.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from users where id = $1`, id)
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return registry.ErrNotFound
	}
	return nil
}
