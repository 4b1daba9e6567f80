package pg

import (
	"context"
	"database/sql"
	"errors"

	"patrimoine.mr/internal/registry"
)

const contactColumns = `id, name_fr, name_ar, representative, role_fr, role_ar,
	phone, email, department_fr, department_ar, compliance_status,
	last_submission, created_at`

func scanContact(scanner interface{ Scan(...any) error }) (registry.ContactRow, error) {
	var (
		row  registry.ContactRow
		last sql.NullString
	)
	err := scanner.Scan(
		&row.ID, &row.NameFr, &row.NameAr, &row.Representative,
		&row.RoleFr, &row.RoleAr, &row.Phone, &row.Email,
		&row.DepartmentFr, &row.DepartmentAr, &row.ComplianceStatus,
		&last, &row.CreatedAt,
	)
	if err != nil {
		return registry.ContactRow{}, err
	}
	if last.Valid {
		v := last.String
		row.LastSubmission = &v
	}
	return row, nil
}

func (s *Store) ListContacts(ctx context.Context) ([]registry.ContactRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		select `+contactColumns+`
		from ministry_contacts
		order by created_at desc, id desc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []registry.ContactRow
	for rows.Next() {
		row, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) InsertContacts(ctx context.Context, contacts []registry.ContactRow) ([]registry.ContactRow, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	inserted := make([]registry.ContactRow, 0, len(contacts))
	for _, c := range contacts {
		row, err := scanContact(tx.QueryRowContext(ctx, `
			insert into ministry_contacts (
				id, name_fr, name_ar, representative, role_fr, role_ar,
				phone, email, department_fr, department_ar,
				compliance_status, last_submission
			)
			values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			returning `+contactColumns+`
		`, c.ID, c.NameFr, c.NameAr, c.Representative, c.RoleFr, c.RoleAr,
			c.Phone, c.Email, c.DepartmentFr, c.DepartmentAr,
			c.ComplianceStatus, nullIfEmpty(c.LastSubmission)))
		if err != nil {
			return nil, translateErr(err)
		}
		inserted = append(inserted, row)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return inserted, nil
}

func (s *Store) UpdateContact(ctx context.Context, c registry.ContactRow) (registry.ContactRow, error) {
	row, err := scanContact(s.db.QueryRowContext(ctx, `
		update ministry_contacts set
			name_fr = $2, name_ar = $3, representative = $4,
			role_fr = $5, role_ar = $6, phone = $7, email = $8,
			department_fr = $9, department_ar = $10,
			compliance_status = $11, last_submission = $12
		where id = $1
		returning `+contactColumns+`
	`, c.ID, c.NameFr, c.NameAr, c.Representative, c.RoleFr, c.RoleAr,
		c.Phone, c.Email, c.DepartmentFr, c.DepartmentAr,
		c.ComplianceStatus, nullIfEmpty(c.LastSubmission)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return registry.ContactRow{}, registry.ErrNotFound
		}
		return registry.ContactRow{}, translateErr(err)
	}
	return row, nil
}

// DeleteContact removes a directory entry. The schema cascades the delete
// to the contact's asset declarations and group memberships.
func (s *Store) DeleteContact(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from ministry_contacts where id = $1`, id)
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
