package pg

import (
	"context"

	"patrimoine.mr/internal/ids"
	"patrimoine.mr/internal/registry"
)

func (s *Store) ListGroups(ctx context.Context) ([]registry.GroupRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, name, created_at
		from work_groups
		order by created_at desc, id desc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []registry.GroupRow
	for rows.Next() {
		var row registry.GroupRow
		if err := rows.Scan(&row.ID, &row.Name, &row.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) ListMemberships(ctx context.Context) ([]registry.MembershipRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, group_id, contact_id
		from work_group_members
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []registry.MembershipRow
	for rows.Next() {
		var row registry.MembershipRow
		if err := rows.Scan(&row.ID, &row.GroupID, &row.ContactID); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateGroup inserts the group row and its membership rows in a single
// transaction: a failed membership insert rolls the group back too, so no
// orphaned empty group can be observed.
func (s *Store) CreateGroup(ctx context.Context, group registry.GroupRow, contactIDs []string) (registry.GroupRow, []registry.MembershipRow, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return registry.GroupRow{}, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var inserted registry.GroupRow
	err = tx.QueryRowContext(ctx, `
		insert into work_groups (id, name)
		values ($1, $2)
		returning id, name, created_at
	`, group.ID, group.Name).Scan(&inserted.ID, &inserted.Name, &inserted.CreatedAt)
	if err != nil {
		return registry.GroupRow{}, nil, translateErr(err)
	}

	members := make([]registry.MembershipRow, 0, len(contactIDs))
	for _, contactID := range contactIDs {
		var m registry.MembershipRow
		err = tx.QueryRowContext(ctx, `
			insert into work_group_members (id, group_id, contact_id)
			values ($1, $2, $3)
			returning id, group_id, contact_id
		`, ids.New(), inserted.ID, contactID).Scan(&m.ID, &m.GroupID, &m.ContactID)
		if err != nil {
			return registry.GroupRow{}, nil, translateErr(err)
		}
		members = append(members, m)
	}

	if err := tx.Commit(); err != nil {
		return registry.GroupRow{}, nil, err
	}
	return inserted, members, nil
}

// DeleteGroup removes a group; memberships go with it via the cascade.
func (s *Store) DeleteGroup(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from work_groups where id = $1`, id)
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
