package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"patrimoine.mr/internal/ids"
)

// MemoryStore is an in-process Store used for demos and tests. It applies
// the same ordering, cascade and atomicity rules as the hosted store.
type MemoryStore struct {
	mu          sync.Mutex
	contacts    []ContactRow
	assets      []AssetRow
	groups      []GroupRow
	memberships []MembershipRow
}

var _ Store = (*MemoryStore)(nil)

func NewInMemory() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) ListContacts(_ context.Context) ([]ContactRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return reversed(m.contacts), nil
}

func (m *MemoryStore) InsertContacts(_ context.Context, rows []ContactRow) ([]ContactRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// full validation pass before any write keeps the batch atomic
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		for _, existing := range m.contacts {
			if existing.ID == row.ID {
				return nil, fmt.Errorf("%w: contact %s", ErrConflict, row.ID)
			}
		}
		if _, dup := seen[row.ID]; dup {
			return nil, fmt.Errorf("%w: contact %s", ErrConflict, row.ID)
		}
		seen[row.ID] = struct{}{}
	}
	out := make([]ContactRow, 0, len(rows))
	for _, row := range rows {
		row.CreatedAt = time.Now().UTC()
		m.contacts = append(m.contacts, row)
		out = append(out, row)
	}
	return out, nil
}

func (m *MemoryStore) UpdateContact(_ context.Context, row ContactRow) (ContactRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.contacts {
		if existing.ID == row.ID {
			row.CreatedAt = existing.CreatedAt
			m.contacts[i] = row
			return row, nil
		}
	}
	return ContactRow{}, fmt.Errorf("%w: contact %s", ErrNotFound, row.ID)
}

func (m *MemoryStore) DeleteContact(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := -1
	for i, existing := range m.contacts {
		if existing.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: contact %s", ErrNotFound, id)
	}
	m.contacts = append(m.contacts[:idx], m.contacts[idx+1:]...)

	// cascade, mirroring the foreign keys of the hosted schema
	keptAssets := m.assets[:0]
	for _, asset := range m.assets {
		if asset.MinistryID != id {
			keptAssets = append(keptAssets, asset)
		}
	}
	m.assets = keptAssets

	kept := m.memberships[:0]
	for _, mem := range m.memberships {
		if mem.ContactID != id {
			kept = append(kept, mem)
		}
	}
	m.memberships = kept
	return nil
}

func (m *MemoryStore) ListAssets(_ context.Context) ([]AssetRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return reversed(m.assets), nil
}

func (m *MemoryStore) InsertAsset(_ context.Context, row AssetRow) (AssetRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.assets {
		if existing.ID == row.ID {
			return AssetRow{}, fmt.Errorf("%w: asset %s", ErrConflict, row.ID)
		}
	}
	if !m.contactExistsLocked(row.MinistryID) {
		return AssetRow{}, fmt.Errorf("%w: ministry %s", ErrNotFound, row.MinistryID)
	}
	row.CreatedAt = time.Now().UTC()
	m.assets = append(m.assets, row)
	return row, nil
}

// contactExistsLocked mirrors the ministry_id foreign key of the hosted schema.
func (m *MemoryStore) contactExistsLocked(id string) bool {
	for _, c := range m.contacts {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (m *MemoryStore) UpdateAsset(_ context.Context, row AssetRow) (AssetRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.assets {
		if existing.ID == row.ID {
			if !m.contactExistsLocked(row.MinistryID) {
				return AssetRow{}, fmt.Errorf("%w: ministry %s", ErrNotFound, row.MinistryID)
			}
			row.CreatedAt = existing.CreatedAt
			m.assets[i] = row
			return row, nil
		}
	}
	return AssetRow{}, fmt.Errorf("%w: asset %s", ErrNotFound, row.ID)
}

func (m *MemoryStore) DeleteAsset(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.assets {
		if existing.ID == id {
			m.assets = append(m.assets[:i], m.assets[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: asset %s", ErrNotFound, id)
}

func (m *MemoryStore) ListGroups(_ context.Context) ([]GroupRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return reversed(m.groups), nil
}

func (m *MemoryStore) ListMemberships(_ context.Context) ([]MembershipRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MembershipRow, len(m.memberships))
	copy(out, m.memberships)
	return out, nil
}

func (m *MemoryStore) CreateGroup(_ context.Context, row GroupRow, contactIDs []string) (GroupRow, []MembershipRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.groups {
		if existing.ID == row.ID {
			return GroupRow{}, nil, fmt.Errorf("%w: group %s", ErrConflict, row.ID)
		}
	}
	// membership validation before any write keeps the group atomic
	for _, contactID := range contactIDs {
		found := false
		for _, c := range m.contacts {
			if c.ID == contactID {
				found = true
				break
			}
		}
		if !found {
			return GroupRow{}, nil, fmt.Errorf("%w: contact %s", ErrNotFound, contactID)
		}
	}
	row.CreatedAt = time.Now().UTC()
	m.groups = append(m.groups, row)
	members := make([]MembershipRow, 0, len(contactIDs))
	for _, contactID := range contactIDs {
		mem := MembershipRow{ID: ids.New(), GroupID: row.ID, ContactID: contactID}
		m.memberships = append(m.memberships, mem)
		members = append(members, mem)
	}
	return row, members, nil
}

func (m *MemoryStore) DeleteGroup(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := -1
	for i, existing := range m.groups {
		if existing.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: group %s", ErrNotFound, id)
	}
	m.groups = append(m.groups[:idx], m.groups[idx+1:]...)

	kept := m.memberships[:0]
	for _, mem := range m.memberships {
		if mem.GroupID != id {
			kept = append(kept, mem)
		}
	}
	m.memberships = kept
	return nil
}

func reversed[T any](rows []T) []T {
	out := make([]T, len(rows))
	for i, row := range rows {
		out[len(rows)-1-i] = row
	}
	return out
}
