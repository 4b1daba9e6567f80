package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"patrimoine.mr/internal/ids"
)

// Service is the data access facade. It owns the row/entity translation,
// holds no state between calls and never caches: every operation is a
// single trip to the store, and failures propagate to the caller untouched.
type Service struct {
	store Store
}

// NewService constructs the facade.
func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("registry store is required")
	}
	return &Service{store: store}, nil
}

// ListContacts returns every directory entry, newest first. An empty store
// yields an empty slice.
func (s *Service) ListContacts(ctx context.Context) ([]MinistryContact, error) {
	rows, err := s.store.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	contacts := make([]MinistryContact, 0, len(rows))
	for _, r := range rows {
		contacts = append(contacts, contactFromRow(r))
	}
	return contacts, nil
}

// AddContacts persists one or more directory entries. Entries without an id
// get a generated one; the returned entries reflect store-assigned defaults.
func (s *Service) AddContacts(ctx context.Context, contacts []MinistryContact) ([]MinistryContact, error) {
	if len(contacts) == 0 {
		return nil, fmt.Errorf("%w: at least one contact is required", ErrInvalidInput)
	}
	rows := make([]ContactRow, 0, len(contacts))
	for _, c := range contacts {
		if err := validateContact(c); err != nil {
			return nil, err
		}
		if c.ID == "" {
			c.ID = ids.New()
		}
		rows = append(rows, contactToRow(c))
	}
	inserted, err := s.store.InsertContacts(ctx, rows)
	if err != nil {
		return nil, err
	}
	result := make([]MinistryContact, 0, len(inserted))
	for _, r := range inserted {
		result = append(result, contactFromRow(r))
	}
	return result, nil
}

// UpdateContact replaces every mutable field of the contact identified by
// its id. Returns ErrNotFound when the id does not exist.
func (s *Service) UpdateContact(ctx context.Context, c MinistryContact) (MinistryContact, error) {
	if strings.TrimSpace(c.ID) == "" {
		return MinistryContact{}, fmt.Errorf("%w: contact id is required", ErrInvalidInput)
	}
	if err := validateContact(c); err != nil {
		return MinistryContact{}, err
	}
	row, err := s.store.UpdateContact(ctx, contactToRow(c))
	if err != nil {
		return MinistryContact{}, err
	}
	return contactFromRow(row), nil
}

// DeleteContact removes a directory entry. The store cascades the delete to
// the contact's assets and group memberships, so callers should drop any
// dependent records they hold.
func (s *Service) DeleteContact(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: contact id is required", ErrInvalidInput)
	}
	return s.store.DeleteContact(ctx, id)
}

// ListAssets returns every declaration, newest first.
func (s *Service) ListAssets(ctx context.Context) ([]AssetDeclaration, error) {
	rows, err := s.store.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	assets := make([]AssetDeclaration, 0, len(rows))
	for _, r := range rows {
		assets = append(assets, assetFromRow(r))
	}
	return assets, nil
}

// AddAsset persists one declaration and returns it with store-assigned
// defaults applied.
func (s *Service) AddAsset(ctx context.Context, a AssetDeclaration) (AssetDeclaration, error) {
	if err := validateAsset(a); err != nil {
		return AssetDeclaration{}, err
	}
	if a.ID == "" {
		a.ID = ids.New()
	}
	row, err := s.store.InsertAsset(ctx, assetToRow(a))
	if err != nil {
		return AssetDeclaration{}, err
	}
	return assetFromRow(row), nil
}

// UpdateAsset replaces every mutable field of the declaration identified by
// its id. Changing MinistryID is an ordinary field update and transfers
// ownership.
func (s *Service) UpdateAsset(ctx context.Context, a AssetDeclaration) (AssetDeclaration, error) {
	if strings.TrimSpace(a.ID) == "" {
		return AssetDeclaration{}, fmt.Errorf("%w: asset id is required", ErrInvalidInput)
	}
	if err := validateAsset(a); err != nil {
		return AssetDeclaration{}, err
	}
	row, err := s.store.UpdateAsset(ctx, assetToRow(a))
	if err != nil {
		return AssetDeclaration{}, err
	}
	return assetFromRow(row), nil
}

// DeleteAsset removes a declaration by id.
func (s *Service) DeleteAsset(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: asset id is required", ErrInvalidInput)
	}
	return s.store.DeleteAsset(ctx, id)
}

// ListWorkGroups returns every group, newest first, each with its member
// ids. Memberships are aggregated in one pass, not once per group.
//
// Listing groups and listing memberships are two store reads; memberships
// added concurrently may be partially visible. Accepted as an
// eventual-consistency gap.
func (s *Service) ListWorkGroups(ctx context.Context) ([]WorkGroup, error) {
	rows, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	memberships, err := s.store.ListMemberships(ctx)
	if err != nil {
		return nil, err
	}
	byGroup := make(map[string][]string, len(rows))
	for _, m := range memberships {
		byGroup[m.GroupID] = append(byGroup[m.GroupID], m.ContactID)
	}
	groups := make([]WorkGroup, 0, len(rows))
	for _, r := range rows {
		groups = append(groups, groupFromRow(r, byGroup[r.ID]))
	}
	return groups, nil
}

// CreateWorkGroup creates a group with an initial member list. Group row
// and membership rows are written atomically by the store, so a failure
// surfaces as a single composite error with no orphaned group left behind.
func (s *Service) CreateWorkGroup(ctx context.Context, name string, contactIDs []string) (WorkGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return WorkGroup{}, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}
	members := dedupeIDs(contactIDs)
	row, inserted, err := s.store.CreateGroup(ctx, GroupRow{ID: ids.New(), Name: name}, members)
	if err != nil {
		return WorkGroup{}, err
	}
	memberIDs := make([]string, 0, len(inserted))
	for _, m := range inserted {
		memberIDs = append(memberIDs, m.ContactID)
	}
	return groupFromRow(row, memberIDs), nil
}

// DeleteWorkGroup removes a group; the store cleans up its memberships.
func (s *Service) DeleteWorkGroup(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}
	return s.store.DeleteGroup(ctx, id)
}

func validateContact(c MinistryContact) error {
	if !c.Name.Complete() {
		return fmt.Errorf("%w: contact name requires both languages", ErrInvalidInput)
	}
	if !c.Role.Complete() {
		return fmt.Errorf("%w: contact role requires both languages", ErrInvalidInput)
	}
	if !c.Department.Complete() {
		return fmt.Errorf("%w: contact department requires both languages", ErrInvalidInput)
	}
	if strings.TrimSpace(c.Representative) == "" {
		return fmt.Errorf("%w: representative is required", ErrInvalidInput)
	}
	if !c.ComplianceStatus.Valid() {
		return fmt.Errorf("%w: unknown compliance status %q", ErrInvalidInput, c.ComplianceStatus)
	}
	return nil
}

func validateAsset(a AssetDeclaration) error {
	if strings.TrimSpace(a.Reference) == "" {
		return fmt.Errorf("%w: asset reference is required", ErrInvalidInput)
	}
	if strings.TrimSpace(a.MinistryID) == "" {
		return fmt.Errorf("%w: ministry id is required", ErrInvalidInput)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown asset type %q", ErrInvalidInput, a.Type)
	}
	if !a.Condition.Valid() {
		return fmt.Errorf("%w: unknown asset condition %q", ErrInvalidInput, a.Condition)
	}
	if !a.Wilaya.Valid() {
		return fmt.Errorf("%w: unknown wilaya %q", ErrInvalidInput, a.Wilaya)
	}
	if a.Value < 0 {
		return fmt.Errorf("%w: acquisition value must not be negative", ErrInvalidInput)
	}
	if a.CurrentValue != nil && *a.CurrentValue < 0 {
		return fmt.Errorf("%w: current value must not be negative", ErrInvalidInput)
	}
	return nil
}

func dedupeIDs(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := set[v]; ok {
			continue
		}
		set[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
