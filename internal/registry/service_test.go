package registry

import (
	"context"
	"errors"
	"testing"
)

// stubStore implements Store with overridable functions, in the style of
// the handler test stubs.
type stubStore struct {
	listContactsFn    func(context.Context) ([]ContactRow, error)
	insertContactsFn  func(context.Context, []ContactRow) ([]ContactRow, error)
	updateContactFn   func(context.Context, ContactRow) (ContactRow, error)
	deleteContactFn   func(context.Context, string) error
	listAssetsFn      func(context.Context) ([]AssetRow, error)
	insertAssetFn     func(context.Context, AssetRow) (AssetRow, error)
	updateAssetFn     func(context.Context, AssetRow) (AssetRow, error)
	deleteAssetFn     func(context.Context, string) error
	listGroupsFn      func(context.Context) ([]GroupRow, error)
	listMembershipsFn func(context.Context) ([]MembershipRow, error)
	createGroupFn     func(context.Context, GroupRow, []string) (GroupRow, []MembershipRow, error)
	deleteGroupFn     func(context.Context, string) error
}

func (s *stubStore) ListContacts(ctx context.Context) ([]ContactRow, error) {
	if s.listContactsFn != nil {
		return s.listContactsFn(ctx)
	}
	return nil, nil
}

func (s *stubStore) InsertContacts(ctx context.Context, rows []ContactRow) ([]ContactRow, error) {
	if s.insertContactsFn != nil {
		return s.insertContactsFn(ctx, rows)
	}
	return rows, nil
}

func (s *stubStore) UpdateContact(ctx context.Context, row ContactRow) (ContactRow, error) {
	if s.updateContactFn != nil {
		return s.updateContactFn(ctx, row)
	}
	return row, nil
}

func (s *stubStore) DeleteContact(ctx context.Context, id string) error {
	if s.deleteContactFn != nil {
		return s.deleteContactFn(ctx, id)
	}
	return nil
}

func (s *stubStore) ListAssets(ctx context.Context) ([]AssetRow, error) {
	if s.listAssetsFn != nil {
		return s.listAssetsFn(ctx)
	}
	return nil, nil
}

func (s *stubStore) InsertAsset(ctx context.Context, row AssetRow) (AssetRow, error) {
	if s.insertAssetFn != nil {
		return s.insertAssetFn(ctx, row)
	}
	return row, nil
}

func (s *stubStore) UpdateAsset(ctx context.Context, row AssetRow) (AssetRow, error) {
	if s.updateAssetFn != nil {
		return s.updateAssetFn(ctx, row)
	}
	return row, nil
}

func (s *stubStore) DeleteAsset(ctx context.Context, id string) error {
	if s.deleteAssetFn != nil {
		return s.deleteAssetFn(ctx, id)
	}
	return nil
}

func (s *stubStore) ListGroups(ctx context.Context) ([]GroupRow, error) {
	if s.listGroupsFn != nil {
		return s.listGroupsFn(ctx)
	}
	return nil, nil
}

func (s *stubStore) ListMemberships(ctx context.Context) ([]MembershipRow, error) {
	if s.listMembershipsFn != nil {
		return s.listMembershipsFn(ctx)
	}
	return nil, nil
}

func (s *stubStore) CreateGroup(ctx context.Context, row GroupRow, contactIDs []string) (GroupRow, []MembershipRow, error) {
	if s.createGroupFn != nil {
		return s.createGroupFn(ctx, row, contactIDs)
	}
	members := make([]MembershipRow, 0, len(contactIDs))
	for _, id := range contactIDs {
		members = append(members, MembershipRow{GroupID: row.ID, ContactID: id})
	}
	return row, members, nil
}

func (s *stubStore) DeleteGroup(ctx context.Context, id string) error {
	if s.deleteGroupFn != nil {
		return s.deleteGroupFn(ctx, id)
	}
	return nil
}

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestListContactsPreservesStoreOrder(t *testing.T) {
	// The store returns newest first; the facade must not reorder.
	store := &stubStore{
		listContactsFn: func(context.Context) ([]ContactRow, error) {
			return []ContactRow{
				contactToRow(namedContact("C", "contact-c")),
				contactToRow(namedContact("B", "contact-b")),
				contactToRow(namedContact("A", "contact-a")),
			}, nil
		},
	}
	svc := newTestService(t, store)
	contacts, err := svc.ListContacts(context.Background())
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	var got []string
	for _, c := range contacts {
		got = append(got, c.ID)
	}
	want := []string{"contact-c", "contact-b", "contact-a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v want %v", got, want)
		}
	}
}

func TestListContactsEmptyStore(t *testing.T) {
	svc := newTestService(t, &stubStore{})
	contacts, err := svc.ListContacts(context.Background())
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if contacts == nil || len(contacts) != 0 {
		t.Fatalf("expected empty slice, got %#v", contacts)
	}
}

func TestAddContactsAssignsIDs(t *testing.T) {
	svc := newTestService(t, &stubStore{})
	contact := namedContact("Nouveau", "")
	inserted, err := svc.AddContacts(context.Background(), []MinistryContact{contact})
	if err != nil {
		t.Fatalf("AddContacts: %v", err)
	}
	if len(inserted) != 1 || inserted[0].ID == "" {
		t.Fatalf("expected a generated id, got %+v", inserted)
	}
}

func TestAddContactsRejectsIncompleteBilingual(t *testing.T) {
	svc := newTestService(t, &stubStore{})
	contact := namedContact("Partiel", "contact-x")
	contact.Name.Ar = ""
	_, err := svc.AddContacts(context.Background(), []MinistryContact{contact})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateContactRequiresID(t *testing.T) {
	svc := newTestService(t, &stubStore{})
	_, err := svc.UpdateContact(context.Background(), namedContact("Sans ID", ""))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStoreFailuresPropagateUnmodified(t *testing.T) {
	boom := errors.New("network down")
	store := &stubStore{
		listAssetsFn: func(context.Context) ([]AssetRow, error) { return nil, boom },
	}
	svc := newTestService(t, store)
	_, err := svc.ListAssets(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected the store error untouched, got %v", err)
	}
}

func TestAddAssetScenario(t *testing.T) {
	var insertedRow AssetRow
	store := &stubStore{
		insertAssetFn: func(_ context.Context, row AssetRow) (AssetRow, error) {
			insertedRow = row
			return row, nil
		},
	}
	svc := newTestService(t, store)

	asset := AssetDeclaration{
		Reference:       "VH-001",
		MinistryID:      MinistryFinances,
		Type:            AssetVehicle,
		Condition:       ConditionNew,
		Description:     "Véhicule de service",
		AcquisitionDate: "2026-03-01",
		Value:           500000,
		Wilaya:          "Nouakchott Nord",
		LocationDetails: "Garage central",
	}
	saved, err := svc.AddAsset(context.Background(), asset)
	if err != nil {
		t.Fatalf("AddAsset: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected a newly assigned id")
	}
	if saved.Reference != "VH-001" || saved.Value != 500000 || saved.Wilaya != "Nouakchott Nord" {
		t.Fatalf("input fields not preserved: %+v", saved)
	}
	if saved.CurrentValue != nil {
		t.Fatalf("current value must stay absent, got %v", *saved.CurrentValue)
	}
	if insertedRow.CurrentValue != nil || insertedRow.SubEntity != nil {
		t.Fatalf("absent optionals must reach the store as nulls: %+v", insertedRow)
	}
}

func TestAddAssetValidation(t *testing.T) {
	svc := newTestService(t, &stubStore{})
	base := AssetDeclaration{
		Reference:       "VH-002",
		MinistryID:      MinistryFinances,
		Type:            AssetVehicle,
		Condition:       ConditionGood,
		AcquisitionDate: "2026-01-01",
		Value:           1000,
		Wilaya:          "Trarza",
	}
	cases := []struct {
		name   string
		mutate func(*AssetDeclaration)
	}{
		{"missing reference", func(a *AssetDeclaration) { a.Reference = " " }},
		{"missing ministry", func(a *AssetDeclaration) { a.MinistryID = "" }},
		{"unknown type", func(a *AssetDeclaration) { a.Type = "Boat" }},
		{"unknown condition", func(a *AssetDeclaration) { a.Condition = "Rusty" }},
		{"unknown wilaya", func(a *AssetDeclaration) { a.Wilaya = "Atlantis" }},
		{"negative value", func(a *AssetDeclaration) { a.Value = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			asset := base
			tc.mutate(&asset)
			if _, err := svc.AddAsset(context.Background(), asset); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestListWorkGroupsAggregatesMemberships(t *testing.T) {
	store := &stubStore{
		listGroupsFn: func(context.Context) ([]GroupRow, error) {
			return []GroupRow{
				{ID: "g1", Name: "Comité Technique"},
				{ID: "g2", Name: "Commission Vide"},
			}, nil
		},
		listMembershipsFn: func(context.Context) ([]MembershipRow, error) {
			return []MembershipRow{
				{ID: "mm1", GroupID: "g1", ContactID: "m1"},
				{ID: "mm2", GroupID: "g1", ContactID: "m2"},
			}, nil
		},
	}
	svc := newTestService(t, store)
	groups, err := svc.ListWorkGroups(context.Background())
	if err != nil {
		t.Fatalf("ListWorkGroups: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	g1 := groups[0]
	members := map[string]bool{}
	for _, id := range g1.ContactIDs {
		members[id] = true
	}
	if len(members) != 2 || !members["m1"] || !members["m2"] {
		t.Fatalf("g1 members wrong: %v", g1.ContactIDs)
	}
	g2 := groups[1]
	if g2.ContactIDs == nil || len(g2.ContactIDs) != 0 {
		t.Fatalf("g2 must have an empty, non-nil member list: %#v", g2.ContactIDs)
	}
}

func TestCreateWorkGroupDeduplicatesMembers(t *testing.T) {
	var captured []string
	store := &stubStore{
		createGroupFn: func(_ context.Context, row GroupRow, contactIDs []string) (GroupRow, []MembershipRow, error) {
			captured = contactIDs
			members := make([]MembershipRow, 0, len(contactIDs))
			for _, id := range contactIDs {
				members = append(members, MembershipRow{GroupID: row.ID, ContactID: id})
			}
			return row, members, nil
		},
	}
	svc := newTestService(t, store)
	group, err := svc.CreateWorkGroup(context.Background(), "  Comité Technique ", []string{"m1", "m2", "m1", " ", "m2"})
	if err != nil {
		t.Fatalf("CreateWorkGroup: %v", err)
	}
	if group.Name != "Comité Technique" {
		t.Fatalf("name not trimmed: %q", group.Name)
	}
	if len(captured) != 2 {
		t.Fatalf("members not deduplicated: %v", captured)
	}
	if len(group.ContactIDs) != 2 {
		t.Fatalf("returned group members wrong: %v", group.ContactIDs)
	}
}

func TestCreateWorkGroupSurfacesCompositeFailure(t *testing.T) {
	boom := errors.New("membership insert failed")
	store := &stubStore{
		createGroupFn: func(context.Context, GroupRow, []string) (GroupRow, []MembershipRow, error) {
			return GroupRow{}, nil, boom
		},
	}
	svc := newTestService(t, store)
	_, err := svc.CreateWorkGroup(context.Background(), "Comité", []string{"m1"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected composite failure, got %v", err)
	}
}

func TestDeleteContactCascadeContract(t *testing.T) {
	// The store owns the cascade; the facade just forwards the delete and a
	// later asset listing no longer contains the dependents.
	assets := []AssetRow{
		assetToRow(assetOwnedBy("a1", "contact-1")),
		assetToRow(assetOwnedBy("a2", "contact-1")),
		assetToRow(assetOwnedBy("a3", "contact-2")),
	}
	store := &stubStore{
		deleteContactFn: func(_ context.Context, id string) error {
			var kept []AssetRow
			for _, row := range assets {
				if row.MinistryID != id {
					kept = append(kept, row)
				}
			}
			assets = kept
			return nil
		},
		listAssetsFn: func(context.Context) ([]AssetRow, error) { return assets, nil },
	}
	svc := newTestService(t, store)
	if err := svc.DeleteContact(context.Background(), "contact-1"); err != nil {
		t.Fatalf("DeleteContact: %v", err)
	}
	remaining, err := svc.ListAssets(context.Background())
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "a3" {
		t.Fatalf("cascade expectation violated: %+v", remaining)
	}
}

func namedContact(name, id string) MinistryContact {
	return MinistryContact{
		ID:               id,
		Name:             Bilingual{Fr: name, Ar: name + " (ar)"},
		Representative:   "Représentant",
		Role:             Bilingual{Fr: "Directeur", Ar: "مدير"},
		Phone:            "+222 45 25 26 27",
		Email:            "contact@example.gov.mr",
		Department:       Bilingual{Fr: "Cabinet", Ar: "ديوان"},
		ComplianceStatus: CompliancePending,
	}
}

func assetOwnedBy(id, ministryID string) AssetDeclaration {
	return AssetDeclaration{
		ID:              id,
		Reference:       "REF-" + id,
		MinistryID:      ministryID,
		Type:            AssetFurniture,
		Condition:       ConditionGood,
		AcquisitionDate: "2025-06-01",
		Value:           100,
		Wilaya:          "Adrar",
		Documents:       []Document{},
		SpecificDetails: map[string]string{},
	}
}
