package registry

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreListsNewestFirst(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	if _, err := store.InsertContacts(ctx, []ContactRow{{ID: "c1"}, {ID: "c2"}}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	rows, err := store.ListContacts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "c2" || rows[1].ID != "c1" {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestMemoryStoreContactCascade(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	if _, err := store.InsertContacts(ctx, []ContactRow{{ID: "c1"}, {ID: "c2"}}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, _, err := store.CreateGroup(ctx, GroupRow{ID: "g1", Name: "Commission"}, []string{"c1", "c2"}); err != nil {
		t.Fatalf("create group: %v", err)
	}
	for _, asset := range []AssetRow{
		{ID: "a1", MinistryID: "c1"},
		{ID: "a2", MinistryID: "c1"},
		{ID: "a3", MinistryID: "c2"},
	} {
		if _, err := store.InsertAsset(ctx, asset); err != nil {
			t.Fatalf("insert asset %s: %v", asset.ID, err)
		}
	}

	if err := store.DeleteContact(ctx, "c1"); err != nil {
		t.Fatalf("delete contact: %v", err)
	}
	members, err := store.ListMemberships(ctx)
	if err != nil {
		t.Fatalf("list memberships: %v", err)
	}
	if len(members) != 1 || members[0].ContactID != "c2" {
		t.Fatalf("memberships = %+v", members)
	}
	assets, err := store.ListAssets(ctx)
	if err != nil {
		t.Fatalf("list assets: %v", err)
	}
	if len(assets) != 1 || assets[0].ID != "a3" {
		t.Fatalf("assets = %+v", assets)
	}
}

func TestMemoryStoreBulkInsertIsAtomic(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	if _, err := store.InsertContacts(ctx, []ContactRow{{ID: "c1"}}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err := store.InsertContacts(ctx, []ContactRow{{ID: "c2"}, {ID: "c1"}})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v", err)
	}

	rows, err := store.ListContacts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "c1" {
		t.Fatalf("failed batch left rows behind: %+v", rows)
	}
}

func TestMemoryStoreAssetNeedsKnownMinistry(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	if _, err := store.InsertAsset(ctx, AssetRow{ID: "a1", MinistryID: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	assets, _ := store.ListAssets(ctx)
	if len(assets) != 0 {
		t.Fatalf("assets = %+v", assets)
	}
}

func TestMemoryStoreGroupIsAtomic(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	if _, err := store.InsertContacts(ctx, []ContactRow{{ID: "c1"}}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, _, err := store.CreateGroup(ctx, GroupRow{ID: "g1", Name: "Commission"}, []string{"c1", "ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}

	groups, err := store.ListGroups(ctx)
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("orphaned group left behind: %+v", groups)
	}
	members, _ := store.ListMemberships(ctx)
	if len(members) != 0 {
		t.Fatalf("orphaned memberships left behind: %+v", members)
	}
}

func TestMemoryStoreDuplicateInsertConflicts(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	if _, err := store.InsertContacts(ctx, []ContactRow{{ID: "c1"}}); err != nil {
		t.Fatalf("insert contact: %v", err)
	}
	if _, err := store.InsertAsset(ctx, AssetRow{ID: "a1", MinistryID: "c1"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := store.InsertAsset(ctx, AssetRow{ID: "a1", MinistryID: "c1"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v", err)
	}
}

func TestMemoryStoreUpdateMissingRow(t *testing.T) {
	store := NewInMemory()
	if _, err := store.UpdateAsset(context.Background(), AssetRow{ID: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}
