package registry

import "context"

// Store is the thin client over the hosted relational store: four tables,
// each with a primary identifier and a creation timestamp used for default
// ordering. Implementations return rows newest first, translate their
// native failure modes into the package sentinel errors and perform no
// retries.
//
// Deleting a contact cascades to its assets and group memberships inside
// the store; callers must expect dependent records to vanish.
type Store interface {
	ListContacts(ctx context.Context) ([]ContactRow, error)
	InsertContacts(ctx context.Context, rows []ContactRow) ([]ContactRow, error)
	UpdateContact(ctx context.Context, row ContactRow) (ContactRow, error)
	DeleteContact(ctx context.Context, id string) error

	ListAssets(ctx context.Context) ([]AssetRow, error)
	InsertAsset(ctx context.Context, row AssetRow) (AssetRow, error)
	UpdateAsset(ctx context.Context, row AssetRow) (AssetRow, error)
	DeleteAsset(ctx context.Context, id string) error

	ListGroups(ctx context.Context) ([]GroupRow, error)
	ListMemberships(ctx context.Context) ([]MembershipRow, error)
	// CreateGroup inserts the group row and one membership row per contact
	// id as a single atomic write: a failed membership insert must leave no
	// orphaned group behind.
	CreateGroup(ctx context.Context, row GroupRow, contactIDs []string) (GroupRow, []MembershipRow, error)
	DeleteGroup(ctx context.Context, id string) error
}
