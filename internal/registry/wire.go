package registry

import "time"

// Wire rows mirror the normalized store schema: bilingual pairs split into
// language-suffixed columns, optional scalars as nullable pointers. Only
// this package translates between rows and entities; the store speaks rows,
// everything above the facade speaks entities.

// ContactRow is the wire shape of a ministry_contacts record.
type ContactRow struct {
	ID               string
	NameFr           string
	NameAr           string
	Representative   string
	RoleFr           string
	RoleAr           string
	Phone            string
	Email            string
	DepartmentFr     string
	DepartmentAr     string
	ComplianceStatus string
	LastSubmission   *string
	CreatedAt        time.Time
}

// AssetRow is the wire shape of an asset_declarations record. Coordinates,
// documents and specific details travel structurally unchanged; the store
// serializes them, the mapper never interprets them.
type AssetRow struct {
	ID              string
	Reference       string
	MinistryID      string
	SubEntity       *string
	AssetType       string
	Condition       string
	Description     string
	AcquisitionDate string
	Value           float64
	CurrentValue    *float64
	Wilaya          string
	LocationDetails string
	Coordinates     *GeoPoint
	Documents       []Document
	SpecificDetails map[string]string
	CreatedAt       time.Time
}

// GroupRow is the wire shape of a work_groups record.
type GroupRow struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// MembershipRow is the wire shape of a work_group_members record.
type MembershipRow struct {
	ID        string
	GroupID   string
	ContactID string
}

// contactFromRow recombines the language-suffixed columns into bilingual
// pairs and converts wire nulls into application-level absence.
func contactFromRow(r ContactRow) MinistryContact {
	c := MinistryContact{
		ID:               r.ID,
		Name:             Bilingual{Fr: r.NameFr, Ar: r.NameAr},
		Representative:   r.Representative,
		Role:             Bilingual{Fr: r.RoleFr, Ar: r.RoleAr},
		Phone:            r.Phone,
		Email:            r.Email,
		Department:       Bilingual{Fr: r.DepartmentFr, Ar: r.DepartmentAr},
		ComplianceStatus: ComplianceStatus(r.ComplianceStatus),
	}
	if r.LastSubmission != nil {
		c.LastSubmission = *r.LastSubmission
	}
	return c
}

// contactToRow is the inverse of contactFromRow. Absent optionals become
// wire nulls, never empty strings.
func contactToRow(c MinistryContact) ContactRow {
	r := ContactRow{
		ID:               c.ID,
		NameFr:           c.Name.Fr,
		NameAr:           c.Name.Ar,
		Representative:   c.Representative,
		RoleFr:           c.Role.Fr,
		RoleAr:           c.Role.Ar,
		Phone:            c.Phone,
		Email:            c.Email,
		DepartmentFr:     c.Department.Fr,
		DepartmentAr:     c.Department.Ar,
		ComplianceStatus: string(c.ComplianceStatus),
	}
	if c.LastSubmission != "" {
		v := c.LastSubmission
		r.LastSubmission = &v
	}
	return r
}

// assetFromRow converts a wire asset into the application shape.
// Collections come back non-nil so callers never branch on nil.
func assetFromRow(r AssetRow) AssetDeclaration {
	a := AssetDeclaration{
		ID:              r.ID,
		Reference:       r.Reference,
		MinistryID:      r.MinistryID,
		Type:            AssetType(r.AssetType),
		Condition:       AssetCondition(r.Condition),
		Description:     r.Description,
		AcquisitionDate: r.AcquisitionDate,
		Value:           r.Value,
		CurrentValue:    r.CurrentValue,
		Wilaya:          Wilaya(r.Wilaya),
		Coordinates:     r.Coordinates,
		LocationDetails: r.LocationDetails,
		Documents:       r.Documents,
		SpecificDetails: r.SpecificDetails,
	}
	if r.SubEntity != nil {
		a.SubEntity = *r.SubEntity
	}
	if a.Documents == nil {
		a.Documents = []Document{}
	}
	if a.SpecificDetails == nil {
		a.SpecificDetails = map[string]string{}
	}
	return a
}

// assetToRow is the inverse of assetFromRow.
func assetToRow(a AssetDeclaration) AssetRow {
	r := AssetRow{
		ID:              a.ID,
		Reference:       a.Reference,
		MinistryID:      a.MinistryID,
		AssetType:       string(a.Type),
		Condition:       string(a.Condition),
		Description:     a.Description,
		AcquisitionDate: a.AcquisitionDate,
		Value:           a.Value,
		CurrentValue:    a.CurrentValue,
		Wilaya:          string(a.Wilaya),
		Coordinates:     a.Coordinates,
		LocationDetails: a.LocationDetails,
		Documents:       a.Documents,
		SpecificDetails: a.SpecificDetails,
	}
	if a.SubEntity != "" {
		v := a.SubEntity
		r.SubEntity = &v
	}
	if r.Documents == nil {
		r.Documents = []Document{}
	}
	if r.SpecificDetails == nil {
		r.SpecificDetails = map[string]string{}
	}
	return r
}

// groupFromRow builds a work group from its row and an already aggregated
// member list. Membership aggregation happens in the facade, in one pass
// over the membership table.
func groupFromRow(r GroupRow, contactIDs []string) WorkGroup {
	if contactIDs == nil {
		contactIDs = []string{}
	}
	return WorkGroup{ID: r.ID, Name: r.Name, ContactIDs: contactIDs}
}
