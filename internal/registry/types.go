// Package registry holds the application entities of the state asset
// register and the facade that moves them in and out of the hosted store.
package registry

// Bilingual is a French/Arabic string pair. Every localized field of the
// register carries both languages.
type Bilingual struct {
	Fr string `json:"fr"`
	Ar string `json:"ar"`
}

// Complete reports whether both languages are present.
func (b Bilingual) Complete() bool {
	return b.Fr != "" && b.Ar != ""
}

// ComplianceStatus tracks a ministry's declaration discipline.
type ComplianceStatus string

const (
	ComplianceCompliant ComplianceStatus = "compliant"
	CompliancePending   ComplianceStatus = "pending"
	ComplianceOverdue   ComplianceStatus = "overdue"
)

// Valid reports whether s is a known compliance status.
func (s ComplianceStatus) Valid() bool {
	switch s {
	case ComplianceCompliant, CompliancePending, ComplianceOverdue:
		return true
	}
	return false
}

// AssetType classifies a declared asset.
type AssetType string

const (
	AssetRealEstate AssetType = "RealEstate"
	AssetVehicle    AssetType = "Vehicle"
	AssetIT         AssetType = "IT"
	AssetFurniture  AssetType = "Furniture"
	AssetEquipment  AssetType = "Equipment"
)

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	switch t {
	case AssetRealEstate, AssetVehicle, AssetIT, AssetFurniture, AssetEquipment:
		return true
	}
	return false
}

// AssetCondition describes the physical state of an asset.
type AssetCondition string

const (
	ConditionNew         AssetCondition = "New"
	ConditionGood        AssetCondition = "Good"
	ConditionNeedsRepair AssetCondition = "NeedsRepair"
	ConditionDamaged     AssetCondition = "Damaged"
)

// Valid reports whether c is a known asset condition.
func (c AssetCondition) Valid() bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionNeedsRepair, ConditionDamaged:
		return true
	}
	return false
}

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Document references one attachment of an asset declaration. The register
// stores references only; the files themselves live elsewhere.
type Document struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// MinistryContact is one ministry/department entry in the directory.
// Collections (none here) and bilingual pairs are always fully populated in
// the application shape; optional scalars are empty when absent.
type MinistryContact struct {
	ID               string           `json:"id"`
	Name             Bilingual        `json:"name"`
	Representative   string           `json:"representative"`
	Role             Bilingual        `json:"role"`
	Phone            string           `json:"phone"`
	Email            string           `json:"email"`
	Department       Bilingual        `json:"department"`
	ComplianceStatus ComplianceStatus `json:"complianceStatus"`
	// LastSubmission is an ISO date; empty when the ministry has never filed.
	LastSubmission string `json:"lastSubmission,omitempty"`
}

// AssetDeclaration is one declared physical asset.
type AssetDeclaration struct {
	ID              string         `json:"id"`
	Reference       string         `json:"reference"`
	MinistryID      string         `json:"ministryId"`
	SubEntity       string         `json:"subEntity,omitempty"`
	Type            AssetType      `json:"type"`
	Condition       AssetCondition `json:"condition"`
	Description     string         `json:"description"`
	AcquisitionDate string         `json:"acquisitionDate"`
	Value           float64        `json:"value"`
	CurrentValue    *float64       `json:"currentValue,omitempty"`
	Wilaya          Wilaya         `json:"wilaya"`
	Coordinates     *GeoPoint      `json:"coordinates,omitempty"`
	LocationDetails string         `json:"locationDetails"`
	Documents       []Document     `json:"documents"`
	// SpecificDetails carries type-specific attributes (plate number,
	// surface area, ...). The register does not enforce a schema on it.
	SpecificDetails map[string]string `json:"specificDetails"`
}

// WorkGroup is a named set of directory contacts used for group messaging.
type WorkGroup struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ContactIDs []string `json:"contactIds"`
}
