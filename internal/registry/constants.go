package registry

// Wilaya is one of the fixed administrative regions.
type Wilaya string

// Wilayas lists the 15 administrative regions assets can be located in.
var Wilayas = []Wilaya{
	"Adrar", "Assaba", "Brakna", "Dakhlet Nouadhibou", "Gorgol",
	"Guidimaka", "Hodh Ech Chargui", "Hodh El Gharbi", "Inchiri",
	"Nouakchott Nord", "Nouakchott Ouest", "Nouakchott Sud",
	"Tagant", "Tiris Zemmour", "Trarza",
}

// Valid reports whether w is a known wilaya.
func (w Wilaya) Valid() bool {
	for _, known := range Wilayas {
		if w == known {
			return true
		}
	}
	return false
}

// AssetCategory pairs an asset type with its bilingual display label.
type AssetCategory struct {
	ID    AssetType `json:"id"`
	Label Bilingual `json:"label"`
}

// AssetCategories lists the declarable asset types with display labels.
var AssetCategories = []AssetCategory{
	{ID: AssetRealEstate, Label: Bilingual{Fr: "Immobilier", Ar: "عقار"}},
	{ID: AssetVehicle, Label: Bilingual{Fr: "Véhicule", Ar: "مركبة"}},
	{ID: AssetIT, Label: Bilingual{Fr: "Informatique", Ar: "معلوماتية"}},
	{ID: AssetFurniture, Label: Bilingual{Fr: "Mobilier", Ar: "أثاث"}},
	{ID: AssetEquipment, Label: Bilingual{Fr: "Matériel", Ar: "معدات"}},
}

// Well-known ministry identifiers seeded with the demo data.
const (
	MinistryFinances   = "00000000-0000-0000-0000-000000000001"
	MinistrySante      = "00000000-0000-0000-0000-000000000002"
	MinistryEquipement = "00000000-0000-0000-0000-000000000003"
)

// MinistryStructures maps a ministry id to its known sub-entities, offered
// as suggestions on the declaration form.
var MinistryStructures = map[string][]Bilingual{
	MinistryFinances: {
		{Fr: "Cabinet du Ministre", Ar: "ديوان الوزير"},
		{Fr: "Direction Générale du Budget", Ar: "المديرية العامة للميزانية"},
		{Fr: "Direction Générale du Trésor", Ar: "المديرية العامة للخزينة"},
		{Fr: "Direction Générale des Impôts", Ar: "المديرية العامة للضرائب"},
		{Fr: "Direction Générale des Douanes", Ar: "المديرية العامة للجمارك"},
		{Fr: "Direction des Domaines et du Patrimoine", Ar: "مديرية العقارات وأملاك الدولة"},
	},
	MinistrySante: {
		{Fr: "Cabinet du Ministre", Ar: "ديوان الوزير"},
		{Fr: "Centre Hospitalier National (CHN)", Ar: "مركز الاستطباب الوطني"},
		{Fr: "Hôpital Cheikh Zayed", Ar: "مستشفى الشيخ زايد"},
		{Fr: "Hôpital de l'Amitié", Ar: "مستشفى الصداقة"},
		{Fr: "Institut National de Recherche en Santé Publique (INRSP)", Ar: "المعهد الوطني للبحوث في مجال الصحة العمومية"},
		{Fr: "Direction de la Pharmacie et des Laboratoires", Ar: "مديرية الصيدلة والمختبرات"},
	},
	MinistryEquipement: {
		{Fr: "Cabinet du Ministre", Ar: "ديوان الوزير"},
		{Fr: "Laboratoire National des Travaux Publics (LNTP)", Ar: "المختبر الوطني للأشغال العامة"},
		{Fr: "Etablissement des Travaux d'Entretien Routier (ETER)", Ar: "مؤسسة أشغال صيانة الطرق"},
		{Fr: "Direction des Infrastructures de Transport", Ar: "مديرية البنى التحتية للنقل"},
	},
}
