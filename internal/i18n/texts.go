// Package i18n holds the bilingual text table and its override mechanism.
// Administrators can override individual entries; overrides are merged over
// the built-in defaults at load time.
package i18n

import (
	"encoding/json"
	"fmt"

	"patrimoine.mr/internal/registry"
)

// Table maps text keys to bilingual values.
type Table map[string]registry.Bilingual

// Lang selects one side of a bilingual value.
type Lang string

const (
	LangFr Lang = "fr"
	LangAr Lang = "ar"
)

// Valid reports whether l is a supported language.
func (l Lang) Valid() bool { return l == LangFr || l == LangAr }

var defaults = Table{
	"appTitle":       {Fr: "Patrimoine de l'État (MR)", Ar: "ممتلكات الدولة (موريتانيا)"},
	"dashboard":      {Fr: "Tableau de bord", Ar: "لوحة القيادة"},
	"directory":      {Fr: "Annuaire & Groupes", Ar: "الدليل والمجموعات"},
	"declaration":    {Fr: "Gestion des Biens", Ar: "إدارة الممتلكات"},
	"map":            {Fr: "Cartographie GPS", Ar: "الخريطة الجغرافية"},
	"assistant":      {Fr: "Assistant IA", Ar: "المساعد الذكي"},
	"users":          {Fr: "Gestion Utilisateurs", Ar: "إدارة المستخدمين"},
	"settings":       {Fr: "Paramètres", Ar: "الإعدادات"},
	"errorLogin":     {Fr: "Identifiants invalides", Ar: "بيانات الاعتماد غير صالحة"},
	"errorForbidden": {Fr: "Action non autorisée", Ar: "إجراء غير مصرح به"},
	"errorNotFound":  {Fr: "Enregistrement introuvable", Ar: "السجل غير موجود"},
	"errorConflict":  {Fr: "Conflit avec un enregistrement existant", Ar: "تعارض مع سجل موجود"},
	"errorInvalid":   {Fr: "Données invalides", Ar: "بيانات غير صالحة"},
	"errorSave":      {Fr: "Erreur lors de l'enregistrement", Ar: "خطأ في الحفظ"},
	"errorDelete":    {Fr: "Erreur lors de la suppression", Ar: "خطأ في الحذف"},
	"errorLoad":      {Fr: "Erreur lors du chargement", Ar: "خطأ في التحميل"},
	"statusCompliant":   {Fr: "À jour", Ar: "محدث"},
	"statusPending":     {Fr: "En cours", Ar: "قيد المعالجة"},
	"statusOverdue":     {Fr: "En retard", Ar: "متأخر"},
	"statusNew":         {Fr: "Neuf", Ar: "جديد"},
	"statusGood":        {Fr: "Bon État", Ar: "حالة جيدة"},
	"statusNeedsRepair": {Fr: "Nécessite Réparation", Ar: "يحتاج إصلاح"},
	"statusDamaged":     {Fr: "Hors Service", Ar: "خارج الخدمة"},
	"roleSuperAdmin":    {Fr: "Super Administrateur", Ar: "مدير فائق"},
	"roleMinistryAdmin": {Fr: "Admin Ministère", Ar: "مدير وزارة"},
	"roleEditor":        {Fr: "Éditeur", Ar: "محرر"},
	"roleViewer":        {Fr: "Lecteur", Ar: "قارئ"},
}

// Defaults returns a copy of the built-in text table.
func Defaults() Table {
	table := make(Table, len(defaults))
	for k, v := range defaults {
		table[k] = v
	}
	return table
}

// Merge overlays override entries on top of base and returns a new table.
// Entries missing either language are rejected: bilingual values always
// carry both languages.
func Merge(base, override Table) (Table, error) {
	merged := make(Table, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		if !v.Complete() {
			return nil, fmt.Errorf("i18n: override %q requires both languages", k)
		}
		merged[k] = v
	}
	return merged, nil
}

// Parse decodes a JSON override document.
func Parse(raw []byte) (Table, error) {
	var table Table
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("i18n: decode overrides: %w", err)
	}
	return table, nil
}

// In returns the requested language of the entry, falling back to French
// when the key is unknown to the table.
func (t Table) In(key string, lang Lang) string {
	v, ok := t[key]
	if !ok {
		return ""
	}
	if lang == LangAr {
		return v.Ar
	}
	return v.Fr
}
