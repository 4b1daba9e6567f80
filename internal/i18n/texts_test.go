package i18n

import (
	"path/filepath"
	"testing"

	"patrimoine.mr/internal/registry"
)

func TestDefaultsAreComplete(t *testing.T) {
	for key, v := range Defaults() {
		if !v.Complete() {
			t.Errorf("default %q missing a language", key)
		}
	}
}

func TestMergeOverlaysEntries(t *testing.T) {
	base := Defaults()
	merged, err := Merge(base, Table{
		"appTitle": {Fr: "Titre", Ar: "عنوان"},
		"custom":   {Fr: "Nouveau", Ar: "جديد"},
	})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got := merged.In("appTitle", LangFr); got != "Titre" {
		t.Fatalf("appTitle fr = %q", got)
	}
	if got := merged.In("custom", LangAr); got != "جديد" {
		t.Fatalf("custom ar = %q", got)
	}
	if got := merged.In("dashboard", LangFr); got != base["dashboard"].Fr {
		t.Fatalf("untouched key changed: %q", got)
	}
	// base must not be mutated
	if base["appTitle"].Fr == "Titre" {
		t.Fatal("Merge mutated base table")
	}
}

func TestMergeRejectsPartialEntry(t *testing.T) {
	if _, err := Merge(Defaults(), Table{"x": {Fr: "seulement"}}); err == nil {
		t.Fatal("expected error for entry missing Arabic")
	}
}

func TestInFallsBackToFrench(t *testing.T) {
	table := Table{"k": registry.Bilingual{Fr: "fr", Ar: "ar"}}
	if got := table.In("k", Lang("de")); got != "fr" {
		t.Fatalf("unknown lang = %q, want french", got)
	}
	if got := table.In("missing", LangFr); got != "" {
		t.Fatalf("missing key = %q, want empty", got)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texts.json")
	store := NewFileStore(path)

	empty, err := store.Load()
	if err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty table, got %d entries", len(empty))
	}

	want := Table{"errorLogin": {Fr: "Connexion refusée", Ar: "رفض الدخول"}}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got["errorLogin"] != want["errorLogin"] {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestFileStoreRejectsPartialEntry(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "texts.json"))
	if err := store.Save(Table{"k": {Ar: "فقط"}}); err == nil {
		t.Fatal("expected error for entry missing French")
	}
}
