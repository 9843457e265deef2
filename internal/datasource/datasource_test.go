package datasource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.outline")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	// Missing file reads as an empty document.
	text, err := store.Load()
	if err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text for missing file, got %q", text)
	}

	doc := "a\n\tb\n\tc\nd"
	if err := store.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != doc {
		t.Errorf("expected %q back, got %q", doc, got)
	}
}

func TestFileStoreAtomicSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.outline")
	store, _ := NewFileStore(path)

	if err := store.Save("first"); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("second"); err != nil {
		t.Fatal(err)
	}

	// No temp files left behind after the rename.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".lw-save-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected only the document in %s, got %d entries", dir, len(entries))
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outlines.db")
	store, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore failed: %v", err)
	}
	defer store.Close()

	// Unknown document reads as empty.
	text, err := store.LoadDocument("todo")
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text for unknown document, got %q", text)
	}

	if err := store.SaveDocument("todo", "a\n\tb"); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}
	got, err := store.LoadDocument("todo")
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if got != "a\n\tb" {
		t.Errorf("expected saved body back, got %q", got)
	}

	names, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 1 || names[0] != "todo" {
		t.Errorf("expected [todo], got %v", names)
	}
}

func TestSQLiteStoreRevisions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outlines.db")
	store, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.SaveDocument("doc", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveDocument("doc", "v2"); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveDocument("doc", "v3"); err != nil {
		t.Fatal(err)
	}

	revs := store.Revisions("doc")
	if len(revs) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(revs))
	}
	if revs[0] != "v2" || revs[1] != "v1" {
		t.Errorf("expected [v2 v1] newest first, got %v", revs)
	}

	// Saving an identical body records no revision.
	if err := store.SaveDocument("doc", "v3"); err != nil {
		t.Fatal(err)
	}
	if got := len(store.Revisions("doc")); got != 2 {
		t.Errorf("expected no revision for identical save, got %d", got)
	}
}

func TestDocumentStoreImplementsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outlines.db")
	lib, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}

	var store Store = NewDocumentStore(lib, "plan")
	defer store.Close()

	if err := store.Save("x\n\ty"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != "x\n\ty" {
		t.Errorf("expected x/y document, got %q", got)
	}
}

func TestDiscoverSources(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.outline"), []byte("a\n\tb\n\nc"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignore.md"), []byte("# no"), 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := OpenSQLiteStore(filepath.Join(dir, "outlines.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := lib.SaveDocument("todo", "x"); err != nil {
		t.Fatal(err)
	}
	lib.Close()

	sources, err := DiscoverSources(DiscoveryOptions{Dir: dir, Validate: true})
	if err != nil {
		t.Fatalf("DiscoverSources failed: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources (.md ignored), got %d: %v", len(sources), sources)
	}

	byType := make(map[SourceType]DataSource)
	for _, s := range sources {
		byType[s.Type] = s
		if !s.Valid {
			t.Errorf("expected %s valid, got %s", s.Path, s.ValidationError)
		}
	}
	if byType[SourceTypeFile].LineCount != 3 {
		t.Errorf("expected 3 content lines (blank dropped), got %d", byType[SourceTypeFile].LineCount)
	}
	if byType[SourceTypeSQLite].LineCount != 1 {
		t.Errorf("expected 1 library document, got %d", byType[SourceTypeSQLite].LineCount)
	}
}

func TestDiscoverSourcesExcludesInvalid(t *testing.T) {
	dir := t.TempDir()
	// An empty file masquerading as a database fails validation.
	bad := filepath.Join(dir, "outlines.db")
	if err := os.WriteFile(bad, []byte("not a database"), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := DiscoverSources(DiscoveryOptions{Dir: dir, Validate: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 0 {
		t.Errorf("expected invalid source filtered out, got %v", sources)
	}

	all, err := DiscoverSources(DiscoveryOptions{Dir: dir, Validate: true, IncludeInvalid: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].Valid {
		t.Errorf("expected the invalid source reported, got %v", all)
	}
}
