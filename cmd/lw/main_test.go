package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/lacework/internal/datasource"
	"github.com/vanderheijden86/lacework/pkg/config"
)

func TestOpenStoreExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.outline")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	store, docPath, err := openStore(&cfg, "", "", path)
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer store.Close()

	if docPath != path {
		t.Errorf("expected doc path %q, got %q", path, docPath)
	}
	text, err := store.Load()
	if err != nil || text != "a" {
		t.Errorf("expected loaded content a, got %q (%v)", text, err)
	}
}

func TestOpenStoreFavorite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fav.outline")
	if err := os.WriteFile(path, []byte("fav"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.SetFavorite(3, path)

	store, docPath, err := openStore(&cfg, "", "", "@3")
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer store.Close()
	if docPath != path {
		t.Errorf("expected favorite path %q, got %q", path, docPath)
	}

	if _, _, err := openStore(&cfg, "", "", "@7"); err == nil {
		t.Error("expected error for unset favorite")
	}
	if _, _, err := openStore(&cfg, "", "", "@x"); err == nil {
		t.Error("expected error for malformed favorite reference")
	}
}

func TestOpenStoreRecentFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.outline")
	if err := os.WriteFile(path, []byte("r"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Touch(path)

	store, docPath, err := openStore(&cfg, "", "", "")
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer store.Close()
	if docPath != path {
		t.Errorf("expected recent path %q, got %q", path, docPath)
	}
}

func TestOpenStoreNoDocument(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, _, err := openStore(&cfg, "", "", ""); err == nil {
		t.Error("expected error with no file and no recents")
	}
}

func TestOpenStoreLibrary(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "outlines.db")

	cfg := config.DefaultConfig()
	store, docPath, err := openStore(&cfg, dbPath, "notes", "")
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer store.Close()

	if !strings.Contains(docPath, "notes") {
		t.Errorf("expected doc path to name the document, got %q", docPath)
	}
	if err := store.Save("a\n\tb"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	text, err := store.Load()
	if err != nil || text != "a\n\tb" {
		t.Errorf("expected round trip, got %q (%v)", text, err)
	}

	if _, _, err := openStore(&cfg, dbPath, "", ""); err == nil {
		t.Error("expected error when --db given without --doc")
	}
}

func TestImportMarkdown(t *testing.T) {
	dir := t.TempDir()
	mdPath := filepath.Join(dir, "in.md")
	if err := os.WriteFile(mdPath, []byte("- a\n  - b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := datasource.NewFileStore(filepath.Join(dir, "out.outline"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := importMarkdown(store, mdPath); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	text, err := store.Load()
	if err != nil || text != "a\n\tb" {
		t.Errorf("expected converted outline, got %q (%v)", text, err)
	}
}

func TestExportDocumentUnknownFormat(t *testing.T) {
	store, err := datasource.NewFileStore(filepath.Join(t.TempDir(), "d.outline"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := exportDocument(store, "png"); err == nil {
		t.Error("expected error for unknown format")
	}
}
