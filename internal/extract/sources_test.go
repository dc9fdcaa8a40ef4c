package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestReadSources_MixedFormats(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "b-session.yaml", "markers:\n  - category: rule\n    text: always validate\n")
	writeSource(t, dir, "a-session.json", `{"markers": [{"category": "resolution", "text": "fixed it"}]}`)
	writeSource(t, dir, "notes.txt", "not a claim source")

	docs, skipped, err := ReadSources(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("expected no skipped sources, got %v", skipped)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	// Lexicographic order keeps runs deterministic
	if filepath.Base(docs[0].Path) != "a-session.json" {
		t.Errorf("expected a-session.json first, got %s", docs[0].Path)
	}
	if filepath.Base(docs[1].Path) != "b-session.yaml" {
		t.Errorf("expected b-session.yaml second, got %s", docs[1].Path)
	}
}

func TestReadSources_MalformedSkippedNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "bad.json", `{"markers": [`)
	writeSource(t, dir, "good.json", `{"markers": []}`)

	docs, skipped, err := ReadSources(dir)
	if err != nil {
		t.Fatalf("malformed document must not abort the run: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if len(skipped) != 1 || filepath.Base(skipped[0]) != "bad.json" {
		t.Errorf("expected bad.json skipped, got %v", skipped)
	}
}

func TestReadSources_MissingDirIsFatal(t *testing.T) {
	_, _, err := ReadSources(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected error for missing sources directory")
	}
}

func TestReadSources_SubdirectoriesIgnored(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "nested.json"), 0755); err != nil {
		t.Fatal(err)
	}
	writeSource(t, dir, "flat.json", `{"markers": []}`)

	docs, _, err := ReadSources(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
}
