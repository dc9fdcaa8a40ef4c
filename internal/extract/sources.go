package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is one upstream claim-source document, decoded but not yet
// normalized. Root holds the arbitrary producer-specific shape.
type Document struct {
	Path string
	Root any
}

// ReadSources reads every claim-source document under dir.
// Unreadable or unparseable documents are skipped and reported in the
// second return value; a single bad producer never aborts the run.
// The only error case is failing to enumerate the directory itself.
func ReadSources(dir string) ([]Document, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read sources dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var docs []Document
	var skipped []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		doc, err := readSource(path)
		if err != nil {
			skipped = append(skipped, path)
			continue
		}
		docs = append(docs, doc)
	}

	return docs, skipped, nil
}

// readSource decodes a single document based on its extension
func readSource(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read source: %w", err)
	}

	var root any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &root); err != nil {
			return Document{}, fmt.Errorf("decode json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return Document{}, fmt.Errorf("decode yaml: %w", err)
		}
	}

	return Document{Path: path, Root: root}, nil
}
