package importers

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/antonbelau/folio/internal/entities"
)

// DocumentSaver is the slice of the document service the importer needs.
type DocumentSaver interface {
	Save(ctx context.Context, key, body string) (*entities.MDXDocument, error)
}

// DocImporter bulk-loads MDX files from a directory into the document
// store. The document key is the file path relative to the import root,
// with forward slashes.
type DocImporter struct {
	docs DocumentSaver
}

func NewDocImporter(docs DocumentSaver) *DocImporter {
	return &DocImporter{docs: docs}
}

// ImportDir walks dir recursively and saves every .mdx and .md file. A
// file that cannot be read or saved is counted and skipped.
func (i *DocImporter) ImportDir(ctx context.Context, dir string) (Result, error) {
	var result Result

	root, err := filepath.Abs(dir)
	if err != nil {
		return result, fmt.Errorf("failed to resolve import directory: %w", err)
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".mdx" && ext != ".md" {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)

		body, err := os.ReadFile(path)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", key, err))
			return nil
		}

		if _, err := i.docs.Save(ctx, key, string(body)); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", key, err))
			return nil
		}

		result.Processed++
		return nil
	})
	if walkErr != nil {
		return result, fmt.Errorf("failed to walk %s: %w", root, walkErr)
	}

	return result, nil
}
