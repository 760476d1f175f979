package content

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// CompiledSet holds the documents baked into the site at build time. They
// are loaded once at startup from the compiled-content directory and take
// precedence over database documents during key lookup.
type CompiledSet struct {
	docs map[string]string
}

// LoadCompiledSet reads every .mdx file under dir (non-recursive, matching
// how the build pipeline lays the directory out). The filename without its
// extension is the document key. A missing or empty directory yields an
// empty set, not an error: most deployments carry no compiled documents.
func LoadCompiledSet(dir string) (*CompiledSet, error) {
	set := &CompiledSet{docs: make(map[string]string)}
	if dir == "" {
		return set, nil
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return set, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.mdx"))
	if err != nil {
		return nil, fmt.Errorf("failed to list compiled documents: %w", err)
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("Skipping compiled document %s: %v", file, err)
			continue
		}
		key := strings.TrimSuffix(filepath.Base(file), ".mdx")
		set.docs[key] = string(data)
	}

	if len(set.docs) > 0 {
		log.Printf("Loaded %d compiled documents from %s", len(set.docs), dir)
	}
	return set, nil
}

// Get returns the compiled document body for key, if present.
func (set *CompiledSet) Get(key string) (string, bool) {
	body, ok := set.docs[key]
	return body, ok
}

// Keys returns all compiled document keys.
func (set *CompiledSet) Keys() []string {
	keys := make([]string, 0, len(set.docs))
	for key := range set.docs {
		keys = append(keys, key)
	}
	return keys
}
