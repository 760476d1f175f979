// Package documents manages the MDX document store: content bodies live in
// the content bucket, metadata rows in the database, and the two are kept in
// sync through this service.
package documents

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/antonbelau/folio/internal/content"
	"github.com/antonbelau/folio/internal/database/documents"
	"github.com/antonbelau/folio/internal/entities"
)

var ErrEmptyKey = errors.New("document key is empty")

// ObjectStore is the slice of the storage client the service needs.
type ObjectStore interface {
	UploadText(ctx context.Context, bucket, key, content string) error
	DownloadText(ctx context.Context, bucket, key string) (string, error)
	RemoveObject(ctx context.Context, bucket, key string) error
	PublicURL(bucket, key string) string
	ContentBucket() string
}

type Service struct {
	repo     *documents.Repository
	store    ObjectStore
	resolver *content.Resolver
	compiled *content.CompiledSet
}

func NewService(repo *documents.Repository, store ObjectStore, resolver *content.Resolver, compiled *content.CompiledSet) *Service {
	return &Service{
		repo:     repo,
		store:    store,
		resolver: resolver,
		compiled: compiled,
	}
}

// Save uploads the body and upserts the metadata row. When the row
// previously pointed at a different storage path, the old object is removed
// so renames do not leak blobs. GC failures are logged, not propagated: the
// new object is already in place and the row is consistent.
func (s *Service) Save(ctx context.Context, key, body string) (*entities.MDXDocument, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrEmptyKey
	}

	bucket := s.store.ContentBucket()
	if err := s.store.UploadText(ctx, bucket, key, body); err != nil {
		return nil, fmt.Errorf("failed to store document %s: %w", key, err)
	}

	prevPath, err := s.repo.Upsert(key, key)
	if err != nil {
		return nil, fmt.Errorf("failed to save document %s: %w", key, err)
	}

	if prevPath != "" && prevPath != key {
		if err := s.store.RemoveObject(ctx, bucket, prevPath); err != nil {
			log.Printf("Failed to remove stale object %s for document %s: %v", prevPath, key, err)
		}
	}

	return s.repo.GetByKey(key)
}

// GetContent resolves a raw reference and fetches the document body.
// Compiled documents win over database rows. Storage failures degrade: the
// returned DocumentContent carries a nil body and the error text.
func (s *Service) GetContent(ctx context.Context, raw string) (*entities.DocumentContent, error) {
	key := s.resolver.ResolveKey(raw)
	if key == "" {
		return nil, ErrEmptyKey
	}

	if s.compiled != nil {
		if body, ok := s.compiled.Get(compiledKey(key)); ok {
			return &entities.DocumentContent{
				MDXDocument: entities.MDXDocument{Key: key},
				Content:     &body,
			}, nil
		}
	}

	doc, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	return s.FetchContent(ctx, doc), nil
}

// FetchContent downloads the body for a metadata row. Never returns an
// error: storage failures leave Content nil and fill ContentError so the
// caller can render a degraded state.
func (s *Service) FetchContent(ctx context.Context, doc *entities.MDXDocument) *entities.DocumentContent {
	bucket := s.store.ContentBucket()
	result := &entities.DocumentContent{
		MDXDocument: *doc,
		PublicURL:   s.store.PublicURL(bucket, doc.StoragePath),
	}

	body, err := s.store.DownloadText(ctx, bucket, doc.StoragePath)
	if err != nil {
		log.Printf("Failed to fetch content for document %s: %v", doc.Key, err)
		result.ContentError = err.Error()
		return result
	}

	result.Content = &body
	return result
}

// ListAvailable returns non-deleted documents whose key is not currently
// referenced as the body of any article or case study. These are the
// documents an admin may attach without stealing another entity's body.
func (s *Service) ListAvailable() ([]entities.MDXDocument, error) {
	docs, err := s.repo.List(false)
	if err != nil {
		return nil, err
	}

	refs, err := s.repo.ReferencedBodyPaths()
	if err != nil {
		return nil, err
	}

	referenced := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if key := s.resolver.ResolveKey(ref); key != "" {
			referenced[key] = struct{}{}
		}
	}

	available := make([]entities.MDXDocument, 0, len(docs))
	for _, doc := range docs {
		if _, taken := referenced[doc.Key]; !taken {
			available = append(available, doc)
		}
	}
	return available, nil
}

// List returns all documents, optionally including soft-deleted ones.
func (s *Service) List(includeDeleted bool) ([]entities.MDXDocument, error) {
	return s.repo.List(includeDeleted)
}

// SoftDelete hides a document from lookups without touching storage.
func (s *Service) SoftDelete(id uint) error {
	return s.repo.SetDeleted(id, true)
}

// Restore brings a soft-deleted document back.
func (s *Service) Restore(id uint) error {
	return s.repo.SetDeleted(id, false)
}

// HardDelete removes the row and purges the storage object. A storage
// failure after the row is gone is logged; the orphan sweep picks it up.
func (s *Service) HardDelete(ctx context.Context, id uint) error {
	doc, err := s.repo.HardDelete(id)
	if err != nil {
		return err
	}

	if err := s.store.RemoveObject(ctx, s.store.ContentBucket(), doc.StoragePath); err != nil {
		log.Printf("Failed to purge object %s for deleted document %s: %v", doc.StoragePath, doc.Key, err)
	}
	return nil
}

// compiledKey maps a resolved key to the compiled set's filename-based key
// (no directories, no extension).
func compiledKey(key string) string {
	base := key
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	return strings.TrimSuffix(base, ".mdx")
}
