// Package service contains the application's business workflows, composed
// from repositories, caches and outbound notifications.
package service

import (
	"context"

	"documo/internal/cache"
	"documo/internal/models"
	"documo/internal/repository"
)

// DocumentTypeService serves the document-type catalog through an in-memory
// TTL cache. Every mutation invalidates the cache before returning.
type DocumentTypeService struct {
	repo  repository.DocumentTypeRepository
	cache *cache.DocumentTypes
}

func NewDocumentTypeService(repo repository.DocumentTypeRepository, c *cache.DocumentTypes) *DocumentTypeService {
	return &DocumentTypeService{repo: repo, cache: c}
}

// List returns the catalog, from cache when fresh.
func (s *DocumentTypeService) List(ctx context.Context) ([]models.DocumentType, error) {
	if types, ok := s.cache.Get(); ok {
		return types, nil
	}

	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(types)
	return types, nil
}

// Get returns one catalog entry, bypassing the cache.
func (s *DocumentTypeService) Get(ctx context.Context, id uint) (*models.DocumentType, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a catalog entry and drops the cached catalog.
func (s *DocumentTypeService) Create(ctx context.Context, dt *models.DocumentType) (*models.DocumentType, error) {
	created, err := s.repo.Create(ctx, dt)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate()
	return created, nil
}

// Update rewrites an entry's label/description and drops the cached catalog.
func (s *DocumentTypeService) Update(ctx context.Context, dt *models.DocumentType) (*models.DocumentType, error) {
	updated, err := s.repo.Update(ctx, dt)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate()
	return updated, nil
}
