package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pratham-associates/listings/internal/logger"
	"github.com/pratham-associates/listings/internal/models"
	"github.com/pratham-associates/listings/internal/repository"
)

// Service-level errors
var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrEmptyPatch       = errors.New("update contains no fields")
)

// PropertyService defines the catalog read and admin write operations.
type PropertyService interface {
	// ListAvailable returns every available listing in store order.
	ListAvailable(ctx context.Context) ([]models.Property, error)

	// ListFeatured returns the available featured listings in store order.
	ListFeatured(ctx context.Context) ([]models.Property, error)

	// Search returns the available listings matching every provided filter.
	Search(ctx context.Context, filters models.PropertyFilters) ([]models.Property, error)

	// GetProperty returns one listing.
	// Returns ErrPropertyNotFound if it does not exist or is not available.
	GetProperty(ctx context.Context, id int64) (*models.Property, error)

	// CreateProperty stores a new listing with defaults applied.
	CreateProperty(ctx context.Context, in models.PropertyInput) (*models.Property, error)

	// UpdateProperty merges patch onto a listing whatever its availability.
	// Returns ErrEmptyPatch for a patch with no fields and ErrPropertyNotFound
	// if the listing does not exist.
	UpdateProperty(ctx context.Context, id int64, patch models.PropertyPatch) (*models.Property, error)
}

type propertyService struct {
	repo repository.PropertyRepository
	log  *logger.Logger
}

// NewPropertyService creates a new instance of PropertyService.
func NewPropertyService(repo repository.PropertyRepository, log *logger.Logger) PropertyService {
	return &propertyService{
		repo: repo,
		log:  log,
	}
}

func (s *propertyService) ListAvailable(ctx context.Context) ([]models.Property, error) {
	props, err := s.repo.ListAvailable(ctx)
	if err != nil {
		s.log.Error("Failed to list available properties", err, nil)
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	s.log.Debug("Listed available properties", map[string]interface{}{
		"count": len(props),
	})
	return props, nil
}

func (s *propertyService) ListFeatured(ctx context.Context) ([]models.Property, error) {
	props, err := s.repo.ListFeatured(ctx)
	if err != nil {
		s.log.Error("Failed to list featured properties", err, nil)
		return nil, fmt.Errorf("failed to list featured properties: %w", err)
	}

	s.log.Debug("Listed featured properties", map[string]interface{}{
		"count": len(props),
	})
	return props, nil
}

func (s *propertyService) Search(ctx context.Context, filters models.PropertyFilters) ([]models.Property, error) {
	props, err := s.repo.Search(ctx, filters)
	if err != nil {
		s.log.Error("Failed to search properties", err, map[string]interface{}{
			"filters": filters,
		})
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}

	s.log.Info("Property search completed", map[string]interface{}{
		"filters": filters,
		"count":   len(props),
	})
	return props, nil
}

func (s *propertyService) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to query property", err, map[string]interface{}{
			"property_id": id,
		})
		return nil, fmt.Errorf("failed to query property: %w", err)
	}

	// Unavailable listings are hidden from the public catalog.
	if p == nil || !p.Available {
		s.log.Debug("Property not found", map[string]interface{}{
			"property_id": id,
		})
		return nil, ErrPropertyNotFound
	}

	return p, nil
}

func (s *propertyService) CreateProperty(ctx context.Context, in models.PropertyInput) (*models.Property, error) {
	p, err := s.repo.Create(ctx, in)
	if err != nil {
		s.log.Error("Failed to create property", err, map[string]interface{}{
			"title": in.Title,
		})
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.log.Info("Property created", map[string]interface{}{
		"property_id": p.ID,
		"title":       p.Title,
	})
	return p, nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, id int64, patch models.PropertyPatch) (*models.Property, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	p, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.log.Error("Failed to update property", err, map[string]interface{}{
			"property_id": id,
		})
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	if p == nil {
		return nil, ErrPropertyNotFound
	}

	s.log.Info("Property updated", map[string]interface{}{
		"property_id": id,
		"available":   p.Available,
	})
	return p, nil
}
