package repository

import (
	"context"

	"github.com/pratham-associates/listings/internal/models"
)

// PropertyRepository defines data access for listings.
type PropertyRepository interface {
	// Create assigns the next identifier, fills defaults and stores the listing.
	Create(ctx context.Context, in models.PropertyInput) (*models.Property, error)

	// FindByID returns the listing whatever its availability.
	// Returns nil, nil if no listing has that id.
	FindByID(ctx context.Context, id int64) (*models.Property, error)

	// ListAvailable returns every available listing in insertion order.
	ListAvailable(ctx context.Context) ([]models.Property, error)

	// ListFeatured returns the available, featured listings in insertion order.
	ListFeatured(ctx context.Context) ([]models.Property, error)

	// Search returns the available listings matching every provided filter,
	// in insertion order. Never nil.
	Search(ctx context.Context, filters models.PropertyFilters) ([]models.Property, error)

	// Update merges the provided fields onto the stored listing.
	// Returns nil, nil if no listing has that id.
	Update(ctx context.Context, id int64, patch models.PropertyPatch) (*models.Property, error)

	// Count returns the number of stored listings, available or not.
	Count(ctx context.Context) (int, error)
}

// InquiryRepository defines data access for contact-form submissions.
type InquiryRepository interface {
	Create(ctx context.Context, in models.InquiryInput) (*models.Inquiry, error)
	List(ctx context.Context) ([]models.Inquiry, error)
}

// RecommendationRepository defines data access for the recommendation audit log.
type RecommendationRepository interface {
	Create(ctx context.Context, in models.AiRecommendationInput) (*models.AiRecommendation, error)
	ListByUser(ctx context.Context, userID string) ([]models.AiRecommendation, error)
}

// UserRepository defines data access for user placeholders.
type UserRepository interface {
	Create(ctx context.Context, in models.UserInput) (*models.User, error)
	// FindByID returns nil, nil when absent.
	FindByID(ctx context.Context, id int64) (*models.User, error)
	// FindByUsername returns the earliest user with that name, or nil, nil.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// Store bundles the repositories of one backend.
type Store struct {
	Properties      PropertyRepository
	Inquiries       InquiryRepository
	Recommendations RecommendationRepository
	Users           UserRepository

	driver  string
	ping    func(ctx context.Context) error
	migrate func(ctx context.Context) error
	close   func() error
}

// Driver names the backend, e.g. "memory" or "postgres".
func (s *Store) Driver() string {
	return s.driver
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Migrate creates the tables the store needs if they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	if s.migrate == nil {
		return nil
	}
	return s.migrate(ctx)
}

// Close releases the backend's resources.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
