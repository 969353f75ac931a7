package repository

import (
	"context"
	"sync"

	"github.com/pratham-associates/listings/internal/config"
	"github.com/pratham-associates/listings/internal/models"
)

// memoryState holds every collection of the in-process store behind one lock,
// so each operation observes and produces a consistent snapshot.
// Records are never deleted, so id n lives at index n-1.
type memoryState struct {
	mu              sync.RWMutex
	properties      []models.Property
	inquiries       []models.Inquiry
	recommendations []models.AiRecommendation
	users           []models.User
}

// NewMemoryStore returns an empty in-process store. Data is lost on restart.
func NewMemoryStore() *Store {
	s := &memoryState{}
	return &Store{
		Properties:      &memoryPropertyRepository{s: s},
		Inquiries:       &memoryInquiryRepository{s: s},
		Recommendations: &memoryRecommendationRepository{s: s},
		Users:           &memoryUserRepository{s: s},
		driver:          config.DriverMemory,
	}
}

type memoryPropertyRepository struct {
	s *memoryState
}

func (r *memoryPropertyRepository) Create(ctx context.Context, in models.PropertyInput) (*models.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := models.NewProperty(int64(len(r.s.properties)+1), in)
	r.s.properties = append(r.s.properties, p)

	out := p.Clone()
	return &out, nil
}

func (r *memoryPropertyRepository) FindByID(ctx context.Context, id int64) (*models.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if id < 1 || id > int64(len(r.s.properties)) {
		return nil, nil
	}
	out := r.s.properties[id-1].Clone()
	return &out, nil
}

func (r *memoryPropertyRepository) ListAvailable(ctx context.Context) ([]models.Property, error) {
	return r.Search(ctx, models.PropertyFilters{})
}

func (r *memoryPropertyRepository) ListFeatured(ctx context.Context) ([]models.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Property, 0)
	for _, p := range r.s.properties {
		if p.Available && p.Featured {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (r *memoryPropertyRepository) Search(ctx context.Context, filters models.PropertyFilters) ([]models.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	match := filters.Matcher()
	out := make([]models.Property, 0)
	for _, p := range r.s.properties {
		if match(p) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (r *memoryPropertyRepository) Update(ctx context.Context, id int64, patch models.PropertyPatch) (*models.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if id < 1 || id > int64(len(r.s.properties)) {
		return nil, nil
	}
	p := &r.s.properties[id-1]
	patch.Apply(p)

	out := p.Clone()
	return &out, nil
}

func (r *memoryPropertyRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.properties), nil
}

type memoryInquiryRepository struct {
	s *memoryState
}

func (r *memoryInquiryRepository) Create(ctx context.Context, in models.InquiryInput) (*models.Inquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inq := models.NewInquiry(int64(len(r.s.inquiries)+1), in)
	r.s.inquiries = append(r.s.inquiries, inq)

	out := inq.Clone()
	return &out, nil
}

func (r *memoryInquiryRepository) List(ctx context.Context) ([]models.Inquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Inquiry, 0, len(r.s.inquiries))
	for _, inq := range r.s.inquiries {
		out = append(out, inq.Clone())
	}
	return out, nil
}

type memoryRecommendationRepository struct {
	s *memoryState
}

func (r *memoryRecommendationRepository) Create(ctx context.Context, in models.AiRecommendationInput) (*models.AiRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec := models.NewAiRecommendation(int64(len(r.s.recommendations)+1), in)
	r.s.recommendations = append(r.s.recommendations, rec)

	out := rec.Clone()
	return &out, nil
}

func (r *memoryRecommendationRepository) ListByUser(ctx context.Context, userID string) ([]models.AiRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.AiRecommendation, 0)
	for _, rec := range r.s.recommendations {
		if rec.UserID == userID {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

type memoryUserRepository struct {
	s *memoryState
}

func (r *memoryUserRepository) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u := models.User{ID: int64(len(r.s.users) + 1), Username: in.Username, Password: in.Password}
	r.s.users = append(r.s.users, u)

	out := u
	return &out, nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if id < 1 || id > int64(len(r.s.users)) {
		return nil, nil
	}
	out := r.s.users[id-1]
	return &out, nil
}

func (r *memoryUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}
