package price

import (
	"context"
	"sync"

	"coindesk/internal/adapters"
	"coindesk/internal/domain"
)

// Service is the CRUD surface over stored prices. It performs no validation:
// records are stored as given.
type Service struct {
	repo  adapters.PriceRepository
	cache adapters.PriceCache
	// -----
	mu         sync.Mutex
	generation uint64 // bumped on every invalidation; a read fills the cache only if it is unchanged
}

func (s *Service) Create(ctx context.Context, price domain.Price) (domain.Price, error) {
	price.ID = 0
	return s.repo.Create(ctx, price)
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Price, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cached, nil
	}
	gen := s.currentGeneration()
	price, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Price{}, err
	}

	s.mu.Lock()
	if s.generation == gen {
		s.cache.Set(price)
	}
	s.mu.Unlock()
	return price, nil
}

// Update replaces every field of the stored record except its ID with the
// fields of price. Fields left empty in price are cleared.
func (s *Service) Update(ctx context.Context, id int64, price domain.Price) (domain.Price, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Price{}, err
	}
	price.ID = existing.ID

	updated, err := s.repo.Update(ctx, price)
	s.invalidate(id)
	if err != nil {
		return domain.Price{}, err
	}
	return updated, nil
}

// Delete is idempotent: deleting an unknown ID succeeds.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	s.invalidate(id)
	return err
}

func (s *Service) List(ctx context.Context) ([]domain.Price, error) {
	return s.repo.List(ctx)
}

func (s *Service) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// invalidate drops id from the cache and stops reads that started before it
// from caching what they loaded.
func (s *Service) invalidate(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.cache.Invalidate(id)
}

func NewService(repo adapters.PriceRepository, cache adapters.PriceCache) *Service {
	return &Service{repo: repo, cache: cache}
}
