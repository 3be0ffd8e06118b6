package price

import (
	"context"

	"coindesk/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- Testify mocks ---

type MockPriceRepository struct{ mock.Mock }

func (m *MockPriceRepository) Create(ctx context.Context, price domain.Price) (domain.Price, error) {
	args := m.Called(ctx, price)
	p, _ := args.Get(0).(domain.Price)
	return p, args.Error(1)
}

func (m *MockPriceRepository) CreateBatch(ctx context.Context, prices []domain.Price) ([]domain.Price, error) {
	args := m.Called(ctx, prices)
	if fn, ok := args.Get(0).(func(context.Context, []domain.Price) []domain.Price); ok {
		return fn(ctx, prices), args.Error(1)
	}
	created, _ := args.Get(0).([]domain.Price)
	return created, args.Error(1)
}

func (m *MockPriceRepository) GetByID(ctx context.Context, id int64) (domain.Price, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(domain.Price)
	return p, args.Error(1)
}

func (m *MockPriceRepository) Update(ctx context.Context, price domain.Price) (domain.Price, error) {
	args := m.Called(ctx, price)
	p, _ := args.Get(0).(domain.Price)
	return p, args.Error(1)
}

func (m *MockPriceRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPriceRepository) List(ctx context.Context) ([]domain.Price, error) {
	args := m.Called(ctx)
	prices, _ := args.Get(0).([]domain.Price)
	return prices, args.Error(1)
}

type MockPriceCache struct{ mock.Mock }

func (m *MockPriceCache) Get(id int64) (domain.Price, bool) {
	args := m.Called(id)
	p, _ := args.Get(0).(domain.Price)
	return p, args.Bool(1)
}

func (m *MockPriceCache) Set(price domain.Price) {
	m.Called(price)
}

func (m *MockPriceCache) Invalidate(id int64) {
	m.Called(id)
}

type MockPriceClient struct{ mock.Mock }

func (m *MockPriceClient) GetCurrentPrice(ctx context.Context) (*domain.PriceIndex, error) {
	args := m.Called(ctx)
	index, _ := args.Get(0).(*domain.PriceIndex)
	return index, args.Error(1)
}
