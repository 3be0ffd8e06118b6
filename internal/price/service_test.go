package price

import (
	"context"
	"errors"
	"testing"

	"coindesk/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Create ---

func TestService_Create_PersistsAsGivenWithoutID(t *testing.T) {
	repo := new(MockPriceRepository)
	svc := NewService(repo, new(MockPriceCache))

	in := domain.Price{ID: 99, CurrencyType: domain.GBP, Rate: "1"}
	stored := domain.Price{ID: 1, CurrencyType: domain.GBP, Rate: "1"}
	repo.On("Create", mock.Anything, domain.Price{CurrencyType: domain.GBP, Rate: "1"}).Return(stored, nil).Once()

	got, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, stored, got)
	repo.AssertExpectations(t)
}

func TestService_Create_RepoError(t *testing.T) {
	repo := new(MockPriceRepository)
	svc := NewService(repo, new(MockPriceCache))

	repo.On("Create", mock.Anything, mock.Anything).Return(domain.Price{}, errors.New("db down")).Once()

	_, err := svc.Create(context.Background(), domain.Price{})
	require.EqualError(t, err, "db down")
}

// --- GetByID ---

func TestService_GetByID_CacheHit_SkipsRepo(t *testing.T) {
	repo := new(MockPriceRepository)
	cache := new(MockPriceCache)
	svc := NewService(repo, cache)

	cached := domain.Price{ID: 3, CurrencyType: domain.EUR}
	cache.On("Get", int64(3)).Return(cached, true).Once()

	got, err := svc.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, cached, got)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestService_GetByID_CacheMiss_LoadsAndCaches(t *testing.T) {
	repo := new(MockPriceRepository)
	cache := new(MockPriceCache)
	svc := NewService(repo, cache)

	stored := domain.Price{ID: 3, CurrencyType: domain.EUR}
	cache.On("Get", int64(3)).Return(domain.Price{}, false).Once()
	repo.On("GetByID", mock.Anything, int64(3)).Return(stored, nil).Once()
	cache.On("Set", stored).Once()

	got, err := svc.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, stored, got)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_GetByID_NotFound_NotCached(t *testing.T) {
	repo := new(MockPriceRepository)
	cache := new(MockPriceCache)
	svc := NewService(repo, cache)

	cache.On("Get", int64(404)).Return(domain.Price{}, false).Once()
	repo.On("GetByID", mock.Anything, int64(404)).Return(domain.Price{}, domain.ErrPriceNotFound).Once()

	_, err := svc.GetByID(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrPriceNotFound)
	cache.AssertNotCalled(t, "Set", mock.Anything)
}

func TestService_GetByID_DeleteDuringLoad_NotCached(t *testing.T) {
	repo := new(MockPriceRepository)
	cache := new(MockPriceCache)
	svc := NewService(repo, cache)
	ctx := context.Background()

	loaded := domain.Price{ID: 3, CurrencyType: domain.EUR}
	cache.On("Get", int64(3)).Return(domain.Price{}, false).Once()
	repo.On("Delete", mock.Anything, int64(3)).Return(nil).Once()
	cache.On("Invalidate", int64(3)).Once()
	repo.On("GetByID", mock.Anything, int64(3)).
		Run(func(mock.Arguments) { require.NoError(t, svc.Delete(ctx, 3)) }).
		Return(loaded, nil).Once()

	got, err := svc.GetByID(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, loaded, got)
	cache.AssertNotCalled(t, "Set", mock.Anything)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_GetByID_UpdateDuringLoad_NotCached(t *testing.T) {
	repo := new(MockPriceRepository)
	cache := new(MockPriceCache)
	svc := NewService(repo, cache)
	ctx := context.Background()

	old := domain.Price{ID: 3, Rate: "1"}
	replaced := domain.Price{ID: 3, Rate: "2"}
	cache.On("Get", int64(3)).Return(domain.Price{}, false).Once()
	repo.On("GetByID", mock.Anything, int64(3)).
		Run(func(mock.Arguments) {
			_, err := svc.Update(ctx, 3, domain.Price{Rate: "2"})
			require.NoError(t, err)
		}).
		Return(old, nil).Once()
	// the update's own existence check
	repo.On("GetByID", mock.Anything, int64(3)).Return(old, nil).Once()
	repo.On("Update", mock.Anything, replaced).Return(replaced, nil).Once()
	cache.On("Invalidate", int64(3)).Once()

	_, err := svc.GetByID(ctx, 3)
	require.NoError(t, err)
	cache.AssertNotCalled(t, "Set", mock.Anything)
	repo.AssertExpectations(t)
}

// --- Update ---

func TestService_Update_KeepsIDAndInvalidatesCache(t *testing.T) {
	repo := new(MockPriceRepository)
	cache := new(MockPriceCache)
	svc := NewService(repo, cache)

	existing := domain.Price{ID: 5, CurrencyType: domain.USD, Rate: "57,756.298", Disclaimer: "just for test"}
	in := domain.Price{ID: 777, Rate: "58,000.00"}
	want := domain.Price{ID: 5, Rate: "58,000.00"}

	repo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil).Once()
	repo.On("Update", mock.Anything, want).Return(want, nil).Once()
	cache.On("Invalidate", int64(5)).Once()

	got, err := svc.Update(context.Background(), 5, in)
	require.NoError(t, err)
	require.Equal(t, want, got)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Update_NotFound(t *testing.T) {
	repo := new(MockPriceRepository)
	cache := new(MockPriceCache)
	svc := NewService(repo, cache)

	repo.On("GetByID", mock.Anything, int64(5)).Return(domain.Price{}, domain.ErrPriceNotFound).Once()

	_, err := svc.Update(context.Background(), 5, domain.Price{})
	require.ErrorIs(t, err, domain.ErrPriceNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestService_Update_RepoError_StillInvalidates(t *testing.T) {
	repo := new(MockPriceRepository)
	cache := new(MockPriceCache)
	svc := NewService(repo, cache)

	repo.On("GetByID", mock.Anything, int64(5)).Return(domain.Price{ID: 5}, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(domain.Price{}, errors.New("write failed")).Once()
	cache.On("Invalidate", int64(5)).Once()

	_, err := svc.Update(context.Background(), 5, domain.Price{})
	require.EqualError(t, err, "write failed")
	cache.AssertExpectations(t)
}

// --- Delete ---

func TestService_Delete_InvalidatesCache(t *testing.T) {
	repo := new(MockPriceRepository)
	cache := new(MockPriceCache)
	svc := NewService(repo, cache)

	repo.On("Delete", mock.Anything, int64(8)).Return(nil).Twice()
	cache.On("Invalidate", int64(8)).Twice()

	require.NoError(t, svc.Delete(context.Background(), 8))
	require.NoError(t, svc.Delete(context.Background(), 8))
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

// --- List ---

func TestService_List_PassesThrough(t *testing.T) {
	repo := new(MockPriceRepository)
	svc := NewService(repo, new(MockPriceCache))

	prices := []domain.Price{{ID: 1, CurrencyType: domain.USD}, {ID: 2, CurrencyType: domain.GBP}}
	repo.On("List", mock.Anything).Return(prices, nil).Once()

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, prices, got)
}
