package badgerdb

import (
	"context"
	"testing"
	"time"

	"coindesk/internal/domain"

	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) *PriceRepository {
	t.Helper()

	db, err := Open("")
	require.NoError(t, err)

	repo, err := NewPriceRepository(db)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = repo.Close()
		_ = db.Close()
	})
	return repo
}

func usdPrice() domain.Price {
	now := time.Date(2024, 9, 2, 7, 7, 20, 0, time.UTC)
	rate := 57756.2984
	return domain.Price{
		Updated:      "Sep 2, 2024 07:07:20 UTC",
		UpdatedISO:   "2024-09-02T07:07:20+00:00",
		UpdatedUK:    "Sep 2, 2024 at 08:07 BST",
		Disclaimer:   "just for test",
		ChartName:    "Bitcoin",
		CreatedAt:    &now,
		UpdatedAt:    &now,
		CurrencyType: domain.USD,
		Rate:         "57,756.298",
		RateFloat:    &rate,
		CurrencyName: "United States Dollar",
		ChineseName:  "美元",
	}
}

func TestPriceRepository_CreateAndGetByID(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, usdPrice())
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, domain.USD, got.CurrencyType)
	require.Equal(t, "57,756.298", got.Rate)
	require.InDelta(t, 57756.2984, *got.RateFloat, 1e-9)
	require.Equal(t, "美元", got.ChineseName)
	require.True(t, got.CreatedAt.Equal(*usdPrice().CreatedAt))
}

func TestPriceRepository_Create_IgnoresGivenID(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, domain.Price{ID: 500})
	require.NoError(t, err)
	second, err := repo.Create(ctx, domain.Price{ID: 500})
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
	require.NotEqual(t, int64(500), first.ID)
}

func TestPriceRepository_GetByID_NotFound(t *testing.T) {
	repo := setupRepository(t)

	_, err := repo.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrPriceNotFound)
}

func TestPriceRepository_CreateBatch(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	gbp := usdPrice()
	gbp.CurrencyType = domain.GBP
	eur := usdPrice()
	eur.CurrencyType = domain.EUR

	created, err := repo.CreateBatch(ctx, []domain.Price{usdPrice(), gbp, eur})
	require.NoError(t, err)
	require.Len(t, created, 3)
	require.Equal(t, []int64{1, 2, 3}, []int64{created[0].ID, created[1].ID, created[2].ID})

	prices, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, created, prices)
}

func TestPriceRepository_CreateBatch_EmptyNoop(t *testing.T) {
	repo := setupRepository(t)

	created, err := repo.CreateBatch(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, created)
}

func TestPriceRepository_Update_FullReplace(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, usdPrice())
	require.NoError(t, err)

	rate := 58000.0
	_, err = repo.Update(ctx, domain.Price{ID: created.ID, Rate: "58,000.00", RateFloat: &rate})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "58,000.00", got.Rate)
	require.InDelta(t, 58000.0, *got.RateFloat, 1e-9)
	require.Empty(t, got.Disclaimer)
	require.True(t, got.CurrencyType.IsZero())
	require.Nil(t, got.CreatedAt)
}

func TestPriceRepository_Update_NotFound(t *testing.T) {
	repo := setupRepository(t)

	_, err := repo.Update(context.Background(), domain.Price{ID: 7})
	require.ErrorIs(t, err, domain.ErrPriceNotFound)

	prices, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, prices)
}

func TestPriceRepository_Delete_Idempotent(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, usdPrice())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrPriceNotFound)
}

func TestPriceRepository_List_InsertionOrder(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	prices, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, prices)

	// more than 255 records so that ids span several key bytes
	for i := 0; i < 300; i++ {
		p := usdPrice()
		p.CurrencyType = domain.SupportedCurrencies()[i%3]
		_, err = repo.Create(ctx, p)
		require.NoError(t, err)
	}

	prices, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, prices, 300)
	for i, p := range prices {
		require.Equal(t, int64(i+1), p.ID)
		require.Equal(t, domain.SupportedCurrencies()[i%3], p.CurrencyType)
	}
}
