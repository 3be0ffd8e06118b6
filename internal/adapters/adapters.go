package adapters

import (
	"context"

	"coindesk/internal/domain"
)

type PriceClient interface {
	GetCurrentPrice(ctx context.Context) (*domain.PriceIndex, error)
}

type PriceRepository interface {
	Create(ctx context.Context, price domain.Price) (domain.Price, error)
	CreateBatch(ctx context.Context, prices []domain.Price) ([]domain.Price, error)
	GetByID(ctx context.Context, id int64) (domain.Price, error)
	Update(ctx context.Context, price domain.Price) (domain.Price, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Price, error)
}

type PriceCache interface {
	Get(id int64) (domain.Price, bool)
	Set(price domain.Price)
	Invalidate(id int64)
}
