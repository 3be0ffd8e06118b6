package price

import (
	"context"
	"fmt"
	"time"

	"coindesk/internal/adapters"
	"coindesk/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fetcher pulls the current price index and stores one price per supported currency.
type Fetcher struct {
	client adapters.PriceClient
	repo   adapters.PriceRepository
	now    func() time.Time
}

// FetchAndPersistAll stores the USD, GBP and EUR prices of the current price
// index in one batch and returns the last stored record (EUR). Nothing is
// stored when the fetch fails.
func (f *Fetcher) FetchAndPersistAll(ctx context.Context) (domain.Price, error) {
	return f.fetchAndPersist(ctx, uuid.NewString())
}

// fetchAndPersist tags every log line with execID so callers can correlate their own logs.
func (f *Fetcher) fetchAndPersist(ctx context.Context, execID string) (domain.Price, error) {
	log := logrus.WithField("exec_id", execID)
	log.Info("Fetching current price index")

	index, err := f.client.GetCurrentPrice(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to fetch price index")
		return domain.Price{}, err
	}

	prices, err := toPrices(index, f.now())
	if err != nil {
		return domain.Price{}, err
	}

	created, err := f.repo.CreateBatch(ctx, prices)
	if err != nil {
		return domain.Price{}, fmt.Errorf("failed to persist fetched prices: %w", err)
	}
	if len(created) == 0 {
		return domain.Price{}, fmt.Errorf("failed to persist fetched prices: nothing stored")
	}

	log.Infof("%d prices were stored", len(created))
	return created[len(created)-1], nil
}

// toPrices maps the index into one price per supported currency, in USD, GBP, EUR order.
func toPrices(index *domain.PriceIndex, now time.Time) ([]domain.Price, error) {
	if index == nil || index.Time == nil {
		return nil, fmt.Errorf("%w: response has no time block", domain.ErrUpstreamFetch)
	}

	currencies := domain.SupportedCurrencies()
	prices := make([]domain.Price, 0, len(currencies))
	for _, currency := range currencies {
		rate, ok := index.Bpi[currency.Code()]
		if !ok {
			return nil, fmt.Errorf("%w: response has no %s rate", domain.ErrUpstreamFetch, currency.Code())
		}

		createdAt, updatedAt := now, now
		prices = append(prices, domain.Price{
			Updated:      index.Time.Updated,
			UpdatedISO:   index.Time.UpdatedISO,
			UpdatedUK:    index.Time.UpdatedUK,
			Disclaimer:   index.Disclaimer,
			ChartName:    index.ChartName,
			CreatedAt:    &createdAt,
			UpdatedAt:    &updatedAt,
			CurrencyType: currency,
			Rate:         rate.Rate,
			RateFloat:    rate.RateFloat,
			CurrencyName: rate.Description,
			ChineseName:  currency.ChineseName(),
		})
	}
	return prices, nil
}

func NewFetcher(client adapters.PriceClient, repo adapters.PriceRepository) *Fetcher {
	return &Fetcher{client: client, repo: repo, now: time.Now}
}
