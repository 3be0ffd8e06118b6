package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"coindesk/internal/domain"

	"github.com/sirupsen/logrus"
)

type CoinDeskClient struct {
	http *http.Client
	url  string
}

func (c *CoinDeskClient) GetCurrentPrice(ctx context.Context) (*domain.PriceIndex, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", domain.ErrUpstreamFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	logrus.Debugf("Requesting price index from %s", c.url)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", domain.ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", domain.ErrUpstreamFetch, resp.StatusCode, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", domain.ErrUpstreamFetch, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty response body", domain.ErrUpstreamFetch)
	}

	var body domain.PriceIndex
	if err = json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", domain.ErrUpstreamFetch, err)
	}
	if body.Time == nil {
		return nil, fmt.Errorf("%w: response has no time block", domain.ErrUpstreamFetch)
	}
	for _, currency := range domain.SupportedCurrencies() {
		rate, ok := body.Bpi[currency.Code()]
		if !ok {
			return nil, fmt.Errorf("%w: response has no %s rate", domain.ErrUpstreamFetch, currency.Code())
		}
		if rate.Rate == "" || rate.RateFloat == nil {
			return nil, fmt.Errorf("%w: %s rate is incomplete", domain.ErrUpstreamFetch, currency.Code())
		}
	}

	return &body, nil
}

func NewCoinDeskClient(httpClient *http.Client, url string) *CoinDeskClient {
	return &CoinDeskClient{http: httpClient, url: url}
}
