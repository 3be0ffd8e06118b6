package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"coindesk/internal/domain"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 64 << 10

type priceService interface {
	Create(ctx context.Context, price domain.Price) (domain.Price, error)
	GetByID(ctx context.Context, id int64) (domain.Price, error)
	Update(ctx context.Context, id int64, price domain.Price) (domain.Price, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Price, error)
}

type priceFetcher interface {
	FetchAndPersistAll(ctx context.Context) (domain.Price, error)
}

type Handler struct {
	service priceService
	fetcher priceFetcher
}

func NewPriceHandler(service priceService, fetcher priceFetcher) *Handler {
	return &Handler{service: service, fetcher: fetcher}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodePrice reads a price body. The returned message is safe to show to the client.
func decodePrice(w http.ResponseWriter, r *http.Request) (domain.Price, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var price domain.Price
	if err := json.NewDecoder(r.Body).Decode(&price); err != nil {
		if errors.Is(err, domain.ErrUnrecognizedCurrency) {
			return domain.Price{}, err.Error(), false
		}
		return domain.Price{}, "invalid request body", false
	}
	return price, "", true
}
