package handler

import (
	"errors"
	"net/http"

	"coindesk/internal/domain"

	"github.com/sirupsen/logrus"
)

// Fetch godoc
// @Summary Fetch current prices
// @Description Fetch the price index and store one price per currency; returns the last stored record (EUR)
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.Price
// @Failure 502 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /fetch [post]
func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	last, err := h.fetcher.FetchAndPersistAll(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamFetch) {
			logrus.WithError(err).WithField("handler", "Fetch").Warn("price index api is unavailable")
			writeError(w, http.StatusBadGateway, "price index api is unavailable")
			return
		}
		msg := "ups, couldn't store fetched prices this time"
		logrus.WithError(err).WithField("handler", "Fetch").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, last)
}
