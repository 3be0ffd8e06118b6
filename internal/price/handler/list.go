package handler

import (
	"net/http"

	"coindesk/internal/domain"

	"github.com/sirupsen/logrus"
)

// List godoc
// @Summary List prices
// @Description Get all stored prices in storage order
// @Tags Prices
// @Produce json
// @Success 200 {array} domain.Price
// @Failure 500 {object} errorResponse
// @Router /all [post]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	prices, err := h.service.List(r.Context())
	if err != nil {
		msg := "ups, couldn't list prices this time"
		logrus.WithError(err).WithField("handler", "List").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	if prices == nil {
		prices = []domain.Price{}
	}
	writeJSON(w, http.StatusOK, prices)
}
