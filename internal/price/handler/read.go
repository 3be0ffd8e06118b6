package handler

import (
	"errors"
	"net/http"

	"coindesk/internal/domain"

	"github.com/sirupsen/logrus"
)

// Read godoc
// @Summary Read price
// @Description Get a stored price record by ID
// @Tags Prices
// @Produce json
// @Param id path int true "Price ID"
// @Success 200 {object} domain.Price
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /read/{id} [post]
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid price ID format")
		return
	}

	price, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPriceNotFound) {
			writeError(w, http.StatusNotFound, "price not found")
			return
		}
		msg := "ups, couldn't read price this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Read", "id": id}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, price)
}
