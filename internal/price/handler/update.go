package handler

import (
	"errors"
	"net/http"

	"coindesk/internal/domain"

	"github.com/sirupsen/logrus"
)

// Update godoc
// @Summary Update price
// @Description Replace every field of a stored price except its ID. Fields missing from the body are cleared.
// @Tags Prices
// @Accept json
// @Produce json
// @Param id path int true "Price ID"
// @Param price body domain.Price true "Price record"
// @Success 200 {object} domain.Price
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /update/{id} [post]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid price ID format")
		return
	}

	in, msg, ok := decodePrice(w, r)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrPriceNotFound) {
			writeError(w, http.StatusNotFound, "price not found")
			return
		}
		msg := "ups, couldn't update price this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Update", "id": id}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
