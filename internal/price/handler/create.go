package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Create godoc
// @Summary Create price
// @Description Store a price record as given; the ID is assigned by storage
// @Tags Prices
// @Accept json
// @Produce json
// @Param price body domain.Price true "Price record"
// @Success 200 {object} domain.Price
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /create [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, msg, ok := decodePrice(w, r)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.service.Create(r.Context(), in)
	if err != nil {
		msg := "ups, couldn't create price this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Create", "currency": in.CurrencyType}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, created)
}
