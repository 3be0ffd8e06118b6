package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Delete godoc
// @Summary Delete price
// @Description Delete a stored price; deleting an unknown ID succeeds
// @Tags Prices
// @Param id path int true "Price ID"
// @Success 200
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /delete/{id} [post]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid price ID format")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		msg := "ups, couldn't delete price this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Delete", "id": id}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	w.WriteHeader(http.StatusOK)
}
