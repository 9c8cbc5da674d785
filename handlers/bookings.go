package handlers

import (
	"net/http"

	"concierge/database/repository/records"
	"concierge/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingLogHandler serves the persisted booking log.
type BookingLogHandler struct {
	Repo   records.Repository
	Logger *zap.Logger
}

func NewBookingLogHandler(repo records.Repository, logger *zap.Logger) *BookingLogHandler {
	return &BookingLogHandler{Repo: repo, Logger: logger}
}

// List handles GET /api/bookings.
func (h *BookingLogHandler) List(c *gin.Context) {
	bookings, err := h.Repo.List()
	if err != nil {
		h.Logger.Error("failed to read booking log", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to read bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}
