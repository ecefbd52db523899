package get_all_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/LocalBiz-BookingService/internal/api/handlers"
	"github.com/m04kA/LocalBiz-BookingService/internal/service/bookings"
	"github.com/m04kA/LocalBiz-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidType = "некорректный тип бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings?type=table
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.GetAllBookingsRequest{}
	if bookingType := r.URL.Query().Get("type"); bookingType != "" {
		req.Type = &bookingType
	}

	result, err := h.service.GetAllBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /admin/bookings - Invalid type: %v", err)
			handlers.RespondBadRequest(w, msgInvalidType)
			return
		}
		h.logger.Error("GET /admin/bookings - Failed to get bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
