package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/LocalBiz-BookingService/internal/api/handlers"
	"github.com/m04kA/LocalBiz-BookingService/internal/api/middleware"
	"github.com/m04kA/LocalBiz-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgUnauthorized     = "требуется авторизация"
	msgNotCancellable   = "бронирование не найдено или не может быть отменено"
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

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Missing user")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	booking, err := h.service.CancelOwn(r.Context(), bookingID, userID)
	if err != nil {
		if errors.Is(err, bookings.ErrNotFoundOrUnauthorized) || errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("PATCH /bookings/{id}/cancel - Not cancellable: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondNotFound(w, msgNotCancellable)
			return
		}
		h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
			bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d, user_id=%d",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
