package cancel_booking

import (
	"context"

	"github.com/m04kA/LocalBiz-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	CancelOwn(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
