// Package api собирает HTTP маршруты сервиса
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	cancelBookingHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/delete_booking"
	getAllBookingsHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/get_all_bookings"
	getBookingHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/get_booking_stats"
	getTableAvailabilityHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/get_table_availability"
	getUserBookingsHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/get_user_bookings"
	updateBookingStatusHandler "github.com/m04kA/LocalBiz-BookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/LocalBiz-BookingService/internal/api/middleware"
)

// Handlers обработчики всех эндпоинтов
type Handlers struct {
	CreateBooking        *createBookingHandler.Handler
	GetUserBookings      *getUserBookingsHandler.Handler
	GetBooking           *getBookingHandler.Handler
	CancelBooking        *cancelBookingHandler.Handler
	GetTableAvailability *getTableAvailabilityHandler.Handler
	GetAllBookings       *getAllBookingsHandler.Handler
	UpdateBookingStatus  *updateBookingStatusHandler.Handler
	DeleteBooking        *deleteBookingHandler.Handler
	GetBookingStats      *getBookingStatsHandler.Handler
}

// RouterConfig зависимости роутера
type RouterConfig struct {
	Handlers      Handlers
	Authenticator middleware.Authenticator
	Logger        middleware.Logger

	// Metrics и MetricsHandler опциональны
	Metrics        middleware.HTTPMetrics
	MetricsPath    string
	MetricsHandler http.Handler
}

// NewRouter регистрирует маршруты /api/v1
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(cfg.Metrics))
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.MetricsHandler != nil {
		r.Handle(cfg.MetricsPath, cfg.MetricsHandler).Methods(http.MethodGet)
	}

	h := cfg.Handlers
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные столы на дату и время
	api.HandleFunc("/businesses/{businessId:[0-9]+}/tables/availability",
		h.GetTableAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Authenticator, cfg.Logger))

	// --- Администратор ---
	// Регистрируется раньше /bookings/{bookingId}, чтобы /admin/bookings/stats не перехватывался
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/bookings", h.GetAllBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/stats", h.GetBookingStats.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/status", h.UpdateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", h.DeleteBooking.Handle).Methods(http.MethodDelete)

	// --- Бронирования пользователя ---
	protected.HandleFunc("/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/me", h.GetUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", h.GetBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", h.CancelBooking.Handle).Methods(http.MethodPatch)

	return r
}
