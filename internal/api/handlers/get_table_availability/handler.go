package get_table_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/LocalBiz-BookingService/internal/api/handlers"
	getTableAvailability "github.com/m04kA/LocalBiz-BookingService/internal/usecase/get_table_availability"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgMissingParams     = "параметры date и time обязательны"
	msgInvalidDate       = "некорректный формат даты"
	msgBusinessNotFound  = "бизнес не найден"
	msgNotTableBusiness  = "бизнес не принимает бронирование столов"
)

type Handler struct {
	useCase GetTableAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetTableAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/tables/availability?date=2025-06-01&time=19:00
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/tables/availability - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	query := r.URL.Query()
	req := &getTableAvailability.Request{
		BusinessID:  businessID,
		Date:        query.Get("date"),
		BookingTime: query.Get("time"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getTableAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingParams)

		case errors.Is(err, getTableAvailability.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getTableAvailability.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getTableAvailability.ErrNotTableBusiness):
			handlers.RespondBadRequest(w, msgNotTableBusiness)

		default:
			h.logger.Error("GET /businesses/{id}/tables/availability - Failed: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/tables/availability - business_id=%d, available=%d",
		businessID, result.Availability.AvailableTables())
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, req.Date))
}
