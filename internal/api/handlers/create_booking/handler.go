package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/LocalBiz-BookingService/internal/api/handlers"
	"github.com/m04kA/LocalBiz-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/LocalBiz-BookingService/internal/usecase/create_booking"
)

const (
	msgCreated                  = "бронирование создано"
	msgInvalidRequestBody       = "некорректное тело запроса"
	msgUnauthorized             = "требуется авторизация"
	msgInvalidBookingType       = "тип бронирования не указан или не поддерживается"
	msgBusinessNotFound         = "бизнес не найден"
	msgTypeMismatch             = "бизнес принимает только бронирования типа %q"
	msgInvalidDate              = "некорректный формат даты бронирования"
	msgProductNotFound          = "товар не найден"
	msgWrongItemKind            = "для заказа нужно выбрать товар, а не услугу"
	msgMissingDeliveryInfo      = "укажите адрес и контакт для доставки"
	msgMissingTableFields       = "укажите количество столов, дату и время"
	msgCapacityExceeded         = "недостаточно свободных столов на выбранное время"
	msgMissingAppointmentFields = "укажите дату и время записи"
	msgServiceNotFound          = "услуга не найдена"
	msgServiceBusinessMismatch  = "услуга не принадлежит выбранному бизнесу"
	msgSlotTaken                = "выбранное время уже занято"
	msgInvalidInput             = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: request_id=%s, error=%v", requestID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Пользователь из контекста (через middleware Auth), nil обработает use case
	user, _ := middleware.GetUser(r.Context())

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(user))
	if err != nil {
		h.respondError(w, err, &req, requestID)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: request_id=%s, booking_id=%d, user_id=%d, business_id=%d",
		requestID, response.Booking.ID, response.Booking.UserID, req.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

func (h *Handler) respondError(w http.ResponseWriter, err error, req *CreateBookingRequest, requestID string) {
	var mismatch *createBooking.TypeMismatchError

	switch {
	case errors.Is(err, createBooking.ErrUnauthorized):
		handlers.RespondUnauthorized(w, msgUnauthorized)

	case errors.Is(err, createBooking.ErrBusinessNotFound):
		handlers.RespondNotFound(w, msgBusinessNotFound)

	case errors.As(err, &mismatch):
		handlers.RespondBadRequest(w, fmt.Sprintf(msgTypeMismatch, mismatch.Supported))

	case errors.Is(err, createBooking.ErrInvalidBookingType):
		handlers.RespondBadRequest(w, msgInvalidBookingType)

	case errors.Is(err, createBooking.ErrProductNotFound):
		handlers.RespondNotFound(w, msgProductNotFound)

	case errors.Is(err, createBooking.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createBooking.ErrCapacityExceeded):
		handlers.RespondConflict(w, msgCapacityExceeded)

	case errors.Is(err, createBooking.ErrSlotTaken):
		handlers.RespondConflict(w, msgSlotTaken)

	case errors.Is(err, createBooking.ErrInvalidDate):
		handlers.RespondBadRequest(w, msgInvalidDate)

	case errors.Is(err, createBooking.ErrWrongItemKind):
		handlers.RespondBadRequest(w, msgWrongItemKind)

	case errors.Is(err, createBooking.ErrMissingDeliveryInfo):
		handlers.RespondBadRequest(w, msgMissingDeliveryInfo)

	case errors.Is(err, createBooking.ErrMissingTableFields):
		handlers.RespondBadRequest(w, msgMissingTableFields)

	case errors.Is(err, createBooking.ErrMissingAppointmentFields):
		handlers.RespondBadRequest(w, msgMissingAppointmentFields)

	case errors.Is(err, createBooking.ErrServiceBusinessMismatch):
		handlers.RespondBadRequest(w, msgServiceBusinessMismatch)

	case errors.Is(err, createBooking.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("POST /bookings - Failed to create booking: request_id=%s, business_id=%d, error=%v",
			requestID, req.BusinessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Warn("POST /bookings - Booking rejected: request_id=%s, business_id=%d, type=%q, error=%v",
		requestID, req.BusinessID, req.Type, err)
}
