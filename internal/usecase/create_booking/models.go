package create_booking

import (
	"time"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
// Поля передаются в том виде, в котором пришли от клиента; разбор и проверка выполняются в usecase
type Request struct {
	Requester  *domain.User // Аутентифицированный пользователь (nil - не аутентифицирован)
	BusinessID int64        // ID бизнеса
	Type       string       // order | table | appointment (регистр не важен)

	ProductID *int64 // Только order
	ServiceID *int64 // Только appointment

	TableCount  string // Только table, положительное целое
	BookingDate string // table и appointment
	BookingTime string // table и appointment, метка слота (например, "19:00")

	DeliveryAddress string // Только order
	DeliveryContact string // Только order

	Note string // Комментарий (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.BookingView

	// Занятость слота до создания бронирования (только table)
	Availability *domain.TableAvailability
}

// payload данные бронирования конкретного типа
// Реализации есть только в этом пакете, поэтому набор типов закрыт
type payload interface {
	bookingType() domain.BookingType
}

type orderPayload struct {
	productID       int64
	deliveryAddress string
	deliveryContact string
}

type tablePayload struct {
	tableCount  int
	date        time.Time
	bookingTime string
}

type appointmentPayload struct {
	serviceID   int64
	date        time.Time
	bookingTime string
}

func (orderPayload) bookingType() domain.BookingType       { return domain.BookingTypeOrder }
func (tablePayload) bookingType() domain.BookingType       { return domain.BookingTypeTable }
func (appointmentPayload) bookingType() domain.BookingType { return domain.BookingTypeAppointment }
