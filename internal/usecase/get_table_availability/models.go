package get_table_availability

import "github.com/m04kA/LocalBiz-BookingService/internal/domain"

// Request модель запроса свободных столов
type Request struct {
	BusinessID  int64  // ID бизнеса
	Date        string // Дата (любой формат, принимаемый при бронировании)
	BookingTime string // Метка слота (например, "19:00")
}

// Response модель ответа со свободными столами
type Response struct {
	Business     *domain.Business
	Availability *domain.TableAvailability
}
