package update_booking_status

import (
	"github.com/m04kA/LocalBiz-BookingService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // pending | done | cancelled; confirmed только для столов
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(actorIsAdmin bool) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		ActorIsAdmin: actorIsAdmin,
		Status:       r.Status,
	}
}
