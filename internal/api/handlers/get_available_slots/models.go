package get_available_slots

import (
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
	catalogModels "github.com/abhi96256/Appoinment/internal/service/catalog/models"
	hoursModels "github.com/abhi96256/Appoinment/internal/service/hours/models"
	getAvailableSlots "github.com/abhi96256/Appoinment/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Service        *catalogModels.ServiceResponse `json:"service"`
	Date           string                         `json:"date"`
	BusinessHours  *hoursModels.HoursResponse     `json:"businessHours"`
	AvailableSlots []AvailableSlot                `json:"availableSlots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  int    `json:"duration"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Duration:  slot.DurationMinutes,
		}
	}

	return &AvailableSlotsResponse{
		Service:        catalogModels.FromDomainService(resp.Service),
		Date:           resp.Date.Format(domain.DateFormat),
		BusinessHours:  hoursModels.FromEffective(resp.Hours, nil),
		AvailableSlots: slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
