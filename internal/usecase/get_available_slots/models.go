package get_available_slots

import (
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Service *domain.Service               // Услуга, для которой считались слоты
	Date    time.Time                     // Дата, на которую запрашивались слоты
	Hours   domain.EffectiveBusinessHours // Рабочие часы, по которым сгенерированы слоты
	Slots   []domain.Slot                 // Свободные слоты по возрастанию времени начала
}
