package create_booking

import (
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
	"github.com/abhi96256/Appoinment/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID     int64            // ID услуги
	CustomerName  string           // Имя клиента
	CustomerEmail string           // Email клиента
	CustomerPhone string           // Телефон клиента
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала (например, "10:30")
	Notes         *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking // Созданное бронирование вместе с услугой
}
