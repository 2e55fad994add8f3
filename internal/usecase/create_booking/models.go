package create_booking

import (
	"time"

	"github.com/courtops/CourtBookingService/pkg/types"
)

// GuestInfo данные гостя для бронирования без аккаунта
type GuestInfo struct {
	Name  string  // Имя гостя
	Email string  // Email, идентифицирует гостя внутри организации
	Phone *string // Телефон (опционально)
}

// Request модель запроса на создание бронирования.
// Заполняется ровно одно из UserID / Guest.
type Request struct {
	OrganizationID int64              // ID организации
	CourtID        int64              // ID корта
	UserID         *int64             // ID пользователя
	Guest          *GuestInfo         // Данные гостя
	Date           time.Time          // Дата бронирования (без времени)
	StartTimes     []types.TimeString // Времена начала слотов, непрерывный блок
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64      // ID созданного бронирования
	OrganizationID int64      // ID организации
	CourtID        int64      // ID корта
	Status         string     // Статус бронирования (pending_payment)
	TotalCents     int64      // Итоговая цена в минорных единицах
	Currency       string     // Валюта (ISO 4217)
	ExpiresAt      time.Time  // Дедлайн оплаты
	PaymentRef     string     // Ссылка платежа для шлюза
	GuestToken     *string    // Публичный токен гостя (только для гостевых бронирований)
	Slots          []Slot     // Зарезервированные слоты
	CreatedAt      time.Time  // Время создания
}

// Slot модель одного зарезервированного слота
type Slot struct {
	StartTime  time.Time // Начало слота (UTC)
	EndTime    time.Time // Конец слота (UTC)
	PriceCents int64     // Зафиксированная цена слота
	IsPeak     bool      // Слот попал в пиковое время
}
