package get_availability

import "time"

// Request модель запроса на получение календаря доступности корта
type Request struct {
	OrganizationID int64     // ID организации
	CourtID        int64     // ID корта
	Date           time.Time // Дата календаря (без времени)
}

// Response модель ответа со слотами на день
type Response struct {
	Date           time.Time // Дата, на которую запрашивался календарь
	OrganizationID int64     // ID организации
	CourtID        int64     // ID корта
	Currency       string    // Валюта цен (ISO 4217)
	Slots          []Slot    // Все слоты дня, занятые помечены IsAvailable=false
}

// Slot модель одного слота календаря
type Slot struct {
	StartTime   time.Time // Начало слота (UTC)
	EndTime     time.Time // Конец слота (UTC)
	PriceCents  int64     // Цена слота в минорных единицах
	IsPeak      bool      // Слот попадает в пиковое время
	IsAvailable bool      // Слот свободен для бронирования
}
