package cancel_booking

import "time"

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64   // ID бронирования
	UserID    int64   // ID инициатора (владелец или администратор организации)
	Reason    *string // Причина отмены (опционально)
}

// Response модель ответа с отмененным бронированием
type Response struct {
	ID           int64     // ID бронирования
	Status       string    // Статус (cancelled)
	CancelledAt  time.Time // Время отмены
	CancelReason string    // Зафиксированная причина отмены
}
