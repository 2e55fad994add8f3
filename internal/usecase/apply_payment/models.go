package apply_payment

import "github.com/courtops/CourtBookingService/internal/domain"

// Request модель события платежного шлюза
type Request struct {
	GatewayRef  string                // Ссылка платежа, выданная при создании бронирования
	Outcome     domain.PaymentOutcome // Итог платежа (completed / failed)
	AmountCents int64                 // Сумма платежа в минорных единицах
}

// Response модель результата применения события
type Response struct {
	BookingID     int64  // ID бронирования
	BookingStatus string // Статус бронирования после применения
	PaymentStatus string // Статус платежа после применения
	// AlreadyProcessed выставляется, когда платеж уже был в терминальном
	// статусе и событие проигнорировано
	AlreadyProcessed bool
}
