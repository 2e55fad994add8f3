package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrPaymentNotFound возвращается, когда платеж бронирования не найден
	ErrPaymentNotFound = errors.New("booking.repository: payment not found")

	// ErrSlotConflict возвращается, когда вставка слотов нарушила
	// exclusion constraint (кто-то успел занять интервал первым)
	ErrSlotConflict = errors.New("booking.repository: slot interval conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
