package courts

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("court not found")

	// ErrBlockNotFound возвращается, когда блокировка корта не найдена
	ErrBlockNotFound = errors.New("court block not found")

	// ErrAccessDenied возвращается, когда пользователь не администрирует организацию
	ErrAccessDenied = errors.New("access denied")

	// ErrCourtHasBookings возвращается, когда операция конфликтует с
	// существующими бронированиями корта
	ErrCourtHasBookings = errors.New("court has active bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
