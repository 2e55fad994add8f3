package create_booking

import "errors"

var (
	// ErrOrganizationNotFound возвращается, когда организация не найдена
	ErrOrganizationNotFound = errors.New("create_booking: organization not found")

	// ErrCourtNotFound возвращается, когда корт не найден или не принадлежит организации
	ErrCourtNotFound = errors.New("create_booking: court not found")

	// ErrGuestBookingsDisabled возвращается, когда организация запрещает гостевые бронирования
	ErrGuestBookingsDisabled = errors.New("create_booking: guest bookings are disabled")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает окно бронирования организации
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда время слота не попадает в сетку корта
	// или выходит за часы работы
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotsNotContiguous возвращается, когда запрошенные слоты не образуют
	// непрерывный блок
	ErrSlotsNotContiguous = errors.New("create_booking: slots are not contiguous")

	// ErrTooManySlots возвращается, когда запрошено больше слотов, чем разрешает
	// лимит организации
	ErrTooManySlots = errors.New("create_booking: too many slots requested")

	// ErrDailyLimitExceeded возвращается, когда суммарное число слотов пользователя
	// за день превысит лимит организации
	ErrDailyLimitExceeded = errors.New("create_booking: daily slot limit exceeded")

	// ErrTooLateToBook возвращается при попытке забронировать уже начавшийся слот
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда хотя бы один из запрошенных слотов занят
	// бронированием или блокировкой корта
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
