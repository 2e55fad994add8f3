package apply_payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж с такой ссылкой шлюза не найден
	ErrPaymentNotFound = errors.New("apply_payment: payment not found")

	// ErrAmountMismatch возвращается, когда сумма вебхука не совпадает с суммой
	// платежа; состояние не меняется
	ErrAmountMismatch = errors.New("apply_payment: amount mismatch")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("apply_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_payment: internal error")
)
