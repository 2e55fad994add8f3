package dbmetrics

import "context"

type ctxKey int

const txKey ctxKey = iota

// WithExecutor кладет активный транзакционный исполнитель в контекст.
// Используется transaction manager-ами, чтобы репозитории прозрачно
// выполняли запросы внутри транзакции.
func WithExecutor(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetExecutor возвращает исполнитель из контекста, если там есть активная
// транзакция, иначе - переданный по умолчанию.
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction сообщает, выполняется ли текущий вызов внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey).(TxExecutor)
	return ok
}
