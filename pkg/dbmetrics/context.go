package dbmetrics

import "context"

type executorKey struct{}

// WithExecutor кладет executor (обычно транзакцию) в контекст
// Используется transaction manager'ом, чтобы репозитории выполняли
// запросы внутри активной транзакции без изменения сигнатур
func WithExecutor(ctx context.Context, executor DBExecutor) context.Context {
	return context.WithValue(ctx, executorKey{}, executor)
}

// GetExecutor возвращает executor из контекста или fallback, если транзакции нет
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if executor, ok := ctx.Value(executorKey{}).(DBExecutor); ok {
		return executor
	}
	return fallback
}
