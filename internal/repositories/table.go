package repositories

import "context"

// Table - доступ к одной таблице хранилища. Реализации: REST (PostgREST) и PostgreSQL.
type Table[R any] interface {
	Select(ctx context.Context, q Query) ([]R, error)
	Insert(ctx context.Context, values map[string]interface{}) (R, error)
	// Update возвращает изменённые строки; пустой результат - ни одна строка не подошла.
	Update(ctx context.Context, q Query, values map[string]interface{}) ([]R, error)
	Delete(ctx context.Context, q Query) (int, error)
	// SupportsEmbed - умеет ли драйвер отдать связанную карточку аппарата одним запросом.
	SupportsEmbed() bool
}
