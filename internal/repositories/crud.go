package repositories

import (
	"context"
	"errors"
	"time"

	apperrors "medical-inventory/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// crud - общие операции над таблицей, выраженные в терминах записей приложения.
type crud[R any, D any] struct {
	table Table[R]
	toDTO func(R) D
	now   func() time.Time
}

func newCrud[R any, D any](table Table[R], toDTO func(R) D) crud[R, D] {
	return crud[R, D]{table: table, toDTO: toDTO, now: time.Now}
}

func (c crud[R, D]) list(ctx context.Context, q Query) ([]D, error) {
	rows, err := c.table.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, c.toDTO), nil
}

func (c crud[R, D]) findOne(ctx context.Context, id uuid.UUID) (*R, error) {
	rows, err := c.table.Select(ctx, ByID(id.String()))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &rows[0], nil
}

func (c crud[R, D]) create(ctx context.Context, values map[string]interface{}) (*D, error) {
	row, err := c.table.Insert(ctx, values)
	if err != nil {
		return nil, err
	}
	d := c.toDTO(row)
	return &d, nil
}

// update пишет values в строку id. При заданном expected запись меняется,
// только если её updated_at не изменился с момента чтения.
func (c crud[R, D]) update(ctx context.Context, id uuid.UUID, values map[string]interface{}, expected null.Time) (*D, error) {
	q := ByID(id.String())
	if expected.Valid {
		q = q.Where("updated_at", OpEq, expected.Time)
	}
	values["updated_at"] = c.now().UTC()

	rows, err := c.table.Update(ctx, q, values)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		if !expected.Valid {
			return nil, apperrors.ErrNotFound
		}
		if _, err := c.findOne(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrConflict
	}
	d := c.toDTO(rows[0])
	return &d, nil
}

func (c crud[R, D]) delete(ctx context.Context, id uuid.UUID) error {
	n, err := c.table.Delete(ctx, ByID(id.String()))
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func mapRows[R any, D any](rows []R, toDTO func(R) D) []D {
	out := make([]D, 0, len(rows))
	for _, r := range rows {
		out = append(out, toDTO(r))
	}
	return out
}

// isFallbackable: на запасной путь уходим только при отказе самой встроенной выборки,
// а не при недоступности хранилища или отменённом запросе.
func isFallbackable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return false
	}
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindNotFound, apperrors.KindDomain:
		return true
	}
	return false
}
