package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medical-inventory/internal/entities"
	"medical-inventory/internal/integrations/gateway"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/types"

	"github.com/google/uuid"
)

type restTable[R any] struct {
	client  *gateway.Client
	table   string
	columns string
}

func NewRestTable[R any](client *gateway.Client, table string, columns []string) Table[R] {
	return &restTable[R]{client: client, table: table, columns: strings.Join(columns, ",")}
}

func (t *restTable[R]) SupportsEmbed() bool { return true }

func (t *restTable[R]) Select(ctx context.Context, q Query) ([]R, error) {
	params, err := t.params(q)
	if err != nil {
		return nil, err
	}
	selectCols := t.columns
	if q.Embed {
		selectCols += "," + entities.EquipmentEmbed
	}
	params.Select(selectCols)
	if q.OrderBy != "" {
		params.Order(q.OrderBy, q.Desc)
	}
	params.Limit(q.Limit)
	if q.Offset > 0 {
		params.Values().Set("offset", fmt.Sprint(q.Offset))
	}

	rows := make([]R, 0)
	if err := t.client.Select(ctx, t.table, params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *restTable[R]) Insert(ctx context.Context, values map[string]interface{}) (R, error) {
	var zero R
	var rows []R
	if err := t.client.Insert(ctx, t.table, values, &rows); err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, apperrors.New(apperrors.KindTransport, "хранилище не вернуло созданную запись")
	}
	return rows[0], nil
}

func (t *restTable[R]) Update(ctx context.Context, q Query, values map[string]interface{}) ([]R, error) {
	params, err := t.params(q)
	if err != nil {
		return nil, err
	}
	params.Select(t.columns)
	rows := make([]R, 0)
	if err := t.client.Update(ctx, t.table, params, values, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *restTable[R]) Delete(ctx context.Context, q Query) (int, error) {
	params, err := t.params(q)
	if err != nil {
		return 0, err
	}
	return t.client.Delete(ctx, t.table, params)
}

func (t *restTable[R]) params(q Query) (*gateway.Params, error) {
	params := gateway.NewParams()
	for _, f := range q.Filters {
		if f.Op == OpIn {
			list, err := formatList(f.Value)
			if err != nil {
				return nil, err
			}
			params.In(f.Column, list)
			continue
		}
		params.Filter(f.Column, f.Op, formatValue(f.Value))
	}
	if q.Search != nil {
		params.SearchAny(q.Search.Columns, q.Search.Term)
	}
	return params, nil
}

// formatValue приводит значение фильтра к текстовому виду PostgREST.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case uuid.UUID:
		return val.String()
	case types.Date:
		return val.String()
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func formatList(v interface{}) ([]string, error) {
	switch val := v.(type) {
	case []string:
		return val, nil
	case []uuid.UUID:
		out := make([]string, len(val))
		for i, id := range val {
			out[i] = id.String()
		}
		return out, nil
	default:
		return nil, apperrors.NewInternalError(fmt.Sprintf("неподдерживаемый список значений %T", v))
	}
}
