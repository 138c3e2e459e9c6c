package repositories

import (
	"strings"

	"medical-inventory/pkg/types"
)

// Операторы фильтра, общие для обоих драйверов.
const (
	OpEq  = "eq"
	OpNeq = "neq"
	OpLt  = "lt"
	OpLte = "lte"
	OpGt  = "gt"
	OpGte = "gte"
	OpIn  = "in"
)

type Filter struct {
	Column string
	Op     string
	Value  interface{}
}

type Search struct {
	Term    string
	Columns []string
}

// Query - описание выборки, не зависящее от драйвера хранилища.
type Query struct {
	Filters []Filter
	Search  *Search
	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
	// Embed просит вернуть строки вместе с краткой карточкой аппарата.
	Embed bool
}

func (q Query) Where(column, op string, value interface{}) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Column: column, Op: op, Value: value})
	return q
}

func ByID(id interface{}) Query {
	return Query{}.Where("id", OpEq, id)
}

// QueryFromFilter переносит параметры списка из query-строки в Query.
// allowed сопоставляет имена полей клиента с колонками таблицы.
func QueryFromFilter(filter types.Filter, allowed map[string]string, searchColumns []string) Query {
	var q Query

	for field, val := range filter.Filter {
		col, ok := allowed[field]
		if !ok {
			continue
		}
		s, ok := val.(string)
		if !ok {
			continue
		}
		if strings.Contains(s, ",") {
			q = q.Where(col, OpIn, strings.Split(s, ","))
		} else {
			q = q.Where(col, OpEq, s)
		}
	}

	for field, dir := range filter.Sort {
		if col, ok := allowed[field]; ok {
			q.OrderBy = col
			q.Desc = strings.ToLower(dir) == "desc"
			break
		}
	}

	if term := strings.TrimSpace(filter.Search); term != "" && len(searchColumns) > 0 {
		q.Search = &Search{Term: term, Columns: searchColumns}
	}

	if filter.WithPagination && filter.Limit > 0 {
		q.Limit = filter.Limit
		q.Offset = filter.Offset
	}
	return q
}
