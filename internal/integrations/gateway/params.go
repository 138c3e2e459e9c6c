package gateway

import (
	"fmt"
	"net/url"
	"strings"
)

// Операторы фильтров PostgREST.
const (
	OpEq    = "eq"
	OpNeq   = "neq"
	OpLt    = "lt"
	OpLte   = "lte"
	OpGt    = "gt"
	OpGte   = "gte"
	OpIlike = "ilike"
	OpIs    = "is"
)

// Params собирает query-строку запроса: фильтры, select, order, limit.
type Params struct {
	values  url.Values
	filters int
}

func NewParams() *Params {
	return &Params{values: url.Values{}}
}

func (p *Params) Select(columns string) *Params {
	p.values.Set("select", columns)
	return p
}

// Filter добавляет условие column=op.value.
func (p *Params) Filter(column, op, value string) *Params {
	p.values.Add(column, op+"."+value)
	p.filters++
	return p
}

func (p *Params) Eq(column, value string) *Params {
	return p.Filter(column, OpEq, value)
}

// In добавляет column=in.(a,b,...).
func (p *Params) In(column string, values []string) *Params {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	p.values.Add(column, "in.("+strings.Join(quoted, ",")+")")
	p.filters++
	return p
}

// SearchAny - регистронезависимый поиск подстроки хотя бы в одной из колонок.
func (p *Params) SearchAny(columns []string, term string) *Params {
	if len(columns) == 0 {
		return p
	}
	pattern := quote("*" + term + "*")
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%s.ilike.%s", col, pattern)
	}
	p.values.Add("or", "("+strings.Join(parts, ",")+")")
	p.filters++
	return p
}

func (p *Params) Order(column string, desc bool) *Params {
	dir := "asc"
	if desc {
		dir = "desc"
	}
	order := column + "." + dir
	if existing := p.values.Get("order"); existing != "" {
		order = existing + "," + order
	}
	p.values.Set("order", order)
	return p
}

func (p *Params) Limit(n int) *Params {
	if n > 0 {
		p.values.Set("limit", fmt.Sprint(n))
	}
	return p
}

// Empty - ни одного фильтра строк.
func (p *Params) Empty() bool { return p == nil || p.filters == 0 }

func (p *Params) Values() url.Values {
	if p == nil {
		return url.Values{}
	}
	return p.values
}

// quote берёт значение в кавычки, если в нём есть зарезервированные символы.
func quote(v string) string {
	if !strings.ContainsAny(v, `,.:()"\ `) {
		return v
	}
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(v)
	return `"` + escaped + `"`
}
