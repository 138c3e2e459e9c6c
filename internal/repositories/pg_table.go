package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "medical-inventory/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgTable[R any] struct {
	storage *pgxpool.Pool
	table   string
	columns []string
	psql    sq.StatementBuilderType
}

func NewPgTable[R any](storage *pgxpool.Pool, table string, columns []string) Table[R] {
	return &pgTable[R]{
		storage: storage,
		table:   table,
		columns: columns,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// В SQL-драйвере карточки аппаратов подтягиваются отдельным запросом IN (...).
func (t *pgTable[R]) SupportsEmbed() bool { return false }

func (t *pgTable[R]) Select(ctx context.Context, q Query) ([]R, error) {
	builder := t.psql.Select(t.columns...).From(t.table)
	builder = builder.Where(t.where(q))
	if q.OrderBy != "" {
		dir := "ASC"
		if q.Desc {
			dir = "DESC"
		}
		builder = builder.OrderBy(fmt.Sprintf("%s %s", q.OrderBy, dir))
	}
	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		builder = builder.Offset(uint64(q.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SELECT-запроса: %w", err)
	}
	rows, err := t.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[R])
	if err != nil {
		return nil, mapPgError(err)
	}
	return result, nil
}

func (t *pgTable[R]) Insert(ctx context.Context, values map[string]interface{}) (R, error) {
	var zero R
	query, args, err := t.psql.Insert(t.table).
		SetMap(values).
		Suffix("RETURNING " + strings.Join(t.columns, ", ")).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("ошибка сборки INSERT-запроса: %w", err)
	}
	rows, err := t.storage.Query(ctx, query, args...)
	if err != nil {
		return zero, mapPgError(err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[R])
	if err != nil {
		return zero, mapPgError(err)
	}
	return row, nil
}

func (t *pgTable[R]) Update(ctx context.Context, q Query, values map[string]interface{}) ([]R, error) {
	if len(q.Filters) == 0 {
		return nil, apperrors.NewInternalError("обновление без фильтра запрещено")
	}
	query, args, err := t.psql.Update(t.table).
		SetMap(values).
		Where(t.where(q)).
		Suffix("RETURNING " + strings.Join(t.columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки UPDATE-запроса: %w", err)
	}
	rows, err := t.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[R])
	if err != nil {
		return nil, mapPgError(err)
	}
	return result, nil
}

func (t *pgTable[R]) Delete(ctx context.Context, q Query) (int, error) {
	if len(q.Filters) == 0 {
		return 0, apperrors.NewInternalError("удаление без фильтра запрещено")
	}
	query, args, err := t.psql.Delete(t.table).Where(t.where(q)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка сборки DELETE-запроса: %w", err)
	}
	result, err := t.storage.Exec(ctx, query, args...)
	if err != nil {
		return 0, mapPgError(err)
	}
	return int(result.RowsAffected()), nil
}

func (t *pgTable[R]) where(q Query) sq.And {
	conds := sq.And{}
	for _, f := range q.Filters {
		conds = append(conds, condition(f))
	}
	if q.Search != nil {
		or := sq.Or{}
		for _, col := range q.Search.Columns {
			or = append(or, sq.ILike{col: "%" + q.Search.Term + "%"})
		}
		conds = append(conds, or)
	}
	return conds
}

func condition(f Filter) sq.Sqlizer {
	switch f.Op {
	case OpNeq:
		return sq.NotEq{f.Column: f.Value}
	case OpLt:
		return sq.Lt{f.Column: f.Value}
	case OpLte:
		return sq.LtOrEq{f.Column: f.Value}
	case OpGt:
		return sq.Gt{f.Column: f.Value}
	case OpGte:
		return sq.GtOrEq{f.Column: f.Value}
	default:
		// eq и in: squirrel сам превращает срез в IN (...)
		return sq.Eq{f.Column: f.Value}
	}
}

// mapPgError переводит ошибки драйвера в категории приложения.
func mapPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return apperrors.Wrap(apperrors.KindDomain, "запись с такими данными уже существует", err)
		case pgErr.Code == "23503":
			return apperrors.Wrap(apperrors.KindDomain, "ссылка на несуществующую запись", err)
		case strings.HasPrefix(pgErr.Code, "23"):
			return apperrors.Wrap(apperrors.KindDomain, "нарушено ограничение данных", err)
		case strings.HasPrefix(pgErr.Code, "22"):
			return apperrors.Wrap(apperrors.KindValidation, "недопустимое значение поля", err)
		}
	}
	return apperrors.NewTransportError(err)
}
