package controllers

import (
	"net/http"
	"strconv"

	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/types"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func parseUUIDParam(ctx echo.Context, name string) (uuid.UUID, error) {
	raw := ctx.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный формат ID",
			err,
			map[string]interface{}{"param": raw},
		)
	}
	return id, nil
}

// bindAndValidate разбирает тело запроса и прогоняет его через валидатор Echo.
func bindAndValidate(ctx echo.Context, payload interface{}) error {
	if err := ctx.Bind(payload); err != nil {
		return apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный формат данных в теле запроса",
			err,
			nil,
		)
	}
	return ctx.Validate(payload)
}

// parseMonths: пустой параметр - значение по умолчанию (0), диапазон проверяет сервис.
func parseMonths(ctx echo.Context) (int, error) {
	raw := ctx.QueryParam("months")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Параметр months должен быть целым числом",
			err,
			map[string]interface{}{"months": raw},
		)
	}
	return n, nil
}

func parseDateQuery(ctx echo.Context, name string) (types.NullDate, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return types.NullDate{}, nil
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		return types.NullDate{}, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Дата должна быть в формате ГГГГ-ММ-ДД",
			err,
			map[string]interface{}{name: raw},
		)
	}
	return types.NullDateFrom(d), nil
}
