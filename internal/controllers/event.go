package controllers

import (
	"net/http"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/services"
	"medical-inventory/pkg/api"
	"medical-inventory/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EventController struct {
	eventService services.EventServiceInterface
	logger       *zap.Logger
}

func NewEventController(service services.EventServiceInterface, logger *zap.Logger) *EventController {
	return &EventController{eventService: service, logger: logger}
}

func (c *EventController) GetEvents(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, err := c.eventService.GetEvents(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetEvents: ошибка при получении журнала событий", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return api.SuccessList(ctx, "Журнал событий успешно получен", res, filter)
}

func (c *EventController) FindEvent(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.eventService.FindEvent(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Событие найдено", http.StatusOK)
}

func (c *EventController) CreateEvent(ctx echo.Context) error {
	var payload dto.CreateEventDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CreateEvent: некорректные данные", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.eventService.CreateEvent(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateEvent: ошибка при регистрации события", zap.Stringer("equipoId", payload.EquipoID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Событие успешно зарегистрировано", http.StatusCreated)
}

func (c *EventController) UpdateEvent(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEventDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("UpdateEvent: некорректные данные", zap.Stringer("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.eventService.UpdateEvent(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateEvent: ошибка при обновлении события", zap.Stringer("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Событие успешно обновлено", http.StatusOK)
}

func (c *EventController) DeleteEvent(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.eventService.DeleteEvent(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteEvent: ошибка при удалении события", zap.Stringer("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Событие успешно удалено", http.StatusOK)
}

func (c *EventController) SearchEvents(ctx echo.Context) error {
	res, err := c.eventService.SearchEvents(ctx.Request().Context(), ctx.QueryParam("q"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Поиск выполнен", http.StatusOK)
}

func (c *EventController) GetByEquipment(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.eventService.GetByEquipment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "События оборудования получены", http.StatusOK)
}
