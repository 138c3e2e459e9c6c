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

type MaintenanceController struct {
	maintenanceService services.MaintenanceServiceInterface
	logger             *zap.Logger
}

func NewMaintenanceController(service services.MaintenanceServiceInterface, logger *zap.Logger) *MaintenanceController {
	return &MaintenanceController{maintenanceService: service, logger: logger}
}

func (c *MaintenanceController) GetMaintenances(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, err := c.maintenanceService.GetMaintenances(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetMaintenances: ошибка при получении списка обслуживания", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return api.SuccessList(ctx, "Список обслуживания успешно получен", res, filter)
}

func (c *MaintenanceController) FindMaintenance(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.maintenanceService.FindMaintenance(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Запись обслуживания найдена", http.StatusOK)
}

func (c *MaintenanceController) CreateMaintenance(ctx echo.Context) error {
	var payload dto.CreateMaintenanceDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CreateMaintenance: некорректные данные", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.maintenanceService.CreateMaintenance(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateMaintenance: ошибка при создании записи", zap.Stringer("equipoId", payload.EquipoID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Обслуживание успешно запланировано", http.StatusCreated)
}

func (c *MaintenanceController) UpdateMaintenance(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateMaintenanceDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("UpdateMaintenance: некорректные данные", zap.Stringer("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.maintenanceService.UpdateMaintenance(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateMaintenance: ошибка при обновлении записи", zap.Stringer("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Обслуживание успешно обновлено", http.StatusOK)
}

func (c *MaintenanceController) DeleteMaintenance(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.maintenanceService.DeleteMaintenance(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteMaintenance: ошибка при удалении записи", zap.Stringer("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Обслуживание успешно удалено", http.StatusOK)
}

// SearchMaintenance: ?q=текст&estado=programado
func (c *MaintenanceController) SearchMaintenance(ctx echo.Context) error {
	res, err := c.maintenanceService.SearchMaintenance(ctx.Request().Context(), ctx.QueryParam("q"), ctx.QueryParam("estado"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Поиск выполнен", http.StatusOK)
}

func (c *MaintenanceController) GetByEquipment(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.maintenanceService.GetByEquipment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "История обслуживания получена", http.StatusOK)
}
