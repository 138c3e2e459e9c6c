package controllers

import (
	"context"
	"net/http"

	"medical-inventory/internal/export"
	"medical-inventory/internal/services"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) GetStatistics(ctx echo.Context) error {
	res, err := c.reportService.GetStatistics(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статистика успешно получена", http.StatusOK)
}

// GetMaintenanceReport: ?start=2025-01-01&end=2025-01-31, без дат - текущий месяц.
func (c *ReportController) GetMaintenanceReport(ctx echo.Context) error {
	start, err := parseDateQuery(ctx, "start")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	end, err := parseDateQuery(ctx, "end")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.reportService.GetMaintenanceReport(ctx.Request().Context(), start, end)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Отчёт по обслуживанию успешно сформирован", http.StatusOK)
}

func (c *ReportController) GetAttentionList(ctx echo.Context) error {
	res, err := c.reportService.GetAttentionList(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список оборудования, требующего внимания, получен", http.StatusOK)
}

func (c *ReportController) GetMonthlyTrends(ctx echo.Context) error {
	months, err := parseMonths(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.reportService.GetMonthlyTrends(ctx.Request().Context(), months)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Помесячная динамика получена", http.StatusOK)
}

func (c *ReportController) GetEventFrequency(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	months, err := parseMonths(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.reportService.GetEventFrequency(ctx.Request().Context(), id, months)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Частота событий получена", http.StatusOK)
}

func (c *ReportController) GetEventStatistics(ctx echo.Context) error {
	res, err := c.reportService.GetEventStatistics(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статистика событий получена", http.StatusOK)
}

func (c *ReportController) GetUserStatistics(ctx echo.Context) error {
	res, err := c.reportService.GetUserStatistics(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статистика пользователей получена", http.StatusOK)
}

func (c *ReportController) GetDepartmentCosts(ctx echo.Context) error {
	res, err := c.reportService.GetDepartmentCosts(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Затраты по отделениям получены", http.StatusOK)
}

// ----- ВЫГРУЗКА ДОКУМЕНТОВ (?format=pdf|xlsx) -----

func (c *ReportController) ExportInventory(ctx echo.Context) error {
	return c.export(ctx, c.reportService.InventoryDocument)
}

func (c *ReportController) ExportMaintenance(ctx echo.Context) error {
	return c.export(ctx, c.reportService.MaintenanceDocument)
}

func (c *ReportController) ExportCosts(ctx echo.Context) error {
	return c.export(ctx, c.reportService.CostsDocument)
}

func (c *ReportController) ExportEquipmentEvents(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.export(ctx, func(reqCtx context.Context) (*export.Document, error) {
		return c.reportService.EquipmentEventsDocument(reqCtx, id)
	})
}

func (c *ReportController) export(ctx echo.Context, build func(context.Context) (*export.Document, error)) error {
	format := ctx.QueryParam("format")
	renderer, err := export.RendererFor(format)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, err.Error(), nil, map[string]interface{}{"format": format}),
			c.logger,
		)
	}

	doc, err := build(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return c.respondWithDocument(ctx, renderer, doc)
}

// respondWithDocument пишет документ прямо в ответ. Если рендер упал
// до отправки заголовков, клиент получает обычную JSON-ошибку.
func (c *ReportController) respondWithDocument(ctx echo.Context, renderer export.Renderer, doc *export.Document) error {
	fileName := doc.Filename(renderer.Extension())
	ctx.Response().Header().Set(echo.HeaderContentType, renderer.ContentType())
	ctx.Response().Header().Set("Content-Disposition", utils.AttachmentDisposition(fileName))

	if err := renderer.Render(ctx.Response(), doc); err != nil {
		c.logger.Error("Ошибка формирования документа", zap.String("file", fileName), zap.Error(err))
		if !ctx.Response().Committed {
			ctx.Response().Header().Del("Content-Disposition")
			return utils.ErrorResponse(ctx, apperrors.NewInternalError("не удалось сформировать документ"), c.logger)
		}
		return err
	}
	c.logger.Info("Документ выгружен", zap.String("file", fileName))
	return nil
}
