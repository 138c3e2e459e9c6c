package controllers

import (
	"mime/multipart"
	"net/http"
	"time"

	"medical-inventory/internal/services"
	"medical-inventory/pkg/config"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const importLockTTL = 5 * time.Minute

// UploadController принимает инвентарную ведомость и вложения к карточкам.
type UploadController struct {
	importService services.EquipmentImportServiceInterface
	fileService   services.EquipmentFileServiceInterface
	dedup         *RequestDeduplicator
	logger        *zap.Logger
}

func NewUploadController(
	importService services.EquipmentImportServiceInterface,
	fileService services.EquipmentFileServiceInterface,
	logger *zap.Logger,
) *UploadController {
	return &UploadController{
		importService: importService,
		fileService:   fileService,
		dedup:         NewRequestDeduplicator(),
		logger:        logger,
	}
}

func (ctrl *UploadController) ImportEquipment(c echo.Context) error {
	sess, err := utils.GetSessionFromContext(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	// не больше одной загрузки на пользователя одновременно
	lockKey := sess.UserID.String() + "_import"
	if !ctrl.dedup.TryAcquire(lockKey, importLockTTL) {
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusConflict, "Загрузка ведомости уже выполняется", nil, nil),
			ctrl.logger,
		)
	}
	defer ctrl.dedup.Release(lockKey)

	fileHeader, src, err := ctrl.openValidated(c, config.UploadEquipmentInventory)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	defer src.Close()

	res, err := ctrl.importService.Import(c.Request().Context(), src)
	if err != nil {
		ctrl.logger.Error("ImportEquipment: ошибка загрузки ведомости", zap.String("filename", fileHeader.Filename), zap.Error(err))
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	ctrl.logger.Info("Ведомость загружена",
		zap.String("filename", fileHeader.Filename),
		zap.Int("created", res.Creados),
		zap.Int("updated", res.Actualizados),
		zap.Int("errors", len(res.Errores)),
	)
	return utils.SuccessResponse(c, res, "Ведомость успешно загружена", http.StatusOK)
}

// AttachFile прикрепляет паспорт, сертификат или фото к карточке аппарата.
func (ctrl *UploadController) AttachFile(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	fileHeader, src, err := ctrl.openValidated(c, config.UploadEquipmentFile)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	defer src.Close()

	res, err := ctrl.fileService.AttachFile(c.Request().Context(), id, src, fileHeader.Filename)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Файл успешно прикреплён", http.StatusCreated)
}

// RemoveFile: ?url=/uploads/equipment/...
func (ctrl *UploadController) RemoveFile(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	fileURL := c.QueryParam("url")
	if fileURL == "" {
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusBadRequest, "Не указан файл", apperrors.ErrBadRequest, nil),
			ctrl.logger,
		)
	}

	res, err := ctrl.fileService.RemoveFile(c.Request().Context(), id, fileURL)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Файл успешно удалён", http.StatusOK)
}

// openValidated достаёт поле file из формы и проверяет его по правилам контекста.
// Закрыть файл должен вызывающий.
func (ctrl *UploadController) openValidated(c echo.Context, contextName string) (*multipart.FileHeader, multipart.File, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, nil, apperrors.NewHttpError(http.StatusBadRequest, "Файл не был передан", apperrors.ErrBadRequest, nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, nil, apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка обработки файла", err, nil)
	}

	if err := utils.ValidateFile(fileHeader, src, contextName); err != nil {
		src.Close()
		return nil, nil, apperrors.NewHttpError(
			http.StatusBadRequest,
			err.Error(),
			apperrors.ErrBadRequest,
			map[string]interface{}{"filename": fileHeader.Filename},
		)
	}
	return fileHeader, src, nil
}
