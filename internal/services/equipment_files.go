package services

import (
	"context"
	"io"
	"slices"
	"strings"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/events"
	"medical-inventory/internal/repositories"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/filestorage"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ссылки на вложения хранятся в карточке в виде URL, раздаваемых сервером.
const (
	uploadsURLPrefix  = "/uploads/"
	equipmentFilesDir = "equipment"
)

type EquipmentFileServiceInterface interface {
	AttachFile(ctx context.Context, id uuid.UUID, file io.Reader, fileName string) (*dto.EquipmentDTO, error)
	RemoveFile(ctx context.Context, id uuid.UUID, fileURL string) (*dto.EquipmentDTO, error)
}

// EquipmentFileService ведёт список archivos карточки и сами файлы в хранилище.
type EquipmentFileService struct {
	*BaseService
	equipmentRepository repositories.EquipmentRepositoryInterface
	storage             filestorage.FileStorageInterface
	logger              *zap.Logger
}

func NewEquipmentFileService(base *BaseService, store *repositories.Store, storage filestorage.FileStorageInterface, logger *zap.Logger) *EquipmentFileService {
	return &EquipmentFileService{
		BaseService:         base,
		equipmentRepository: store.Equipment,
		storage:             storage,
		logger:              logger,
	}
}

func (s *EquipmentFileService) AttachFile(ctx context.Context, id uuid.UUID, file io.Reader, fileName string) (*dto.EquipmentDTO, error) {
	equipment, err := s.equipmentRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	savedPath, err := s.storage.Save(file, fileName, equipmentFilesDir)
	if err != nil {
		s.logger.Error("Не удалось сохранить вложение", zap.String("equipment", id.String()), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindInternal, "не удалось сохранить файл", err)
	}

	rec := *equipment
	rec.Archivos = append(slices.Clone(rec.Archivos), uploadsURLPrefix+savedPath)
	updated, err := s.equipmentRepository.Update(ctx, id, rec, null.TimeFrom(equipment.UpdatedAt))
	if err != nil {
		// файл без ссылки из карточки никому не нужен
		if delErr := s.storage.Delete(savedPath); delErr != nil {
			s.logger.Warn("Не удалось удалить осиротевший файл", zap.String("path", savedPath), zap.Error(delErr))
		}
		return nil, err
	}

	s.logger.Info("Вложение добавлено", zap.String("equipment", id.String()), zap.String("file", savedPath))
	s.Publish(ctx, events.EntityEquipment, events.ActionUpdated, id)
	return updated, nil
}

func (s *EquipmentFileService) RemoveFile(ctx context.Context, id uuid.UUID, fileURL string) (*dto.EquipmentDTO, error) {
	equipment, err := s.equipmentRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := slices.Index(equipment.Archivos, fileURL)
	if idx < 0 {
		return nil, apperrors.New(apperrors.KindNotFound, "файл не прикреплён к оборудованию")
	}

	rec := *equipment
	rec.Archivos = slices.Delete(slices.Clone(rec.Archivos), idx, idx+1)
	updated, err := s.equipmentRepository.Update(ctx, id, rec, null.TimeFrom(equipment.UpdatedAt))
	if err != nil {
		return nil, err
	}

	// внешние ссылки (не из нашего хранилища) только убираются из карточки
	if strings.HasPrefix(fileURL, uploadsURLPrefix) {
		if err := s.storage.Delete(strings.TrimPrefix(fileURL, uploadsURLPrefix)); err != nil {
			s.logger.Warn("Не удалось удалить файл вложения", zap.String("url", fileURL), zap.Error(err))
		}
	}

	s.Publish(ctx, events.EntityEquipment, events.ActionUpdated, id)
	return updated, nil
}
