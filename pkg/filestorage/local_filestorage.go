package filestorage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrOutsideStorage - путь указывает за пределы каталога хранилища.
var ErrOutsideStorage = errors.New("путь вне каталога хранилища")

// FileStorageInterface - хранилище вложений. Пути относительные, со слешами.
type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string) (filePath string, err error)
	Delete(filePath string) error
}

type LocalFileStorage struct {
	basePath string
	now      func() time.Time
}

func NewLocalFileStorage(basePath string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию: %w", err)
	}
	return &LocalFileStorage{basePath: basePath, now: time.Now}, nil
}

// Save кладёт файл в prefix/ГГГГ/ММ/ДД под уникальным именем с исходным расширением.
func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	now := s.now()
	ext := strings.ToLower(filepath.Ext(originalFileName))
	uniqueFileName := fmt.Sprintf("%s-%s%s", now.Format("2006-01-02"), uuid.New().String(), ext)

	relDir := filepath.Join(prefix, now.Format("2006/01/02"))
	if err := os.MkdirAll(filepath.Join(s.basePath, relDir), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.basePath, relDir, uniqueFileName))
	if err != nil {
		return "", err
	}
	if _, err = io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(relDir, uniqueFileName)), nil
}

// Delete удаляет файл по относительному пути. Отсутствующий файл - не ошибка.
func (s *LocalFileStorage) Delete(filePath string) error {
	fullPath, err := s.resolve(filePath)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalFileStorage) resolve(filePath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(filePath, "/")))
	if clean == "." || strings.HasPrefix(clean, "..") {
		return "", ErrOutsideStorage
	}
	return filepath.Join(s.basePath, clean), nil
}
