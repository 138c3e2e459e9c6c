package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"medical-inventory/pkg/config"

	"github.com/gabriel-vasile/mimetype"
)

// ValidateFile проверяет размер, расширение и содержимое загружаемого файла
// по правилам контекста. После проверки указатель файла возвращается в начало.
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, contextName string) error {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return fmt.Errorf("неизвестный контекст загрузки: %s", contextName)
	}

	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return fmt.Errorf("размер файла (%d KB) превышает лимит в %d MB", fileHeader.Size/1024, rules.MaxSizeMB)
		}
	}

	if len(rules.AllowedExtensions) > 0 {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !slices.Contains(rules.AllowedExtensions, ext) {
			return fmt.Errorf("недопустимое расширение файла: %s", ext)
		}
	}

	mime, err := mimetype.DetectReader(file)
	if err != nil {
		return fmt.Errorf("не удалось прочитать файл для определения типа")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("не удалось сбросить указатель файла")
	}

	// xlsx - это zip-архив, поэтому проверяем и родительские типы
	for m := mime; m != nil; m = m.Parent() {
		if slices.Contains(rules.AllowedMimeTypes, m.String()) {
			return nil
		}
	}
	return fmt.Errorf("недопустимый тип файла: %s", mime.String())
}
