package config

type UploadConfig struct {
	AllowedMimeTypes  []string
	AllowedExtensions []string
	MaxSizeMB         int64
}

const (
	UploadEquipmentInventory = "equipment_inventory"
	UploadEquipmentFile      = "equipment_file"
)

var UploadContexts = map[string]UploadConfig{
	// Инвентарная ведомость больницы в формате Excel
	UploadEquipmentInventory: {
		AllowedMimeTypes: []string{
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"application/zip",
		},
		AllowedExtensions: []string{".xlsx"},
		MaxSizeMB:         10,
	},
	// Паспорта, сертификаты и фотографии аппаратов
	UploadEquipmentFile: {
		AllowedMimeTypes: []string{
			"application/pdf",
			"image/jpeg",
			"image/png",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
		AllowedExtensions: []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"},
		MaxSizeMB:         10,
	},
}
