package image

import (
	"log"

	"github.com/EgorLis/garden-log/internal/domain"
)

// MIME-типы, которые принимаем на загрузку
var allowedMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

const MaxUploadBytes = 10 << 20 // 10MB на файл

type Handler struct {
	Log     *log.Logger
	Logs    domain.HarvestLogsRepo
	Images  domain.ImagesRepo
	Storage domain.BlobStorage
}
