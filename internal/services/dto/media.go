package dto

import (
	"time"

	"rtw_backend/internal/models"
)

type MediaDTO struct {
	ID        string    `json:"id"`
	Alt       string    `json:"alt"`
	URL       string    `json:"url"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

func MediaDTOFromModel(m *models.Media) MediaDTO {
	return MediaDTO{
		ID:        m.ID,
		Alt:       m.Alt,
		URL:       m.URL,
		MimeType:  m.MimeType,
		Size:      m.Size,
		Filename:  m.Filename,
		CreatedAt: m.CreatedAt,
	}
}
