package models

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	ID         uuid.UUID `json:"id" db:"id"`
	GroupID    uuid.UUID `json:"group_id" db:"group_id"`
	UploadedBy uuid.UUID `json:"uploaded_by" db:"uploaded_by"`
	FileName   string    `json:"file_name" db:"file_name"`
	FileURL    string    `json:"file_url" db:"file_url"`
	FileSize   int64     `json:"file_size" db:"file_size"`
	FileType   string    `json:"file_type" db:"file_type"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}

type FileResponse struct {
	ID           uuid.UUID `json:"id"`
	GroupID      uuid.UUID `json:"group_id"`
	UploadedBy   uuid.UUID `json:"uploaded_by"`
	UploaderName string    `json:"uploader_name,omitempty"`
	FileName     string    `json:"file_name"`
	FileURL      string    `json:"file_url"`
	FileSize     int64     `json:"file_size"`
	FileType     string    `json:"file_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
