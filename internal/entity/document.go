package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document tracks one uploaded file and its ingestion job status.
type Document struct {
	Id           uuid.UUID
	OwnerScope   uuid.UUID
	FileName     string
	FileKey      string // blob store key
	FileURL      string
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
