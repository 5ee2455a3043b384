package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type MemoryRecord struct {
	Id         uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerScope uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Content    string                      `gorm:"type:text"`
	Embedding  pgvector.Vector             `gorm:"type:vector(1536)"` // OpenAI text-embedding-3-small uses 1536 dimensions
	SourceKind string                      `gorm:"type:varchar(20);not null;index"`
	DocumentId *uuid.UUID                  `gorm:"type:uuid;index"`
	Filename   string                      `gorm:"type:varchar(255)"`
	Page       int                         `gorm:"default:1"`
	BBox       datatypes.JSONSlice[float64] `gorm:"type:jsonb"`
	BBoxNorm   datatypes.JSONSlice[float64] `gorm:"type:jsonb"`
	PageWidth  float64
	PageHeight float64
	SourceType string    `gorm:"type:varchar(20);not null"`
	ImageURL   string    `gorm:"type:text"`
	IsImageOCR bool      `gorm:"default:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (MemoryRecord) TableName() string {
	return "memory_records"
}
