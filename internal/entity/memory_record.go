package entity

import (
	"time"

	"github.com/google/uuid"
)

// MemoryRecord is the atomic indexed unit of the memory store.
type MemoryRecord struct {
	Id         uuid.UUID
	OwnerScope uuid.UUID
	Content    string
	Embedding  []float32 // all-zero vector means "embedding unavailable"
	Metadata   RecordMetadata
	CreatedAt  time.Time
}

// RecordMetadata is the typed metadata set attached to a record. Optional
// fields are pointers or zero values; bbox coordinates are x0,y0,x1,y1 in
// page-pixel space, bbox_norm the same divided by page width/height.
type RecordMetadata struct {
	SourceKind string
	DocumentId *uuid.UUID
	Filename   string
	Page       int // 1-indexed
	BBox       []float64
	BBoxNorm   []float64
	PageWidth  float64
	PageHeight float64
	SourceType string
	ImageURL   string
	IsImageOCR bool
}
