package contract

import (
	"context"

	"weavai-be/internal/entity"
	"weavai-be/internal/repository/specification"

	"github.com/google/uuid"
)

// MemoryRecordRepository persists and queries indexed memory records.
// Records are immutable once written; there is no update path.
type MemoryRecordRepository interface {
	Create(ctx context.Context, record *entity.MemoryRecord) error
	CreateBulk(ctx context.Context, records []*entity.MemoryRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MemoryRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error

	// SearchByVector returns records ordered by ascending cosine distance
	// to the query vector, after applying the given filter specifications.
	SearchByVector(ctx context.Context, embedding []float32, limit int, specs ...specification.Specification) ([]*entity.MemoryRecord, error)
}
