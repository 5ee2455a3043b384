package contract

import (
	"context"

	"weavai-be/internal/entity"
	"weavai-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)

	// UpdateStatus writes the job status and error message for a document.
	// It is the only mutation documents receive after creation.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, errorMessage string) error
}
