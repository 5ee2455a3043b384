package unitofwork

import (
	"context"

	"weavai-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	MemoryRecordRepository() contract.MemoryRecordRepository
	DocumentRepository() contract.DocumentRepository
}
