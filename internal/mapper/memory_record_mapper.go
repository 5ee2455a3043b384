package mapper

import (
	"weavai-be/internal/entity"
	"weavai-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type MemoryRecordMapper struct{}

func NewMemoryRecordMapper() *MemoryRecordMapper {
	return &MemoryRecordMapper{}
}

func (m *MemoryRecordMapper) ToEntity(r *model.MemoryRecord) *entity.MemoryRecord {
	if r == nil {
		return nil
	}

	return &entity.MemoryRecord{
		Id:         r.Id,
		OwnerScope: r.OwnerScope,
		Content:    r.Content,
		Embedding:  r.Embedding.Slice(),
		Metadata: entity.RecordMetadata{
			SourceKind: r.SourceKind,
			DocumentId: r.DocumentId,
			Filename:   r.Filename,
			Page:       r.Page,
			BBox:       []float64(r.BBox),
			BBoxNorm:   []float64(r.BBoxNorm),
			PageWidth:  r.PageWidth,
			PageHeight: r.PageHeight,
			SourceType: r.SourceType,
			ImageURL:   r.ImageURL,
			IsImageOCR: r.IsImageOCR,
		},
		CreatedAt: r.CreatedAt,
	}
}

func (m *MemoryRecordMapper) ToModel(e *entity.MemoryRecord) *model.MemoryRecord {
	if e == nil {
		return nil
	}

	return &model.MemoryRecord{
		Id:         e.Id,
		OwnerScope: e.OwnerScope,
		Content:    e.Content,
		Embedding:  pgvector.NewVector(e.Embedding),
		SourceKind: e.Metadata.SourceKind,
		DocumentId: e.Metadata.DocumentId,
		Filename:   e.Metadata.Filename,
		Page:       e.Metadata.Page,
		BBox:       datatypes.JSONSlice[float64](e.Metadata.BBox),
		BBoxNorm:   datatypes.JSONSlice[float64](e.Metadata.BBoxNorm),
		PageWidth:  e.Metadata.PageWidth,
		PageHeight: e.Metadata.PageHeight,
		SourceType: e.Metadata.SourceType,
		ImageURL:   e.Metadata.ImageURL,
		IsImageOCR: e.Metadata.IsImageOCR,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *MemoryRecordMapper) ToEntities(records []*model.MemoryRecord) []*entity.MemoryRecord {
	entities := make([]*entity.MemoryRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
