package mapper

import (
	"weavai-be/internal/entity"
	"weavai-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:           d.Id,
		OwnerScope:   d.OwnerScope,
		FileName:     d.FileName,
		FileKey:      d.FileKey,
		FileURL:      d.FileURL,
		Status:       d.Status,
		ErrorMessage: d.ErrorMessage,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (m *DocumentMapper) ToModel(e *entity.Document) *model.Document {
	if e == nil {
		return nil
	}
	return &model.Document{
		Id:           e.Id,
		OwnerScope:   e.OwnerScope,
		FileName:     e.FileName,
		FileKey:      e.FileKey,
		FileURL:      e.FileURL,
		Status:       e.Status,
		ErrorMessage: e.ErrorMessage,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
