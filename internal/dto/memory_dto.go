package dto

import (
	"github.com/google/uuid"
)

type AddMemoryRequest struct {
	OwnerScope uuid.UUID `json:"owner_scope" validate:"required"`
	Content    string    `json:"content"`
	SourceKind string    `json:"source_kind" validate:"required"`
	ImageURL   string    `json:"image_url"`
}

type AddMemoryResponse struct {
	Id uuid.UUID `json:"id"`
}

type SearchRequest struct {
	Scopes             []uuid.UUID `json:"scopes" validate:"required,min=1"`
	Query              string      `json:"query" validate:"required"`
	Limit              int         `json:"limit"`
	DocumentId         *uuid.UUID  `json:"document_id"`
	ExcludeSourceKinds []string    `json:"exclude_source_kinds"`
}

type SearchResultItem struct {
	Id         uuid.UUID  `json:"id"`
	Content    string     `json:"content"`
	SourceKind string     `json:"source_kind"`
	SourceType string     `json:"source_type"`
	DocumentId *uuid.UUID `json:"document_id,omitempty"`
	Filename   string     `json:"filename,omitempty"`
	Page       int        `json:"page,omitempty"`
	BBox       []float64  `json:"bbox,omitempty"`
	BBoxNorm   []float64  `json:"bbox_norm,omitempty"`
	ImageURL   string     `json:"image_url,omitempty"`
}

type SearchResponse struct {
	Results []SearchResultItem `json:"results"`
}

type RelevantContextRequest struct {
	Scope         uuid.UUID `json:"scope" validate:"required"`
	Query         string    `json:"query" validate:"required"`
	MaxCharBudget int       `json:"max_char_budget"`
}
