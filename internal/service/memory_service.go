package service

import (
	"context"
	"time"

	"weavai-be/internal/constant"
	"weavai-be/internal/dto"
	"weavai-be/internal/entity"
	"weavai-be/internal/repository/unitofwork"
	"weavai-be/pkg/embedding"
	"weavai-be/pkg/retrieval"

	"github.com/google/uuid"
)

type IMemoryService interface {
	Add(ctx context.Context, req *dto.AddMemoryRequest) (*dto.AddMemoryResponse, error)
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
	GetRelevantContext(ctx context.Context, req *dto.RelevantContextRequest) (*retrieval.ContextPayload, error)
}

type memoryService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	engine            *retrieval.Engine
	embeddingDim      int
	rerankEnabled     bool
	rerankAll         bool
}

func NewMemoryService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	engine *retrieval.Engine,
	embeddingDim int,
	rerankEnabled bool,
	rerankAll bool,
) IMemoryService {
	if embeddingDim <= 0 {
		embeddingDim = constant.DefaultEmbeddingDim
	}
	return &memoryService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		engine:            engine,
		embeddingDim:      embeddingDim,
		rerankEnabled:     rerankEnabled,
		rerankAll:         rerankAll,
	}
}

// Add writes one record for non-document content (chat turns,
// generation events). Empty content is a no-op; ingestion and chat
// both rely on that instead of pre-checking.
func (s *memoryService) Add(ctx context.Context, req *dto.AddMemoryRequest) (*dto.AddMemoryResponse, error) {
	if req.Content == "" {
		return nil, nil
	}
	if !constant.ValidSourceKind(req.SourceKind) {
		return nil, constant.ErrUnknownSourceKind
	}

	record := &entity.MemoryRecord{
		Id:         uuid.New(),
		OwnerScope: req.OwnerScope,
		Content:    req.Content,
		Embedding:  embedOrZero(s.embeddingProvider, req.Content, s.embeddingDim),
		Metadata: entity.RecordMetadata{
			SourceKind: req.SourceKind,
			ImageURL:   req.ImageURL,
		},
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MemoryRecordRepository().Create(ctx, record); err != nil {
		return nil, err
	}

	return &dto.AddMemoryResponse{Id: record.Id}, nil
}

func (s *memoryService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	if req.Query == "" {
		return nil, constant.ErrEmptyQuery
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := s.engine.Search(ctx, uow.MemoryRecordRepository(), retrieval.Params{
		Scopes:             req.Scopes,
		Query:              req.Query,
		Limit:              req.Limit,
		DocumentId:         req.DocumentId,
		ExcludeSourceKinds: req.ExcludeSourceKinds,
		Rerank:             s.rerankEnabled && (req.DocumentId != nil || s.rerankAll),
	})
	if err != nil {
		return nil, err
	}

	res := &dto.SearchResponse{Results: make([]dto.SearchResultItem, 0, len(records))}
	for _, rec := range records {
		res.Results = append(res.Results, dto.SearchResultItem{
			Id:         rec.Id,
			Content:    rec.Content,
			SourceKind: rec.Metadata.SourceKind,
			SourceType: rec.Metadata.SourceType,
			DocumentId: rec.Metadata.DocumentId,
			Filename:   rec.Metadata.Filename,
			Page:       rec.Metadata.Page,
			BBox:       rec.Metadata.BBox,
			BBoxNorm:   rec.Metadata.BBoxNorm,
			ImageURL:   rec.Metadata.ImageURL,
		})
	}
	return res, nil
}

// GetRelevantContext searches the scope and renders the results into
// the fixed context payload schema, bounded by the character budget.
func (s *memoryService) GetRelevantContext(ctx context.Context, req *dto.RelevantContextRequest) (*retrieval.ContextPayload, error) {
	if req.Query == "" {
		return nil, constant.ErrEmptyQuery
	}

	budget := req.MaxCharBudget
	if budget <= 0 {
		budget = 4000
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := s.engine.Search(ctx, uow.MemoryRecordRepository(), retrieval.Params{
		Scopes: []uuid.UUID{req.Scope},
		Query:  req.Query,
		Limit:  10,
		Rerank: s.rerankEnabled && s.rerankAll,
	})
	if err != nil {
		return nil, err
	}

	return retrieval.BuildContextPayload(constant.ContextSystemNote, records, budget), nil
}

// embedOrZero computes an embedding with the all-zero sentinel as
// fallback: a transiently unavailable provider must never abort a
// write.
func embedOrZero(provider embedding.EmbeddingProvider, text string, dim int) []float32 {
	if provider != nil {
		resp, err := provider.Generate(text, "RETRIEVAL_DOCUMENT")
		if err == nil && resp != nil && len(resp.Embedding.Values) > 0 {
			return resp.Embedding.Values
		}
	}
	return make([]float32, dim)
}
