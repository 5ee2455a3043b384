package service

import (
	"context"
	"errors"
	"testing"

	"weavai-be/internal/constant"
	"weavai-be/internal/dto"
	"weavai-be/pkg/embedding"
	"weavai-be/pkg/retrieval"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: f.vector},
	}, nil
}

func newTestMemoryService(uow *fakeUow, provider embedding.EmbeddingProvider) IMemoryService {
	engine := retrieval.NewEngine(provider, nil)
	return NewMemoryService(&fakeFactory{uow: uow}, provider, engine, 4, false, false)
}

func TestAddStoresRecordWithEmbedding(t *testing.T) {
	uow := &fakeUow{memoryRepo: &fakeMemoryRepo{}, documentRepo: newFakeDocumentRepo()}
	svc := newTestMemoryService(uow, &fakeEmbedder{vector: []float32{0.1, 0.2, 0.3, 0.4}})

	res, err := svc.Add(context.Background(), &dto.AddMemoryRequest{
		OwnerScope: uuid.New(),
		Content:    "user asked about deadlines",
		SourceKind: constant.SourceKindChat,
	})

	assert.NoError(t, err)
	assert.NotNil(t, res)
	assert.Len(t, uow.memoryRepo.records, 1)
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4}, uow.memoryRepo.records[0].Embedding)
}

func TestAddEmptyContentIsNoOp(t *testing.T) {
	uow := &fakeUow{memoryRepo: &fakeMemoryRepo{}, documentRepo: newFakeDocumentRepo()}
	svc := newTestMemoryService(uow, nil)

	res, err := svc.Add(context.Background(), &dto.AddMemoryRequest{
		OwnerScope: uuid.New(),
		SourceKind: constant.SourceKindChat,
	})

	assert.NoError(t, err)
	assert.Nil(t, res)
	assert.Empty(t, uow.memoryRepo.records)
}

func TestAddRejectsUnknownSourceKind(t *testing.T) {
	uow := &fakeUow{memoryRepo: &fakeMemoryRepo{}, documentRepo: newFakeDocumentRepo()}
	svc := newTestMemoryService(uow, nil)

	_, err := svc.Add(context.Background(), &dto.AddMemoryRequest{
		OwnerScope: uuid.New(),
		Content:    "something",
		SourceKind: "carrier-pigeon",
	})

	assert.ErrorIs(t, err, constant.ErrUnknownSourceKind)
}

func TestAddFallsBackToZeroVector(t *testing.T) {
	uow := &fakeUow{memoryRepo: &fakeMemoryRepo{}, documentRepo: newFakeDocumentRepo()}
	svc := newTestMemoryService(uow, &fakeEmbedder{err: errors.New("provider down")})

	res, err := svc.Add(context.Background(), &dto.AddMemoryRequest{
		OwnerScope: uuid.New(),
		Content:    "still stored",
		SourceKind: constant.SourceKindChat,
	})

	assert.NoError(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, make([]float32, 4), uow.memoryRepo.records[0].Embedding)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	uow := &fakeUow{memoryRepo: &fakeMemoryRepo{}, documentRepo: newFakeDocumentRepo()}
	svc := newTestMemoryService(uow, nil)

	_, err := svc.Search(context.Background(), &dto.SearchRequest{
		Scopes: []uuid.UUID{uuid.New()},
	})

	assert.ErrorIs(t, err, constant.ErrEmptyQuery)
}

func TestSearchReturnsMatchesFromStore(t *testing.T) {
	uow := &fakeUow{memoryRepo: &fakeMemoryRepo{}, documentRepo: newFakeDocumentRepo()}
	scope := uuid.New()
	svc := newTestMemoryService(uow, nil)

	for _, content := range []string{"신청 기간은 3월까지", "전혀 무관한 내용"} {
		_, err := svc.Add(context.Background(), &dto.AddMemoryRequest{
			OwnerScope: scope,
			Content:    content,
			SourceKind: constant.SourceKindChat,
		})
		assert.NoError(t, err)
	}

	res, err := svc.Search(context.Background(), &dto.SearchRequest{
		Scopes: []uuid.UUID{scope},
		Query:  "신청 기간",
		Limit:  5,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, res.Results)
	assert.Equal(t, "신청 기간은 3월까지", res.Results[0].Content)
}

func TestGetRelevantContextRendersPayload(t *testing.T) {
	uow := &fakeUow{memoryRepo: &fakeMemoryRepo{}, documentRepo: newFakeDocumentRepo()}
	scope := uuid.New()
	svc := newTestMemoryService(uow, nil)

	_, err := svc.Add(context.Background(), &dto.AddMemoryRequest{
		OwnerScope: scope,
		Content:    "지원 대상은 청년입니다",
		SourceKind: constant.SourceKindChat,
	})
	assert.NoError(t, err)

	payload, err := svc.GetRelevantContext(context.Background(), &dto.RelevantContextRequest{
		Scope: scope,
		Query: "지원 대상",
	})

	assert.NoError(t, err)
	assert.Equal(t, constant.ContextSystemNote, payload.SystemNote)
	assert.Len(t, payload.RelevantContext, 1)
	assert.Equal(t, "지원 대상은 청년입니다", payload.RelevantContext[0].Text)
}
