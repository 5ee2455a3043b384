package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"weavai-be/internal/constant"
	"weavai-be/internal/entity"
	"weavai-be/internal/repository/contract"
	"weavai-be/internal/repository/specification"
	"weavai-be/internal/repository/unitofwork"
	"weavai-be/pkg/extract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// --- Fakes ---

type fakeDocumentRepo struct {
	docs map[uuid.UUID]*entity.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[uuid.UUID]*entity.Document{}}
}

func (r *fakeDocumentRepo) Create(ctx context.Context, document *entity.Document) error {
	r.docs[document.Id] = document
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			return r.docs[byID.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	var status string
	var cutoff time.Time
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.StatusIs:
			status = spec.Status
		case specification.UpdatedBefore:
			cutoff = spec.Cutoff
		}
	}

	var out []*entity.Document
	for _, doc := range r.docs {
		if status != "" && doc.Status != status {
			continue
		}
		if !cutoff.IsZero() && !doc.UpdatedAt.Before(cutoff) {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

func (r *fakeDocumentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, errorMessage string) error {
	doc, ok := r.docs[id]
	if !ok {
		return errors.New("document not found")
	}
	doc.Status = status
	doc.ErrorMessage = errorMessage
	doc.UpdatedAt = time.Now()
	return nil
}

type fakeMemoryRepo struct {
	records []*entity.MemoryRecord
}

func (r *fakeMemoryRepo) Create(ctx context.Context, record *entity.MemoryRecord) error {
	r.records = append(r.records, record)
	return nil
}

func (r *fakeMemoryRepo) CreateBulk(ctx context.Context, records []*entity.MemoryRecord) error {
	r.records = append(r.records, records...)
	return nil
}

func (r *fakeMemoryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MemoryRecord, error) {
	return r.records, nil
}

func (r *fakeMemoryRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.records)), nil
}

func (r *fakeMemoryRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}

func (r *fakeMemoryRepo) SearchByVector(ctx context.Context, embedding []float32, limit int, specs ...specification.Specification) ([]*entity.MemoryRecord, error) {
	if len(r.records) > limit {
		return r.records[:limit], nil
	}
	return r.records, nil
}

type fakeUow struct {
	memoryRepo   *fakeMemoryRepo
	documentRepo *fakeDocumentRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }
func (u *fakeUow) MemoryRecordRepository() contract.MemoryRecordRepository {
	return u.memoryRepo
}
func (u *fakeUow) DocumentRepository() contract.DocumentRepository {
	return u.documentRepo
}

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeBlob struct {
	data   []byte
	getErr error
	puts   map[string][]byte
}

func (b *fakeBlob) Put(ctx context.Context, data []byte, key string, contentType string) (string, error) {
	if b.puts == nil {
		b.puts = map[string][]byte{}
	}
	b.puts[key] = data
	return "https://blob.local/" + key, nil
}

func (b *fakeBlob) Get(ctx context.Context, key string) ([]byte, error) {
	if b.getErr != nil {
		return nil, b.getErr
	}
	return b.data, nil
}

func (b *fakeBlob) PresignedURL(ctx context.Context, key string) (string, error) {
	return "https://blob.local/" + key, nil
}

type fakePipeline struct {
	result *extract.Result
	err    error
}

func (p *fakePipeline) Run(ctx context.Context, data []byte, scope string) (*extract.Result, error) {
	return p.result, p.err
}

type fakePublisher struct {
	published [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.published = append(p.published, payload)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// --- Helpers ---

func newTestDocumentService(uow *fakeUow, blob *fakeBlob, pipeline ExtractionPipeline, publisher IPublisherService) IDocumentService {
	return NewDocumentService(
		&fakeFactory{uow: uow},
		publisher,
		blob,
		pipeline,
		nil, // no embedding provider, records get the zero-vector sentinel
		8,
		nil,
		nopLogger{},
	)
}

func seedPendingDocument(repo *fakeDocumentRepo) *entity.Document {
	doc := &entity.Document{
		Id:         uuid.New(),
		OwnerScope: uuid.New(),
		FileName:   "report.pdf",
		FileKey:    "sessions/x/documents/report.pdf",
		Status:     constant.DocumentStatusPending,
		CreatedAt:  time.Now(),
	}
	repo.docs[doc.Id] = doc
	return doc
}

func textBlock(text string, page int) extract.Block {
	return extract.Block{
		Text:       text,
		Page:       page,
		BBox:       extract.BBox{X0: 0, Y0: 0, X1: 100, Y1: 20},
		PageWidth:  200,
		PageHeight: 400,
		SourceType: extract.SourceTypeMerged,
	}
}

// --- Tests ---

func TestIngestCompletesWithRecords(t *testing.T) {
	uow := &fakeUow{memoryRepo: &fakeMemoryRepo{}, documentRepo: newFakeDocumentRepo()}
	doc := seedPendingDocument(uow.documentRepo)
	blob := &fakeBlob{data: []byte("pdf bytes")}
	pipeline := &fakePipeline{result: &extract.Result{
		Chunks: []extract.Block{textBlock("first chunk", 1), textBlock("second chunk", 2)},
		ImageChunks: []extract.Block{{
			Text:       "image caption text",
			Page:       1,
			BBox:       extract.BBox{X0: 10, Y0: 10, X1: 110, Y1: 80},
			PageWidth:  200,
			PageHeight: 400,
			SourceType: extract.SourceTypeImageOCR,
			ImageURL:   "https://blob.local/img.png",
		}},
	}}

	svc := newTestDocumentService(uow, blob, pipeline, &fakePublisher{})
	err := svc.Ingest(context.Background(), doc.Id)

	assert.NoError(t, err)
	assert.Equal(t, constant.DocumentStatusCompleted, doc.Status)
	assert.Len(t, uow.memoryRepo.records, 3)

	first := uow.memoryRepo.records[0]
	assert.Equal(t, constant.SourceKindPdf, first.Metadata.SourceKind)
	assert.Equal(t, doc.Id, *first.Metadata.DocumentId)
	assert.Equal(t, "report.pdf", first.Metadata.Filename)
	assert.Len(t, first.Embedding, 8) // zero-vector sentinel, store dimension

	imageRecord := uow.memoryRepo.records[2]
	assert.True(t, imageRecord.Metadata.IsImageOCR)
	assert.NotEmpty(t, imageRecord.Metadata.ImageURL)
	// bbox_norm divides by page dimensions
	assert.InDelta(t, 0.05, imageRecord.Metadata.BBoxNorm[0], 1e-9)
}

func TestIngestZeroContentFailsJob(t *testing.T) {
	uow := &fakeUow{memoryRepo: &fakeMemoryRepo{}, documentRepo: newFakeDocumentRepo()}
	doc := seedPendingDocument(uow.documentRepo)
	blob := &fakeBlob{data: []byte("pdf bytes")}
	pipeline := &fakePipeline{result: &extract.Result{}}

	svc := newTestDocumentService(uow, blob, pipeline, &fakePublisher{})
	err := svc.Ingest(context.Background(), doc.Id)

	assert.NoError(t, err)
	assert.Equal(t, constant.DocumentStatusFailed, doc.Status)
	assert.Equal(t, constant.ErrNoContentExtracted.Error(), doc.ErrorMessage)
	assert.Empty(t, uow.memoryRepo.records)
}

func TestIngestBlobFailureFailsJob(t *testing.T) {
	uow := &fakeUow{memoryRepo: &fakeMemoryRepo{}, documentRepo: newFakeDocumentRepo()}
	doc := seedPendingDocument(uow.documentRepo)
	blob := &fakeBlob{getErr: errors.New("connection refused")}

	svc := newTestDocumentService(uow, blob, &fakePipeline{}, &fakePublisher{})
	err := svc.Ingest(context.Background(), doc.Id)

	assert.NoError(t, err)
	assert.Equal(t, constant.DocumentStatusFailed, doc.Status)
	assert.Contains(t, doc.ErrorMessage, "could not read source file")
}

func TestIngestRejectsUnknownDocument(t *testing.T) {
	uow := &fakeUow{memoryRepo: &fakeMemoryRepo{}, documentRepo: newFakeDocumentRepo()}
	svc := newTestDocumentService(uow, &fakeBlob{}, &fakePipeline{}, &fakePublisher{})

	err := svc.Ingest(context.Background(), uuid.New())
	assert.ErrorIs(t, err, constant.ErrDocumentNotFound)
}

func TestIngestRejectsNonPendingDocument(t *testing.T) {
	uow := &fakeUow{memoryRepo: &fakeMemoryRepo{}, documentRepo: newFakeDocumentRepo()}
	doc := seedPendingDocument(uow.documentRepo)
	doc.Status = constant.DocumentStatusProcessing

	svc := newTestDocumentService(uow, &fakeBlob{}, &fakePipeline{}, &fakePublisher{})
	err := svc.Ingest(context.Background(), doc.Id)
	assert.ErrorIs(t, err, constant.ErrDocumentNotIdle)
}

func TestUploadCreatesPendingJobAndQueuesIngestion(t *testing.T) {
	uow := &fakeUow{memoryRepo: &fakeMemoryRepo{}, documentRepo: newFakeDocumentRepo()}
	blob := &fakeBlob{}
	publisher := &fakePublisher{}
	svc := newTestDocumentService(uow, blob, &fakePipeline{}, publisher)

	scope := uuid.New()
	res, err := svc.Upload(context.Background(), scope, "manual.pdf", []byte("%PDF"))

	assert.NoError(t, err)
	assert.Equal(t, constant.DocumentStatusPending, res.Status)
	assert.Len(t, publisher.published, 1)
	assert.Contains(t, string(publisher.published[0]), res.Id.String())

	stored := uow.documentRepo.docs[res.Id]
	assert.Equal(t, scope, stored.OwnerScope)
	assert.True(t, strings.HasPrefix(stored.FileKey, "sessions/"+scope.String()+"/documents/"))
	assert.NotEmpty(t, blob.puts[stored.FileKey])
}

func TestSweepStaleJobsFailsOldProcessingRows(t *testing.T) {
	uow := &fakeUow{memoryRepo: &fakeMemoryRepo{}, documentRepo: newFakeDocumentRepo()}

	stale := seedPendingDocument(uow.documentRepo)
	stale.Status = constant.DocumentStatusProcessing
	stale.UpdatedAt = time.Now().Add(-2 * time.Hour)

	fresh := seedPendingDocument(uow.documentRepo)
	fresh.Status = constant.DocumentStatusProcessing
	fresh.UpdatedAt = time.Now()

	svc := newTestDocumentService(uow, &fakeBlob{}, &fakePipeline{}, &fakePublisher{})
	err := svc.SweepStaleJobs(context.Background(), 30*time.Minute)

	assert.NoError(t, err)
	assert.Equal(t, constant.DocumentStatusFailed, stale.Status)
	assert.Equal(t, constant.DocumentStatusProcessing, fresh.Status)
}
