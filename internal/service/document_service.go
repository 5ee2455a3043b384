package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"weavai-be/internal/constant"
	"weavai-be/internal/dto"
	"weavai-be/internal/entity"
	"weavai-be/internal/pkg/logger"
	"weavai-be/internal/repository/specification"
	"weavai-be/internal/repository/unitofwork"
	"weavai-be/pkg/embedding"
	"weavai-be/pkg/events"
	"weavai-be/pkg/extract"
	pktNats "weavai-be/pkg/nats"
	"weavai-be/pkg/storage"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, ownerScope uuid.UUID, fileName string, data []byte) (*dto.UploadDocumentResponse, error)
	GetStatus(ctx context.Context, ownerScope uuid.UUID, id uuid.UUID) (*dto.DocumentStatusResponse, error)
	Ingest(ctx context.Context, documentId uuid.UUID) error
	SweepStaleJobs(ctx context.Context, cutoff time.Duration) error
}

// ExtractionPipeline is the document extraction flow. Interface-typed
// so tests can substitute a fake for the real pipeline.
type ExtractionPipeline interface {
	Run(ctx context.Context, data []byte, scope string) (*extract.Result, error)
}

type documentService struct {
	uowFactory        unitofwork.RepositoryFactory
	publisherService  IPublisherService
	blobStore         storage.BlobStore
	pipeline          ExtractionPipeline
	embeddingProvider embedding.EmbeddingProvider
	embeddingDim      int
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	blobStore storage.BlobStore,
	pipeline ExtractionPipeline,
	embeddingProvider embedding.EmbeddingProvider,
	embeddingDim int,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IDocumentService {
	if embeddingDim <= 0 {
		embeddingDim = constant.DefaultEmbeddingDim
	}
	return &documentService{
		uowFactory:        uowFactory,
		publisherService:  publisherService,
		blobStore:         blobStore,
		pipeline:          pipeline,
		embeddingProvider: embeddingProvider,
		embeddingDim:      embeddingDim,
		eventPublisher:    eventPublisher,
		logger:            sysLogger,
	}
}

// Upload stores the raw file, creates a pending job and queues
// ingestion.
func (s *documentService) Upload(ctx context.Context, ownerScope uuid.UUID, fileName string, data []byte) (*dto.UploadDocumentResponse, error) {
	doc := entity.Document{
		Id:         uuid.New(),
		OwnerScope: ownerScope,
		FileName:   fileName,
		Status:     constant.DocumentStatusPending,
		CreatedAt:  time.Now(),
	}
	doc.FileKey = fmt.Sprintf("sessions/%s/documents/%s_%s", ownerScope, doc.Id, fileName)

	fileURL, err := s.blobStore.Put(ctx, data, doc.FileKey, "application/pdf")
	if err != nil {
		return nil, err
	}
	doc.FileURL = fileURL

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	msgJson, err := json.Marshal(dto.PublishIngestDocumentMessage{DocumentId: doc.Id})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	return &dto.UploadDocumentResponse{
		Id:       doc.Id,
		FileName: doc.FileName,
		Status:   doc.Status,
	}, nil
}

func (s *documentService) GetStatus(ctx context.Context, ownerScope uuid.UUID, id uuid.UUID) (*dto.DocumentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.OwnerScope != ownerScope {
		return nil, constant.ErrDocumentNotFound
	}

	res := &dto.DocumentStatusResponse{
		Id:           doc.Id,
		FileName:     doc.FileName,
		Status:       doc.Status,
		ErrorMessage: doc.ErrorMessage,
		CreatedAt:    doc.CreatedAt,
	}
	if !doc.UpdatedAt.IsZero() {
		updatedAt := doc.UpdatedAt
		res.UpdatedAt = &updatedAt
	}
	if doc.Status == constant.DocumentStatusCompleted {
		res.FileURL = doc.FileURL
	}
	return res, nil
}

// Ingest runs the full extraction pipeline for one queued document.
// The status field is the sole coordination point: the job moves to
// processing before any work and every terminal outcome is either
// completed with at least one record or failed with a message.
func (s *documentService) Ingest(ctx context.Context, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return err
	}
	if doc == nil {
		return constant.ErrDocumentNotFound
	}
	if doc.Status != constant.DocumentStatusPending {
		return constant.ErrDocumentNotIdle
	}

	if err := uow.DocumentRepository().UpdateStatus(ctx, doc.Id, constant.DocumentStatusProcessing, ""); err != nil {
		return err
	}

	data, err := s.blobStore.Get(ctx, doc.FileKey)
	if err != nil {
		return s.failRun(ctx, uow, doc, fmt.Sprintf("could not read source file: %v", err))
	}

	result, err := s.pipeline.Run(ctx, data, doc.OwnerScope.String())
	if err != nil {
		return s.failRun(ctx, uow, doc, err.Error())
	}

	records := s.buildRecords(doc, result)
	if len(records) == 0 {
		return s.failRun(ctx, uow, doc, constant.ErrNoContentExtracted.Error())
	}

	if err := uow.MemoryRecordRepository().CreateBulk(ctx, records); err != nil {
		return s.failRun(ctx, uow, doc, fmt.Sprintf("could not store records: %v", err))
	}

	if err := uow.DocumentRepository().UpdateStatus(ctx, doc.Id, constant.DocumentStatusCompleted, ""); err != nil {
		return err
	}

	s.logger.Info("ingestion", "document ingested", map[string]interface{}{
		"document_id": doc.Id.String(),
		"file_name":   doc.FileName,
		"chunks":      len(result.Chunks),
		"image_ocr":   len(result.ImageChunks),
	})
	s.publishEvent(ctx, events.NewDocumentCompleted(doc.Id.String(), doc.OwnerScope.String(), doc.FileName, len(records)))
	return nil
}

func (s *documentService) buildRecords(doc *entity.Document, result *extract.Result) []*entity.MemoryRecord {
	blocks := make([]extract.Block, 0, len(result.Chunks)+len(result.ImageChunks))
	blocks = append(blocks, result.Chunks...)
	blocks = append(blocks, result.ImageChunks...)

	records := make([]*entity.MemoryRecord, 0, len(blocks))
	for _, b := range blocks {
		if b.Text == "" {
			continue
		}
		documentId := doc.Id
		records = append(records, &entity.MemoryRecord{
			Id:         uuid.New(),
			OwnerScope: doc.OwnerScope,
			Content:    b.Text,
			Embedding:  embedOrZero(s.embeddingProvider, b.Text, s.embeddingDim),
			Metadata: entity.RecordMetadata{
				SourceKind: constant.SourceKindPdf,
				DocumentId: &documentId,
				Filename:   doc.FileName,
				Page:       b.Page,
				BBox:       []float64{b.BBox.X0, b.BBox.Y0, b.BBox.X1, b.BBox.Y1},
				BBoxNorm:   b.NormBBox(),
				PageWidth:  b.PageWidth,
				PageHeight: b.PageHeight,
				SourceType: b.SourceType,
				ImageURL:   b.ImageURL,
				IsImageOCR: b.SourceType == extract.SourceTypeImageOCR,
			},
			CreatedAt: time.Now(),
		})
	}
	return records
}

// failRun marks the job failed with a human-readable message. The
// failure itself is the outcome, not an error to the caller.
func (s *documentService) failRun(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document, message string) error {
	if err := uow.DocumentRepository().UpdateStatus(ctx, doc.Id, constant.DocumentStatusFailed, message); err != nil {
		return err
	}
	s.logger.Warn("ingestion", "document failed", map[string]interface{}{
		"document_id": doc.Id.String(),
		"file_name":   doc.FileName,
		"reason":      message,
	})
	s.publishEvent(ctx, events.NewDocumentFailed(doc.Id.String(), doc.OwnerScope.String(), doc.FileName, message))
	return nil
}

func (s *documentService) publishEvent(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish %s event: %v", evt.EventType(), err)
	}
}

// SweepStaleJobs fails jobs stuck in processing longer than the
// cutoff. A crash mid-run leaves the status field as the only trace,
// so the sweep is the operational safety net for those rows.
func (s *documentService) SweepStaleJobs(ctx context.Context, cutoff time.Duration) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stale, err := uow.DocumentRepository().FindAll(ctx,
		specification.StatusIs{Status: constant.DocumentStatusProcessing},
		specification.UpdatedBefore{Cutoff: time.Now().Add(-cutoff)},
	)
	if err != nil {
		return err
	}

	for _, doc := range stale {
		message := "processing timed out"
		if err := uow.DocumentRepository().UpdateStatus(ctx, doc.Id, constant.DocumentStatusFailed, message); err != nil {
			return err
		}
		log.Printf("[WARN] Swept stale document job %s (%s)", doc.Id, doc.FileName)
		s.publishEvent(ctx, events.NewDocumentFailed(doc.Id.String(), doc.OwnerScope.String(), doc.FileName, message))
	}
	return nil
}
