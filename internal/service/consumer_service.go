package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"weavai-be/internal/constant"
	"weavai-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	documentService IDocumentService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	documentService IDocumentService,
) IConsumerService {
	return &consumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		documentService: documentService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIngestDocumentMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing document ingestion for DocumentId: %s", payload.DocumentId)

	err = cs.documentService.Ingest(ctx, payload.DocumentId)
	switch {
	case err == nil:
		msg.Ack()
	case errors.Is(err, constant.ErrDocumentNotFound), errors.Is(err, constant.ErrDocumentNotIdle):
		// Deleted or already picked up; retrying cannot help.
		log.Printf("[WARN] Skipping document %s: %v", payload.DocumentId, err)
		msg.Ack()
	default:
		log.Printf("[ERROR] Ingestion failed for document %s: %v", payload.DocumentId, err)
		msg.Nack() // Nack for retriable errors
	}
}
