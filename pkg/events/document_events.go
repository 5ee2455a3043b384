package events

import "time"

// NewDocumentCompleted is emitted when a document run finishes with
// at least one stored chunk.
func NewDocumentCompleted(documentId, ownerScope, fileName string, chunkCount int) Event {
	return BaseEvent{
		Type: "DOCUMENT_COMPLETED",
		Data: map[string]interface{}{
			"document_id": documentId,
			"owner_scope": ownerScope,
			"file_name":   fileName,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentFailed is emitted when a run fails for any reason,
// including extraction producing zero chunks.
func NewDocumentFailed(documentId, ownerScope, fileName, reason string) Event {
	return BaseEvent{
		Type: "DOCUMENT_FAILED",
		Data: map[string]interface{}{
			"document_id": documentId,
			"owner_scope": ownerScope,
			"file_name":   fileName,
			"reason":      reason,
		},
		OccurredAt: time.Now(),
	}
}
