package constant

// Source kinds describe where a memory record came from.
const (
	SourceKindChat     = "chat"
	SourceKindPdf      = "pdf"
	SourceKindImageOCR = "image-ocr"
)

// Source types describe which extraction path produced the content.
const (
	SourceTypeParsed   = "parsed"
	SourceTypeOCR      = "ocr"
	SourceTypeMerged   = "merged"
	SourceTypeImageOCR = "image_ocr"
)

// Document ingestion job lifecycle. Transitions are one-directional:
// pending -> processing -> completed | failed.
const (
	DocumentStatusPending    = "pending"
	DocumentStatusProcessing = "processing"
	DocumentStatusCompleted  = "completed"
	DocumentStatusFailed     = "failed"
)

const DefaultEmbeddingDim = 1536

// ContextSystemNote is the citation instruction embedded in every context
// payload. Kept verbatim from the product requirement (Korean).
const ContextSystemNote = "답변 마지막에 반드시 출처를 명시하십시오. 형식: '해당 답변의 근거는 [파일명.pdf] [페이지 번호]장에 명시되어 있음'."

func ValidSourceKind(kind string) bool {
	switch kind {
	case SourceKindChat, SourceKindPdf, SourceKindImageOCR:
		return true
	}
	return false
}

func ValidSourceType(sourceType string) bool {
	switch sourceType {
	case SourceTypeParsed, SourceTypeOCR, SourceTypeMerged, SourceTypeImageOCR:
		return true
	}
	return false
}
