package retrieval

import (
	"unicode/utf8"

	"weavai-be/internal/entity"
)

// Fixed per-item margin covering the JSON field names, punctuation
// and numeric fields of a serialized context item.
const contextItemOverhead = 100

// ContextItem is one entry of the serialized context payload handed
// to a downstream answerer.
type ContextItem struct {
	Text   string    `json:"text"`
	Source string    `json:"source"`
	Page   int       `json:"page"`
	BBox   []float64 `json:"bbox"`
	Type   string    `json:"type"`
}

// ContextPayload is the fixed-schema answer context: an instruction
// string plus relevance-ordered items.
type ContextPayload struct {
	SystemNote      string        `json:"system_note"`
	RelevantContext []ContextItem `json:"relevant_context"`
}

// BuildContextPayload converts ranked records into a payload bounded
// by maxCharBudget. Items are added greedily in relevance order and
// the loop stops before the first item that would overflow the
// budget, so the payload never carries a truncated item.
func BuildContextPayload(systemNote string, records []*entity.MemoryRecord, maxCharBudget int) *ContextPayload {
	payload := &ContextPayload{
		SystemNote:      systemNote,
		RelevantContext: []ContextItem{},
	}

	used := utf8.RuneCountInString(systemNote)
	for _, rec := range records {
		cost := utf8.RuneCountInString(rec.Content) +
			utf8.RuneCountInString(rec.Metadata.Filename) +
			contextItemOverhead
		if used+cost > maxCharBudget {
			break
		}
		used += cost

		payload.RelevantContext = append(payload.RelevantContext, ContextItem{
			Text:   rec.Content,
			Source: rec.Metadata.Filename,
			Page:   rec.Metadata.Page,
			BBox:   rec.Metadata.BBox,
			Type:   rec.Metadata.SourceType,
		})
	}
	return payload
}
