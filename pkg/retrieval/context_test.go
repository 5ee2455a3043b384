package retrieval

import (
	"strings"
	"testing"
	"unicode/utf8"

	"weavai-be/internal/entity"
)

func recordWithFile(content, filename string, page int) *entity.MemoryRecord {
	rec := newRecord(content, page)
	rec.Metadata.Filename = filename
	return rec
}

func TestBuildContextPayloadStopsBeforeOverflow(t *testing.T) {
	note := "cite your sources"
	records := []*entity.MemoryRecord{
		recordWithFile(strings.Repeat("a", 50), "doc.pdf", 1),
		recordWithFile(strings.Repeat("b", 50), "doc.pdf", 2),
		recordWithFile(strings.Repeat("c", 50), "doc.pdf", 3),
	}

	// Room for the note plus two items, not three.
	budget := utf8.RuneCountInString(note) + 2*(50+len("doc.pdf")+contextItemOverhead) + 10
	payload := BuildContextPayload(note, records, budget)

	if len(payload.RelevantContext) != 2 {
		t.Fatalf("item count = %d, want 2", len(payload.RelevantContext))
	}
	if payload.RelevantContext[0].Text != records[0].Content {
		t.Error("items are not in relevance order")
	}
	if payload.SystemNote != note {
		t.Errorf("system note = %q, want %q", payload.SystemNote, note)
	}
}

func TestBuildContextPayloadNeverTruncatesMidItem(t *testing.T) {
	records := []*entity.MemoryRecord{
		recordWithFile(strings.Repeat("a", 200), "doc.pdf", 1),
	}

	payload := BuildContextPayload("note", records, 50)
	if len(payload.RelevantContext) != 0 {
		t.Errorf("item count = %d, want 0 when nothing fits", len(payload.RelevantContext))
	}
	if payload.RelevantContext == nil {
		t.Error("relevant_context must serialize as an empty array, not null")
	}
}

func TestBuildContextPayloadCarriesItemFields(t *testing.T) {
	rec := recordWithFile("text body", "report.pdf", 4)
	rec.Metadata.BBox = []float64{1, 2, 3, 4}
	rec.Metadata.SourceType = "merged"

	payload := BuildContextPayload("note", []*entity.MemoryRecord{rec}, 10000)
	if len(payload.RelevantContext) != 1 {
		t.Fatalf("item count = %d, want 1", len(payload.RelevantContext))
	}

	item := payload.RelevantContext[0]
	if item.Text != "text body" || item.Source != "report.pdf" || item.Page != 4 || item.Type != "merged" {
		t.Errorf("item = %+v", item)
	}
	if len(item.BBox) != 4 {
		t.Errorf("bbox = %v, want 4 floats", item.BBox)
	}
}
