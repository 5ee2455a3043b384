package extract

import (
	"testing"
)

func TestIoU(t *testing.T) {
	box := BBox{0, 0, 10, 10}

	if got := IoU(box, box); got != 1.0 {
		t.Errorf("IoU(box, box) = %v, want 1.0", got)
	}

	disjoint := BBox{20, 20, 30, 30}
	if got := IoU(box, disjoint); got != 0.0 {
		t.Errorf("IoU(disjoint) = %v, want 0.0", got)
	}

	other := BBox{5, 5, 15, 15}
	if IoU(box, other) != IoU(other, box) {
		t.Errorf("IoU is not symmetric: %v vs %v", IoU(box, other), IoU(other, box))
	}

	degenerate := BBox{5, 5, 5, 5}
	if got := IoU(degenerate, degenerate); got != 0.0 {
		t.Errorf("IoU(zero-area) = %v, want 0.0", got)
	}
}

func TestDedupMergeDropsOverlappingOCR(t *testing.T) {
	parsed := []Block{
		{Text: "parsed text", Page: 1, BBox: BBox{0, 0, 10, 10}, SourceType: SourceTypeParsed},
	}
	// Overlap well above the threshold (IoU ~0.43).
	ocrBlocks := []Block{
		{Text: "ocr text", Page: 1, BBox: BBox{0, 4, 10, 14}, SourceType: SourceTypeOCR},
	}

	merged := DedupMerge(parsed, ocrBlocks)
	if len(merged) != 1 {
		t.Fatalf("merged length = %d, want 1", len(merged))
	}
	if merged[0].Text != "parsed text" {
		t.Errorf("kept block = %q, want the parsed one", merged[0].Text)
	}
	if merged[0].SourceType != SourceTypeMerged {
		t.Errorf("source type = %q, want %q", merged[0].SourceType, SourceTypeMerged)
	}
}

func TestDedupMergeKeepsDistinctOCR(t *testing.T) {
	parsed := []Block{
		{Text: "parsed", Page: 1, BBox: BBox{0, 0, 10, 10}},
	}
	ocrBlocks := []Block{
		// Corner touch, IoU ~0.005.
		{Text: "ocr corner", Page: 1, BBox: BBox{9, 9, 19, 19}},
		// Same box but another page is never a duplicate.
		{Text: "ocr page two", Page: 2, BBox: BBox{0, 0, 10, 10}},
	}

	merged := DedupMerge(parsed, ocrBlocks)
	if len(merged) != 3 {
		t.Fatalf("merged length = %d, want 3", len(merged))
	}
}

func TestDedupMergeReadingOrder(t *testing.T) {
	parsed := []Block{
		{Text: "page2 low", Page: 2, BBox: BBox{0, 50, 10, 60}},
		{Text: "page1 low", Page: 1, BBox: BBox{0, 50, 10, 60}},
	}
	ocrBlocks := []Block{
		{Text: "page1 high", Page: 1, BBox: BBox{0, 5, 10, 15}},
	}

	merged := DedupMerge(parsed, ocrBlocks)
	want := []string{"page1 high", "page1 low", "page2 low"}
	for i, w := range want {
		if merged[i].Text != w {
			t.Errorf("merged[%d] = %q, want %q", i, merged[i].Text, w)
		}
	}
}
