package extract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func blockAt(text string, y float64) Block {
	return Block{
		Text:       text,
		Page:       1,
		BBox:       BBox{0, y, 100, y + 10},
		PageWidth:  100,
		PageHeight: 1000,
	}
}

func TestChunkBlocksRespectsMaxChars(t *testing.T) {
	cfg := ChunkerConfig{MaxChars: 20, OverlapChars: 5}
	blocks := []Block{
		blockAt("aaaa", 0),
		blockAt("bbbb", 10),
		blockAt("cccc", 20),
		blockAt("dddd", 30),
		blockAt("eeee", 40),
		blockAt("ffff", 50),
	}

	chunks := ChunkBlocks(blocks, cfg)
	if len(chunks) < 2 {
		t.Fatalf("chunk count = %d, want at least 2", len(chunks))
	}
	for i, c := range chunks {
		if utf8.RuneCountInString(c.Text) > cfg.MaxChars {
			t.Errorf("chunk %d length %d exceeds max %d: %q", i, utf8.RuneCountInString(c.Text), cfg.MaxChars, c.Text)
		}
		if c.SourceType != SourceTypeMerged {
			t.Errorf("chunk %d source type = %q, want %q", i, c.SourceType, SourceTypeMerged)
		}
	}
}

func TestChunkBlocksCarriesOverlap(t *testing.T) {
	cfg := ChunkerConfig{MaxChars: 20, OverlapChars: 5}
	blocks := []Block{
		blockAt("aaaa", 0),
		blockAt("bbbb", 10),
		blockAt("cccc", 20),
		blockAt("dddd", 30),
		blockAt("eeee", 40),
	}

	chunks := ChunkBlocks(blocks, cfg)
	if len(chunks) != 2 {
		t.Fatalf("chunk count = %d, want 2", len(chunks))
	}

	// The second chunk starts with the last block of the first.
	if !strings.HasPrefix(chunks[1].Text, "dddd") {
		t.Errorf("second chunk = %q, want it to start with the carried block %q", chunks[1].Text, "dddd")
	}
	if !strings.HasSuffix(chunks[0].Text, "dddd") {
		t.Errorf("first chunk = %q, want it to end with %q", chunks[0].Text, "dddd")
	}
}

func TestChunkBlocksOversizeBlockEmittedWhole(t *testing.T) {
	cfg := ChunkerConfig{MaxChars: 20, OverlapChars: 5}
	long := strings.Repeat("x", 30)
	blocks := []Block{
		blockAt(long, 0),
		blockAt("tail", 10),
	}

	chunks := ChunkBlocks(blocks, cfg)
	if len(chunks) != 2 {
		t.Fatalf("chunk count = %d, want 2", len(chunks))
	}
	if chunks[0].Text != long {
		t.Errorf("oversize block was split: %q", chunks[0].Text)
	}
}

func TestChunkBlocksDropsUnfittableCarry(t *testing.T) {
	// Overlap budget wide enough to carry "bbbbbbbbb", but the carry
	// plus the next 15-rune block would blow MaxChars; the carry must
	// be dropped so the walk keeps making progress.
	cfg := ChunkerConfig{MaxChars: 20, OverlapChars: 18}
	blocks := []Block{
		blockAt(strings.Repeat("a", 10), 0),
		blockAt(strings.Repeat("b", 9), 10),
		blockAt(strings.Repeat("c", 15), 20),
	}

	chunks := ChunkBlocks(blocks, cfg)
	if len(chunks) != 2 {
		t.Fatalf("chunk count = %d, want 2", len(chunks))
	}
	if chunks[1].Text != strings.Repeat("c", 15) {
		t.Errorf("second chunk = %q, want the bare third block", chunks[1].Text)
	}
}

func TestChunkBlocksUnionsBBoxes(t *testing.T) {
	cfg := DefaultChunkerConfig()
	blocks := []Block{
		blockAt("first", 0),
		blockAt("second", 30),
	}

	chunks := ChunkBlocks(blocks, cfg)
	if len(chunks) != 1 {
		t.Fatalf("chunk count = %d, want 1", len(chunks))
	}
	want := BBox{0, 0, 100, 40}
	if chunks[0].BBox != want {
		t.Errorf("chunk bbox = %+v, want %+v", chunks[0].BBox, want)
	}
}
