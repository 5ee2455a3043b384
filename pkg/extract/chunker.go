package extract

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ChunkerConfig bounds the paragraph chunker. MaxChars caps a chunk's
// joined text length; OverlapChars bounds the block-granular tail
// carried into the next chunk.
type ChunkerConfig struct {
	MaxChars     int
	OverlapChars int
}

func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		MaxChars:     450,
		OverlapChars: 80,
	}
}

// ChunkBlocks greedily concatenates consecutive blocks into
// paragraph-sized chunks, per page in reading order. Consecutive
// chunks share a trailing run of whole blocks whose joined length
// stays within the overlap budget. A single block longer than
// MaxChars is emitted whole, never split.
func ChunkBlocks(blocks []Block, cfg ChunkerConfig) []Block {
	if len(blocks) == 0 {
		return nil
	}

	byPage := map[int][]Block{}
	var pages []int
	for _, b := range blocks {
		if _, seen := byPage[b.Page]; !seen {
			pages = append(pages, b.Page)
		}
		byPage[b.Page] = append(byPage[b.Page], b)
	}
	sort.Ints(pages)

	var chunks []Block
	for _, page := range pages {
		pageBlocks := byPage[page]
		sort.SliceStable(pageBlocks, func(i, j int) bool {
			if pageBlocks[i].BBox.Y0 != pageBlocks[j].BBox.Y0 {
				return pageBlocks[i].BBox.Y0 < pageBlocks[j].BBox.Y0
			}
			return pageBlocks[i].BBox.X0 < pageBlocks[j].BBox.X0
		})
		chunks = append(chunks, chunkPage(pageBlocks, cfg)...)
	}
	return chunks
}

func chunkPage(pageBlocks []Block, cfg ChunkerConfig) []Block {
	var chunks []Block
	var cur []Block

	for _, b := range pageBlocks {
		if len(cur) > 0 && joinedLength(cur, b) > cfg.MaxChars {
			chunks = append(chunks, closeChunk(cur))

			carry := tailCarry(cur, cfg.OverlapChars)
			// An overlap carry that cannot fit alongside the next
			// block would stall the walk; drop it and start clean.
			if len(carry) > 0 && joinedLength(carry, b) > cfg.MaxChars {
				carry = nil
			}
			cur = carry
		}
		cur = append(cur, b)
	}
	if len(cur) > 0 {
		chunks = append(chunks, closeChunk(cur))
	}
	return chunks
}

// joinedLength is the rune length of the blocks' texts joined by
// single spaces, with next appended.
func joinedLength(cur []Block, next Block) int {
	length := utf8.RuneCountInString(next.Text)
	for _, b := range cur {
		length += utf8.RuneCountInString(b.Text) + 1
	}
	return length
}

// tailCarry walks the closed chunk backward, accumulating whole
// blocks while their joined length stays within the overlap budget.
func tailCarry(closed []Block, overlapChars int) []Block {
	if overlapChars <= 0 {
		return nil
	}

	start := len(closed)
	length := 0
	for i := len(closed) - 1; i >= 0; i-- {
		blockLen := utf8.RuneCountInString(closed[i].Text)
		if length > 0 {
			blockLen++
		}
		if length+blockLen > overlapChars {
			break
		}
		length += blockLen
		start = i
	}
	if start == len(closed) {
		return nil
	}

	carry := make([]Block, len(closed)-start)
	copy(carry, closed[start:])
	return carry
}

func closeChunk(cur []Block) Block {
	texts := make([]string, 0, len(cur))
	bbox := cur[0].BBox
	for _, b := range cur {
		texts = append(texts, b.Text)
		bbox = bbox.Union(b.BBox)
	}
	return Block{
		Text:       strings.Join(texts, " "),
		Page:       cur[0].Page,
		BBox:       bbox,
		PageWidth:  cur[0].PageWidth,
		PageHeight: cur[0].PageHeight,
		SourceType: SourceTypeMerged,
	}
}
