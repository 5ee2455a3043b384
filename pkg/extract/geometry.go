package extract

import (
	"context"
	"log"
	"sort"
	"strings"
)

const (
	// Fragments whose vertical positions differ by no more than this
	// many points belong to the same line.
	lineYTolerance = 2.0

	// Horizontal gap between adjacent fragments on a line that implies
	// a missing space character.
	wordGapThreshold = 1.0

	// Vertical gap between lines that starts a new block.
	blockGapThreshold = 6.0
)

// ParsedBlocks extracts positioned text blocks from every page. A page
// that fails to parse is logged and skipped; the remaining pages are
// still extracted.
func ParsedBlocks(ctx context.Context, doc *Document) []Block {
	var blocks []Block
	for pageNum := 1; pageNum <= doc.NumPages(); pageNum++ {
		if ctx.Err() != nil {
			return blocks
		}

		pageWidth, pageHeight, err := doc.PageSize(pageNum)
		if err != nil {
			log.Printf("Warn: skipping page %d: %v", pageNum, err)
			continue
		}

		frags, err := doc.TextFragments(pageNum)
		if err != nil {
			log.Printf("Warn: skipping page %d: %v", pageNum, err)
			continue
		}
		if len(frags) == 0 {
			continue
		}

		blocks = append(blocks, groupFragments(frags, pageNum, pageWidth, pageHeight)...)
	}
	return blocks
}

type textLine struct {
	text string
	bbox BBox
}

// groupFragments assembles raw text runs into lines, then lines into
// blocks separated by vertical whitespace.
func groupFragments(frags []TextFragment, pageNum int, pageWidth, pageHeight float64) []Block {
	sort.Slice(frags, func(i, j int) bool {
		if frags[i].Y0 != frags[j].Y0 {
			return frags[i].Y0 < frags[j].Y0
		}
		return frags[i].X0 < frags[j].X0
	})

	var lines []textLine
	i := 0
	for i < len(frags) {
		j := i + 1
		for j < len(frags) && frags[j].Y0-frags[i].Y0 <= lineYTolerance {
			j++
		}

		run := make([]TextFragment, j-i)
		copy(run, frags[i:j])
		sort.Slice(run, func(a, b int) bool { return run[a].X0 < run[b].X0 })

		var sb strings.Builder
		bbox := BBox{run[0].X0, run[0].Y0, run[0].X1, run[0].Y1}
		for k, f := range run {
			if k > 0 && f.X0-run[k-1].X1 > wordGapThreshold {
				sb.WriteByte(' ')
			}
			sb.WriteString(f.Text)
			bbox = bbox.Union(BBox{f.X0, f.Y0, f.X1, f.Y1})
		}

		lines = append(lines, textLine{text: sb.String(), bbox: bbox})
		i = j
	}

	var blocks []Block
	var cur []textLine
	flush := func() {
		if len(cur) == 0 {
			return
		}
		texts := make([]string, 0, len(cur))
		bbox := cur[0].bbox
		for _, l := range cur {
			texts = append(texts, l.text)
			bbox = bbox.Union(l.bbox)
		}
		text := strings.TrimSpace(strings.Join(texts, " "))
		if text != "" {
			blocks = append(blocks, Block{
				Text:       text,
				Page:       pageNum,
				BBox:       bbox,
				PageWidth:  pageWidth,
				PageHeight: pageHeight,
				SourceType: SourceTypeParsed,
			})
		}
		cur = nil
	}

	for _, line := range lines {
		if len(cur) > 0 && line.bbox.Y0-cur[len(cur)-1].bbox.Y1 > blockGapThreshold {
			flush()
		}
		cur = append(cur, line)
	}
	flush()

	return blocks
}
