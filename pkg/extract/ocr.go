package extract

import (
	"context"
	"log"
	"sort"
	"strings"
	"unicode/utf8"

	"weavai-be/pkg/ocr"
)

const (
	ocrRenderDPI      = 150.0
	ocrConfidenceMin  = 30.0
	ocrMinBlockLength = 3
)

// OCRBlocks rasterizes each page and runs it through the OCR engine,
// grouping recognized words into blocks by the engine's block ids.
// A nil engine degrades to an empty result: OCR being unavailable is
// never an error. Word boxes come back in render pixels and are scaled
// down to page points.
func OCRBlocks(ctx context.Context, doc *Document, engine ocr.Engine) []Block {
	if engine == nil {
		return nil
	}

	scale := 72.0 / ocrRenderDPI

	var blocks []Block
	for pageNum := 1; pageNum <= doc.NumPages(); pageNum++ {
		if ctx.Err() != nil {
			return blocks
		}

		pageWidth, pageHeight, err := doc.PageSize(pageNum)
		if err != nil {
			log.Printf("Warn: ocr skipping page %d: %v", pageNum, err)
			continue
		}

		image, err := doc.RenderPage(pageNum, ocrRenderDPI)
		if err != nil {
			log.Printf("Warn: ocr skipping page %d: %v", pageNum, err)
			continue
		}

		words, err := engine.Recognize(ctx, image)
		if err != nil {
			log.Printf("Warn: ocr failed on page %d: %v", pageNum, err)
			continue
		}

		grouped := map[int][]ocr.Word{}
		var blockNums []int
		for _, w := range words {
			if w.Confidence < ocrConfidenceMin {
				continue
			}
			if _, seen := grouped[w.BlockNum]; !seen {
				blockNums = append(blockNums, w.BlockNum)
			}
			grouped[w.BlockNum] = append(grouped[w.BlockNum], w)
		}
		sort.Ints(blockNums)

		for _, num := range blockNums {
			group := grouped[num]
			texts := make([]string, 0, len(group))
			bbox := BBox{group[0].X0, group[0].Y0, group[0].X1, group[0].Y1}
			for _, w := range group {
				texts = append(texts, w.Text)
				bbox = bbox.Union(BBox{w.X0, w.Y0, w.X1, w.Y1})
			}

			text := strings.TrimSpace(strings.Join(texts, " "))
			if utf8.RuneCountInString(text) <= ocrMinBlockLength {
				continue
			}

			blocks = append(blocks, Block{
				Text: text,
				Page: pageNum,
				BBox: BBox{
					X0: bbox.X0 * scale,
					Y0: bbox.Y0 * scale,
					X1: bbox.X1 * scale,
					Y1: bbox.Y1 * scale,
				},
				PageWidth:  pageWidth,
				PageHeight: pageHeight,
				SourceType: SourceTypeOCR,
			})
		}
	}
	return blocks
}
