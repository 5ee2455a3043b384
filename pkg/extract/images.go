package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"weavai-be/pkg/storage"
	"weavai-be/pkg/vision"
)

const (
	imageMinPixels     = 50
	imageMinTextLength = 5
)

var styleDimRe = regexp.MustCompile(`(top|left|width|height)\s*:\s*([0-9.]+)pt`)

// ImageChunks locates embedded raster images on each page, uploads
// the ones worth keeping and routes them through the vision OCR
// service. Tiny images (under 50x50 pixels) are icons or decoration
// and skipped; an image's OCR chunk is retained only when the
// recognized text is longer than five trimmed characters. A blob
// upload failure aborts the run: losing an uploaded artifact silently
// would leave records pointing at nothing.
func ImageChunks(ctx context.Context, doc *Document, scope string, blob storage.BlobStore, visionOCR vision.Provider) ([]Block, error) {
	if blob == nil || visionOCR == nil {
		return nil, nil
	}

	var chunks []Block
	for pageNum := 1; pageNum <= doc.NumPages(); pageNum++ {
		if ctx.Err() != nil {
			return chunks, nil
		}

		pageWidth, pageHeight, err := doc.PageSize(pageNum)
		if err != nil {
			log.Printf("Warn: image scan skipping page %d: %v", pageNum, err)
			continue
		}

		html, err := doc.PageHTML(pageNum)
		if err != nil {
			log.Printf("Warn: image scan skipping page %d: %v", pageNum, err)
			continue
		}

		pageChunks, err := extractPageImages(ctx, html, scope, pageNum, pageWidth, pageHeight, blob, visionOCR)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, pageChunks...)
	}
	return chunks, nil
}

func extractPageImages(ctx context.Context, html, scope string, pageNum int, pageWidth, pageHeight float64, blob storage.BlobStore, visionOCR vision.Provider) ([]Block, error) {
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Printf("Warn: page %d html parse: %v", pageNum, err)
		return nil, nil
	}

	var chunks []Block
	var uploadErr error
	index := 0

	parsed.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, ok := sel.Attr("src")
		if !ok {
			return true
		}
		data, ok := decodeDataURI(src)
		if !ok {
			return true
		}

		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return true
		}
		if cfg.Width < imageMinPixels || cfg.Height < imageMinPixels {
			return true
		}

		bbox := placementBBox(sel.AttrOr("style", ""))

		key := fmt.Sprintf("sessions/%s/images/p%d_%d.png", scope, pageNum, index)
		index++

		url, err := blob.Put(ctx, data, key, "image/png")
		if err != nil {
			uploadErr = fmt.Errorf("upload %s: %w", key, err)
			return false
		}

		text, err := visionOCR.ExtractText(ctx, url)
		if err != nil {
			log.Printf("Warn: vision ocr failed for %s: %v", key, err)
			return true
		}
		text = strings.TrimSpace(text)
		if utf8.RuneCountInString(text) <= imageMinTextLength {
			return true
		}

		chunks = append(chunks, Block{
			Text:       text,
			Page:       pageNum,
			BBox:       bbox,
			PageWidth:  pageWidth,
			PageHeight: pageHeight,
			SourceType: SourceTypeImageOCR,
			ImageURL:   url,
		})
		return true
	})

	if uploadErr != nil {
		return nil, uploadErr
	}
	return chunks, nil
}

// decodeDataURI decodes a base64 data URI into raw image bytes.
func decodeDataURI(src string) ([]byte, bool) {
	if !strings.HasPrefix(src, "data:image/") {
		return nil, false
	}
	_, payload, found := strings.Cut(src, "base64,")
	if !found {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, false
	}
	return data, true
}

// placementBBox reads the image's placement rectangle from its inline
// style (top/left/width/height in points).
func placementBBox(style string) BBox {
	var top, left, width, height float64
	for _, m := range styleDimRe.FindAllStringSubmatch(style, -1) {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		switch m[1] {
		case "top":
			top = v
		case "left":
			left = v
		case "width":
			width = v
		case "height":
			height = v
		}
	}
	return BBox{X0: left, Y0: top, X1: left + width, Y1: top + height}
}
