package extract

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// TextFragment is one positioned text run from the PDF content stream.
// Coordinates are already converted to top-left-origin page points.
type TextFragment struct {
	Text     string
	X0, Y0   float64
	X1, Y1   float64
	FontSize float64
}

// Document wraps an open PDF with both backends the pipeline needs:
// MuPDF for page geometry, rasterization and the positioned HTML
// projection, and the content-stream reader for per-run text geometry.
type Document struct {
	fz *fitz.Document
	rd *pdf.Reader
}

// OpenDocument opens document bytes. A document MuPDF cannot read at
// all is unreadable and terminal. The content-stream reader failing is
// tolerated: geometric text extraction degrades to empty and OCR still
// covers the pages.
func OpenDocument(data []byte) (*Document, error) {
	fz, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}

	doc := &Document{fz: fz}

	rd, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err == nil {
		doc.rd = rd
	}

	return doc, nil
}

func (d *Document) Close() error {
	return d.fz.Close()
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.fz.NumPage()
}

// PageSize returns a page's width and height in points. pageNum is
// 1-indexed.
func (d *Document) PageSize(pageNum int) (float64, float64, error) {
	bound, err := d.fz.Bound(pageNum - 1)
	if err != nil {
		return 0, 0, fmt.Errorf("page %d bounds: %w", pageNum, err)
	}
	return float64(bound.Dx()), float64(bound.Dy()), nil
}

// RenderPage rasterizes a page to PNG bytes at the given DPI.
func (d *Document) RenderPage(pageNum int, dpi float64) ([]byte, error) {
	img, err := d.fz.ImageDPI(pageNum-1, dpi)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", pageNum, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode page %d: %w", pageNum, err)
	}
	return buf.Bytes(), nil
}

// PageHTML returns MuPDF's positioned HTML projection of a page,
// used to locate embedded raster images.
func (d *Document) PageHTML(pageNum int) (string, error) {
	html, err := d.fz.HTML(pageNum-1, false)
	if err != nil {
		return "", fmt.Errorf("page %d html: %w", pageNum, err)
	}
	return html, nil
}

// TextFragments returns the positioned text runs of a page with the
// Y axis flipped to top-left origin. The content-stream reader panics
// on some malformed streams, so the call is guarded with recover and
// surfaced as a per-page error.
func (d *Document) TextFragments(pageNum int) (frags []TextFragment, err error) {
	if d.rd == nil {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			frags = nil
			err = fmt.Errorf("page %d text: %v", pageNum, r)
		}
	}()

	_, pageHeight, err := d.PageSize(pageNum)
	if err != nil {
		return nil, err
	}

	page := d.rd.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}

	for _, t := range page.Content().Text {
		if t.S == "" {
			continue
		}
		// PDF text space has a bottom-left origin with Y at the
		// baseline; flip to top-left and approximate the run's
		// height with its font size.
		y1 := pageHeight - t.Y
		frags = append(frags, TextFragment{
			Text:     t.S,
			X0:       t.X,
			Y0:       y1 - t.FontSize,
			X1:       t.X + t.W,
			Y1:       y1,
			FontSize: t.FontSize,
		})
	}
	return frags, nil
}
