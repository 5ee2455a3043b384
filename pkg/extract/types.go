package extract

// Source types carried through the pipeline and into record metadata.
const (
	SourceTypeParsed   = "parsed"
	SourceTypeOCR      = "ocr"
	SourceTypeMerged   = "merged"
	SourceTypeImageOCR = "image_ocr"
)

// BBox is an axis-aligned rectangle in page-point space (72 dpi),
// origin top-left, y growing downward.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

func (b BBox) Area() float64 {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	out := b
	if o.X0 < out.X0 {
		out.X0 = o.X0
	}
	if o.Y0 < out.Y0 {
		out.Y0 = o.Y0
	}
	if o.X1 > out.X1 {
		out.X1 = o.X1
	}
	if o.Y1 > out.Y1 {
		out.Y1 = o.Y1
	}
	return out
}

// IoU computes intersection-over-union of two boxes. Disjoint boxes
// score 0; a zero union area also scores 0.
func IoU(a, b BBox) float64 {
	ix0 := max64(a.X0, b.X0)
	iy0 := max64(a.Y0, b.Y0)
	ix1 := min64(a.X1, b.X1)
	iy1 := min64(a.Y1, b.Y1)

	iw := ix1 - ix0
	ih := iy1 - iy0
	if iw <= 0 || ih <= 0 {
		return 0
	}
	inter := iw * ih

	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Block is a positioned unit of extracted text: a paragraph-sized text
// block, an OCR block, a merged chunk, or an externalized image's OCR
// text. Page is 1-indexed.
type Block struct {
	Text       string
	Page       int
	BBox       BBox
	PageWidth  float64
	PageHeight float64
	SourceType string
	ImageURL   string
}

// NormBBox returns the bbox divided by page dimensions, or nil when
// the page size is unknown.
func (b Block) NormBBox() []float64 {
	if b.PageWidth <= 0 || b.PageHeight <= 0 {
		return nil
	}
	return []float64{
		b.BBox.X0 / b.PageWidth,
		b.BBox.Y0 / b.PageHeight,
		b.BBox.X1 / b.PageWidth,
		b.BBox.Y1 / b.PageHeight,
	}
}
