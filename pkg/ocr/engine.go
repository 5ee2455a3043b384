package ocr

import "context"

// Word is a single recognized token with its pixel-space box and the
// Tesseract layout coordinates it came from.
type Word struct {
	Text       string
	Confidence float64
	X0, Y0     float64
	X1, Y1     float64
	BlockNum   int
	ParNum     int
	LineNum    int
	WordNum    int
}

// Engine recognizes text in a rendered page image.
type Engine interface {
	Recognize(ctx context.Context, image []byte) ([]Word, error)
	Close() error
}
