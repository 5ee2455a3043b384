package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine wraps a gosseract client. The client is not safe for
// concurrent use, so callers must serialize Recognize calls.
type TesseractEngine struct {
	client *gosseract.Client
}

var _ Engine = &TesseractEngine{}

// NewTesseractEngine creates an engine for the given languages
// (e.g., "kor+eng"). An empty language string keeps the Tesseract default.
func NewTesseractEngine(languages string) (*TesseractEngine, error) {
	client := gosseract.NewClient()
	if languages != "" {
		if err := client.SetLanguage(languages); err != nil {
			client.Close()
			return nil, fmt.Errorf("set ocr language: %w", err)
		}
	}
	return &TesseractEngine{client: client}, nil
}

func (e *TesseractEngine) Recognize(ctx context.Context, image []byte) ([]Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := e.client.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("set ocr image: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxesVerbose()
	if err != nil {
		return nil, fmt.Errorf("ocr bounding boxes: %w", err)
	}

	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, Word{
			Text:       b.Word,
			Confidence: b.Confidence,
			X0:         float64(b.Box.Min.X),
			Y0:         float64(b.Box.Min.Y),
			X1:         float64(b.Box.Max.X),
			Y1:         float64(b.Box.Max.Y),
			BlockNum:   b.BlockNum,
			ParNum:     b.ParNum,
			LineNum:    b.LineNum,
			WordNum:    b.WordNum,
		})
	}
	return words, nil
}

func (e *TesseractEngine) Close() error {
	return e.client.Close()
}
