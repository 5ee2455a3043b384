package extract

import (
	"context"

	"weavai-be/pkg/ocr"
	"weavai-be/pkg/storage"
	"weavai-be/pkg/vision"
)

// Pipeline runs the full extraction flow for one document: geometric
// text extraction and OCR in parallel streams over the same pages,
// spatial dedup, paragraph chunking, and the embedded-image side
// channel. OCR and Vision may be nil; those stages then contribute
// nothing.
type Pipeline struct {
	OCR     ocr.Engine
	Blob    storage.BlobStore
	Vision  vision.Provider
	Chunker ChunkerConfig
}

// Result carries the two output streams. Image chunks are kept apart
// from the paragraph chunks so their image references survive intact.
type Result struct {
	Chunks      []Block
	ImageChunks []Block
}

// Run extracts a document. It returns an error only when the document
// itself is unreadable or an image upload fails; everything else
// degrades per stage. Zero extracted content is the caller's condition
// to judge, since an empty Result is still a valid extraction outcome.
func (p *Pipeline) Run(ctx context.Context, data []byte, scope string) (*Result, error) {
	doc, err := OpenDocument(data)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	parsed := ParsedBlocks(ctx, doc)
	ocrBlocks := OCRBlocks(ctx, doc, p.OCR)

	merged := DedupMerge(parsed, ocrBlocks)
	chunks := ChunkBlocks(merged, p.Chunker)

	imageChunks, err := ImageChunks(ctx, doc, scope, p.Blob, p.Vision)
	if err != nil {
		return nil, err
	}

	return &Result{
		Chunks:      chunks,
		ImageChunks: imageChunks,
	}, nil
}
