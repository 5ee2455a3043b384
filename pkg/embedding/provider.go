package embedding

// EmbeddingResponse mirrors the provider wire shape.
type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding
}

type EmbeddingResponseEmbedding struct {
	Values []float32
}

// EmbeddingProvider generates a fixed-dimension vector for a text.
// taskType hints the embedding use ("RETRIEVAL_QUERY" or
// "RETRIEVAL_DOCUMENT"); providers that do not distinguish ignore it.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}
