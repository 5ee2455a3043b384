package retrieval

import (
	"context"
	"log"

	"github.com/google/uuid"

	"weavai-be/internal/entity"
	"weavai-be/internal/repository/contract"
	"weavai-be/internal/repository/specification"
	"weavai-be/pkg/embedding"
	"weavai-be/pkg/llm"
)

const minCandidatePool = 20

// Params describes one search call.
type Params struct {
	Scopes             []uuid.UUID
	Query              string
	Limit              int
	DocumentId         *uuid.UUID
	ExcludeSourceKinds []string

	// Rerank requests the LLM re-ranking pass; the engine still
	// requires a configured provider.
	Rerank bool
}

// Engine answers relevance queries by fusing keyword and vector
// search, with domain guards and optional LLM re-ranking. It holds no
// state across calls; every search is a pure function of the store
// contents and provider responses.
type Engine struct {
	Embedder  embedding.EmbeddingProvider // nil degrades to keyword-only
	LLM       llm.LLMProvider             // nil disables re-ranking
	Synonyms  SynonymTable
	Guards    GuardTable
	RerankCap int
	Logger    *log.Logger
}

func NewEngine(embedder embedding.EmbeddingProvider, llmProvider llm.LLMProvider) *Engine {
	return &Engine{
		Embedder:  embedder,
		LLM:       llmProvider,
		Synonyms:  DefaultKoreanSynonyms(),
		Guards:    DefaultKoreanGuards(),
		RerankCap: DefaultRerankCap,
	}
}

// Search runs the hybrid retrieval flow and returns at most
// p.Limit records in relevance order.
func (e *Engine) Search(ctx context.Context, repo contract.MemoryRecordRepository, p Params) ([]*entity.MemoryRecord, error) {
	if p.Query == "" {
		return nil, nil
	}
	if p.Limit <= 0 {
		p.Limit = 5
	}

	specs := e.buildSpecs(p)

	candidates, err := repo.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	pool := 4 * p.Limit
	if pool < minCandidatePool {
		pool = minCandidatePool
	}

	tokens := e.Synonyms.ExpandTokens(Tokenize(p.Query))
	keywordResults, realHit := KeywordSearch(candidates, tokens, pool)

	if e.Embedder == nil {
		return truncate(keywordResults, p.Limit), nil
	}

	vectorResults := e.vectorSearch(ctx, repo, p.Query, pool, specs)
	if len(vectorResults) == 0 {
		return truncate(keywordResults, p.Limit), nil
	}

	// Guard pass: a query hinging on one qualifier word (gender,
	// purpose) must not be answered from vector results that dropped
	// it. Same for vector results containing no query token at all.
	queryTokens := Tokenize(p.Query)
	if realHit {
		if !e.Guards.Approves(queryTokens, vectorResults) {
			e.debugf("guard rejected vector results for %q, using keyword path", p.Query)
			return truncate(keywordResults, p.Limit), nil
		}
		if !containsAnyToken(vectorResults, queryTokens) {
			e.debugf("vector results contain no query token for %q, using keyword path", p.Query)
			return truncate(keywordResults, p.Limit), nil
		}
	}

	fused := FuseRRF(vectorResults, keywordResults)

	if p.Rerank && e.LLM != nil {
		fused = Rerank(ctx, e.LLM, p.Query, fused, e.RerankCap)
	}

	return truncate(fused, p.Limit), nil
}

func (e *Engine) buildSpecs(p Params) []specification.Specification {
	specs := []specification.Specification{
		specification.ByOwnerScopes{Scopes: p.Scopes},
	}
	if p.DocumentId != nil {
		specs = append(specs, specification.ByDocumentId{DocumentId: *p.DocumentId})
	}
	if len(p.ExcludeSourceKinds) > 0 {
		specs = append(specs, specification.ExcludeSourceKinds{Kinds: p.ExcludeSourceKinds})
	}
	return specs
}

// vectorSearch embeds the query and pulls the nearest candidates. A
// failed embedding call degrades to an empty vector result, which the
// caller treats as "keyword path wins".
func (e *Engine) vectorSearch(ctx context.Context, repo contract.MemoryRecordRepository, query string, pool int, specs []specification.Specification) []*entity.MemoryRecord {
	resp, err := e.Embedder.Generate(query, "RETRIEVAL_QUERY")
	if err != nil || resp == nil || len(resp.Embedding.Values) == 0 {
		e.debugf("query embedding failed: %v", err)
		return nil
	}

	results, err := repo.SearchByVector(ctx, resp.Embedding.Values, pool, specs...)
	if err != nil {
		e.debugf("vector search failed: %v", err)
		return nil
	}
	return results
}

func (e *Engine) debugf(format string, args ...interface{}) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
	}
}

func truncate(records []*entity.MemoryRecord, limit int) []*entity.MemoryRecord {
	if len(records) > limit {
		return records[:limit]
	}
	return records
}
