package embedding

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedProvider memoizes provider responses with a TTL. Query embeddings
// are requested repeatedly for identical search strings, so a short-lived
// cache avoids redundant round trips to the embedding backend.
type CachedProvider struct {
	inner EmbeddingProvider
	store *cache.Cache
}

func NewCachedProvider(inner EmbeddingProvider, ttl time.Duration) EmbeddingProvider {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedProvider{
		inner: inner,
		store: cache.New(ttl, 2*ttl),
	}
}

func (p *CachedProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	key := taskType + "\x00" + text
	if cached, found := p.store.Get(key); found {
		return cached.(*EmbeddingResponse), nil
	}

	resp, err := p.inner.Generate(text, taskType)
	if err != nil {
		return nil, err
	}

	p.store.Set(key, resp, cache.DefaultExpiration)
	return resp, nil
}
