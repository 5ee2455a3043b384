package retrieval

import (
	"sort"
	"strings"

	"weavai-be/internal/entity"
)

// KeywordSearch scores candidates by how many tokens appear as
// substrings of their content and returns up to poolSize records.
// The second return value reports whether any candidate actually
// matched a token; with a zero top score the ordering degrades to
// plain reading order (page, then id).
func KeywordSearch(candidates []*entity.MemoryRecord, tokens []string, poolSize int) ([]*entity.MemoryRecord, bool) {
	type scored struct {
		record *entity.MemoryRecord
		score  int
	}

	scoredList := make([]scored, 0, len(candidates))
	topScore := 0
	for _, rec := range candidates {
		content := strings.ToLower(rec.Content)
		score := 0
		for _, tok := range tokens {
			if strings.Contains(content, tok) {
				score++
			}
		}
		if score > topScore {
			topScore = score
		}
		scoredList = append(scoredList, scored{record: rec, score: score})
	}

	realHit := topScore > 0
	if realHit {
		sort.SliceStable(scoredList, func(i, j int) bool {
			if scoredList[i].score != scoredList[j].score {
				return scoredList[i].score > scoredList[j].score
			}
			if scoredList[i].record.Metadata.Page != scoredList[j].record.Metadata.Page {
				return scoredList[i].record.Metadata.Page < scoredList[j].record.Metadata.Page
			}
			return scoredList[i].record.Id.String() < scoredList[j].record.Id.String()
		})
	} else {
		sort.SliceStable(scoredList, func(i, j int) bool {
			if scoredList[i].record.Metadata.Page != scoredList[j].record.Metadata.Page {
				return scoredList[i].record.Metadata.Page < scoredList[j].record.Metadata.Page
			}
			return scoredList[i].record.Id.String() < scoredList[j].record.Id.String()
		})
	}

	if poolSize > 0 && len(scoredList) > poolSize {
		scoredList = scoredList[:poolSize]
	}

	results := make([]*entity.MemoryRecord, len(scoredList))
	for i, s := range scoredList {
		results[i] = s.record
	}
	return results, realHit
}
