package retrieval

import (
	"sort"

	"weavai-be/internal/entity"
)

// Reciprocal rank fusion smoothing constant.
const rrfK = 60

// FuseRRF merges the vector and keyword rankings by reciprocal rank
// fusion: each item scores the sum of 1/(k+rank+1) over the lists it
// appears in (rank 0-based). Ties keep first-seen order, with the
// vector list walked first.
func FuseRRF(vectorList, keywordList []*entity.MemoryRecord) []*entity.MemoryRecord {
	type fused struct {
		record *entity.MemoryRecord
		score  float64
	}

	order := make([]*entity.MemoryRecord, 0, len(vectorList)+len(keywordList))
	scores := map[string]*fused{}

	accumulate := func(list []*entity.MemoryRecord) {
		for rank, rec := range list {
			key := rec.Id.String()
			entry, seen := scores[key]
			if !seen {
				entry = &fused{record: rec}
				scores[key] = entry
				order = append(order, rec)
			}
			entry.score += 1.0 / float64(rrfK+rank+1)
		}
	}
	accumulate(vectorList)
	accumulate(keywordList)

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i].Id.String()].score > scores[order[j].Id.String()].score
	})
	return order
}
