package retrieval

import (
	"strings"

	"weavai-be/internal/entity"
)

// GuardRule protects queries carrying a load-bearing qualifier word.
// When a trigger appears in the query, at least one vector result must
// contain one of the critical tokens, otherwise embedding similarity
// has likely glossed over the qualifier (e.g. "male-only").
type GuardRule struct {
	Triggers []string
	Critical []string
}

type GuardTable []GuardRule

// DefaultKoreanGuards guards gender-restriction and purpose queries.
func DefaultKoreanGuards() GuardTable {
	return GuardTable{
		{
			Triggers: []string{"남자", "남성", "여자", "여성"},
			Critical: []string{"남자", "남성", "여자", "여성", "남자만", "여자만"},
		},
		{
			Triggers: []string{"목적", "취지"},
			Critical: []string{"목적", "취지", "위하여", "위해"},
		},
	}
}

// Approves reports whether the vector results survive the guard for
// the given query tokens. It returns false only when a rule triggers
// and no vector result contains any of its critical tokens.
func (t GuardTable) Approves(tokens []string, vectorResults []*entity.MemoryRecord) bool {
	for _, rule := range t {
		if !rule.triggered(tokens) {
			continue
		}
		if !anyRecordContains(vectorResults, rule.Critical) {
			return false
		}
	}
	return true
}

func (r GuardRule) triggered(tokens []string) bool {
	for _, tok := range tokens {
		for _, trig := range r.Triggers {
			if strings.Contains(tok, trig) {
				return true
			}
		}
	}
	return false
}

func anyRecordContains(records []*entity.MemoryRecord, needles []string) bool {
	for _, rec := range records {
		content := strings.ToLower(rec.Content)
		for _, n := range needles {
			if strings.Contains(content, n) {
				return true
			}
		}
	}
	return false
}

// containsAnyToken reports whether any record's content contains any
// of the query tokens at all.
func containsAnyToken(records []*entity.MemoryRecord, tokens []string) bool {
	return anyRecordContains(records, tokens)
}
