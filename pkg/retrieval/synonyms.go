package retrieval

import "strings"

// Token budget for a keyword query after synonym expansion.
const maxExpandedTokens = 8

// SynonymRule adds a bounded expansion set when any trigger appears
// inside a query token.
type SynonymRule struct {
	Triggers   []string
	Expansions []string
}

// SynonymTable is an ordered list of expansion rules. Order matters:
// earlier rules claim the token budget first.
type SynonymTable []SynonymRule

// DefaultKoreanSynonyms covers the public-program domain the corpus
// is tuned for: application periods, gender restrictions, program
// purpose, support programs and eligibility.
func DefaultKoreanSynonyms() SynonymTable {
	return SynonymTable{
		{
			Triggers:   []string{"기간", "언제", "마감", "까지"},
			Expansions: []string{"기간", "신청기간", "접수기간", "마감", "까지"},
		},
		{
			Triggers:   []string{"남자", "남성", "여자", "여성", "성별"},
			Expansions: []string{"남자", "남성", "남자만", "여자", "여성", "여자만"},
		},
		{
			Triggers:   []string{"목적", "취지"},
			Expansions: []string{"목적", "취지", "위하여", "위해"},
		},
		{
			Triggers:   []string{"프로그램", "지원", "사업", "혜택"},
			Expansions: []string{"지원", "지원금", "프로그램", "사업", "혜택"},
		},
		{
			Triggers:   []string{"자격", "대상", "조건", "가능"},
			Expansions: []string{"자격", "대상", "조건", "신청자격"},
		},
	}
}

// ExpandTokens appends each triggered rule's expansions to the token
// list, deduplicated and capped at the total budget.
func (t SynonymTable) ExpandTokens(tokens []string) []string {
	expanded := make([]string, 0, maxExpandedTokens)
	seen := map[string]bool{}
	for _, tok := range tokens {
		if len(expanded) >= maxExpandedTokens {
			return expanded
		}
		if !seen[tok] {
			seen[tok] = true
			expanded = append(expanded, tok)
		}
	}

	for _, rule := range t {
		if !rule.triggered(tokens) {
			continue
		}
		for _, syn := range rule.Expansions {
			if len(expanded) >= maxExpandedTokens {
				return expanded
			}
			if !seen[syn] {
				seen[syn] = true
				expanded = append(expanded, syn)
			}
		}
	}
	return expanded
}

func (r SynonymRule) triggered(tokens []string) bool {
	for _, tok := range tokens {
		for _, trig := range r.Triggers {
			if strings.Contains(tok, trig) {
				return true
			}
		}
	}
	return false
}
