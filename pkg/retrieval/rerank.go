package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"weavai-be/internal/entity"
	"weavai-be/pkg/llm"
)

const (
	// Default cap on how many fused candidates are shown to the model.
	DefaultRerankCap = 24

	rerankSnippetChars = 320
)

const rerankSystemPrompt = "You are a document relevance ranker. " +
	"Respond with a single JSON object of the form {\"ranking\": [indices]} " +
	"listing the most relevant snippet indices in order. No prose."

type rerankResponse struct {
	Ranking []int `json:"ranking"`
}

// Rerank asks the language model to reorder the top fused candidates.
// It is strictly best-effort: any provider failure or unparseable
// output returns the input order unchanged. Candidates beyond the cap
// keep their fused positions after the reranked head.
func Rerank(ctx context.Context, provider llm.LLMProvider, query string, records []*entity.MemoryRecord, maxCandidates int) []*entity.MemoryRecord {
	if provider == nil || len(records) < 2 {
		return records
	}
	if maxCandidates <= 0 {
		maxCandidates = DefaultRerankCap
	}

	head := records
	var tail []*entity.MemoryRecord
	if len(records) > maxCandidates {
		head = records[:maxCandidates]
		tail = records[maxCandidates:]
	}

	prompt := buildRerankPrompt(query, head)
	output, err := provider.Chat(ctx,
		[]llm.Message{
			{Role: "system", Content: rerankSystemPrompt},
			{Role: "user", Content: prompt},
		},
		llm.WithTemperature(0),
	)
	if err != nil {
		return records
	}

	ranking, ok := parseRanking(output, len(head))
	if !ok {
		return records
	}

	reordered := make([]*entity.MemoryRecord, 0, len(records))
	used := make([]bool, len(head))
	for _, idx := range ranking {
		reordered = append(reordered, head[idx-1])
		used[idx-1] = true
	}
	for i, rec := range head {
		if !used[i] {
			reordered = append(reordered, rec)
		}
	}
	return append(reordered, tail...)
}

func buildRerankPrompt(query string, records []*entity.MemoryRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Query: %s\n\nSnippets:\n", query)
	for i, rec := range records {
		snippet := truncateRunes(rec.Content, rerankSnippetChars)
		fmt.Fprintf(&sb, "[%d] (page %d) %s\n", i+1, rec.Metadata.Page, snippet)
	}
	fmt.Fprintf(&sb, "\nReturn {\"ranking\": [...]} with the most relevant snippet indices first.")
	return sb.String()
}

// parseRanking pulls the first JSON object out of the model output,
// repairing near-JSON where possible, and validates the indices:
// out-of-range or duplicate entries are dropped.
func parseRanking(output string, candidateCount int) ([]int, bool) {
	raw, ok := firstJSONObject(output)
	if !ok {
		return nil, false
	}

	var resp rerankResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr != nil {
			return nil, false
		}
		if err := json.Unmarshal([]byte(repaired), &resp); err != nil {
			return nil, false
		}
	}
	if len(resp.Ranking) == 0 {
		return nil, false
	}

	seen := map[int]bool{}
	ranking := make([]int, 0, len(resp.Ranking))
	for _, idx := range resp.Ranking {
		if idx < 1 || idx > candidateCount || seen[idx] {
			continue
		}
		seen[idx] = true
		ranking = append(ranking, idx)
	}
	if len(ranking) == 0 {
		return nil, false
	}
	return ranking, true
}

// firstJSONObject scans for the first balanced {...} span.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
