package retrieval

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "hangul and ascii runs",
			query: "신청 period 2024-01-15",
			want:  []string{"신청", "period", "2024-01-15"},
		},
		{
			name:  "single char dropped",
			query: "a 나 지원",
			want:  []string{"지원"},
		},
		{
			name:  "duplicates removed",
			query: "지원 지원 대상",
			want:  []string{"지원", "대상"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.query, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExpandTokensGenderQuery(t *testing.T) {
	tokens := Tokenize("남자만 신청 가능한가요")
	expanded := DefaultKoreanSynonyms().ExpandTokens(tokens)

	if len(expanded) > maxExpandedTokens {
		t.Fatalf("expanded token count = %d, want at most %d", len(expanded), maxExpandedTokens)
	}

	required := []string{"남자", "남성", "남자만", "여자", "여성"}
	set := map[string]bool{}
	for _, tok := range expanded {
		set[tok] = true
	}
	for _, want := range required {
		if !set[want] {
			t.Errorf("expanded tokens %v missing %q", expanded, want)
		}
	}
}

func TestExpandTokensNoTriggerLeavesTokensAlone(t *testing.T) {
	tokens := []string{"회의록", "요약"}
	expanded := DefaultKoreanSynonyms().ExpandTokens(tokens)

	if len(expanded) != 2 {
		t.Errorf("expanded = %v, want the original two tokens only", expanded)
	}
}
