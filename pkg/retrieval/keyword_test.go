package retrieval

import (
	"testing"

	"weavai-be/internal/entity"
)

func TestKeywordSearchOrdersByScore(t *testing.T) {
	one := newRecord("지원 대상 안내", 3)
	two := newRecord("지원 자격 및 대상 조건", 5)
	none := newRecord("전혀 다른 내용", 1)

	results, realHit := KeywordSearch(
		[]*entity.MemoryRecord{none, one, two},
		[]string{"지원", "대상", "조건"},
		10,
	)

	if !realHit {
		t.Fatal("realHit = false, want true")
	}
	if results[0].Id != two.Id {
		t.Errorf("results[0] = %q, want the three-token match", results[0].Content)
	}
	if results[1].Id != one.Id {
		t.Errorf("results[1] = %q, want the two-token match", results[1].Content)
	}
}

func TestKeywordSearchPageThenIdTieBreak(t *testing.T) {
	early := newRecord("지원 내용", 1)
	late := newRecord("지원 안내", 7)

	results, _ := KeywordSearch(
		[]*entity.MemoryRecord{late, early},
		[]string{"지원"},
		10,
	)

	if results[0].Id != early.Id {
		t.Errorf("results[0] page = %d, want the lower page first", results[0].Metadata.Page)
	}
}

func TestKeywordSearchNoHitFallsBackToReadingOrder(t *testing.T) {
	pageTwo := newRecord("beta", 2)
	pageOne := newRecord("alpha", 1)

	results, realHit := KeywordSearch(
		[]*entity.MemoryRecord{pageTwo, pageOne},
		[]string{"없는토큰"},
		10,
	)

	if realHit {
		t.Fatal("realHit = true, want false on zero top score")
	}
	if results[0].Id != pageOne.Id {
		t.Errorf("results[0] = %q, want page order fallback", results[0].Content)
	}
}

func TestKeywordSearchHonorsPoolSize(t *testing.T) {
	candidates := []*entity.MemoryRecord{
		newRecord("지원 하나", 1),
		newRecord("지원 둘", 2),
		newRecord("지원 셋", 3),
	}

	results, _ := KeywordSearch(candidates, []string{"지원"}, 2)
	if len(results) != 2 {
		t.Errorf("result count = %d, want 2", len(results))
	}
}
