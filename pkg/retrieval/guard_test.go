package retrieval

import (
	"testing"

	"weavai-be/internal/entity"
)

func TestGuardRejectsVectorResultsMissingCriticalToken(t *testing.T) {
	guards := DefaultKoreanGuards()
	tokens := Tokenize("남자만 신청 가능한가요")

	vectorResults := []*entity.MemoryRecord{
		newRecord("지원 사업 개요와 신청 방법 안내", 1),
		newRecord("접수 기간 및 제출 서류", 2),
	}

	if guards.Approves(tokens, vectorResults) {
		t.Error("guard approved vector results that dropped the gender qualifier")
	}
}

func TestGuardApprovesWhenCriticalTokenPresent(t *testing.T) {
	guards := DefaultKoreanGuards()
	tokens := Tokenize("남자만 신청 가능한가요")

	vectorResults := []*entity.MemoryRecord{
		newRecord("본 사업은 여성만 신청 가능합니다", 1),
	}

	if !guards.Approves(tokens, vectorResults) {
		t.Error("guard rejected vector results that do carry a critical token")
	}
}

func TestGuardIgnoresUntriggeredQueries(t *testing.T) {
	guards := DefaultKoreanGuards()
	tokens := Tokenize("접수 마감일이 언제인가요")

	vectorResults := []*entity.MemoryRecord{
		newRecord("아무 관련 없는 내용", 1),
	}

	if !guards.Approves(tokens, vectorResults) {
		t.Error("guard fired for a query without trigger terms")
	}
}

func TestContainsAnyToken(t *testing.T) {
	records := []*entity.MemoryRecord{
		newRecord("신청 기간은 다음과 같습니다", 1),
	}

	if !containsAnyToken(records, []string{"기간", "없는말"}) {
		t.Error("containsAnyToken missed a present token")
	}
	if containsAnyToken(records, []string{"없는말"}) {
		t.Error("containsAnyToken matched an absent token")
	}
}
