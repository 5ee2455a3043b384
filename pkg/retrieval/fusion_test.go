package retrieval

import (
	"testing"

	"github.com/google/uuid"

	"weavai-be/internal/entity"
)

func newRecord(content string, page int) *entity.MemoryRecord {
	return &entity.MemoryRecord{
		Id:      uuid.New(),
		Content: content,
		Metadata: entity.RecordMetadata{
			Page: page,
		},
	}
}

func TestFuseRRFPreservesOrderAgainstEmptyList(t *testing.T) {
	a, b, c := newRecord("a", 1), newRecord("b", 1), newRecord("c", 1)

	fused := FuseRRF([]*entity.MemoryRecord{a, b, c}, nil)
	want := []*entity.MemoryRecord{a, b, c}
	if len(fused) != len(want) {
		t.Fatalf("fused length = %d, want %d", len(fused), len(want))
	}
	for i := range want {
		if fused[i].Id != want[i].Id {
			t.Errorf("fused[%d] = %s, want %s", i, fused[i].Content, want[i].Content)
		}
	}
}

func TestFuseRRFDoubleAppearanceWins(t *testing.T) {
	shared := newRecord("shared", 1)
	vecOnly := newRecord("vector only", 1)
	kwOnly := newRecord("keyword only", 1)

	// shared is rank 1 in both lists, the others rank 0 in one list.
	// 1/62 + 1/62 > 1/61, so two mid appearances beat one top spot.
	fused := FuseRRF(
		[]*entity.MemoryRecord{vecOnly, shared},
		[]*entity.MemoryRecord{kwOnly, shared},
	)

	if fused[0].Id != shared.Id {
		t.Errorf("fused[0] = %q, want the record present in both lists", fused[0].Content)
	}
}

func TestFuseRRFTieBreaksByFirstSeen(t *testing.T) {
	a, b := newRecord("vector first", 1), newRecord("keyword first", 1)

	// Equal scores: both rank 0 in exactly one list. The vector list
	// is walked first, so its item stays ahead.
	fused := FuseRRF(
		[]*entity.MemoryRecord{a},
		[]*entity.MemoryRecord{b},
	)

	if fused[0].Id != a.Id || fused[1].Id != b.Id {
		t.Errorf("tie order = [%q, %q], want vector item first", fused[0].Content, fused[1].Content)
	}
}
