package paginate

import (
	"testing"
)

func nums(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestSplitsThirteenItemsAcrossTwoPages(t *testing.T) {
	items := nums(13)

	first := New(items, 10, "1")
	if len(first.Items) != 10 {
		t.Fatalf("page 1: expected 10 items, got %d", len(first.Items))
	}
	if first.Items[0] != 0 {
		t.Fatalf("page 1 must start with the first item, got %d", first.Items[0])
	}

	second := New(items, 10, "2")
	if len(second.Items) != 3 {
		t.Fatalf("page 2: expected 3 items, got %d", len(second.Items))
	}
	if second.Items[0] != 10 {
		t.Fatalf("page 2 must continue where page 1 ended, got %d", second.Items[0])
	}
	if second.PageCount != 2 || second.TotalItems != 13 {
		t.Fatalf("unexpected metadata: %+v", second)
	}
}

func TestInvalidPageDefaultsToFirst(t *testing.T) {
	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		p := New(nums(5), 10, raw)
		if p.Number != 1 {
			t.Fatalf("raw page %q: expected page 1, got %d", raw, p.Number)
		}
		if len(p.Items) != 5 {
			t.Fatalf("raw page %q: expected 5 items, got %d", raw, len(p.Items))
		}
	}
}

func TestOutOfRangePageClampsToLast(t *testing.T) {
	p := New(nums(13), 10, "99")
	if p.Number != 2 {
		t.Fatalf("expected clamp to page 2, got %d", p.Number)
	}
	if len(p.Items) != 3 {
		t.Fatalf("expected last page's 3 items, got %d", len(p.Items))
	}
}

func TestEmptySet(t *testing.T) {
	p := New(nums(0), 10, "4")
	if p.Number != 1 || p.PageCount != 1 || len(p.Items) != 0 {
		t.Fatalf("unexpected empty-set page: %+v", p)
	}
	if p.HasPrev() || p.HasNext() {
		t.Fatal("empty set must have no prev/next")
	}
}
