package grid

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/contentgrid/rulegrid/internal/types"
)

func makeRecords(n int) []types.RuleRecord {
	records := make([]types.RuleRecord, n)
	for i := range records {
		records[i] = types.RuleRecord{ID: types.RecordID(fmt.Sprintf("rec-%03d", i))}
	}
	return records
}

func TestPaginate_Windows(t *testing.T) {
	records := makeRecords(120)

	tests := []struct {
		name      string
		page      int
		wantLen   int
		wantStart int
		wantEnd   int
		wantPages int
	}{
		{name: "first page", page: 1, wantLen: 50, wantStart: 0, wantEnd: 50, wantPages: 3},
		{name: "middle page", page: 2, wantLen: 50, wantStart: 50, wantEnd: 100, wantPages: 3},
		{name: "short final page", page: 3, wantLen: 20, wantStart: 100, wantEnd: 120, wantPages: 3},
		{name: "page past end clamps to final", page: 9, wantLen: 20, wantStart: 100, wantEnd: 120, wantPages: 3},
		{name: "page below one clamps to first", page: 0, wantLen: 50, wantStart: 0, wantEnd: 50, wantPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(records, tt.page, 50)
			if len(got.Window) != tt.wantLen {
				t.Errorf("Window length = %d, want %d", len(got.Window), tt.wantLen)
			}
			if got.StartIndex != tt.wantStart || got.EndIndex != tt.wantEnd {
				t.Errorf("indices = [%d, %d), want [%d, %d)", got.StartIndex, got.EndIndex, tt.wantStart, tt.wantEnd)
			}
			if got.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", got.TotalPages, tt.wantPages)
			}
			if got.Total != 120 {
				t.Errorf("Total = %d, want 120", got.Total)
			}
		})
	}
}

func TestPaginate_EmptyList(t *testing.T) {
	got := Paginate(nil, 1, 50)

	if got.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1 (page 1 always exists)", got.TotalPages)
	}
	if len(got.Window) != 0 {
		t.Errorf("Window length = %d, want 0", len(got.Window))
	}
	if got.StartIndex != 0 || got.EndIndex != 0 {
		t.Errorf("indices = [%d, %d), want [0, 0)", got.StartIndex, got.EndIndex)
	}
}

func TestPaginate_ExactMultiple(t *testing.T) {
	got := Paginate(makeRecords(100), 2, 50)
	if got.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", got.TotalPages)
	}
	if len(got.Window) != 50 {
		t.Errorf("Window length = %d, want 50", len(got.Window))
	}
}

func TestPager_JumpRejectsOutOfRange(t *testing.T) {
	p := NewPager()
	p.Jump(2, 3)

	tests := []struct {
		name string
		page int
	}{
		{name: "below range", page: 0},
		{name: "above range", page: 4},
		{name: "negative", page: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p.Jump(tt.page, 3) {
				t.Fatalf("Jump(%d, 3) = true, want false", tt.page)
			}
			if p.Current() != 2 {
				t.Errorf("Current() = %d after rejected jump, want 2", p.Current())
			}
		})
	}
}

func TestPager_SetPageSize(t *testing.T) {
	p := NewPager()
	p.Jump(3, 5)

	if err := p.SetPageSize(20); err != nil {
		t.Fatalf("SetPageSize(20) error = %v, want nil", err)
	}
	if p.Current() != 1 {
		t.Errorf("Current() = %d after page size change, want 1", p.Current())
	}
	if p.PageSize() != 20 {
		t.Errorf("PageSize() = %d, want 20", p.PageSize())
	}

	if err := p.SetPageSize(33); !errors.Is(err, types.ErrInvalidPageSize) {
		t.Errorf("SetPageSize(33) error = %v, want ErrInvalidPageSize", err)
	}
	if p.PageSize() != 20 {
		t.Errorf("PageSize() = %d after rejected size, want 20", p.PageSize())
	}
}

func TestPager_NavigationClamps(t *testing.T) {
	p := NewPager()

	p.Prev()
	if p.Current() != 1 {
		t.Errorf("Prev() on page 1: Current() = %d, want 1", p.Current())
	}

	p.Last(3)
	p.Next(3)
	if p.Current() != 3 {
		t.Errorf("Next() on final page: Current() = %d, want 3", p.Current())
	}

	p.Prev()
	if p.Current() != 2 {
		t.Errorf("Prev() from page 3: Current() = %d, want 2", p.Current())
	}

	p.Reset()
	if p.Current() != 1 {
		t.Errorf("Reset(): Current() = %d, want 1", p.Current())
	}
}

// Property-based test: page windows partition the filtered list
func TestPaginate_PropertyPartition(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("windows are disjoint and cover every record", prop.ForAll(
		func(n int, sizeIdx int) bool {
			records := makeRecords(n)
			pageSize := PageSizes[sizeIdx%len(PageSizes)]

			first := Paginate(records, 1, pageSize)
			total := 0
			for page := 1; page <= first.TotalPages; page++ {
				p := Paginate(records, page, pageSize)
				if p.EndIndex-p.StartIndex != len(p.Window) {
					return false
				}
				total += len(p.Window)
			}
			return total == n
		},
		gen.IntRange(0, 500),
		gen.IntRange(0, 100),
	))

	properties.Property("total pages is always at least one", prop.ForAll(
		func(n int, sizeIdx int) bool {
			pageSize := PageSizes[sizeIdx%len(PageSizes)]
			return Paginate(makeRecords(n), 1, pageSize).TotalPages >= 1
		},
		gen.IntRange(0, 500),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
