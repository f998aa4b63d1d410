package content

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name        string
		page, size  int
		wantItems   []int
		wantCurrent int
		wantTotal   int
		wantNext    *int
		wantPrev    *int
	}{
		{"first page", 1, 3, []int{1, 2, 3}, 1, 3, ptr(2), nil},
		{"middle page", 2, 3, []int{4, 5, 6}, 2, 3, ptr(3), ptr(1)},
		{"last page is partial", 3, 3, []int{7}, 3, 3, nil, ptr(2)},
		{"page beyond range is clamped", 99, 3, []int{7}, 3, 3, nil, ptr(2)},
		{"page below range is clamped", -4, 3, []int{1, 2, 3}, 1, 3, ptr(2), nil},
		{"zero size holds one item", 2, 0, []int{2}, 2, 7, ptr(3), ptr(1)},
		{"size beyond the list", 2, math.MaxInt, items, 1, 1, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			p := Paginate(items, tt.page, tt.size)
			req.Equal(tt.wantItems, p.Items)
			req.Equal(tt.wantCurrent, p.CurrentPage)
			req.Equal(tt.wantTotal, p.TotalPages)
			req.Equal(len(items), p.TotalItems)
			req.Equal(tt.wantNext, p.NextPage)
			req.Equal(tt.wantPrev, p.PrevPage)
			req.Equal(tt.wantNext != nil, p.HasNext)
			req.Equal(tt.wantPrev != nil, p.HasPrev)
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	req := require.New(t)
	p := Paginate([]string(nil), 3, 10)
	req.Empty(p.Items)
	req.NotNil(p.Items)
	req.Equal(1, p.CurrentPage)
	req.Equal(0, p.TotalPages)
	req.False(p.HasNext)
	req.False(p.HasPrev)
}

func ptr(i int) *int { return &i }
