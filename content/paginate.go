package content

// Page is one page of a paginated list. NextPage and PrevPage are nil at the edges.
type Page[T any] struct {
	Items       []T  `json:"items"`
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
	NextPage    *int `json:"nextPage"`
	PrevPage    *int `json:"prevPage"`
}

// Paginate slices items into pages of size. The requested page is clamped to
// [1, totalPages]; an empty list yields page 1 of 0.
func Paginate[T any](items []T, page, size int) Page[T] {
	total := len(items)
	// a single page never needs more room than the whole list
	size = max(1, min(size, total))
	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}
	current := max(1, min(page, totalPages))

	start := min((current-1)*size, total)
	end := min(start+size, total)

	p := Page[T]{
		Items:       items[start:end:end],
		CurrentPage: current,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     current < totalPages,
		HasPrev:     current > 1,
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	if p.HasNext {
		next := current + 1
		p.NextPage = &next
	}
	if p.HasPrev {
		prev := current - 1
		p.PrevPage = &prev
	}
	return p
}
