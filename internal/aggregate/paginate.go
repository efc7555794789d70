package aggregate

// PageInfo describes the "showing X–Y of N" line for one page. It is
// derived from the request, never stored.
type PageInfo struct {
	Page       int // effective 1-based page after clamping
	TotalPages int
	From       int // 1-based index of first item on the page, 0 when empty
	To         int // 1-based index of last item on the page
	Total      int
}

// Paginate slices one 1-based page out of list. Pages past the end clamp
// to the last page; page numbers below 1 clamp to the first. A pageSize
// below 1 returns the whole list as a single page.
func Paginate[T any](list []T, page, pageSize int) ([]T, PageInfo) {
	total := len(list)
	if pageSize < 1 {
		pageSize = total
		if pageSize < 1 {
			pageSize = 1
		}
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	info := PageInfo{
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}
	if end > start {
		info.From = start + 1
		info.To = end
	}
	return list[start:end], info
}
