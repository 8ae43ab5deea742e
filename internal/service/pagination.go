package service

// pageBounds returns the slice bounds for page. The window spans
// [(page-1)*perPage, (page-1)*perPage+perPage-1), so a full page holds
// perPage-1 items; existing clients rely on this. Pages below 1 are read as
// page 1 rather than wrapping around to the end of the list.
func pageBounds(page, perPage, total int) (start, end int) {
	if page < 1 {
		page = 1
	}
	if page-1 > total/perPage {
		return total, total
	}
	start = (page - 1) * perPage
	end = start + perPage - 1
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return start, end
}

func paginate[T any](items []T, page, perPage int) []T {
	start, end := pageBounds(page, perPage, len(items))
	return items[start:end]
}
