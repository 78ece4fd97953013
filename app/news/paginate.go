package news

// Page is the simple pagination result.
type Page struct {
	Items   []Article `json:"items"`
	HasMore bool      `json:"hasMore"`
}

// AdvancedPage adds full pagination metadata.
type AdvancedPage struct {
	Items      []Article `json:"items"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
	HasNext    bool      `json:"hasNext"`
	HasPrev    bool      `json:"hasPrev"`
	HasMore    bool      `json:"hasMore"`
}

// Paginate slices items into the requested page. Callers must clamp
// page and limit before calling; no validation happens here.
func Paginate(items []Article, page, limit int) Page {
	start := (page - 1) * limit
	end := start + limit

	return Page{
		Items:   slicePage(items, start, end),
		HasMore: end < len(items),
	}
}

// PaginateAdvanced slices items into the requested page with full
// metadata. Same clamping contract as Paginate.
func PaginateAdvanced(items []Article, page, limit int) AdvancedPage {
	start := (page - 1) * limit
	end := start + limit
	total := len(items)

	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return AdvancedPage{
		Items:      slicePage(items, start, end),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
		HasMore:    end < total,
	}
}

func slicePage(items []Article, start, end int) []Article {
	if start >= len(items) || start < 0 {
		return []Article{}
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
