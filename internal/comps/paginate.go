package comps

import "github.com/sells-group/comps-engine/internal/model"

// Paginate returns the 1-based page of companies and its metadata. A page past
// the end yields an empty slice. page and pageSize must be positive.
func Paginate(companies []model.Company, page, pageSize int) ([]model.Company, model.Pagination) {
	total := len(companies)
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	p := model.Pagination{
		CurrentPage: page,
		TotalPages:  pages,
		TotalItems:  total,
		PageSize:    pageSize,
	}

	// Checked before multiplying so a huge page number cannot overflow start.
	if page > pages {
		return []model.Company{}, p
	}
	start := (page - 1) * pageSize
	end := start + min(pageSize, total-start)
	out := make([]model.Company, end-start)
	copy(out, companies[start:end])
	return out, p
}
