package pagination

import "github.com/gofiber/fiber/v2"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds parsed pagination query parameters
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Result wraps a page of items with paging metadata
type Result struct {
	Items      interface{} `json:"items"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int         `json:"total"`
	TotalPages int         `json:"total_pages"`
}

// Parse reads page and limit from the query string with sane bounds
func Parse(c *fiber.Ctx) Params {
	page := c.QueryInt("page", DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := c.QueryInt("limit", DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// Offset returns the slice offset for the current page
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Paginate slices a window out of total and builds the result envelope.
// The pick function must return items[from:to] for the computed window.
func Paginate(p Params, total int, pick func(from, to int) interface{}) Result {
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}

	from := p.Offset()
	if from > total {
		from = total
	}
	to := from + p.Limit
	if to > total {
		to = total
	}

	return Result{
		Items:      pick(from, to),
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
