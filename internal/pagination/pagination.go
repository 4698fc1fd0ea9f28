package pagination

import (
	"math"
	"net/http"
	"strconv"
)

// Default pagination values. Pages are 0-based.
const (
	DefaultPage = 0
	DefaultSize = 20
	MaxSize     = 100

	// MaxPage keeps Page*MaxSize inside an int.
	MaxPage = math.MaxInt / MaxSize
)

// Params represents pagination query parameters
type Params struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Page is the single paginated-list contract used by the services and the
// console. Raw-array backends are normalised into it with FromSlice.
type Page[T any] struct {
	Content       []T  `json:"content"`
	Page          int  `json:"page"`
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// ParseParams extracts and validates pagination parameters from HTTP request
func ParseParams(r *http.Request) Params {
	p := Params{Page: DefaultPage, Size: DefaultSize}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if n, err := strconv.Atoi(pageStr); err == nil && n >= 0 {
			p.Page = n
		}
	}

	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		if n, err := strconv.Atoi(sizeStr); err == nil && n > 0 {
			p.Size = n
		}
	}

	p.Validate()
	return p
}

// Validate ensures pagination parameters are valid and sets defaults if needed
func (p *Params) Validate() {
	if p.Page < 0 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Size < 1 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
}

// Offset returns the SQL OFFSET value for the page
func (p Params) Offset() int {
	return p.Page * p.Size
}

// TotalPages is the ceiling of total/size; zero elements means zero pages.
func TotalPages(total, size int) int {
	if size < 1 || total < 1 {
		return 0
	}
	return (total + size - 1) / size
}

// NewPage builds a page around content that was already sliced by the store.
func NewPage[T any](content []T, params Params, total int) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := TotalPages(total, params.Size)
	return Page[T]{
		Content:       content,
		Page:          params.Page,
		Size:          params.Size,
		TotalElements: total,
		TotalPages:    pages,
		First:         params.Page == 0,
		Last:          params.Page >= pages-1,
	}
}

// FromSlice pages an unpaginated list client-side.
func FromSlice[T any](items []T, page, size int) Page[T] {
	params := Params{Page: page, Size: size}
	params.Validate()

	start := len(items)
	if params.Page <= len(items)/params.Size {
		start = params.Offset()
	}
	if start > len(items) {
		start = len(items)
	}
	end := start + params.Size
	if end > len(items) {
		end = len(items)
	}

	content := make([]T, end-start)
	copy(content, items[start:end])
	return NewPage(content, params, len(items))
}

// SizeOrDefault returns size, or DefaultSize when size is not positive.
func SizeOrDefault(size int) int {
	if size <= 0 {
		return DefaultSize
	}
	return size
}
