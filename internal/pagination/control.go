package pagination

// Control is the pagination widget model: one button per page plus
// Previous/Next, and a "showing a-b of n" caption.
type Control struct {
	Page          int
	Size          int
	TotalPages    int
	TotalElements int
}

// ControlFor builds the widget model for a page.
func ControlFor[T any](p Page[T]) Control {
	return Control{
		Page:          p.Page,
		Size:          p.Size,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
	}
}

// Visible reports whether the widget renders at all.
func (c Control) Visible() bool {
	return c.TotalPages > 1
}

// Buttons returns the 0-based page numbers, one per page.
func (c Control) Buttons() []int {
	if c.TotalPages < 1 {
		return nil
	}
	buttons := make([]int, c.TotalPages)
	for i := range buttons {
		buttons[i] = i
	}
	return buttons
}

func (c Control) PrevDisabled() bool {
	return c.Page <= 0
}

func (c Control) NextDisabled() bool {
	return c.Page >= c.TotalPages-1
}

// Range returns the 1-based first and last row shown on the current page,
// or 0-0 when the page holds no rows.
func (c Control) Range() (start, end int) {
	if c.TotalElements < 1 || c.Size < 1 || c.Page < 0 || c.Page > (c.TotalElements-1)/c.Size {
		return 0, 0
	}
	start = c.Page*c.Size + 1
	end = c.TotalElements
	if c.TotalElements-start >= c.Size {
		end = start + c.Size - 1
	}
	return start, end
}
