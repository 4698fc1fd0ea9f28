package pagination

import (
	"math"
	"net/http/httptest"
	"strconv"
	"testing"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"", 0, 20},
		{"?page=3&size=10", 3, 10},
		{"?page=-1&size=0", 0, 20},
		{"?page=abc&size=xyz", 0, 20},
		{"?size=500", 0, MaxSize},
		{"?page=" + strconv.Itoa(math.MaxInt/10) + "&size=100", MaxPage, 100},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/api/v1/patients"+tt.query, nil)
		got := ParseParams(r)
		if got.Page != tt.wantPage || got.Size != tt.wantSize {
			t.Errorf("ParseParams(%q): expected page=%d size=%d, got page=%d size=%d",
				tt.query, tt.wantPage, tt.wantSize, got.Page, got.Size)
		}
	}
}

func TestParams_Offset(t *testing.T) {
	p := Params{Page: 2, Size: 20}
	if p.Offset() != 40 {
		t.Errorf("Expected offset 40, got %d", p.Offset())
	}

	huge := Params{Page: math.MaxInt, Size: MaxSize}
	huge.Validate()
	if huge.Offset() < 0 {
		t.Errorf("Expected non-negative offset for a huge page, got %d", huge.Offset())
	}
}

func TestNewPage(t *testing.T) {
	page := NewPage([]string{"a", "b"}, Params{Page: 1, Size: 2}, 5)

	if page.TotalPages != 3 {
		t.Errorf("Expected 3 pages, got %d", page.TotalPages)
	}
	if page.First {
		t.Error("Expected page 1 not to be first")
	}
	if page.Last {
		t.Error("Expected page 1 of 3 not to be last")
	}

	empty := NewPage[string](nil, Params{Page: 0, Size: 20}, 0)
	if empty.Content == nil {
		t.Error("Expected empty content slice, got nil")
	}
	if empty.TotalPages != 0 || !empty.First || !empty.Last {
		t.Errorf("Unexpected empty page: %+v", empty)
	}
}

func TestFromSlice(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	page := FromSlice(items, 2, 20)
	if len(page.Content) != 5 {
		t.Fatalf("Expected 5 items on last page, got %d", len(page.Content))
	}
	if page.Content[0] != 40 {
		t.Errorf("Expected first item 40, got %d", page.Content[0])
	}
	if page.TotalPages != 3 || page.TotalElements != 45 || !page.Last {
		t.Errorf("Unexpected page metadata: %+v", page)
	}

	beyond := FromSlice(items, 9, 20)
	if len(beyond.Content) != 0 {
		t.Errorf("Expected no items past the end, got %d", len(beyond.Content))
	}

	huge := FromSlice([]int{1, 2, 3}, math.MaxInt/10, 20)
	if len(huge.Content) != 0 {
		t.Errorf("Expected no items on a huge page, got %d", len(huge.Content))
	}
	if huge.TotalElements != 3 || !huge.Last {
		t.Errorf("Unexpected huge page metadata: %+v", huge)
	}
}

func TestControl_ButtonsMatchTotalPages(t *testing.T) {
	for n := 0; n <= 7; n++ {
		c := Control{Page: 0, Size: 20, TotalPages: n, TotalElements: n * 20}
		if got := len(c.Buttons()); got != n {
			t.Errorf("TotalPages=%d: expected %d buttons, got %d", n, n, got)
		}
		if c.Visible() != (n > 1) {
			t.Errorf("TotalPages=%d: unexpected visibility %v", n, c.Visible())
		}
	}
}

func TestControl_PrevNext(t *testing.T) {
	first := Control{Page: 0, Size: 20, TotalPages: 4, TotalElements: 70}
	if !first.PrevDisabled() || first.NextDisabled() {
		t.Errorf("First page: prev should be disabled and next enabled")
	}

	last := Control{Page: 3, Size: 20, TotalPages: 4, TotalElements: 70}
	if last.PrevDisabled() || !last.NextDisabled() {
		t.Errorf("Last page: prev should be enabled and next disabled")
	}

	start, end := last.Range()
	if start != 61 || end != 70 {
		t.Errorf("Expected range 61-70, got %d-%d", start, end)
	}
}

func TestControlFor(t *testing.T) {
	c := ControlFor(FromSlice([]string{"a", "b", "c"}, 1, 2))
	if c.Page != 1 || c.TotalPages != 2 || c.TotalElements != 3 {
		t.Errorf("Unexpected control: %+v", c)
	}
	start, end := c.Range()
	if start != 3 || end != 3 {
		t.Errorf("Expected range 3-3, got %d-%d", start, end)
	}

	far := ControlFor(FromSlice(make([]int, 250), math.MaxInt, MaxSize))
	if far.Page != MaxPage {
		t.Errorf("Expected page clamped to %d, got %d", MaxPage, far.Page)
	}
	start, end = far.Range()
	if start != 0 || end != 0 {
		t.Errorf("Expected empty range past the end, got %d-%d", start, end)
	}
	if far.PrevDisabled() || !far.NextDisabled() {
		t.Error("Past the end: prev should be enabled and next disabled")
	}
}
