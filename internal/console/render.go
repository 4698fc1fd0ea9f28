package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/pagination"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/view"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/workflow"
)

type tone int

const (
	toneNeutral tone = iota
	toneGood
	toneWarn
	toneBad
)

func badgeTone(status string) tone {
	switch status {
	case "ACTIVE", "AVAILABLE", "CONFIRMED", "COMPLETED", "PAID", "DISPENSED",
		"FULFILLED", "APPROVED", "READ", "SENT", "FINALIZED", "DISCHARGED":
		return toneGood
	case "PENDING", "SCHEDULED", "DRAFT", "ISSUED", "PARTIALLY_PAID", "ORDERED",
		"SAMPLE_COLLECTED", "IN_PROGRESS", "MAINTENANCE", "ON_LEAVE", "AMENDED",
		"ADMITTED", "OCCUPIED":
		return toneWarn
	case "INACTIVE", "CANCELLED", "NO_SHOW", "FAILED", "REJECTED", "DISCARDED",
		"EXPIRED", "DISCONTINUED", "RESIGNED", "TERMINATED":
		return toneBad
	}
	return toneNeutral
}

var toneColors = map[tone]string{
	toneGood: "\x1b[32m",
	toneWarn: "\x1b[33m",
	toneBad:  "\x1b[31m",
}

// Renderer writes pages to a terminal. Busy labels go to status so that
// out carries only the page itself.
type Renderer struct {
	out    io.Writer
	status io.Writer
	color  bool
}

func NewRenderer(out, status io.Writer, color bool) *Renderer {
	if status == nil {
		status = io.Discard
	}
	return &Renderer{out: out, status: status, color: color}
}

// Badge renders a status string, coloured by tone when colour is on.
func (r *Renderer) Badge(status string) string {
	if status == "" {
		return "-"
	}
	label := "[" + status + "]"
	if !r.color {
		return label
	}
	if c, ok := toneColors[badgeTone(status)]; ok {
		return c + label + "\x1b[0m"
	}
	return label
}

// Busy prints the label shown while a request is outstanding.
func (r *Renderer) Busy(label string) {
	fmt.Fprintf(r.status, "%s...\n", label)
}

func (r *Renderer) Title(title string) {
	fmt.Fprintf(r.out, "%s\n%s\n", title, strings.Repeat("=", len(title)))
}

func (r *Renderer) Line(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Banner prints an error with the command that re-issues the request.
func (r *Renderer) Banner(b *view.Banner, retry string) {
	if b == nil {
		return
	}
	fmt.Fprintf(r.out, "! %s\n", b.Message)
	if b.CanRetry() && retry != "" {
		fmt.Fprintf(r.out, "  Try again: %s\n", retry)
	}
}

// Table prints rows under headers. An empty table prints empty instead.
func (r *Renderer) Table(headers []string, rows [][]string, empty string) {
	if len(rows) == 0 {
		r.Line("%s", empty)
		return
	}
	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

type kv struct {
	key   string
	value string
}

// Fields prints label/value pairs, skipping empty values.
func (r *Renderer) Fields(pairs ...kv) {
	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		fmt.Fprintf(tw, "%s:\t%s\n", p.key, p.value)
	}
	tw.Flush()
}

// Pagination prints the pagination control. Nothing is printed for a
// single page.
func (r *Renderer) Pagination(c pagination.Control) {
	if !c.Visible() {
		return
	}
	start, end := c.Range()
	r.Line("Showing %d-%d of %d", start, end, c.TotalElements)

	var b strings.Builder
	b.WriteString(pagerButton("Prev", c.PrevDisabled()))
	for _, p := range c.Buttons() {
		b.WriteString(" ")
		if p == c.Page {
			b.WriteString("[" + strconv.Itoa(p+1) + "]")
		} else {
			b.WriteString(strconv.Itoa(p + 1))
		}
	}
	b.WriteString(" ")
	b.WriteString(pagerButton("Next", c.NextDisabled()))
	r.Line("%s", b.String())
}

func pagerButton(label string, disabled bool) string {
	if disabled {
		return "(" + label + ")"
	}
	return "<" + label + ">"
}

// Actions prints the action buttons offered for the current status.
func (r *Renderer) Actions(path string, actions []workflow.Action) {
	if len(actions) == 0 {
		return
	}
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	r.Line("")
	r.Line("Actions: %s", strings.Join(names, ", "))
	r.Line("  console act %s <action> [--field key=value]", path)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
