package grid

import (
	"fmt"
	"strings"

	"github.com/contentgrid/rulegrid/internal/types"
)

// View is the derived read model for one render pass: the filtered and
// paginated window plus everything the surrounding chrome needs. It is
// recomputed from scratch on demand; no incremental caching.
type View struct {
	Page

	// TotalRecords counts the unfiltered collection.
	TotalRecords int

	// Selected counts the current selection, which may include records
	// outside the visible window.
	Selected int

	// Summary is the human-readable range line under the grid.
	Summary string

	// UniqueValues feeds the multi-select filter dropdowns, keyed by
	// column, in first-seen collection order.
	UniqueValues map[types.FieldKey][]string
}

// View computes the current read model: filter, paginate, summarize.
func (g *Grid) View() View {
	filtered := Apply(g.rules, g.filters)
	page := Paginate(filtered, g.pager.Current(), g.pager.PageSize())

	v := View{
		Page:         page,
		TotalRecords: len(g.rules),
		Selected:     g.selection.Count(),
		UniqueValues: UniqueValueIndex(g.rules),
	}
	v.Summary = summarize(v)
	return v
}

func summarize(v View) string {
	var b strings.Builder
	if v.Total == 0 {
		b.WriteString("Showing 0 rules")
	} else {
		fmt.Fprintf(&b, "Showing %d-%d of %d rules", v.StartIndex+1, v.EndIndex, v.Total)
	}
	if v.Total != v.TotalRecords {
		fmt.Fprintf(&b, " (filtered from %d total)", v.TotalRecords)
	}
	if v.Selected > 0 {
		fmt.Fprintf(&b, " - %d selected", v.Selected)
	}
	return b.String()
}

// StripHTML removes markup from rich-text content, leaving plain text for
// previews and width estimation. Entities other than the common few are
// left as-is.
func StripHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(htmlEntities.Replace(b.String()))
}

var htmlEntities = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// Snippet strips markup and truncates to max runes with an ellipsis.
func Snippet(html string, max int) string {
	text := StripHTML(html)
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

// NormalizeStatus maps free-form workflow status text onto the canonical
// labels, passing unknown values through unchanged.
func NormalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "Unknown"
	case "complete", "completed":
		return "Complete"
	case "in progress", "in-progress":
		return "In Progress"
	case "pending":
		return "Pending"
	case "approved":
		return "Approved"
	default:
		return s
	}
}
