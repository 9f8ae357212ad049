package grid

import (
	"github.com/contentgrid/rulegrid/internal/types"
)

/*
 * Column layout management.
 *
 * Owns the per-column pixel width map. Three mutations, all against the
 * same map so a single persisted snapshot covers them:
 *
 *   - manual drag resize: width = max(60, startWidth + delta), applied
 *     continuously during the gesture
 *   - auto-fit: samples up to the first 20 rows of the current page window
 *     and fits width to the longest value, clamped to [100, 400]
 *   - reset: restores the descriptor-table defaults in one atomic update
 *
 * The width map persists across reloads through the record store; the grid
 * loads it at construction and writes it back after each commit.
 */

// Width bounds. 60 is the hard floor for any column; auto-fit works within
// [100, 400] using an 8px-per-character estimate plus cell padding.
const (
	MinColumnWidth  = 60
	autoFitMinWidth = 100
	autoFitMaxWidth = 400
	autoFitSample   = 20
	autoFitCharPx   = 8
	autoFitPadPx    = 40
)

// columnSelect keys the leading checkbox column in the width map.
const columnSelect = types.FieldKey("select")

// DefaultWidths returns the default width table for all columns.
func DefaultWidths() map[types.FieldKey]int {
	widths := map[types.FieldKey]int{columnSelect: types.SelectColumnWidth}
	for _, d := range types.GridColumns() {
		widths[d.Key] = d.DefaultWidth
	}
	return widths
}

// Layout owns the mutable column width map.
type Layout struct {
	widths map[types.FieldKey]int
}

// NewLayout starts from the default width table.
func NewLayout() *Layout {
	return &Layout{widths: DefaultWidths()}
}

// Width returns the current width of a column, 100 when untracked.
func (l *Layout) Width(key types.FieldKey) int {
	if w, ok := l.widths[key]; ok {
		return w
	}
	return autoFitMinWidth
}

// Widths returns a copy of the width map for persistence or rendering.
func (l *Layout) Widths() map[types.FieldKey]int {
	out := make(map[types.FieldKey]int, len(l.widths))
	for k, v := range l.widths {
		out[k] = v
	}
	return out
}

// Restore replaces the width map from a persisted snapshot.
// Widths below the floor are clamped; an empty snapshot keeps defaults.
func (l *Layout) Restore(widths map[types.FieldKey]int) {
	if len(widths) == 0 {
		return
	}
	for k, w := range widths {
		if w < MinColumnWidth {
			w = MinColumnWidth
		}
		l.widths[k] = w
	}
}

// Drag applies one step of a pointer-drag resize gesture. startWidth is the
// width captured when the gesture began; delta is the pointer travel.
// Returns the applied width.
func (l *Layout) Drag(key types.FieldKey, startWidth, delta int) int {
	w := startWidth + delta
	if w < MinColumnWidth {
		w = MinColumnWidth
	}
	l.widths[key] = w
	return w
}

// AutoFit sizes a column to its content, sampling up to the first 20 rows
// of the currently paginated window. Returns the committed width.
func (l *Layout) AutoFit(key types.FieldKey, window []types.RuleRecord) int {
	width := autoFitMinWidth

	sample := len(window)
	if sample > autoFitSample {
		sample = autoFitSample
	}
	d, _ := types.FieldByKey(key)
	for i := 0; i < sample; i++ {
		value := window[i].Field(key)
		if d.Kind == types.KindBoolean && window[i].Flag(key) {
			value = "true"
		}
		fit := len(value)*autoFitCharPx + autoFitPadPx
		if fit > autoFitMaxWidth {
			fit = autoFitMaxWidth
		}
		if fit > width {
			width = fit
		}
	}

	l.widths[key] = width
	return width
}

// Reset restores every column to its default width in one atomic update.
func (l *Layout) Reset() {
	l.widths = DefaultWidths()
}
