package grid

import (
	"sort"

	"github.com/contentgrid/rulegrid/internal/types"
)

/*
 * Bulk row selection.
 *
 * Tracks selected record identities. Select-all is scoped to the current
 * page window, never the full filtered set. The selection is not pruned
 * when filters or pages change, matching observed grid behavior: bulk
 * actions resolve ids against the full record set, so a stale id degrades
 * to "record not found" rather than corrupting an operation.
 *
 * Cardinality gating lives here as pure helpers; the side effects of the
 * bulk actions themselves (navigation, deletion, confirmation) belong to
 * the Grid orchestrator.
 */

// Selection is the set of selected record identities.
type Selection struct {
	ids map[types.RecordID]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[types.RecordID]struct{})}
}

// Toggle adds or removes a single row.
func (s *Selection) Toggle(id types.RecordID, selected bool) {
	if selected {
		s.ids[id] = struct{}{}
		return
	}
	delete(s.ids, id)
}

// SelectAll replaces the selection with every row on the current page
// window when checked, or clears it entirely when unchecked.
func (s *Selection) SelectAll(window []types.RuleRecord, checked bool) {
	s.ids = make(map[types.RecordID]struct{})
	if !checked {
		return
	}
	for i := range window {
		s.ids[window[i].ID] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[types.RecordID]struct{})
}

// Has reports whether a row is selected.
func (s *Selection) Has(id types.RecordID) bool {
	_, ok := s.ids[id]
	return ok
}

// Count returns the selection cardinality.
func (s *Selection) Count() int { return len(s.ids) }

// IDs returns the selected identities in stable sorted order.
func (s *Selection) IDs() []types.RecordID {
	out := make([]types.RecordID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Single resolves the selection to exactly one record. Returns
// ErrNothingSelected for an empty selection, ErrMultipleSelected for more
// than one row, and ErrRecordNotFound when the id no longer resolves.
func (s *Selection) Single(records []types.RuleRecord) (types.RuleRecord, error) {
	if len(s.ids) == 0 {
		return types.RuleRecord{}, types.ErrNothingSelected
	}
	if len(s.ids) > 1 {
		return types.RuleRecord{}, types.ErrMultipleSelected
	}
	id := s.IDs()[0]
	for i := range records {
		if records[i].ID == id {
			return records[i], nil
		}
	}
	return types.RuleRecord{}, types.ErrRecordNotFound
}

// Resolve returns the selected records present in the record set, in
// record-set order. Stale ids are silently skipped.
func (s *Selection) Resolve(records []types.RuleRecord) []types.RuleRecord {
	out := make([]types.RuleRecord, 0, len(s.ids))
	for i := range records {
		if s.Has(records[i].ID) {
			out = append(out, records[i])
		}
	}
	return out
}
