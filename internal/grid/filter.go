// Package grid implements the filtering, pagination, and in-place editing
// engine behind the rule content grid.
//
// The derived-state pipeline is a chain of pure functions: the record
// collection and the column filter state produce a filtered list, which the
// pager windows into the visible page. User actions mutate either ephemeral
// view state (filters, page, selection, column widths) or a record, which
// round-trips through an update callback into the record store with a
// parallel activity-log emission. Everything is synchronous and re-derived
// eagerly; recomputation is always correctness-safe.
package grid

import (
	"strings"

	"github.com/contentgrid/rulegrid/internal/types"
)

/*
 * Filter evaluation.
 *
 * A record passes when it satisfies every active predicate (AND across
 * columns). Absence of a filter value is neutral: no predicate defaults to
 * "must be empty". Three predicate shapes:
 *
 *   - text: case-insensitive substring match, empty pattern neutral
 *   - multi-select: membership in the accepted set, empty set neutral
 *   - tri-state boolean: 'all' neutral, 'true'/'false' exact match with
 *     missing flags reading as false
 *
 * Ordering is preserved (stable filter, no resort) and records missing
 * fields are never excluded by that absence alone: missing text reads as ""
 * through the RuleRecord accessors.
 */

// Apply returns the records satisfying every active predicate in filters.
// The input slice is never mutated and relative order is preserved.
func Apply(records []types.RuleRecord, filters types.FilterState) []types.RuleRecord {
	if !filters.Active() {
		out := make([]types.RuleRecord, len(records))
		copy(out, records)
		return out
	}

	out := make([]types.RuleRecord, 0, len(records))
	for i := range records {
		if matches(&records[i], filters) {
			out = append(out, records[i])
		}
	}
	return out
}

func matches(r *types.RuleRecord, filters types.FilterState) bool {
	for key, pattern := range filters.Text {
		if pattern == "" {
			continue
		}
		value := strings.ToLower(r.Field(key))
		if !strings.Contains(value, strings.ToLower(pattern)) {
			return false
		}
	}

	for key, accepted := range filters.Values {
		if len(accepted) == 0 {
			continue
		}
		if !contains(accepted, r.Field(key)) {
			return false
		}
	}

	for key, state := range filters.Flags {
		if !state.Matches(r.Flag(key)) {
			return false
		}
	}

	return true
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// UniqueValues returns the distinct non-empty values of a column in
// first-seen order, for building multi-select filter option lists.
func UniqueValues(records []types.RuleRecord, key types.FieldKey) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range records {
		v := records[i].Field(key)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// UniqueValueIndex builds the option lists for every multi-select column.
func UniqueValueIndex(records []types.RuleRecord) map[types.FieldKey][]string {
	index := make(map[types.FieldKey][]string)
	for _, d := range types.Fields {
		if d.Filter == types.FilterValues {
			index[d.Key] = UniqueValues(records, d.Key)
		}
	}
	return index
}
