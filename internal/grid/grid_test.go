package grid

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentgrid/rulegrid/internal/activity"
	"github.com/contentgrid/rulegrid/internal/core/store"
	"github.com/contentgrid/rulegrid/internal/types"
)

type eventRecorder struct {
	events []activity.Event
}

func (r *eventRecorder) Log(e activity.Event) {
	r.events = append(r.events, e)
}

func (r *eventRecorder) byAction(action string) []activity.Event {
	var out []activity.Event
	for _, e := range r.events {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

type toastRecorder struct {
	successes []string
	errors    []string
}

func (r *toastRecorder) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *toastRecorder) Error(msg string)   { r.errors = append(r.errors, msg) }

type gridHarness struct {
	grid    *Grid
	store   *store.Mem
	events  *eventRecorder
	toasts  *toastRecorder
	updates []types.RuleRecord
	deletes []string
}

func newHarness(t *testing.T, rules []types.RuleRecord, confirm Confirmer) *gridHarness {
	t.Helper()

	h := &gridHarness{
		store:  store.NewMem(),
		events: &eventRecorder{},
		toasts: &toastRecorder{},
	}
	require.NoError(t, h.store.Write(store.KeyRules, rules))

	g, err := New(Options{
		Store:    h.store,
		Activity: h.events,
		Notifier: h.toasts,
		Confirm:  confirm,
		User:     "Test User",
		Now:      func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
		Callbacks: Callbacks{
			OnRuleUpdate: func(r types.RuleRecord) { h.updates = append(h.updates, r) },
			OnRuleDelete: func(id string) { h.deletes = append(h.deletes, id) },
		},
	})
	require.NoError(t, err)
	h.grid = g
	return h
}

func gridFixture(n int) []types.RuleRecord {
	rules := make([]types.RuleRecord, n)
	for i := range rules {
		rules[i] = types.RuleRecord{
			ID:           types.RecordID(fmt.Sprintf("rec-%03d", i)),
			RuleID:       fmt.Sprintf("R%04d", i+1),
			Description:  fmt.Sprintf("description %d", i),
			BusinessArea: []string{"Claims", "Benefits"}[i%2],
		}
	}
	return rules
}

func TestGrid_RestoresFromStore(t *testing.T) {
	h := newHarness(t, gridFixture(3), nil)

	assert.Len(t, h.grid.Rules(), 3)
	view := h.grid.View()
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, "Showing 1-3 of 3 rules", view.Summary)
}

func TestGrid_FilterResetsPage(t *testing.T) {
	h := newHarness(t, gridFixture(120), nil)

	require.True(t, h.grid.JumpToPage(3))
	require.Equal(t, 3, h.grid.Pager().Current())

	require.NoError(t, h.grid.SetTextFilter(types.FieldDescription, "description"))
	assert.Equal(t, 1, h.grid.Pager().Current(), "filter change must reset to page 1")

	filterEvents := h.events.byAction(activity.ActionFilter)
	require.Len(t, filterEvents, 1)
	assert.Equal(t, "Applied filter to description column", filterEvents[0].Details)

	// The filter state round-trips through the store.
	var persisted types.FilterState
	ok, err := h.store.Read(store.KeyColumnFilters, &persisted)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "description", persisted.Text[types.FieldDescription])
}

func TestGrid_PageSizeChangeResetsPage(t *testing.T) {
	h := newHarness(t, gridFixture(120), nil)

	require.True(t, h.grid.JumpToPage(2))
	require.NoError(t, h.grid.SetPageSize(20))

	assert.Equal(t, 1, h.grid.Pager().Current())
	assert.Equal(t, 6, h.grid.View().TotalPages)

	assert.ErrorIs(t, h.grid.SetPageSize(33), types.ErrInvalidPageSize)
}

func TestGrid_ViewSummary(t *testing.T) {
	h := newHarness(t, gridFixture(120), nil)

	require.NoError(t, h.grid.SetValuesFilter(types.FieldBusinessArea, []string{"Claims"}))
	h.grid.SelectRow("rec-000", true)

	view := h.grid.View()
	assert.Equal(t, 60, view.Total)
	assert.Equal(t, 120, view.TotalRecords)
	assert.Equal(t, "Showing 1-50 of 60 rules (filtered from 120 total) - 1 selected", view.Summary)
	assert.Contains(t, view.UniqueValues[types.FieldBusinessArea], "Claims")
	assert.Contains(t, view.UniqueValues[types.FieldBusinessArea], "Benefits")
}

func TestGrid_InlineEditFlow(t *testing.T) {
	h := newHarness(t, gridFixture(3), nil)

	action, err := h.grid.ClickCell("rec-001", types.FieldDescription)
	require.NoError(t, err)
	require.Equal(t, ClickInline, action)

	h.grid.SetEditBuffer("amended text")
	require.NoError(t, h.grid.SaveEdit())

	rules := h.grid.Rules()
	assert.Equal(t, "amended text", rules[1].Description)

	require.Len(t, h.updates, 1, "update callback must fire once")
	assert.Equal(t, "amended text", h.updates[0].Description)

	edits := h.events.byAction(activity.ActionEdit)
	require.Len(t, edits, 1)
	assert.Equal(t, "Rule R0002 - description", edits[0].Target)
	assert.Equal(t, "description 1", edits[0].OldValue)
	assert.Equal(t, "amended text", edits[0].NewValue)

	assert.Equal(t, []string{"Rule updated successfully"}, h.toasts.successes)

	// The updated collection round-trips through the store.
	var persisted []types.RuleRecord
	ok, err := h.store.Read(store.KeyRules, &persisted)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "amended text", persisted[1].Description)
}

func TestGrid_CancelEmitsNothing(t *testing.T) {
	h := newHarness(t, gridFixture(3), nil)

	_, err := h.grid.ClickCell("rec-001", types.FieldDescription)
	require.NoError(t, err)
	h.grid.SetEditBuffer("abandoned")
	h.grid.CancelEdit()

	assert.Empty(t, h.updates)
	assert.Empty(t, h.events.byAction(activity.ActionEdit))
	assert.Equal(t, "description 1", h.grid.Rules()[1].Description)
}

func TestGrid_RichTextFlow(t *testing.T) {
	h := newHarness(t, gridFixture(2), nil)

	action, err := h.grid.ClickCell("rec-000", types.FieldEnglish)
	require.NoError(t, err)
	require.Equal(t, ClickRichText, action)

	require.NoError(t, h.grid.SaveRichText("<p>en</p>", "<p>es</p>"))

	rules := h.grid.Rules()
	assert.Equal(t, "<p>en</p>", rules[0].English)
	assert.Equal(t, "<p>es</p>", rules[0].Spanish)

	edits := h.events.byAction(activity.ActionEdit)
	require.Len(t, edits, 1)
	assert.Equal(t, "Rule R0001 - Rich Text", edits[0].Target)
	assert.Equal(t, "Updated English content and Spanish content using rich text editor", edits[0].Details)
}

func TestGrid_ToggleFlag(t *testing.T) {
	h := newHarness(t, gridFixture(2), nil)

	require.NoError(t, h.grid.ToggleFlag("rec-000", types.FieldPublished, true))

	assert.True(t, h.grid.Rules()[0].Published)
	edits := h.events.byAction(activity.ActionEdit)
	require.Len(t, edits, 1)
	assert.Equal(t, "Rule R0001 - Published", edits[0].Target)
	assert.Equal(t, "Published rule", edits[0].Details)
	assert.Equal(t, "No", edits[0].OldValue)
	assert.Equal(t, "Yes", edits[0].NewValue)
}

func TestGrid_SetEffectiveDate(t *testing.T) {
	h := newHarness(t, gridFixture(1), nil)

	picked := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
	require.NoError(t, h.grid.SetEffectiveDate("rec-000", &picked))
	assert.Equal(t, "09/30/2025", h.grid.Rules()[0].EffectiveDate)

	// A nil selection changes nothing and emits nothing further.
	require.NoError(t, h.grid.SetEffectiveDate("rec-000", nil))
	assert.Equal(t, "09/30/2025", h.grid.Rules()[0].EffectiveDate)
	assert.Len(t, h.events.byAction(activity.ActionEdit), 1)
}

func TestGrid_BulkEditCardinality(t *testing.T) {
	h := newHarness(t, gridFixture(3), nil)

	assert.ErrorIs(t, h.grid.EditSelected(), types.ErrNothingSelected)
	assert.Equal(t, "Please select at least one row to edit", h.toasts.errors[0])

	h.grid.SelectRow("rec-000", true)
	h.grid.SelectRow("rec-001", true)
	assert.ErrorIs(t, h.grid.EditSelected(), types.ErrMultipleSelected)
	assert.Equal(t, "Please select only one row to edit", h.toasts.errors[1])

	h.grid.SelectRow("rec-001", false)
	assert.ErrorIs(t, h.grid.EditSelected(), types.ErrEditUnavailable)
}

func TestGrid_EditSelectedDelegates(t *testing.T) {
	h := newHarness(t, gridFixture(2), nil)
	var edited []string
	h.grid.cb.OnEditRule = func(r types.RuleRecord) { edited = append(edited, r.RuleID) }

	h.grid.SelectRow("rec-001", true)
	require.NoError(t, h.grid.EditSelected())

	assert.Equal(t, []string{"R0002"}, edited)
	assert.Empty(t, h.updates, "edit delegation must not mutate the record")
}

func TestGrid_PreviewSelected(t *testing.T) {
	h := newHarness(t, gridFixture(2), nil)

	h.grid.SelectRow("rec-001", true)
	rec, err := h.grid.PreviewSelected()
	require.NoError(t, err)
	assert.Equal(t, "R0002", rec.RuleID)

	views := h.events.byAction(activity.ActionView)
	require.Len(t, views, 1)
	assert.Equal(t, "Opened rule preview via Preview button", views[0].Details)
}

func TestGrid_DeleteRejectsPublished(t *testing.T) {
	rules := gridFixture(3)
	rules[1].Published = true
	h := newHarness(t, rules, func(string) bool {
		t.Fatal("confirmation must not be requested for a rejected batch")
		return false
	})

	h.grid.SelectRow("rec-000", true)
	h.grid.SelectRow("rec-001", true)

	assert.ErrorIs(t, h.grid.DeleteSelected(), types.ErrPublishedDelete)
	assert.Len(t, h.grid.Rules(), 3, "no record may be deleted when any selected record is published")
	assert.Empty(t, h.deletes)
	assert.Equal(t, 2, h.grid.Selection().Count(), "rejection must leave the selection intact")
	assert.Contains(t, h.toasts.errors[0], "Cannot delete published rules")
}

func TestGrid_DeleteDeclinedIsNoOp(t *testing.T) {
	h := newHarness(t, gridFixture(3), func(string) bool { return false })

	h.grid.SelectRow("rec-000", true)
	require.NoError(t, h.grid.DeleteSelected())

	assert.Len(t, h.grid.Rules(), 3)
	assert.Empty(t, h.deletes)
}

func TestGrid_DeleteConfirmedFlow(t *testing.T) {
	var confirmMsg string
	h := newHarness(t, gridFixture(4), func(msg string) bool {
		confirmMsg = msg
		return true
	})

	h.grid.SelectRow("rec-001", true)
	h.grid.SelectRow("rec-002", true)
	require.NoError(t, h.grid.DeleteSelected())

	assert.Equal(t, "Are you sure you want to delete 2 rules (R0002, R0003)?", confirmMsg)
	assert.Equal(t, []string{"R0002", "R0003"}, h.deletes)
	assert.Len(t, h.grid.Rules(), 2)
	assert.Equal(t, 0, h.grid.Selection().Count(), "selection must clear after delete")
	assert.Equal(t, []string{"Successfully deleted 2 rules"}, h.toasts.successes)

	var persisted []types.RuleRecord
	ok, err := h.store.Read(store.KeyRules, &persisted)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, persisted, 2)
}

func TestGrid_DeleteSingleNamesTheRule(t *testing.T) {
	var confirmMsg string
	h := newHarness(t, gridFixture(2), func(msg string) bool {
		confirmMsg = msg
		return true
	})

	h.grid.SelectRow("rec-000", true)
	require.NoError(t, h.grid.DeleteSelected())

	assert.Equal(t, "Are you sure you want to delete Rule R0001?", confirmMsg)
	assert.Equal(t, []string{"Successfully deleted 1 rule"}, h.toasts.successes)
}

func TestGrid_DeleteNothingSelected(t *testing.T) {
	h := newHarness(t, gridFixture(2), nil)

	assert.ErrorIs(t, h.grid.DeleteSelected(), types.ErrNothingSelected)
	assert.Equal(t, "Please select at least one row to delete", h.toasts.errors[0])
}

func TestGrid_CreateRule(t *testing.T) {
	h := newHarness(t, gridFixture(2), nil)
	var created []string
	h.grid.cb.OnRuleCreate = func(r types.RuleRecord) { created = append(created, r.RuleID) }

	rec, err := h.grid.CreateRule()
	require.NoError(t, err)

	assert.Equal(t, "R0003", rec.RuleID)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, []string{"R0003"}, created)
	assert.Len(t, h.grid.Rules(), 3)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestGrid_CreateRuleFallsBackToNavigation(t *testing.T) {
	h := newHarness(t, gridFixture(1), nil)
	var pages []string
	h.grid.cb.OnNavigate = func(page string) { pages = append(pages, page) }

	_, err := h.grid.CreateRule()
	require.NoError(t, err)
	assert.Equal(t, []string{"create-rule"}, pages)
	assert.Len(t, h.grid.Rules(), 1, "navigation fallback must not create a record")
}

func TestGrid_CreateRuleNoPath(t *testing.T) {
	h := newHarness(t, gridFixture(1), nil)

	_, err := h.grid.CreateRule()
	assert.ErrorIs(t, err, types.ErrNoCreatePath)
	assert.Contains(t, h.toasts.errors[0], "navigation not configured")
}

func TestGrid_SelectAllOnPage(t *testing.T) {
	h := newHarness(t, gridFixture(120), nil)

	h.grid.SelectAllOnPage(true)
	assert.Equal(t, 50, h.grid.Selection().Count(), "select-all is page-scoped")

	views := h.events.byAction(activity.ActionView)
	require.Len(t, views, 1)
	assert.Equal(t, "Selected all 50 rules on current page", views[0].Details)

	h.grid.SelectAllOnPage(false)
	assert.Equal(t, 0, h.grid.Selection().Count())
}

func TestGrid_ColumnWidthsPersist(t *testing.T) {
	h := newHarness(t, gridFixture(1), nil)

	require.NoError(t, h.grid.DragResizeColumn(types.FieldVersion, 96, 60))

	g2, err := New(Options{Store: h.store})
	require.NoError(t, err)
	assert.Equal(t, 156, g2.Layout().Width(types.FieldVersion))

	require.NoError(t, h.grid.ResetColumnWidths())
	assert.Equal(t, 96, h.grid.Layout().Width(types.FieldVersion))
}
