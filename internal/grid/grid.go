package grid

import (
	"fmt"
	"strings"
	"time"

	"github.com/contentgrid/rulegrid/internal/activity"
	"github.com/contentgrid/rulegrid/internal/core/store"
	"github.com/contentgrid/rulegrid/internal/types"
)

/*
 * Grid orchestration.
 *
 * Thin coordination layer over the pure pipeline (filter -> paginate) and
 * the three controllers (layout, editor, selection). Owns the record
 * collection and ephemeral view state, persists snapshots through the
 * record store, and emits exactly one activity event per mutating or
 * navigational user action.
 *
 * Collaborators are injected capabilities with safe defaults: the activity
 * logger and notifier default to no-ops, the confirmer defaults to
 * declining (destructive actions require an explicit confirmer). External
 * modal collaborators (rich-text editor, date picker) re-enter through
 * SaveRichText/CancelRichText and SetEffectiveDate.
 *
 * Validation failures (selection cardinality, published-row delete,
 * missing collaborators) surface as a notification plus a sentinel error
 * with state unchanged. Nothing here is fatal.
 */

// Notifier receives transient user-facing notifications. Fire-and-forget.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// Confirmer asks the operator to confirm a destructive action.
type Confirmer func(message string) bool

// Callbacks are the external collaborators invoked on record lifecycle
// actions. Any of them may be nil; actions requiring an absent callback
// report a functional error instead of panicking.
type Callbacks struct {
	OnRuleUpdate func(types.RuleRecord)
	OnRuleCreate func(types.RuleRecord)
	OnRuleDelete func(ruleID string)
	OnEditRule   func(types.RuleRecord)
	OnNavigate   func(page string)
}

// Options configures a Grid.
type Options struct {
	Store     store.Store // nil disables persistence
	Activity  activity.Logger
	Notifier  Notifier
	Confirm   Confirmer
	Callbacks Callbacks

	// User names the operator in activity events.
	User string

	// PageSize overrides the default page size; must be a supported size.
	PageSize int

	// Now is injectable for tests; nil uses time.Now.
	Now func() time.Time
}

// Grid is the content-grid engine.
type Grid struct {
	rules   []types.RuleRecord
	filters types.FilterState

	layout    *Layout
	pager     *Pager
	editor    *Editor
	selection *Selection

	st      store.Store
	log     activity.Logger
	notify  Notifier
	confirm Confirmer
	cb      Callbacks
	user    string
	now     func() time.Time
}

// New builds a Grid, restoring the rule collection, column widths, and
// column filters from the store when snapshots exist.
func New(opts Options) (*Grid, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	notify := opts.Notifier
	if notify == nil {
		notify = NopNotifier{}
	}
	confirm := opts.Confirm
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	user := opts.User
	if user == "" {
		user = "Current User"
	}

	g := &Grid{
		filters:   types.NewFilterState(),
		layout:    NewLayout(),
		pager:     NewPager(),
		editor:    NewEditor(now),
		selection: NewSelection(),
		st:        opts.Store,
		log:       activity.OrNop(opts.Activity),
		notify:    notify,
		confirm:   confirm,
		cb:        opts.Callbacks,
		user:      user,
		now:       now,
	}

	if opts.PageSize != 0 {
		if err := g.pager.SetPageSize(opts.PageSize); err != nil {
			return nil, err
		}
	}

	if g.st != nil {
		if _, err := g.st.Read(store.KeyRules, &g.rules); err != nil {
			return nil, fmt.Errorf("failed to load rules: %w", err)
		}
		var widths map[types.FieldKey]int
		if _, err := g.st.Read(store.KeyColumnWidths, &widths); err != nil {
			return nil, fmt.Errorf("failed to load column widths: %w", err)
		}
		g.layout.Restore(widths)
		var filters types.FilterState
		if ok, err := g.st.Read(store.KeyColumnFilters, &filters); err != nil {
			return nil, fmt.Errorf("failed to load column filters: %w", err)
		} else if ok {
			g.filters = filters
		}
	}

	return g, nil
}

// Rules returns the full record collection in storage order.
func (g *Grid) Rules() []types.RuleRecord {
	out := make([]types.RuleRecord, len(g.rules))
	copy(out, g.rules)
	return out
}

// SetRules replaces the record collection, as when the upstream store is
// the source of truth and pushes a fresh snapshot.
func (g *Grid) SetRules(rules []types.RuleRecord) error {
	g.rules = make([]types.RuleRecord, len(rules))
	copy(g.rules, rules)
	return g.persistRules()
}

// Filters returns the active filter state.
func (g *Grid) Filters() types.FilterState { return g.filters }

// Layout exposes the column layout manager.
func (g *Grid) Layout() *Layout { return g.layout }

// Pager exposes the pagination state.
func (g *Grid) Pager() *Pager { return g.pager }

// Editor exposes the cell edit state machine.
func (g *Grid) Editor() *Editor { return g.editor }

// Selection exposes the bulk selection controller.
func (g *Grid) Selection() *Selection { return g.selection }

// --- filters ---------------------------------------------------------------

// SetTextFilter applies a substring filter and resets to page 1.
func (g *Grid) SetTextFilter(key types.FieldKey, pattern string) error {
	g.filters.SetText(key, pattern)
	return g.filterChanged(key)
}

// SetValuesFilter applies a multi-select filter and resets to page 1.
func (g *Grid) SetValuesFilter(key types.FieldKey, values []string) error {
	g.filters.SetValues(key, values)
	return g.filterChanged(key)
}

// SetFlagFilter applies a tri-state boolean filter and resets to page 1.
func (g *Grid) SetFlagFilter(key types.FieldKey, state types.TriState) error {
	g.filters.SetFlag(key, state)
	return g.filterChanged(key)
}

// ClearFilters removes every column filter and resets to page 1.
func (g *Grid) ClearFilters() error {
	g.filters = types.NewFilterState()
	g.pager.Reset()
	return g.persistFilters()
}

func (g *Grid) filterChanged(key types.FieldKey) error {
	g.pager.Reset()
	g.log.Log(activity.Event{
		User:    g.user,
		Action:  activity.ActionFilter,
		Target:  fmt.Sprintf("Column: %s", key),
		Details: fmt.Sprintf("Applied filter to %s column", key),
	})
	return g.persistFilters()
}

// --- pagination ------------------------------------------------------------

// SetPageSize switches the page size and resets to page 1.
func (g *Grid) SetPageSize(n int) error {
	if err := g.pager.SetPageSize(n); err != nil {
		return err
	}
	g.log.Log(activity.Event{
		User:    g.user,
		Action:  activity.ActionView,
		Target:  "Page Size",
		Details: fmt.Sprintf("Changed page size to %d rows per page", n),
	})
	return nil
}

// FirstPage navigates to page 1.
func (g *Grid) FirstPage() {
	g.pager.First()
	g.log.Log(activity.Event{
		User:    g.user,
		Action:  activity.ActionView,
		Target:  "Pagination",
		Details: "Navigated to first page",
	})
}

// LastPage navigates to the final page.
func (g *Grid) LastPage() {
	total := g.View().TotalPages
	g.pager.Last(total)
	g.log.Log(activity.Event{
		User:    g.user,
		Action:  activity.ActionView,
		Target:  "Pagination",
		Details: fmt.Sprintf("Navigated to last page (%d)", total),
	})
}

// PrevPage navigates one page back.
func (g *Grid) PrevPage() { g.pager.Prev() }

// NextPage navigates one page forward.
func (g *Grid) NextPage() { g.pager.Next(g.View().TotalPages) }

// JumpToPage navigates to an absolute page; out-of-range requests are
// rejected with the current page unchanged.
func (g *Grid) JumpToPage(page int) bool {
	if !g.pager.Jump(page, g.View().TotalPages) {
		return false
	}
	g.log.Log(activity.Event{
		User:    g.user,
		Action:  activity.ActionView,
		Target:  "Pagination",
		Details: fmt.Sprintf("Jumped to page %d", page),
	})
	return true
}

// --- selection -------------------------------------------------------------

// SelectRow toggles a single row in or out of the selection.
func (g *Grid) SelectRow(id types.RecordID, checked bool) {
	g.selection.Toggle(id, checked)
}

// SelectAllOnPage selects every row on the current page, or clears the
// selection entirely when unchecked.
func (g *Grid) SelectAllOnPage(checked bool) {
	window := g.View().Window
	g.selection.SelectAll(window, checked)
	if checked {
		g.log.Log(activity.Event{
			User:    g.user,
			Action:  activity.ActionView,
			Target:  "Rule Selection",
			Details: fmt.Sprintf("Selected all %d rules on current page", len(window)),
		})
	}
}

// --- cell editing ----------------------------------------------------------

// ClickCell routes a cell click to its edit affordance and logs the intent
// for editable text and rich-text cells.
func (g *Grid) ClickCell(id types.RecordID, field types.FieldKey) (ClickAction, error) {
	rec, err := g.find(id)
	if err != nil {
		return ClickIgnored, err
	}

	action := g.editor.Click(rec, field)
	if action == ClickInline || action == ClickRichText {
		g.log.Log(activity.Event{
			User:    g.user,
			Action:  activity.ActionView,
			Target:  fmt.Sprintf("%s - %s", ruleLabel(rec), field),
			Details: fmt.Sprintf("Clicked to edit %s field", field),
			RuleID:  rec.RuleID,
		})
	}
	if action == ClickRichText {
		g.editor.OpenRichText(*rec)
	}
	return action, nil
}

// SetEditBuffer replaces the inline edit working buffer.
func (g *Grid) SetEditBuffer(s string) { g.editor.SetBuffer(s) }

// SaveEdit commits the active inline edit: the record's field takes the
// buffer, lastModified refreshes, the update flows upstream, and one
// activity event records old and new values.
func (g *Grid) SaveEdit() error {
	if g.editor.State() != EditInline {
		return types.ErrNoEditSession
	}
	id, field, _ := g.editor.Session()
	rec, err := g.find(id)
	if err != nil {
		g.editor.Cancel()
		return err
	}

	updated, change, err := g.editor.SaveInline(*rec)
	if err != nil {
		return err
	}
	if err := g.applyUpdate(updated); err != nil {
		return err
	}

	g.log.Log(activity.Event{
		User:     g.user,
		Action:   activity.ActionEdit,
		Target:   fmt.Sprintf("%s - %s", ruleLabel(&updated), field),
		Details:  fmt.Sprintf("Updated %s field", field),
		RuleID:   updated.RuleID,
		OldValue: change.Old,
		NewValue: change.New,
	})
	g.notify.Success("Rule updated successfully")
	return nil
}

// CancelEdit discards the active edit session without emitting an update.
func (g *Grid) CancelEdit() { g.editor.Cancel() }

// RichTextSession snapshots both language fields for the external editor.
// Valid only while the editor is in the rich-text state.
func (g *Grid) RichTextSession() (RichTextSession, error) {
	if g.editor.State() != EditRichText {
		return RichTextSession{}, types.ErrNoEditSession
	}
	id, _, _ := g.editor.Session()
	rec, err := g.find(id)
	if err != nil {
		return RichTextSession{}, err
	}
	return g.editor.OpenRichText(*rec), nil
}

// SaveRichText commits both language fields in a single update and logs
// one event naming which of them changed.
func (g *Grid) SaveRichText(english, spanish string) error {
	if g.editor.State() != EditRichText {
		return types.ErrNoEditSession
	}
	id, _, _ := g.editor.Session()
	rec, err := g.find(id)
	if err != nil {
		g.editor.Cancel()
		return err
	}

	updated, changes, err := g.editor.SaveRichText(*rec, english, spanish)
	if err != nil {
		return err
	}
	if err := g.applyUpdate(updated); err != nil {
		return err
	}

	var parts []string
	for _, c := range changes {
		if c.Field == types.FieldEnglish {
			parts = append(parts, "English content")
		} else {
			parts = append(parts, "Spanish content")
		}
	}
	oldVal, newVal := richTextValues(changes)
	g.log.Log(activity.Event{
		User:     g.user,
		Action:   activity.ActionEdit,
		Target:   fmt.Sprintf("%s - Rich Text", ruleLabel(&updated)),
		Details:  fmt.Sprintf("Updated %s using rich text editor", strings.Join(parts, " and ")),
		RuleID:   updated.RuleID,
		OldValue: oldVal,
		NewValue: newVal,
	})
	return nil
}

// CancelRichText closes the external editor without saving.
func (g *Grid) CancelRichText() { g.editor.Cancel() }

// ToggleFlag commits a boolean column immediately.
func (g *Grid) ToggleFlag(id types.RecordID, field types.FieldKey, checked bool) error {
	rec, err := g.find(id)
	if err != nil {
		return err
	}

	updated, change, err := g.editor.ToggleFlag(*rec, field, checked)
	if err != nil {
		return err
	}
	if err := g.applyUpdate(updated); err != nil {
		return err
	}

	d, _ := types.FieldByKey(field)
	g.log.Log(activity.Event{
		User:     g.user,
		Action:   activity.ActionEdit,
		Target:   fmt.Sprintf("%s - %s", ruleLabel(&updated), d.Label),
		Details:  toggleDetails(field, checked),
		RuleID:   updated.RuleID,
		OldValue: change.Old,
		NewValue: change.New,
	})
	return nil
}

// SetEffectiveDate commits a date-picker selection immediately. A nil date
// is a no-op: it must not clear the existing value.
func (g *Grid) SetEffectiveDate(id types.RecordID, date *time.Time) error {
	rec, err := g.find(id)
	if err != nil {
		return err
	}

	updated, change, ok := g.editor.SetDate(*rec, date)
	if !ok {
		return nil
	}
	if err := g.applyUpdate(updated); err != nil {
		return err
	}

	g.log.Log(activity.Event{
		User:     g.user,
		Action:   activity.ActionEdit,
		Target:   fmt.Sprintf("%s - Effective Date", ruleLabel(&updated)),
		Details:  "Updated effective date",
		RuleID:   updated.RuleID,
		OldValue: change.Old,
		NewValue: change.New,
	})
	g.notify.Success("Effective date updated successfully")
	return nil
}

// --- column layout ---------------------------------------------------------

// DragResizeColumn applies one step of a drag gesture and persists the
// width map.
func (g *Grid) DragResizeColumn(key types.FieldKey, startWidth, delta int) error {
	g.layout.Drag(key, startWidth, delta)
	return g.persistWidths()
}

// AutoFitColumn sizes a column to the content of the current page window.
func (g *Grid) AutoFitColumn(key types.FieldKey) error {
	width := g.layout.AutoFit(key, g.View().Window)
	g.notify.Success(fmt.Sprintf("Auto-resized %s column to %dpx", key, width))
	return g.persistWidths()
}

// ResetColumnWidths restores the default width table in one atomic update.
func (g *Grid) ResetColumnWidths() error {
	g.layout.Reset()
	g.notify.Success("Column widths reset to defaults")
	return g.persistWidths()
}

// --- bulk actions ----------------------------------------------------------

// EditSelected delegates the single selected record to the external edit
// navigation. It does not itself mutate the record.
func (g *Grid) EditSelected() error {
	rec, err := g.requireSingle("edit")
	if err != nil {
		return err
	}
	if g.cb.OnEditRule == nil {
		g.notify.Error("Edit function is not available")
		return types.ErrEditUnavailable
	}

	g.cb.OnEditRule(rec)
	g.log.Log(activity.Event{
		User:    g.user,
		Action:  activity.ActionEdit,
		Target:  ruleLabel(&rec),
		Details: "Started editing rule via Edit button",
		RuleID:  rec.RuleID,
	})
	return nil
}

// PreviewSelected returns the single selected record for a read-only
// detail view. No mutation, no store round-trip.
func (g *Grid) PreviewSelected() (types.RuleRecord, error) {
	rec, err := g.requireSingle("preview")
	if err != nil {
		return types.RuleRecord{}, err
	}

	g.log.Log(activity.Event{
		User:    g.user,
		Action:  activity.ActionView,
		Target:  ruleLabel(&rec),
		Details: "Opened rule preview via Preview button",
		RuleID:  rec.RuleID,
	})
	return rec, nil
}

// DeleteSelected deletes every selected record after a confirmation naming
// the affected rule ids. The whole operation is rejected when any selected
// record is published; the confirmed batch then deletes each record
// independently, with no rollback of earlier deletes if a downstream
// delete fails.
func (g *Grid) DeleteSelected() error {
	if g.selection.Count() == 0 {
		g.notify.Error("Please select at least one row to delete")
		return types.ErrNothingSelected
	}

	selected := g.selection.Resolve(g.rules)
	for i := range selected {
		if selected[i].Published {
			g.notify.Error("Cannot delete published rules. Only unpublished rules can be deleted.")
			return types.ErrPublishedDelete
		}
	}

	names := make([]string, len(selected))
	for i := range selected {
		names[i] = orNA(selected[i].RuleID)
	}
	var message string
	if len(selected) == 1 {
		message = fmt.Sprintf("Are you sure you want to delete Rule %s?", names[0])
	} else {
		message = fmt.Sprintf("Are you sure you want to delete %d rules (%s)?", len(selected), strings.Join(names, ", "))
	}
	if !g.confirm(message) {
		// Declined confirmation is a silent no-op, not an error.
		return nil
	}

	remaining := g.rules[:0]
	for i := range g.rules {
		if g.selection.Has(g.rules[i].ID) {
			continue
		}
		remaining = append(remaining, g.rules[i])
	}
	g.rules = remaining

	for i := range selected {
		if selected[i].RuleID == "" {
			continue
		}
		if g.cb.OnRuleDelete != nil {
			g.cb.OnRuleDelete(selected[i].RuleID)
		}
	}
	g.selection.Clear()

	if err := g.persistRules(); err != nil {
		return err
	}

	g.log.Log(activity.Event{
		User:    g.user,
		Action:  activity.ActionDelete,
		Target:  "Rule Selection",
		Details: fmt.Sprintf("Deleted %d rule(s): %s", len(selected), strings.Join(names, ", ")),
	})
	g.notify.Success(fmt.Sprintf("Successfully deleted %d %s", len(selected), plural("rule", len(selected))))
	return nil
}

// CreateRule creates a record with a generated rule id, or falls back to
// the create-rule navigation when no create callback is wired.
func (g *Grid) CreateRule() (types.RuleRecord, error) {
	if g.cb.OnRuleCreate == nil {
		if g.cb.OnNavigate != nil {
			g.cb.OnNavigate("create-rule")
			return types.RuleRecord{}, nil
		}
		g.notify.Error("Unable to create new rule - navigation not configured")
		return types.RuleRecord{}, types.ErrNoCreatePath
	}

	now := g.now()
	rec := types.RuleRecord{
		ID:           types.NewRecordID(),
		RuleID:       types.GenerateRuleID(g.rules),
		CreatedAt:    now,
		LastModified: now,
	}
	g.rules = append(g.rules, rec)
	if err := g.persistRules(); err != nil {
		return types.RuleRecord{}, err
	}
	g.cb.OnRuleCreate(rec)

	g.log.Log(activity.Event{
		User:    g.user,
		Action:  activity.ActionCreate,
		Target:  ruleLabel(&rec),
		Details: "Created new rule",
		RuleID:  rec.RuleID,
	})
	return rec, nil
}

// --- internals -------------------------------------------------------------

func (g *Grid) find(id types.RecordID) (*types.RuleRecord, error) {
	for i := range g.rules {
		if g.rules[i].ID == id {
			return &g.rules[i], nil
		}
	}
	return nil, types.ErrRecordNotFound
}

// applyUpdate replaces the record in the collection, persists the
// snapshot, and emits the update callback.
func (g *Grid) applyUpdate(updated types.RuleRecord) error {
	for i := range g.rules {
		if g.rules[i].ID == updated.ID {
			g.rules[i] = updated
			break
		}
	}
	if err := g.persistRules(); err != nil {
		return err
	}
	if g.cb.OnRuleUpdate != nil {
		g.cb.OnRuleUpdate(updated)
	}
	return nil
}

func (g *Grid) requireSingle(verb string) (types.RuleRecord, error) {
	rec, err := g.selection.Single(g.rules)
	switch err {
	case nil:
		return rec, nil
	case types.ErrNothingSelected:
		g.notify.Error(fmt.Sprintf("Please select at least one row to %s", verb))
	case types.ErrMultipleSelected:
		g.notify.Error(fmt.Sprintf("Please select only one row to %s", verb))
	}
	return types.RuleRecord{}, err
}

func (g *Grid) persistRules() error {
	if g.st == nil {
		return nil
	}
	return g.st.Write(store.KeyRules, g.rules)
}

func (g *Grid) persistWidths() error {
	if g.st == nil {
		return nil
	}
	return g.st.Write(store.KeyColumnWidths, g.layout.Widths())
}

func (g *Grid) persistFilters() error {
	if g.st == nil {
		return nil
	}
	return g.st.Write(store.KeyColumnFilters, g.filters)
}

func ruleLabel(r *types.RuleRecord) string {
	return "Rule " + orNA(r.RuleID)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// toggleDetails phrases a boolean commit for the activity log.
func toggleDetails(field types.FieldKey, checked bool) string {
	switch field {
	case types.FieldCMSRegulated:
		if checked {
			return "Enabled CMS regulation"
		}
		return "Disabled CMS regulation"
	case types.FieldIsTabular:
		if checked {
			return "Enabled tabular format"
		}
		return "Disabled tabular format"
	case types.FieldPublished:
		if checked {
			return "Published rule"
		}
		return "Unpublished rule"
	default:
		if checked {
			return fmt.Sprintf("Enabled %s", field)
		}
		return fmt.Sprintf("Disabled %s", field)
	}
}

// richTextValues shapes the old/new event values: single-language changes
// carry the full values, dual-language changes carry truncated pairs.
func richTextValues(changes []Change) (string, string) {
	switch len(changes) {
	case 0:
		return "", ""
	case 1:
		return changes[0].Old, changes[0].New
	default:
		var en, es Change
		for _, c := range changes {
			if c.Field == types.FieldEnglish {
				en = c
			} else {
				es = c
			}
		}
		oldVal := fmt.Sprintf("EN: %s... | ES: %s...", truncate(en.Old, 50), truncate(es.Old, 50))
		newVal := fmt.Sprintf("EN: %s... | ES: %s...", truncate(en.New, 50), truncate(es.New, 50))
		return oldVal, newVal
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
