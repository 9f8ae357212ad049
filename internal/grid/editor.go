package grid

import (
	"time"

	"github.com/contentgrid/rulegrid/internal/types"
)

/*
 * Cell edit state machine.
 *
 * At most one edit session is active per grid:
 *
 *   Idle -> InlineEditing(recordID, field, buffer)  on clicking an
 *           editable plain-text cell
 *   Idle -> RichTextEditing(recordID)               on clicking english or
 *           spanish, delegating to the external modal editor
 *
 * Save commits the buffer, refreshes lastModified, and reports the change
 * for the update callback and activity log; cancel discards the buffer
 * without emitting anything. Booleans and dates never enter a session:
 * toggles and picker selections commit immediately.
 *
 * The editor mutates record values it is handed and returns the updated
 * copy; persistence and event emission stay with the Grid orchestrator.
 */

// EditState enumerates the edit machine states.
type EditState int

const (
	EditIdle EditState = iota
	EditInline
	EditRichText
)

// ClickAction tells the caller which affordance a cell click triggered.
type ClickAction int

const (
	ClickIgnored  ClickAction = iota // immutable cell, nothing to do
	ClickInline                      // inline session started
	ClickRichText                    // open the external rich-text editor
	ClickDate                        // date cells edit through the picker only
)

// Change describes one committed field mutation for activity logging.
type Change struct {
	Field types.FieldKey
	Old   string
	New   string
}

// RichTextSession carries both language fields and both status labels to
// the external editor, which returns final content on save.
type RichTextSession struct {
	RecordID       types.RecordID
	English        string
	Spanish        string
	EnglishStatus  string
	SpanishStatus  string
}

// Editor is the single-cell edit state machine.
type Editor struct {
	state    EditState
	recordID types.RecordID
	field    types.FieldKey
	buffer   string

	now func() time.Time
}

// NewEditor returns an idle editor. now is injectable for tests; nil uses
// time.Now.
func NewEditor(now func() time.Time) *Editor {
	if now == nil {
		now = time.Now
	}
	return &Editor{now: now}
}

// State returns the current machine state.
func (e *Editor) State() EditState { return e.state }

// Session returns the inline session identity and working buffer.
func (e *Editor) Session() (types.RecordID, types.FieldKey, string) {
	return e.recordID, e.field, e.buffer
}

// Editing reports whether the given cell is the active inline session.
func (e *Editor) Editing(id types.RecordID, field types.FieldKey) bool {
	return e.state == EditInline && e.recordID == id && e.field == field
}

// Click routes a cell click to its edit affordance. Immutable columns
// (id, ruleId, timestamps) and boolean columns are ignored; booleans are
// toggled directly, not clicked into. Starting a new session replaces any
// session already in progress.
func (e *Editor) Click(rec *types.RuleRecord, field types.FieldKey) ClickAction {
	d, ok := types.FieldByKey(field)
	if !ok || !d.Editable {
		return ClickIgnored
	}

	switch d.Kind {
	case types.KindRichText:
		e.state = EditRichText
		e.recordID = rec.ID
		e.field = field
		e.buffer = ""
		return ClickRichText
	case types.KindDate:
		// The picker owns the interaction; no intermediate edit state.
		return ClickDate
	case types.KindText:
		e.state = EditInline
		e.recordID = rec.ID
		e.field = field
		e.buffer = rec.Field(field)
		return ClickInline
	default:
		return ClickIgnored
	}
}

// SetBuffer replaces the inline working buffer.
func (e *Editor) SetBuffer(s string) {
	if e.state == EditInline {
		e.buffer = s
	}
}

// SaveInline commits the working buffer to the session's field, refreshes
// lastModified, and returns the updated record plus the change record.
// The machine returns to idle regardless of the record matching; a
// mismatched record yields ErrNoEditSession with the input unchanged.
func (e *Editor) SaveInline(rec types.RuleRecord) (types.RuleRecord, Change, error) {
	if e.state != EditInline {
		return rec, Change{}, types.ErrNoEditSession
	}
	if rec.ID != e.recordID {
		return rec, Change{}, types.ErrNoEditSession
	}

	old := rec.Field(e.field)
	if !rec.SetField(e.field, e.buffer) {
		e.reset()
		return rec, Change{}, types.ErrFieldNotEditable
	}
	rec.Touch(e.now())

	change := Change{Field: e.field, Old: old, New: e.buffer}
	e.reset()
	return rec, change, nil
}

// Cancel discards any session without emitting an update.
func (e *Editor) Cancel() {
	e.reset()
}

// OpenRichText snapshots both language fields for the external editor.
func (e *Editor) OpenRichText(rec types.RuleRecord) RichTextSession {
	e.state = EditRichText
	e.recordID = rec.ID
	return RichTextSession{
		RecordID:      rec.ID,
		English:       rec.English,
		Spanish:       rec.Spanish,
		EnglishStatus: rec.EnglishStatus,
		SpanishStatus: rec.SpanishStatus,
	}
}

// SaveRichText commits both language fields in a single update, even when
// only one changed, and reports which of them differ from the originals.
func (e *Editor) SaveRichText(rec types.RuleRecord, english, spanish string) (types.RuleRecord, []Change, error) {
	if e.state != EditRichText || rec.ID != e.recordID {
		return rec, nil, types.ErrNoEditSession
	}

	var changes []Change
	if rec.English != english {
		changes = append(changes, Change{Field: types.FieldEnglish, Old: rec.English, New: english})
	}
	if rec.Spanish != spanish {
		changes = append(changes, Change{Field: types.FieldSpanish, Old: rec.Spanish, New: spanish})
	}

	rec.English = english
	rec.Spanish = spanish
	rec.Touch(e.now())
	e.reset()
	return rec, changes, nil
}

// ToggleFlag commits a boolean column immediately. No session is involved.
func (e *Editor) ToggleFlag(rec types.RuleRecord, field types.FieldKey, checked bool) (types.RuleRecord, Change, error) {
	d, ok := types.FieldByKey(field)
	if !ok || d.Kind != types.KindBoolean || !d.Editable {
		return rec, Change{}, types.ErrFieldNotEditable
	}

	old := rec.Flag(field)
	rec.SetFlag(field, checked)
	rec.Touch(e.now())

	return rec, Change{Field: field, Old: yesNo(old), New: yesNo(checked)}, nil
}

// SetDate commits an effectiveDate selection immediately. A nil date is a
// no-op and must not clear the stored value; ok is false when nothing
// changed.
func (e *Editor) SetDate(rec types.RuleRecord, date *time.Time) (types.RuleRecord, Change, bool) {
	if date == nil {
		return rec, Change{}, false
	}

	old := rec.EffectiveDate
	rec.EffectiveDate = FormatDateForStorage(*date)
	rec.Touch(e.now())

	return rec, Change{Field: types.FieldEffectiveDate, Old: old, New: rec.EffectiveDate}, true
}

func (e *Editor) reset() {
	e.state = EditIdle
	e.recordID = ""
	e.field = ""
	e.buffer = ""
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
