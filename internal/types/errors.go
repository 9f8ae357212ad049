package types

import "errors"

// Sentinel errors for rulegrid operations. All are validation-grade: they
// surface as a user notification with state unchanged, never as a crash.
var (
	// ErrNothingSelected indicates a bulk action with an empty selection.
	ErrNothingSelected = errors.New("no rows selected")

	// ErrMultipleSelected indicates a single-row action with more than one row selected.
	ErrMultipleSelected = errors.New("more than one row selected")

	// ErrPublishedDelete indicates a delete batch containing a published record.
	ErrPublishedDelete = errors.New("cannot delete published rules")

	// ErrRecordNotFound indicates a selection id with no matching record.
	ErrRecordNotFound = errors.New("record not found")

	// ErrNoCreatePath indicates neither a create callback nor navigation is configured.
	ErrNoCreatePath = errors.New("no rule creation path configured")

	// ErrEditUnavailable indicates the edit-navigation callback is absent.
	ErrEditUnavailable = errors.New("edit function is not available")

	// ErrInvalidPageSize indicates a page size outside the supported set.
	ErrInvalidPageSize = errors.New("unsupported page size")

	// ErrFieldNotEditable indicates an edit attempt on an immutable column.
	ErrFieldNotEditable = errors.New("field is not editable")

	// ErrNoEditSession indicates a save or cancel with no edit in progress.
	ErrNoEditSession = errors.New("no edit in progress")
)
