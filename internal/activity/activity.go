// Package activity provides the audit-trail sink for user-initiated grid
// actions. The logger is injected at construction with a no-op default,
// so core behavior never depends on its presence, and implementations are
// fire-and-forget: a sink must never block the edit pipeline.
package activity

import "log/slog"

// Actions recorded in the audit trail.
const (
	ActionView   = "view"
	ActionEdit   = "edit"
	ActionFilter = "filter"
	ActionCreate = "create"
	ActionDelete = "delete"
)

// Event is one structured audit record. RuleID, OldValue, and NewValue are
// populated only for events about a specific record mutation.
type Event struct {
	User     string `json:"user"`
	Action   string `json:"action"`
	Target   string `json:"target"`
	Details  string `json:"details"`
	RuleID   string `json:"ruleId,omitempty"`
	OldValue string `json:"oldValue,omitempty"`
	NewValue string `json:"newValue,omitempty"`
}

// Logger receives activity events. Implementations must not block.
type Logger interface {
	Log(Event)
}

// Nop discards all events. The default when no sink is configured.
type Nop struct{}

// Log implements Logger.
func (Nop) Log(Event) {}

// Slog adapts a *slog.Logger as an activity sink, recording events at Info.
type Slog struct {
	logger *slog.Logger
}

// NewSlog wraps logger as an activity sink. A nil logger uses slog.Default.
func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{logger: logger}
}

// Log implements Logger.
func (s *Slog) Log(e Event) {
	attrs := []any{
		slog.String("user", e.User),
		slog.String("action", e.Action),
		slog.String("target", e.Target),
		slog.String("details", e.Details),
	}
	if e.RuleID != "" {
		attrs = append(attrs, slog.String("rule_id", e.RuleID))
	}
	if e.OldValue != "" || e.NewValue != "" {
		attrs = append(attrs,
			slog.String("old_value", e.OldValue),
			slog.String("new_value", e.NewValue))
	}
	s.logger.Info("activity", attrs...)
}

// OrNop returns l, or a Nop sink when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop{}
	}
	return l
}
