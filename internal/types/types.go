// Package types provides domain models shared across rulegrid components.
//
// RuleRecord is the unit of data: one row of bilingual regulatory content
// plus metadata. Field access goes through FieldKey-based accessors so the
// grid can address columns dynamically without reflection; missing text
// fields read as "" and missing flags as false (explicit default policy,
// never falsy coercion).
//
// FilterState and TriState live here rather than in internal/grid because
// they are persisted snapshots, not ephemeral view state.
package types

import "time"

// RecordID is the stable internal record key, assigned at creation and
// immutable for the record's lifetime.
type RecordID string

// FieldKey addresses a single RuleRecord column.
type FieldKey string

// Column keys. Values double as JSON keys and persisted filter-map keys.
const (
	FieldID              FieldKey = "id"
	FieldRuleID          FieldKey = "ruleId"
	FieldEffectiveDate   FieldKey = "effectiveDate"
	FieldVersion         FieldKey = "version"
	FieldBenefitType     FieldKey = "benefitType"
	FieldBusinessArea    FieldKey = "businessArea"
	FieldSubBusinessArea FieldKey = "subBusinessArea"
	FieldDescription     FieldKey = "description"
	FieldTemplateName    FieldKey = "templateName"
	FieldServiceID       FieldKey = "serviceId"
	FieldCMSRegulated    FieldKey = "cmsRegulated"
	FieldChapterName     FieldKey = "chapterName"
	FieldSectionName     FieldKey = "sectionName"
	FieldSubsectionName  FieldKey = "subsectionName"
	FieldServiceGroup    FieldKey = "serviceGroup"
	FieldSourceMapping   FieldKey = "sourceMapping"
	FieldTiers           FieldKey = "tiers"
	FieldKeyName         FieldKey = "key"
	FieldIsTabular       FieldKey = "isTabular"
	FieldEnglish         FieldKey = "english"
	FieldEnglishStatus   FieldKey = "englishStatus"
	FieldSpanish         FieldKey = "spanish"
	FieldSpanishStatus   FieldKey = "spanishStatus"
	FieldPublished       FieldKey = "published"
	FieldCreatedAt       FieldKey = "createdAt"
	FieldLastModified    FieldKey = "lastModified"
)

// RuleRecord is one row of the content grid.
// RuleID is never empty after creation and never user-editable.
// Published records cannot be deleted until unpublished.
type RuleRecord struct {
	ID     RecordID `json:"id"`
	RuleID string   `json:"ruleId"`

	EffectiveDate   string `json:"effectiveDate"` // stored as MM/dd/yyyy
	Version         string `json:"version"`
	BenefitType     string `json:"benefitType"`
	BusinessArea    string `json:"businessArea"`
	SubBusinessArea string `json:"subBusinessArea"`
	Description     string `json:"description"`
	TemplateName    string `json:"templateName"`
	ServiceID       string `json:"serviceId"`
	ChapterName     string `json:"chapterName"`
	SectionName     string `json:"sectionName"`
	SubsectionName  string `json:"subsectionName"`
	ServiceGroup    string `json:"serviceGroup"`
	SourceMapping   string `json:"sourceMapping"`
	Tiers           string `json:"tiers"`
	Key             string `json:"key"`

	CMSRegulated bool `json:"cmsRegulated"`
	IsTabular    bool `json:"isTabular"`
	Published    bool `json:"published"`

	// Long-form bilingual content as rich-text HTML, each with an open-set
	// status label (Complete, In Progress, Pending, Approved, or arbitrary).
	English       string `json:"english"`
	EnglishStatus string `json:"englishStatus"`
	Spanish       string `json:"spanish"`
	SpanishStatus string `json:"spanishStatus"`

	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

// Field returns the text value of a column. Unknown keys, boolean columns,
// and timestamp columns return "" so callers never need a nil check.
func (r *RuleRecord) Field(key FieldKey) string {
	switch key {
	case FieldID:
		return string(r.ID)
	case FieldRuleID:
		return r.RuleID
	case FieldEffectiveDate:
		return r.EffectiveDate
	case FieldVersion:
		return r.Version
	case FieldBenefitType:
		return r.BenefitType
	case FieldBusinessArea:
		return r.BusinessArea
	case FieldSubBusinessArea:
		return r.SubBusinessArea
	case FieldDescription:
		return r.Description
	case FieldTemplateName:
		return r.TemplateName
	case FieldServiceID:
		return r.ServiceID
	case FieldChapterName:
		return r.ChapterName
	case FieldSectionName:
		return r.SectionName
	case FieldSubsectionName:
		return r.SubsectionName
	case FieldServiceGroup:
		return r.ServiceGroup
	case FieldSourceMapping:
		return r.SourceMapping
	case FieldTiers:
		return r.Tiers
	case FieldKeyName:
		return r.Key
	case FieldEnglish:
		return r.English
	case FieldEnglishStatus:
		return r.EnglishStatus
	case FieldSpanish:
		return r.Spanish
	case FieldSpanishStatus:
		return r.SpanishStatus
	default:
		return ""
	}
}

// SetField writes a text column. Returns false for unknown keys and for
// columns that are not plain text (identity, boolean, timestamp columns).
func (r *RuleRecord) SetField(key FieldKey, value string) bool {
	switch key {
	case FieldEffectiveDate:
		r.EffectiveDate = value
	case FieldVersion:
		r.Version = value
	case FieldBenefitType:
		r.BenefitType = value
	case FieldBusinessArea:
		r.BusinessArea = value
	case FieldSubBusinessArea:
		r.SubBusinessArea = value
	case FieldDescription:
		r.Description = value
	case FieldTemplateName:
		r.TemplateName = value
	case FieldServiceID:
		r.ServiceID = value
	case FieldChapterName:
		r.ChapterName = value
	case FieldSectionName:
		r.SectionName = value
	case FieldSubsectionName:
		r.SubsectionName = value
	case FieldServiceGroup:
		r.ServiceGroup = value
	case FieldSourceMapping:
		r.SourceMapping = value
	case FieldTiers:
		r.Tiers = value
	case FieldKeyName:
		r.Key = value
	case FieldEnglish:
		r.English = value
	case FieldEnglishStatus:
		r.EnglishStatus = value
	case FieldSpanish:
		r.Spanish = value
	case FieldSpanishStatus:
		r.SpanishStatus = value
	default:
		return false
	}
	return true
}

// Flag returns the value of a boolean column, false for any other key.
func (r *RuleRecord) Flag(key FieldKey) bool {
	switch key {
	case FieldCMSRegulated:
		return r.CMSRegulated
	case FieldIsTabular:
		return r.IsTabular
	case FieldPublished:
		return r.Published
	default:
		return false
	}
}

// SetFlag writes a boolean column. Returns false for non-boolean keys.
func (r *RuleRecord) SetFlag(key FieldKey, value bool) bool {
	switch key {
	case FieldCMSRegulated:
		r.CMSRegulated = value
	case FieldIsTabular:
		r.IsTabular = value
	case FieldPublished:
		r.Published = value
	default:
		return false
	}
	return true
}

// Touch refreshes LastModified. Called on every committed field mutation.
func (r *RuleRecord) Touch(now time.Time) {
	r.LastModified = now
}

// TriState is the three-valued filter for boolean columns.
type TriState string

const (
	TriAll   TriState = "all"
	TriTrue  TriState = "true"
	TriFalse TriState = "false"
)

// Matches reports whether a flag value passes the filter.
// TriAll and any unrecognized value are neutral.
func (t TriState) Matches(flag bool) bool {
	switch t {
	case TriTrue:
		return flag
	case TriFalse:
		return !flag
	default:
		return true
	}
}

// FilterState maps columns to their active predicates. A column absent from
// every map is unrestricted. The zero value (nil maps) passes all rows.
type FilterState struct {
	Text   map[FieldKey]string   `json:"text,omitempty"`
	Values map[FieldKey][]string `json:"values,omitempty"`
	Flags  map[FieldKey]TriState `json:"flags,omitempty"`
}

// NewFilterState returns a FilterState with allocated maps.
func NewFilterState() FilterState {
	return FilterState{
		Text:   make(map[FieldKey]string),
		Values: make(map[FieldKey][]string),
		Flags:  make(map[FieldKey]TriState),
	}
}

// SetText sets or clears a substring pattern for a text-filterable column.
func (f *FilterState) SetText(key FieldKey, pattern string) {
	if f.Text == nil {
		f.Text = make(map[FieldKey]string)
	}
	if pattern == "" {
		delete(f.Text, key)
		return
	}
	f.Text[key] = pattern
}

// SetValues sets or clears the accepted-value set for a multi-select column.
// An empty set means no restriction, so it clears the entry.
func (f *FilterState) SetValues(key FieldKey, values []string) {
	if f.Values == nil {
		f.Values = make(map[FieldKey][]string)
	}
	if len(values) == 0 {
		delete(f.Values, key)
		return
	}
	f.Values[key] = values
}

// SetFlag sets the tri-state filter for a boolean column. TriAll clears it.
func (f *FilterState) SetFlag(key FieldKey, state TriState) {
	if f.Flags == nil {
		f.Flags = make(map[FieldKey]TriState)
	}
	if state == TriAll || state == "" {
		delete(f.Flags, key)
		return
	}
	f.Flags[key] = state
}

// Active reports whether any predicate restricts the result.
func (f FilterState) Active() bool {
	for _, p := range f.Text {
		if p != "" {
			return true
		}
	}
	for _, vs := range f.Values {
		if len(vs) > 0 {
			return true
		}
	}
	for _, t := range f.Flags {
		if t == TriTrue || t == TriFalse {
			return true
		}
	}
	return false
}
