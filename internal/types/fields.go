package types

/*
 * Per-field descriptor table.
 *
 * Each column declares its kind (plain text, rich text, boolean, date,
 * identity, timestamp), whether the operator may modify it, which filter
 * widget applies, and its default pixel width. The Cell Edit Controller and
 * Column Layout Manager consult this table instead of repeating inline
 * exclusion lists at each call site.
 *
 * Edit affordance by kind:
 *   - KindText: inline text edit with a working buffer
 *   - KindRichText: modal dual-language editor (both languages at once)
 *   - KindBoolean: direct checkbox toggle, committed immediately
 *   - KindDate: date picker, committed on selection
 *   - KindIdentity/KindTimestamp: never editable
 */

// FieldKind classifies a column's storage and edit affordance.
type FieldKind int

const (
	KindText FieldKind = iota
	KindRichText
	KindBoolean
	KindDate
	KindIdentity
	KindTimestamp
)

// FilterKind selects the filter widget for a column.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterText
	FilterValues
	FilterTri
)

// FieldDescriptor declares one column's behavior.
type FieldDescriptor struct {
	Key          FieldKey
	Label        string
	Kind         FieldKind
	Editable     bool
	Filter       FilterKind
	DefaultWidth int // 0 = not rendered as a grid column
}

// SelectColumnWidth is the fixed width of the leading checkbox column.
const SelectColumnWidth = 48

// Fields lists all columns in grid display order.
var Fields = []FieldDescriptor{
	{Key: FieldRuleID, Label: "Rule ID", Kind: KindIdentity, Filter: FilterText, DefaultWidth: 96},
	{Key: FieldEffectiveDate, Label: "Effective Date", Kind: KindDate, Editable: true, Filter: FilterText, DefaultWidth: 160},
	{Key: FieldVersion, Label: "Version", Kind: KindText, Editable: true, Filter: FilterValues, DefaultWidth: 96},
	{Key: FieldBenefitType, Label: "Benefit Type", Kind: KindText, Editable: true, Filter: FilterValues, DefaultWidth: 160},
	{Key: FieldBusinessArea, Label: "Business Area", Kind: KindText, Editable: true, Filter: FilterValues, DefaultWidth: 160},
	{Key: FieldSubBusinessArea, Label: "Sub Business Area", Kind: KindText, Editable: true, Filter: FilterValues, DefaultWidth: 192},
	{Key: FieldDescription, Label: "Description", Kind: KindText, Editable: true, Filter: FilterText, DefaultWidth: 256},
	{Key: FieldTemplateName, Label: "Template Name", Kind: KindText, Editable: true, Filter: FilterValues, DefaultWidth: 192},
	{Key: FieldServiceID, Label: "Service ID", Kind: KindText, Editable: true, Filter: FilterValues, DefaultWidth: 128},
	{Key: FieldCMSRegulated, Label: "CMS Regulated", Kind: KindBoolean, Editable: true, Filter: FilterTri, DefaultWidth: 128},
	{Key: FieldChapterName, Label: "Chapter Name", Kind: KindText, Editable: true, Filter: FilterValues, DefaultWidth: 192},
	{Key: FieldSectionName, Label: "Section Name", Kind: KindText, Editable: true, Filter: FilterValues, DefaultWidth: 192},
	{Key: FieldSubsectionName, Label: "Subsection Name", Kind: KindText, Editable: true, Filter: FilterValues, DefaultWidth: 192},
	{Key: FieldServiceGroup, Label: "Service Group", Kind: KindText, Editable: true, Filter: FilterValues, DefaultWidth: 128},
	{Key: FieldSourceMapping, Label: "Source Mapping", Kind: KindText, Editable: true, Filter: FilterValues, DefaultWidth: 160},
	{Key: FieldTiers, Label: "Tiers", Kind: KindText, Editable: true, Filter: FilterValues, DefaultWidth: 128},
	{Key: FieldKeyName, Label: "Key", Kind: KindText, Editable: true, Filter: FilterValues, DefaultWidth: 128},
	{Key: FieldIsTabular, Label: "Is Tabular", Kind: KindBoolean, Editable: true, Filter: FilterTri, DefaultWidth: 112},
	{Key: FieldEnglish, Label: "English", Kind: KindRichText, Editable: true, Filter: FilterText, DefaultWidth: 256},
	{Key: FieldEnglishStatus, Label: "English Status", Kind: KindText, Editable: true, Filter: FilterValues, DefaultWidth: 128},
	{Key: FieldSpanish, Label: "Spanish", Kind: KindRichText, Editable: true, Filter: FilterText, DefaultWidth: 256},
	{Key: FieldSpanishStatus, Label: "Spanish Status", Kind: KindText, Editable: true, Filter: FilterValues, DefaultWidth: 128},
	{Key: FieldPublished, Label: "Published", Kind: KindBoolean, Editable: true, Filter: FilterTri, DefaultWidth: 128},
	{Key: FieldID, Label: "ID", Kind: KindIdentity},
	{Key: FieldCreatedAt, Label: "Created", Kind: KindTimestamp},
	{Key: FieldLastModified, Label: "Last Modified", Kind: KindTimestamp},
}

// FieldByKey looks up a descriptor. The second result is false for unknown keys.
func FieldByKey(key FieldKey) (FieldDescriptor, bool) {
	for _, d := range Fields {
		if d.Key == key {
			return d, true
		}
	}
	return FieldDescriptor{}, false
}

// GridColumns returns the descriptors rendered as grid columns, in order.
func GridColumns() []FieldDescriptor {
	cols := make([]FieldDescriptor, 0, len(Fields))
	for _, d := range Fields {
		if d.DefaultWidth > 0 {
			cols = append(cols, d)
		}
	}
	return cols
}

// InlineEditable reports whether a column opens an inline text edit session.
// Rich-text, boolean, and date columns have their own affordances.
func (d FieldDescriptor) InlineEditable() bool {
	return d.Editable && d.Kind == KindText
}
