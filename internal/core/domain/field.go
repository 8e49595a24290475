package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Field names a comparable attribute of a ticket snapshot.
type Field string

const (
	// FieldSummary is the one-line ticket title.
	FieldSummary Field = "summary"
	// FieldDescription is the free-form ticket body.
	FieldDescription Field = "description"
	// FieldPriority is the ticket priority label.
	FieldPriority Field = "priority"
	// FieldStatus is the workflow status of the ticket.
	FieldStatus Field = "status"
	// FieldAssignee is the person the ticket is assigned to. Empty means unassigned.
	FieldAssignee Field = "assignee"
	// FieldReporter is the person who filed the ticket.
	FieldReporter Field = "reporter"
)

// fieldOrder is the canonical ordering of every list of fields the system emits.
var fieldOrder = []Field{
	FieldSummary,
	FieldDescription,
	FieldPriority,
	FieldStatus,
	FieldAssignee,
	FieldReporter,
}

// AllFields returns every compared snapshot field in canonical order.
func AllFields() []Field {
	return slices.Clone(fieldOrder)
}

// DefaultValidatedFields returns the fields sent to the validator when none are configured.
func DefaultValidatedFields() []Field {
	return []Field{FieldSummary, FieldDescription, FieldPriority}
}

// String returns the field name.
func (f Field) String() string {
	return string(f)
}

// Known reports whether f is one of the compared snapshot fields.
func (f Field) Known() bool {
	return f.rank() >= 0
}

func (f Field) rank() int {
	return slices.Index(fieldOrder, f)
}

// ParseField converts a field name into a Field.
func ParseField(name string) (Field, error) {
	f := Field(name)
	if !f.Known() {
		return "", zerr.With(ErrUnknownField, "field", name)
	}
	return f, nil
}

// ParseFields converts field names into a deduplicated, canonically ordered field list.
func ParseFields(names []string) ([]Field, error) {
	if len(names) == 0 {
		return nil, ErrNoValidatedFields
	}
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		f, err := ParseField(name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return NormalizeFields(fields), nil
}

// NormalizeFields returns a copy of fields sorted in canonical order without duplicates.
// Unknown fields sort last, by name.
func NormalizeFields(fields []Field) []Field {
	out := slices.Clone(fields)
	slices.SortFunc(out, compareFields)
	return slices.Compact(out)
}

func compareFields(a, b Field) int {
	ra, rb := a.rank(), b.rank()
	switch {
	case ra >= 0 && rb >= 0:
		return ra - rb
	case ra >= 0:
		return -1
	case rb >= 0:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
