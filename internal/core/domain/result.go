package domain

import (
	"slices"
	"time"
)

const (
	// MinScore is the lowest score a successful field evaluation can carry.
	MinScore = 1
	// MaxScore is the highest score a field evaluation can carry.
	MaxScore = 10
	// DegradedScore marks a field whose evaluation failed.
	DegradedScore = 0
)

// FieldResult is one field's validation judgment.
type FieldResult struct {
	Field       Field     `json:"field"`
	Score       int       `json:"score"`
	Valid       bool      `json:"valid"`
	Issues      []string  `json:"issues,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	EvaluatedAt time.Time `json:"evaluated_at,omitzero"`
}

// Degraded reports whether the result is the sentinel for a failed evaluation.
func (r FieldResult) Degraded() bool {
	return r.Score == DegradedScore
}

// DegradedResult builds the sentinel result substituted when a field cannot be evaluated.
func DegradedResult(field Field, reason error, at time.Time) FieldResult {
	msg := "unknown error"
	if reason != nil {
		msg = reason.Error()
	}
	return FieldResult{
		Field:       field,
		Score:       DegradedScore,
		Valid:       false,
		Issues:      []string{"validation failed: " + msg},
		Suggestions: []string{"retry validation for this field"},
		EvaluatedAt: at,
	}
}

// HistoryEntry is the durable validation record for one ticket.
type HistoryEntry struct {
	TicketKey    string        `json:"ticket_key"`
	Snapshot     Snapshot      `json:"snapshot"`
	Fingerprint  string        `json:"fingerprint,omitzero"`
	FieldResults []FieldResult `json:"field_results"`
	Score        int           `json:"score"`
	Valid        bool          `json:"valid"`
	Timestamp    time.Time     `json:"timestamp,omitzero"`
}

// Result returns the stored result for the given field, if present.
func (e *HistoryEntry) Result(f Field) (FieldResult, bool) {
	for _, r := range e.FieldResults {
		if r.Field == f {
			return r, true
		}
	}
	return FieldResult{}, false
}

// Fields returns the fields that carry a stored result, in canonical order.
func (e *HistoryEntry) Fields() []Field {
	fields := make([]Field, 0, len(e.FieldResults))
	for _, r := range e.FieldResults {
		fields = append(fields, r.Field)
	}
	return NormalizeFields(fields)
}

// OutcomeKind classifies how a validation request was served.
type OutcomeKind string

const (
	// OutcomeFull means no history existed and every field was evaluated.
	OutcomeFull OutcomeKind = "full"
	// OutcomeCached means nothing changed and the stored entry was returned as is.
	OutcomeCached OutcomeKind = "cached"
	// OutcomePartial means only the changed fields were evaluated and merged.
	OutcomePartial OutcomeKind = "partial"
)

// Outcome is the result of one revalidation request.
type Outcome struct {
	Entry HistoryEntry
	Kind  OutcomeKind
	// Changed lists every compared field whose value differs from the stored snapshot.
	Changed []Field
	// Reevaluated lists the fields sent to the field validator.
	Reevaluated []Field
	// Reused lists the fields whose stored judgment was carried over.
	Reused []Field
}

// MergeResults combines previous and fresh field results.
//
// For every field appearing in either list, a field named in changed takes its fresh
// result and is dropped when fresh has none; any other field keeps its previous result.
// The output is ordered canonically so aggregates are reproducible.
func MergeResults(previous, fresh []FieldResult, changed []Field) []FieldResult {
	prevByField := make(map[Field]FieldResult, len(previous))
	for _, r := range previous {
		prevByField[r.Field] = r
	}
	freshByField := make(map[Field]FieldResult, len(fresh))
	for _, r := range fresh {
		freshByField[r.Field] = r
	}

	union := make([]Field, 0, len(previous)+len(fresh))
	for _, r := range previous {
		union = append(union, r.Field)
	}
	for _, r := range fresh {
		union = append(union, r.Field)
	}
	union = NormalizeFields(union)

	merged := make([]FieldResult, 0, len(union))
	for _, f := range union {
		source := prevByField
		if slices.Contains(changed, f) {
			source = freshByField
		}
		if r, ok := source[f]; ok {
			merged = append(merged, r)
		}
	}
	return merged
}
