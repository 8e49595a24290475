package linear_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recheck/internal/adapters/linear"
	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/recheck/internal/ui/output"
)

func newRenderer() (*linear.Renderer, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return linear.NewRenderer(&stdout, &stderr, output.ColorProfileNone), &stdout, &stderr
}

func partialOutcome() domain.Outcome {
	return domain.Outcome{
		Kind:        domain.OutcomePartial,
		Changed:     []domain.Field{domain.FieldDescription},
		Reevaluated: []domain.Field{domain.FieldDescription},
		Reused:      []domain.Field{domain.FieldSummary, domain.FieldPriority},
		Entry: domain.HistoryEntry{
			TicketKey: "PROJ-1",
			Score:     7,
			Valid:     false,
			FieldResults: []domain.FieldResult{
				{Field: domain.FieldSummary, Score: 8, Valid: true},
				{
					Field:       domain.FieldDescription,
					Score:       5,
					Valid:       false,
					Issues:      []string{"no acceptance criteria"},
					Suggestions: []string{"list the expected behaviour"},
				},
				{Field: domain.FieldPriority, Score: 8, Valid: true},
			},
		},
	}
}

func TestRenderer_TicketLifecycle(t *testing.T) {
	r, _, stderr := newRenderer()

	r.OnPlan([]string{"PROJ-1", "PROJ-2"})
	assert.Contains(t, stderr.String(), "Validating 2 ticket(s)")

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.OnTicketStart("span1", "PROJ-1", start)
	assert.Contains(t, stderr.String(), "[PROJ-1] validating...")

	r.OnTicketComplete("span1", start.Add(120*time.Millisecond), nil)
	assert.Contains(t, stderr.String(), "[PROJ-1] ✓ done in 120ms")

	r.OnTicketStart("span2", "PROJ-2", start)
	r.OnTicketComplete("span2", start.Add(time.Second), errors.New("store unavailable"))
	assert.Contains(t, stderr.String(), "[PROJ-2] ✗ failed after 1s: store unavailable")
}

func TestRenderer_CompleteUnknownSpan(t *testing.T) {
	r, stdout, stderr := newRenderer()
	r.OnTicketComplete("missing", time.Now(), nil)
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRenderer_OnOutcome(t *testing.T) {
	r, stdout, _ := newRenderer()

	r.OnOutcome(partialOutcome())

	want := "~ PROJ-1  score 7/10  invalid  (partial: 1 re-evaluated, 2 reused)\n" +
		"  ✓ summary       8  reused\n" +
		"  ✗ description   5\n" +
		"      - no acceptance criteria\n" +
		"      ~ list the expected behaviour\n" +
		"  ✓ priority      8  reused\n"
	assert.Equal(t, want, stdout.String())
}

func TestRenderer_OnOutcomeCachedAndDegraded(t *testing.T) {
	r, stdout, _ := newRenderer()

	degraded := domain.DegradedResult(domain.FieldPriority, errors.New("timeout"), time.Time{})
	r.OnOutcome(domain.Outcome{
		Kind:   domain.OutcomeCached,
		Reused: []domain.Field{domain.FieldPriority},
		Entry: domain.HistoryEntry{
			TicketKey:    "PROJ-9",
			Score:        0,
			FieldResults: []domain.FieldResult{degraded},
		},
	})

	out := stdout.String()
	assert.Contains(t, out, "○ PROJ-9  score 0/10  invalid  (cached)")
	assert.Contains(t, out, "  ! priority   0\n")
	assert.Contains(t, out, "validation failed: timeout")
	assert.NotContains(t, out, "reused")
}

func TestRenderer_Flush(t *testing.T) {
	r, _, stderr := newRenderer()

	require.NoError(t, r.Flush())
	assert.Empty(t, stderr.String(), "nothing to summarise")

	full := partialOutcome()
	full.Kind = domain.OutcomeFull
	full.Entry.Valid = true
	r.OnOutcome(full)
	r.OnOutcome(partialOutcome())
	r.OnTicketStart("s", "PROJ-3", time.Now())
	r.OnTicketComplete("s", time.Now(), errors.New("boom"))

	require.NoError(t, r.Flush())
	assert.Contains(t, stderr.String(),
		"2 ticket(s): 1 full, 1 partial, 0 cached; 1 valid, 1 invalid; 1 failed")

	stderr.Reset()
	require.NoError(t, r.Flush())
	assert.Empty(t, stderr.String(), "totals reset after flush")
}

func TestRenderer_OnHistory(t *testing.T) {
	r, stdout, _ := newRenderer()

	r.OnHistory(nil)
	assert.Equal(t, "No validation history.\n", stdout.String())

	stdout.Reset()
	r.OnHistory([]domain.HistoryEntry{
		{
			TicketKey:   "PROJ-1",
			Score:       8,
			Valid:       true,
			Fingerprint: "00ff00ff00ff00ff",
			Timestamp:   time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
			FieldResults: []domain.FieldResult{
				{Field: domain.FieldPriority, Score: 8},
				{Field: domain.FieldSummary, Score: 8},
			},
		},
		{TicketKey: "PROJ-2", Score: 3},
	})

	out := stdout.String()
	for _, want := range []string{
		"TICKET", "FINGERPRINT", "PROJ-1", "PROJ-2", "true", "false",
		"summary,priority", "00ff00ff00ff00ff", "2026-03-04 05:06:07",
	} {
		assert.Contains(t, out, want)
	}
}
