// Package linear provides a synchronous, line-oriented renderer for terminals and CI logs.
package linear

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/recheck/internal/ui/output"
	"go.trai.ch/recheck/internal/ui/style"
)

// timeLayout is used for timestamps in history listings.
const timeLayout = "2006-01-02 15:04:05"

// Renderer implements ports.Renderer.
// Progress goes to stderr; outcomes and history go to stdout.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	out    *termenv.Output

	mu      sync.Mutex
	tickets map[string]ticketState // spanID -> ticket
	totals  totals
}

type ticketState struct {
	name      string
	startTime time.Time
}

type totals struct {
	kinds   map[domain.OutcomeKind]int
	valid   int
	invalid int
	failed  int
}

// NewRenderer creates a Renderer. profileFn selects the color profile,
// output.ColorProfileNone disables color entirely.
func NewRenderer(stdout, stderr io.Writer, profileFn func() termenv.Profile) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if profileFn == nil {
		profileFn = output.ColorProfileANSI
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		out:     output.NewWithProfile(stdout, profileFn),
		tickets: make(map[string]ticketState),
		totals:  totals{kinds: map[domain.OutcomeKind]int{}},
	}
}

// OnPlan announces how many tickets are about to be validated.
func (r *Renderer) OnPlan(ticketKeys []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "%s\n",
		r.paint(fmt.Sprintf("Validating %d ticket(s)", len(ticketKeys)), style.Iris))
}

// OnTicketStart records the start of a ticket cycle.
func (r *Renderer) OnTicketStart(spanID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tickets[spanID] = ticketState{name: name, startTime: startTime}
	_, _ = fmt.Fprintf(r.stderr, "%s validating...\n", r.prefix(name))
}

// OnTicketComplete prints the duration of a ticket cycle, or its failure.
func (r *Renderer) OnTicketComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[spanID]
	if !ok {
		return
	}
	delete(r.tickets, spanID)

	duration := endTime.Sub(ticket.startTime).Round(time.Millisecond)
	if err != nil {
		r.totals.failed++
		_, _ = fmt.Fprintf(r.stderr, "%s %s failed after %v: %v\n",
			r.prefix(ticket.name), r.paint(style.Cross, style.Red), duration, err)
		return
	}
	_, _ = fmt.Fprintf(r.stderr, "%s %s done in %v\n",
		r.prefix(ticket.name), r.paint(style.Check, style.Green), duration)
}

// OnOutcome prints the merged record of one ticket with one line per field.
func (r *Renderer) OnOutcome(outcome domain.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := outcome.Entry
	r.totals.kinds[outcome.Kind]++
	if entry.Valid {
		r.totals.valid++
	} else {
		r.totals.invalid++
	}

	verdict := "invalid"
	if entry.Valid {
		verdict = "valid"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  score %d/%d  %s  (%s)\n",
		style.OutcomeIcon(outcome.Kind),
		r.bold(entry.TicketKey),
		entry.Score, domain.MaxScore,
		r.paint(verdict, style.ResultColor(entry.Score, entry.Valid)),
		describe(outcome))

	width := 0
	for _, res := range entry.FieldResults {
		width = max(width, len(res.Field.String()))
	}

	for _, res := range entry.FieldResults {
		icon := r.paint(style.ResultIcon(res.Score, res.Valid), style.ResultColor(res.Score, res.Valid))
		line := fmt.Sprintf("  %s %-*s  %2d", icon, width, res.Field, res.Score)
		if slices.Contains(outcome.Reused, res.Field) && outcome.Kind != domain.OutcomeCached {
			line += "  " + r.paint("reused", style.Slate)
		}
		b.WriteString(line + "\n")

		if res.Valid {
			continue
		}
		for _, issue := range res.Issues {
			fmt.Fprintf(&b, "      - %s\n", issue)
		}
		for _, suggestion := range res.Suggestions {
			fmt.Fprintf(&b, "      %s %s\n", style.Tilde, suggestion)
		}
	}

	_, _ = io.WriteString(r.stdout, b.String())
}

// OnHistory prints stored entries as a table.
func (r *Renderer) OnHistory(entries []domain.HistoryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(r.stdout, "No validation history.")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("TICKET", "SCORE", "VALID", "FIELDS", "FINGERPRINT", "VALIDATED")

	for _, e := range entries {
		fields := make([]string, 0, len(e.FieldResults))
		for _, f := range e.Fields() {
			fields = append(fields, f.String())
		}
		validated := ""
		if !e.Timestamp.IsZero() {
			validated = e.Timestamp.UTC().Format(timeLayout)
		}
		t.Row(
			e.TicketKey,
			strconv.Itoa(e.Score),
			strconv.FormatBool(e.Valid),
			strings.Join(fields, ","),
			e.Fingerprint,
			validated,
		)
	}

	_, _ = fmt.Fprintln(r.stdout, t.String())
}

// Flush prints a summary of the outcomes seen since the last flush and resets it.
func (r *Renderer) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := r.totals.valid + r.totals.invalid
	if seen == 0 && r.totals.failed == 0 {
		return nil
	}

	summary := fmt.Sprintf("%d ticket(s): %d full, %d partial, %d cached; %d valid, %d invalid",
		seen,
		r.totals.kinds[domain.OutcomeFull],
		r.totals.kinds[domain.OutcomePartial],
		r.totals.kinds[domain.OutcomeCached],
		r.totals.valid,
		r.totals.invalid)
	if r.totals.failed > 0 {
		summary += fmt.Sprintf("; %d failed", r.totals.failed)
	}

	r.totals = totals{kinds: map[domain.OutcomeKind]int{}}
	_, err := fmt.Fprintln(r.stderr, summary)
	return err
}

func (r *Renderer) prefix(name string) string {
	return r.out.String("[" + name + "]").Faint().String()
}

func (r *Renderer) paint(s string, color lipgloss.Color) string {
	return r.out.String(s).Foreground(r.out.Color(string(color))).String()
}

func (r *Renderer) bold(s string) string {
	return r.out.String(s).Bold().String()
}

// describe summarises how the outcome was served.
func describe(o domain.Outcome) string {
	switch o.Kind {
	case domain.OutcomeCached:
		return "cached"
	case domain.OutcomeFull:
		return fmt.Sprintf("full: %d evaluated", len(o.Reevaluated))
	default:
		return fmt.Sprintf("partial: %d re-evaluated, %d reused", len(o.Reevaluated), len(o.Reused))
	}
}
