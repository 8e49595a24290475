// Package revalidator decides, per ticket and per field, which validation judgments
// can be reused and which must be recomputed, and persists the merged record.
package revalidator

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/recheck/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	// SpanKindTicket tags the span covering one ticket cycle.
	SpanKindTicket = "ticket"
	// SpanKindField tags the span covering one field validator call.
	SpanKindField = "field"
)

// Result is the outcome of one ticket in a bulk validation.
type Result struct {
	Key     string
	Outcome domain.Outcome
	Err     error
}

// Revalidator runs the read, compare, validate, merge and write cycle for tickets.
type Revalidator struct {
	store     ports.HistoryStore
	validator ports.FieldValidator
	tracer    ports.Tracer
	logger    ports.Logger

	fields         []domain.Field
	policy         domain.ScorePolicy
	rulesFor       func(domain.Field) string
	productContext string
	retryDegraded  bool
	parallelism    int

	locks *keyLocks
	now   func() time.Time
}

// NewRevalidator creates a Revalidator for the validated fields and scoring policy in cfg.
func NewRevalidator(
	store ports.HistoryStore,
	validator ports.FieldValidator,
	tracer ports.Tracer,
	logger ports.Logger,
	cfg *domain.Config,
) (*Revalidator, error) {
	if len(cfg.Fields) == 0 {
		return nil, domain.ErrNoValidatedFields
	}
	for _, f := range cfg.Fields {
		if !f.Known() {
			return nil, zerr.With(domain.ErrUnknownField, "field", f.String())
		}
	}
	if err := cfg.Scoring.Validate(); err != nil {
		return nil, err
	}

	parallelism := cfg.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	return &Revalidator{
		store:          store,
		validator:      validator,
		tracer:         tracer,
		logger:         logger,
		fields:         domain.NormalizeFields(cfg.Fields),
		policy:         cfg.Scoring,
		rulesFor:       cfg.RulesFor,
		productContext: cfg.ProductContext,
		retryDegraded:  cfg.RetryDegraded,
		parallelism:    parallelism,
		locks:          newKeyLocks(),
		now:            time.Now,
	}, nil
}

// Fields returns the validated fields in canonical order.
func (r *Revalidator) Fields() []domain.Field {
	return slices.Clone(r.fields)
}

// ValidateMany validates every snapshot with at most parallelism tickets in flight.
// A failing ticket does not stop the others. Results are returned in input order.
func (r *Revalidator) ValidateMany(ctx context.Context, snapshots []domain.Snapshot, force bool) []Result {
	keys := make([]string, len(snapshots))
	for i, snap := range snapshots {
		keys[i] = snap.Key
	}
	r.tracer.EmitPlan(ctx, keys)

	results := make([]Result, len(snapshots))

	var g errgroup.Group
	g.SetLimit(r.parallelism)
	for i, snap := range snapshots {
		g.Go(func() error {
			outcome, err := r.Validate(ctx, snap, force)
			results[i] = Result{Key: snap.Key, Outcome: outcome, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Validate brings the stored record for snapshot.Key up to date and reports how it was served.
//
// If ctx is already done the store is never touched. Once the cycle starts it runs to
// completion regardless of ctx so the stored record stays consistent.
// When force is set every validated field is re-evaluated.
func (r *Revalidator) Validate(ctx context.Context, snapshot domain.Snapshot, force bool) (domain.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return domain.Outcome{}, err
	}
	if err := snapshot.Validate(); err != nil {
		return domain.Outcome{}, err
	}

	unlock := r.locks.lock(snapshot.Key)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return domain.Outcome{}, err
	}
	ctx = context.WithoutCancel(ctx)

	ctx, span := r.tracer.Start(ctx, snapshot.Key, ports.WithKind(SpanKindTicket))
	defer span.End()

	outcome, err := r.revalidate(ctx, snapshot, force)
	if err != nil {
		span.RecordError(err)
		return domain.Outcome{}, zerr.With(err, "ticket", snapshot.Key)
	}

	span.SetAttribute("recheck.outcome", string(outcome.Kind))
	span.SetAttribute("recheck.reevaluated", len(outcome.Reevaluated))
	span.SetAttribute("recheck.score", outcome.Entry.Score)
	return outcome, nil
}

// plan is the set of decisions taken for one ticket before any validator call.
type plan struct {
	kind       domain.OutcomeKind
	changed    []domain.Field
	reevaluate []domain.Field
	reused     []domain.Field
}

func (r *Revalidator) revalidate(ctx context.Context, snapshot domain.Snapshot, force bool) (domain.Outcome, error) {
	previous, err := r.store.Get(ctx, snapshot.Key)
	if err != nil {
		return domain.Outcome{}, zerr.Wrap(err, domain.ErrHistoryReadFailed.Error())
	}
	if previous != nil && previous.TicketKey != snapshot.Key {
		return domain.Outcome{}, zerr.With(domain.ErrInvalidTicketKey, "stored_key", previous.TicketKey)
	}

	p := r.plan(snapshot, previous, force)
	if p.kind == domain.OutcomeCached {
		return domain.Outcome{
			Entry:  *previous,
			Kind:   domain.OutcomeCached,
			Reused: p.reused,
		}, nil
	}

	fresh := r.evaluate(ctx, snapshot, previous, p.reevaluate)

	var retained []domain.FieldResult
	if previous != nil {
		retained = r.retained(previous)
	}
	merged := domain.MergeResults(retained, fresh, p.reevaluate)

	score, valid, err := r.policy.Aggregate(merged)
	if err != nil {
		return domain.Outcome{}, err
	}

	entry := domain.HistoryEntry{
		TicketKey:    snapshot.Key,
		Snapshot:     snapshot,
		Fingerprint:  snapshot.Fingerprint(),
		FieldResults: merged,
		Score:        score,
		Valid:        valid,
		Timestamp:    r.now(),
	}
	if err := r.store.Put(ctx, entry); err != nil {
		return domain.Outcome{}, zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error())
	}

	return domain.Outcome{
		Entry:       entry,
		Kind:        p.kind,
		Changed:     p.changed,
		Reevaluated: p.reevaluate,
		Reused:      p.reused,
	}, nil
}

func (r *Revalidator) plan(snapshot domain.Snapshot, previous *domain.HistoryEntry, force bool) plan {
	if previous == nil {
		return plan{kind: domain.OutcomeFull, reevaluate: r.Fields()}
	}

	changed := domain.ChangedFields(snapshot, previous.Snapshot)
	if force {
		return plan{kind: domain.OutcomePartial, changed: changed, reevaluate: r.Fields()}
	}

	var reevaluate, reused []domain.Field
	for _, f := range r.fields {
		stored, ok := previous.Result(f)
		switch {
		case !ok, slices.Contains(changed, f), r.retryDegraded && stored.Degraded():
			reevaluate = append(reevaluate, f)
		default:
			reused = append(reused, f)
		}
	}

	if len(changed) == 0 && len(reevaluate) == 0 && slices.Equal(previous.Fields(), r.fields) {
		return plan{kind: domain.OutcomeCached, reused: reused}
	}

	return plan{kind: domain.OutcomePartial, changed: changed, reevaluate: reevaluate, reused: reused}
}

// retained returns the stored results for fields that are still validated.
func (r *Revalidator) retained(previous *domain.HistoryEntry) []domain.FieldResult {
	out := make([]domain.FieldResult, 0, len(previous.FieldResults))
	for _, res := range previous.FieldResults {
		if slices.Contains(r.fields, res.Field) {
			out = append(out, res)
		}
	}
	return out
}

// evaluate calls the field validator for every field concurrently.
// A field that cannot be evaluated yields the degraded sentinel and never fails the ticket.
func (r *Revalidator) evaluate(
	ctx context.Context,
	snapshot domain.Snapshot,
	previous *domain.HistoryEntry,
	fields []domain.Field,
) []domain.FieldResult {
	results := make([]domain.FieldResult, len(fields))

	var g errgroup.Group
	for i, f := range fields {
		g.Go(func() error {
			results[i] = r.evaluateField(ctx, snapshot, previous, f)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (r *Revalidator) evaluateField(
	ctx context.Context,
	snapshot domain.Snapshot,
	previous *domain.HistoryEntry,
	field domain.Field,
) domain.FieldResult {
	ctx, span := r.tracer.Start(ctx, snapshot.Key+"/"+field.String(), ports.WithKind(SpanKindField))
	defer span.End()

	req := ports.FieldRequest{
		TicketKey:      snapshot.Key,
		Field:          field,
		Value:          snapshot.Value(field),
		Rules:          r.rulesFor(field),
		ProductContext: r.productContext,
	}
	if previous != nil {
		if prev, ok := previous.Result(field); ok {
			req.Previous = &prev
		}
	}

	res, err := r.validator.ValidateField(ctx, req)
	if err == nil {
		err = checkFieldResult(field, res)
	}
	if err != nil {
		span.RecordError(err)
		r.logger.Warn(fmt.Sprintf("%s: field %s could not be validated: %v", snapshot.Key, field, err))
		return domain.DegradedResult(field, err, r.now())
	}

	res.Field = field
	if res.EvaluatedAt.IsZero() {
		res.EvaluatedAt = r.now()
	}
	span.SetAttribute("recheck.score", res.Score)
	return res
}

// checkFieldResult rejects validator answers that cannot be merged into the record.
// A returned score of 0 is rejected too: it is reserved for degraded results.
func checkFieldResult(field domain.Field, res domain.FieldResult) error {
	if res.Field != "" && res.Field != field {
		return zerr.With(domain.ErrFieldMismatch, "returned_field", res.Field.String())
	}
	if res.Score < domain.MinScore || res.Score > domain.MaxScore {
		return zerr.With(domain.ErrScoreOutOfRange, "score", res.Score)
	}
	return nil
}
