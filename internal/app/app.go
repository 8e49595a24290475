// Package app implements the application layer for recheck.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"go.trai.ch/recheck/internal/adapters/detector"  //nolint:depguard // Output mode selection
	"go.trai.ch/recheck/internal/adapters/linear"    //nolint:depguard // Renderer construction
	"go.trai.ch/recheck/internal/adapters/telemetry" //nolint:depguard // Renderer attachment
	"go.trai.ch/recheck/internal/adapters/watcher"   //nolint:depguard // Debounce window
	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/recheck/internal/core/ports"
	"go.trai.ch/recheck/internal/engine/revalidator"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	source      ports.TicketSource
	validator   ports.FieldValidator
	store       ports.HistoryStore
	revalidator *revalidator.Revalidator
	tracer      *telemetry.OTelTracer
	watcher     ports.Watcher
	logger      ports.Logger
	ticketsDir  string

	stdout   io.Writer
	stderr   io.Writer
	debounce time.Duration
}

// New creates a new App instance.
func New(
	source ports.TicketSource,
	validator ports.FieldValidator,
	store ports.HistoryStore,
	reval *revalidator.Revalidator,
	tracer *telemetry.OTelTracer,
	w ports.Watcher,
	log ports.Logger,
	ticketsDir string,
) *App {
	return &App{
		source:      source,
		validator:   validator,
		store:       store,
		revalidator: reval,
		tracer:      tracer,
		watcher:     w,
		logger:      log,
		ticketsDir:  ticketsDir,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		debounce:    watcher.DefaultDebounceWindow,
	}
}

// WithOutput redirects rendered output. Used by tests and the CLI.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithDebounce sets the window used to coalesce file events in watch mode.
func (a *App) WithDebounce(window time.Duration) *App {
	a.debounce = window
	return a
}

// ValidateOptions configures the Validate method.
type ValidateOptions struct {
	// All validates every ticket in the ticket directory.
	All bool
	// Force re-evaluates every validated field even when nothing changed.
	Force      bool
	OutputMode string
}

// Validate revalidates the given tickets, or every ticket when opts.All is set.
// A ticket that fails does not stop the others; the returned error then wraps
// domain.ErrValidationFailed together with each ticket's error.
func (a *App) Validate(ctx context.Context, keys []string, opts ValidateOptions) error {
	renderer, err := a.newRenderer(opts.OutputMode)
	if err != nil {
		return err
	}
	if !opts.All && len(keys) == 0 {
		return domain.ErrNoTicketsSpecified
	}
	if err := a.validator.Ready(); err != nil {
		return err
	}

	var snapshots []domain.Snapshot
	var errs []error
	if opts.All {
		snapshots, err = a.source.List(ctx)
		if err != nil {
			return err
		}
	} else {
		snapshots, errs = a.fetch(ctx, dedupe(keys))
		for _, err := range errs {
			a.logger.Error(err)
		}
	}

	a.tracer.WithRenderer(renderer)
	defer func() { _ = a.tracer.Shutdown(context.WithoutCancel(ctx)) }()

	errs = append(errs, a.run(ctx, renderer, snapshots, opts.Force)...)
	if err := renderer.Flush(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{domain.ErrValidationFailed}, errs...)...)
	}
	return nil
}

// WatchOptions configures the Watch method.
type WatchOptions struct {
	OutputMode string
}

// Watch validates every ticket, then revalidates tickets whose files change until ctx is done.
// Unchanged content is served from history, so touching a file costs no validator calls.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	renderer, err := a.newRenderer(opts.OutputMode)
	if err != nil {
		return err
	}
	if err := a.validator.Ready(); err != nil {
		return err
	}

	a.tracer.WithRenderer(renderer)
	defer func() { _ = a.tracer.Shutdown(context.WithoutCancel(ctx)) }()

	snapshots, err := a.source.List(ctx)
	if err != nil {
		return err
	}
	a.run(ctx, renderer, snapshots, false)
	_ = renderer.Flush()

	if err := a.watcher.Start(ctx, a.ticketsDir); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()

	a.logger.Info(fmt.Sprintf("watching %s for ticket changes", a.ticketsDir))

	batches := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})
	defer debouncer.Stop()

	go func() {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-batches:
			a.revalidatePaths(ctx, renderer, paths)
		}
	}
}

// revalidatePaths maps changed files to tickets and revalidates the ones that still exist.
func (a *App) revalidatePaths(ctx context.Context, renderer ports.Renderer, paths []string) {
	var keys []string
	for _, path := range paths {
		if key, ok := a.source.Locate(path); ok {
			keys = append(keys, key)
		}
	}
	keys = dedupe(keys)
	if len(keys) == 0 {
		return
	}

	snapshots, errs := a.fetch(ctx, keys)
	for _, err := range errs {
		if errors.Is(err, domain.ErrTicketNotFound) {
			a.logger.Info(err.Error() + ", skipping")
			continue
		}
		a.logger.Error(err)
	}

	a.run(ctx, renderer, snapshots, false)
	_ = renderer.Flush()
}

// HistoryOptions configures the History method.
type HistoryOptions struct {
	OutputMode string
}

// History prints every stored validation record.
func (a *App) History(ctx context.Context, opts HistoryOptions) error {
	renderer, err := a.newRenderer(opts.OutputMode)
	if err != nil {
		return err
	}

	entries, err := a.store.List(ctx)
	if err != nil {
		return zerr.Wrap(err, domain.ErrHistoryReadFailed.Error())
	}
	renderer.OnHistory(entries)
	return renderer.Flush()
}

// Clear removes every stored validation record.
func (a *App) Clear(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return zerr.Wrap(err, domain.ErrHistoryClearFailed.Error())
	}
	a.logger.Info("cleared validation history")
	return nil
}

// Close releases the history store when it holds resources, such as the SQLite pool.
func (a *App) Close() error {
	if closer, ok := a.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// run validates the snapshots, renders each outcome and logs and returns each failure.
func (a *App) run(ctx context.Context, renderer ports.Renderer, snapshots []domain.Snapshot, force bool) []error {
	if len(snapshots) == 0 {
		return nil
	}

	var errs []error
	for _, res := range a.revalidator.ValidateMany(ctx, snapshots, force) {
		if res.Err != nil {
			a.logger.Error(res.Err)
			errs = append(errs, res.Err)
			continue
		}
		renderer.OnOutcome(res.Outcome)
	}
	return errs
}

func (a *App) fetch(ctx context.Context, keys []string) ([]domain.Snapshot, []error) {
	var snapshots []domain.Snapshot
	var errs []error
	for _, key := range keys {
		snap, err := a.source.Fetch(ctx, key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, errs
}

func (a *App) newRenderer(flag string) (ports.Renderer, error) {
	requested, err := detector.ParseOutputMode(flag)
	if err != nil {
		return nil, err
	}
	mode := detector.ResolveMode(detector.DetectEnvironment(), requested)
	return linear.NewRenderer(a.stdout, a.stderr, detector.Profile(mode)), nil
}

// dedupe returns keys without duplicates, keeping first occurrences in order.
func dedupe(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}
