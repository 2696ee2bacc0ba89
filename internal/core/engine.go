package core

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/richbibby/netbox-population-tool/internal/logging"
	"github.com/richbibby/netbox-population-tool/internal/netbox"
)

// Engine drives a population run: setup preflight, filter pass, then one
// pass over every tier in order, one record at a time. Per-record errors
// are classified and counted, never propagated; only setup failures abort
// the run.
type Engine struct {
	client  *netbox.Client
	ds      *Dataset
	rules   Rules
	printer *Printer
	dryRun  bool
}

// NewEngine assembles an engine over a loaded dataset.
func NewEngine(client *netbox.Client, ds *Dataset, rules Rules, printer *Printer, dryRun bool) *Engine {
	return &Engine{
		client:  client,
		ds:      ds,
		rules:   rules,
		printer: printer,
		dryRun:  dryRun,
	}
}

// Run executes the pipeline and returns the run summary. The returned
// error is non-nil only for setup failures (auth, unreachable target);
// per-record failures are visible in the summary.
func (e *Engine) Run(ctx context.Context) (*RunSummary, error) {
	runID := uuid.NewString()[:8]
	ctx = logging.WithRunID(ctx, runID)
	log := logging.FromContext(ctx)
	start := time.Now()

	if err := e.client.Status(ctx); err != nil {
		if netbox.IsAuth(err) {
			return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
		return nil, fmt.Errorf("target NetBox unreachable: %w", err)
	}

	filtered := ApplyFilter(e.ds, e.rules)
	log.Info("filter rules applied",
		"filtered", filtered,
		"total", e.ds.TotalRecords(),
		"manufacturers", e.rules.Manufacturers,
	)

	rz := NewResolver(e.ds, e.client)
	summary := newRunSummary(runID, e.dryRun)
	e.printer.Banner(e.client.BaseURL(), e.ds.Dir(), e.dryRun)

	for _, tier := range Tiers() {
		e.printer.TierHeader(tier)
		for _, def := range ByTier(tier) {
			rows := e.ds.Rows(def.Key)
			if len(rows) == 0 {
				continue
			}
			e.printer.TypeHeader(def, len(rows))

			if def.SkipReason != "" {
				e.printer.SkipType(def)
				for _, row := range rows {
					row.Outcome = OutcomeSkipped
					row.Detail = def.SkipReason
					summary.add(def, row)
				}
				continue
			}

			for _, row := range rows {
				e.processRecord(ctx, def, row, rz)
				summary.add(def, row)
				e.printer.Line(def, row)
			}
			log.Debug("type processed", "type", def.Key, "records", len(rows))
		}
	}

	summary.Duration = time.Since(start)
	e.printer.Summary(summary)
	log.Info("run complete",
		"created", summary.Created,
		"exists", summary.Exists,
		"filtered", summary.Filtered,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
		"dry_run", e.dryRun,
		"duration", summary.Duration,
	)
	return summary, nil
}

// processRecord runs the existence check, dependency resolution and
// create steps for one record, in that order. Each record maps to at most
// one create call.
func (e *Engine) processRecord(ctx context.Context, def *ObjectType, row *Row, rz *Resolver) {
	if row.Outcome == OutcomeFiltered {
		return
	}

	refName := def.RefName(row.Rec)

	// Resolve the scope name first; existence checks on parent-scoped
	// keys need it as a query param.
	var scopeName string
	if def.Scope != nil {
		id, ok := row.Rec.Int(def.Scope.Field)
		if !ok {
			e.fail(row, &DependencyError{RefType: def.Scope.Type, Reason: "record has no " + def.Scope.Field + " reference"})
			return
		}
		name, ok := e.ds.NameOf(def.Scope.Type, id)
		if !ok {
			e.fail(row, &DependencyError{RefType: def.Scope.Type, Reason: "source ID not in id_mappings"})
			return
		}
		scopeName = name
	}

	// Step 1: existence check by natural key.
	if !def.NoPrecheck {
		params := url.Values{}
		for _, f := range def.NaturalKey {
			if v := row.Rec.Str(f); v != "" {
				params.Set(f, v)
			} else if n, ok := row.Rec.Int(f); ok {
				params.Set(f, strconv.FormatInt(n, 10))
			}
		}
		if scopeName != "" {
			params.Set(def.Scope.param(), scopeName)
		}

		obj, err := e.client.Find(ctx, def.Endpoint, params)
		if err != nil {
			e.fail(row, err)
			return
		}
		if obj != nil {
			row.Outcome = OutcomeExists
			row.RemoteID = obj.ID
			rz.Store(def, scopeName, refName, obj.ID)
			return
		}
	}

	// Step 2: dependency resolution via payload construction.
	payload, err := def.buildPayload(ctx, row.Rec, rz)
	if err != nil {
		if IsSkip(err) {
			row.Outcome = OutcomeSkipped
			row.Detail = err.Error()
		} else {
			e.fail(row, err)
		}
		return
	}

	// Step 3: create, or predict in dry-run mode.
	if e.dryRun {
		row.Outcome = OutcomeCreated
		row.RemoteID = rz.Predict(def, scopeName, refName)
		return
	}

	obj, err := e.client.Create(ctx, def.Endpoint, payload)
	if err != nil {
		if netbox.IsDuplicate(err) {
			// Races and key fields the precheck does not cover; the
			// object exists, a later reference will look its ID up.
			row.Outcome = OutcomeExists
			return
		}
		e.fail(row, err)
		return
	}

	row.Outcome = OutcomeCreated
	row.RemoteID = obj.ID
	rz.Store(def, scopeName, refName, obj.ID)
}

func (e *Engine) fail(row *Row, err error) {
	row.Outcome = OutcomeFailed
	row.Detail = classifyFailure(err)
}

// classifyFailure renders a per-record failure for the report.
func classifyFailure(err error) string {
	switch {
	case IsDependencyError(err):
		return err.Error()
	case netbox.IsTransient(err):
		return "transient error, retries exhausted: " + err.Error()
	default:
		return err.Error()
	}
}
