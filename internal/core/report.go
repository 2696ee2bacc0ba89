package core

import (
	"fmt"
	"io"
	"time"
)

const rule = "======================================================================"

// TypeCounts aggregates outcomes for one object type.
type TypeCounts struct {
	Created  int
	Exists   int
	Filtered int
	Failed   int
	Skipped  int
}

// RecordError captures a failed record for the summary.
type RecordError struct {
	Type   string
	Key    string
	Detail string
}

// RunSummary aggregates a whole run.
type RunSummary struct {
	RunID    string
	DryRun   bool
	Created  int
	Exists   int
	Filtered int
	Failed   int
	Skipped  int
	PerType  map[string]*TypeCounts
	Errors   []RecordError
	Duration time.Duration
}

func newRunSummary(runID string, dryRun bool) *RunSummary {
	return &RunSummary{
		RunID:   runID,
		DryRun:  dryRun,
		PerType: make(map[string]*TypeCounts),
	}
}

func (s *RunSummary) add(def *ObjectType, row *Row) {
	counts := s.PerType[def.Key]
	if counts == nil {
		counts = &TypeCounts{}
		s.PerType[def.Key] = counts
	}

	switch row.Outcome {
	case OutcomeCreated:
		s.Created++
		counts.Created++
	case OutcomeExists:
		s.Exists++
		counts.Exists++
	case OutcomeFiltered:
		s.Filtered++
		counts.Filtered++
	case OutcomeSkipped:
		s.Skipped++
		counts.Skipped++
	case OutcomeFailed:
		s.Failed++
		counts.Failed++
		s.Errors = append(s.Errors, RecordError{
			Type:   def.Key,
			Key:    def.KeyValue(row.Rec),
			Detail: row.Detail,
		})
	}
}

// Printer writes the human-readable run report. Logs go to stderr via
// slog; the report is the tool's stdout contract.
type Printer struct {
	w      io.Writer
	dryRun bool
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Banner prints the run header.
func (p *Printer) Banner(targetURL, dataDir string, dryRun bool) {
	p.dryRun = dryRun
	mode := "LIVE"
	if dryRun {
		mode = "DRY RUN"
	}
	fmt.Fprintln(p.w, rule)
	fmt.Fprintln(p.w, "NetBox Population")
	fmt.Fprintln(p.w, rule)
	fmt.Fprintf(p.w, "Target: %s\n", targetURL)
	fmt.Fprintf(p.w, "Source: %s\n", dataDir)
	fmt.Fprintf(p.w, "Mode: %s\n", mode)
	fmt.Fprintln(p.w, rule)
}

// TierHeader prints a tier banner.
func (p *Printer) TierHeader(t Tier) {
	fmt.Fprintf(p.w, "\n%s\nTIER %d: %s\n%s\n", rule, int(t), t, rule)
}

// TypeHeader prints the per-type line with the record count.
func (p *Printer) TypeHeader(def *ObjectType, n int) {
	fmt.Fprintf(p.w, "\nCreating %s... (%d total)\n", def.Label, n)
}

// SkipType prints the warning for a type that is never created.
func (p *Printer) SkipType(def *ObjectType) {
	fmt.Fprintf(p.w, "  ⚠ Skipping %s (%s)\n", def.Label, def.SkipReason)
}

// Line prints one record's outcome.
func (p *Printer) Line(def *ObjectType, row *Row) {
	key := def.KeyValue(row.Rec)
	switch row.Outcome {
	case OutcomeCreated:
		if p.dryRun {
			fmt.Fprintf(p.w, "  [DRY RUN] Would create %s: %s\n", def.Label, key)
		} else {
			fmt.Fprintf(p.w, "  ✓ Created %s: %s\n", def.Label, key)
		}
	case OutcomeExists:
		fmt.Fprintf(p.w, "  ⊙ Exists %s: %s\n", def.Label, key)
	case OutcomeFiltered:
		fmt.Fprintf(p.w, "  ⊘ Filtered %s: %s (%s)\n", def.Label, key, row.Detail)
	case OutcomeSkipped:
		fmt.Fprintf(p.w, "  ⚠ Skipped %s: %s (%s)\n", def.Label, key, row.Detail)
	case OutcomeFailed:
		fmt.Fprintf(p.w, "  ✗ Failed %s: %s - %s\n", def.Label, key, row.Detail)
	}
}

// Summary prints the final aggregate counts and the first error details.
func (p *Printer) Summary(s *RunSummary) {
	fmt.Fprintf(p.w, "\n%s\nSUMMARY (run %s)\n%s\n", rule, s.RunID, rule)
	created := "Created"
	if s.DryRun {
		created = "Would create"
	}
	fmt.Fprintf(p.w, "✓ %s: %d\n", created, s.Created)
	fmt.Fprintf(p.w, "⊙ Exists:   %d\n", s.Exists)
	fmt.Fprintf(p.w, "⊘ Filtered: %d\n", s.Filtered)
	fmt.Fprintf(p.w, "✗ Failed:   %d\n", s.Failed)
	if s.Skipped > 0 {
		fmt.Fprintf(p.w, "⚠ Skipped:  %d\n", s.Skipped)
	}
	fmt.Fprintln(p.w, rule)

	if len(s.Errors) > 0 {
		fmt.Fprintln(p.w, "\nErrors:")
		max := len(s.Errors)
		if max > 10 {
			max = 10
		}
		for _, e := range s.Errors[:max] {
			detail := e.Detail
			if len(detail) > 160 {
				detail = detail[:160] + "..."
			}
			fmt.Fprintf(p.w, "  %s: %s - %s\n", e.Type, e.Key, detail)
		}
		if len(s.Errors) > 10 {
			fmt.Fprintf(p.w, "  ... and %d more errors\n", len(s.Errors)-10)
		}
	}
}
