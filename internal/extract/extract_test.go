package extract

import (
	"context"
	"testing"

	"github.com/richbibby/netbox-population-tool/internal/core"
)

func TestNewRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

func TestNewRejectsMalformedDSN(t *testing.T) {
	if _, err := New(context.Background(), "not a dsn ::"); err == nil {
		t.Fatal("expected error for malformed DSN")
	}
}

func TestStripMetadata(t *testing.T) {
	rec := core.Record{
		"id":           float64(1),
		"name":         "dc-east",
		"url":          "http://source/api/dcim/sites/1/",
		"display":      "dc-east",
		"display_url":  "http://source/dcim/sites/1/",
		"created":      "2025-01-01",
		"last_updated": "2025-06-01",
	}
	StripMetadata(rec)

	if len(rec) != 2 {
		t.Errorf("record has %d fields after strip, want 2: %v", len(rec), rec)
	}
	if rec.Str("name") != "dc-east" {
		t.Errorf("name = %q", rec.Str("name"))
	}
}
