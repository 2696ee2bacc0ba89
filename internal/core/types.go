package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Record is one object decoded from an extracted JSON file.
// Field names and values mirror the source NetBox export.
type Record map[string]any

// SourceID returns the record's numeric ID in the source system.
func (r Record) SourceID() int64 {
	id, _ := r.Int("id")
	return id
}

// Str returns the string value of a field, or "" if absent or not a string.
func (r Record) Str(field string) string {
	if v, ok := r[field].(string); ok {
		return v
	}
	return ""
}

// Int returns a field as int64. JSON numbers decode as float64, so both
// representations are accepted.
func (r Record) Int(field string) (int64, bool) {
	switch v := r[field].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Has reports whether a field is present with a non-empty value.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// Outcome is the per-record result of a population run.
type Outcome string

const (
	OutcomePending  Outcome = ""
	OutcomeCreated  Outcome = "created"
	OutcomeExists   Outcome = "exists"
	OutcomeFiltered Outcome = "filtered"
	OutcomeFailed   Outcome = "failed"
	OutcomeSkipped  Outcome = "skipped"
)

// Row pairs a record with its run state.
type Row struct {
	Rec      Record
	Outcome  Outcome
	Detail   string // failure or skip reason, shown in the report
	RemoteID int64  // remote identifier once created or found
}

// Tier groups object types whose creation must wait for all earlier tiers.
type Tier int

const (
	TierFoundation Tier = iota
	TierOrganization
	TierTemplates
	TierInfrastructure
	TierDevices
	TierComponents
	TierConnectivity
	TierServices
)

var tierNames = map[Tier]string{
	TierFoundation:     "Foundation",
	TierOrganization:   "Organization",
	TierTemplates:      "Templates",
	TierInfrastructure: "Infrastructure",
	TierDevices:        "Devices and VMs",
	TierComponents:     "Components",
	TierConnectivity:   "Connectivity",
	TierServices:       "Services",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// FieldSpec copies a record field into the create payload.
type FieldSpec struct {
	Name    string // record field and payload key
	Default any    // used when the record omits the field; nil means omit
}

// RefSpec declares a foreign-key-by-name reference to another object type.
// The record holds the referenced object's source ID; the pipeline
// translates it to a natural key via id_mappings and then to a remote ID
// via the resolver.
type RefSpec struct {
	Field      string // record field holding the source ID
	Type       string // referenced object type key, e.g. "dcim_site"
	Param      string // query param for scoped lookups (defaults to Field)
	PayloadKey string // payload key (defaults to Field)
	Required   bool   // missing or unresolved → record fails
}

func (r RefSpec) param() string {
	if r.Param != "" {
		return r.Param
	}
	return r.Field
}

func (r RefSpec) payloadKey() string {
	if r.PayloadKey != "" {
		return r.PayloadKey
	}
	return r.Field
}

// PolyRef declares a generic (content-type + ID) reference, such as an IP
// address's assigned object. Types maps the content-type string in the
// data to the registered object type key.
type PolyRef struct {
	TypeField string
	IDField   string
	Types     map[string]string
}

// PayloadFunc builds the API create payload for one record. Custom
// builders are used where the generic field/ref mapping is not enough.
type PayloadFunc func(ctx context.Context, def *ObjectType, rec Record, rz *Resolver) (map[string]any, error)

// ObjectType describes one category of records: its data file, its API
// endpoint, its position in the tier order, and how its records are
// filtered, looked up and created.
type ObjectType struct {
	// Key is the data file stem and id_mappings table name, e.g. "dcim_site".
	Key string

	// Endpoint is the collection path under /api/, e.g. "dcim/sites".
	Endpoint string

	// Label is the human name used in the report.
	Label string

	Tier Tier

	// Foundational types abort the run when their data file is missing;
	// others are processed with zero records.
	Foundational bool

	// NaturalKey lists the record field(s) identifying an object,
	// usually ["name"]. The first field is also the display key.
	NaturalKey []string

	// RefField is the record field whose value other records use to
	// reference this type (matches what id_mappings stores). Defaults
	// to the first natural-key field. Device types are referenced by
	// slug, for example, while their natural key is the model.
	RefField string

	// Scope is the ref within which the natural key is unique (an
	// interface's name is only unique per device). Scoped existence
	// checks add the parent's natural key as a query param.
	Scope *RefSpec

	// IsManufacturer / IsPlatform mark the two types the filter rules
	// match directly by name.
	IsManufacturer bool
	IsPlatform     bool

	// ManufacturerRef names the record field referencing a manufacturer,
	// for types excluded when their manufacturer is excluded.
	ManufacturerRef string

	Fields []FieldSpec
	Refs   []RefSpec
	Poly   []PolyRef

	// BuildPayload overrides the generic payload construction.
	BuildPayload PayloadFunc

	// SkipReason marks a type that is loaded and counted but never
	// created (circuit terminations).
	SkipReason string

	// NoPrecheck disables the existence lookup; creation relies on
	// duplicate-error classification instead (cables, services).
	NoPrecheck bool

	// order preserves declaration order within a tier; set by Register.
	order int
}

// KeyValue returns the record's natural key for display and lookups.
// Composite keys are joined with "/".
func (t *ObjectType) KeyValue(rec Record) string {
	parts := make([]string, 0, len(t.NaturalKey))
	for _, f := range t.NaturalKey {
		if s := rec.Str(f); s != "" {
			parts = append(parts, s)
		} else if n, ok := rec.Int(f); ok {
			parts = append(parts, strconv.FormatInt(n, 10))
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s-%d", t.Key, rec.SourceID())
	}
	return strings.Join(parts, "/")
}

// RefName returns the value other records use to reference this record:
// the RefField value when declared, the natural key otherwise.
func (t *ObjectType) RefName(rec Record) string {
	if t.RefField != "" {
		if s := rec.Str(t.RefField); s != "" {
			return s
		}
	}
	return t.KeyValue(rec)
}

// refParam is the query param used to look this type up by RefName.
func (t *ObjectType) refParam() string {
	if t.RefField != "" {
		return t.RefField
	}
	return t.NaturalKey[0]
}

// AllRefs returns Scope (if any) followed by Refs.
func (t *ObjectType) AllRefs() []RefSpec {
	if t.Scope == nil {
		return t.Refs
	}
	refs := make([]RefSpec, 0, len(t.Refs)+1)
	refs = append(refs, *t.Scope)
	refs = append(refs, t.Refs...)
	return refs
}
