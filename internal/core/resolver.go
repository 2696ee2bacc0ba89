package core

import (
	"context"
	"net/url"

	"github.com/richbibby/netbox-population-tool/internal/netbox"
)

// Resolver is the in-memory index from (object type, natural key) to
// remote identifier. It is populated incrementally as the creator
// progresses; a cache miss falls back to a live API lookup, which covers
// objects that already existed in the target before this run.
//
// In dry-run mode, records that would be created get negative placeholder
// IDs so that dependent records downstream still resolve.
type Resolver struct {
	ds          *Dataset
	client      *netbox.Client
	ids         map[string]int64
	placeholder int64
}

// NewResolver creates an empty resolver over the dataset.
func NewResolver(ds *Dataset, client *netbox.Client) *Resolver {
	return &Resolver{
		ds:     ds,
		client: client,
		ids:    make(map[string]int64),
	}
}

func cacheKey(typeKey, scopeName, name string) string {
	if scopeName != "" {
		return typeKey + "\x00" + scopeName + "\x00" + name
	}
	return typeKey + "\x00" + name
}

// Store records a resolved remote ID.
func (r *Resolver) Store(def *ObjectType, scopeName, name string, id int64) {
	r.ids[cacheKey(def.Key, scopeName, name)] = id
}

// Predict stores and returns a placeholder ID for a record that a dry run
// would create.
func (r *Resolver) Predict(def *ObjectType, scopeName, name string) int64 {
	r.placeholder--
	id := r.placeholder
	r.ids[cacheKey(def.Key, scopeName, name)] = id
	return id
}

// NameOf translates a source ID into the natural key other records
// reference it by.
func (r *Resolver) NameOf(typeKey string, sourceID int64) (string, bool) {
	return r.ds.NameOf(typeKey, sourceID)
}

// RecordByID returns the loaded source record with the given ID, or nil.
// Used by custom payload builders that need to chase polymorphic
// references through the source data.
func (r *Resolver) RecordByID(typeKey string, sourceID int64) Record {
	if row := r.ds.RowByID(typeKey, sourceID); row != nil {
		return row.Rec
	}
	return nil
}

// RowByID returns the loaded row with the given ID, or nil.
func (r *Resolver) RowByID(typeKey string, sourceID int64) *Row {
	return r.ds.RowByID(typeKey, sourceID)
}

// RemoteID resolves a globally scoped natural key to a remote ID: cache
// first, then a live lookup against the target.
func (r *Resolver) RemoteID(ctx context.Context, typeKey, name string) (int64, error) {
	return r.lookup(ctx, typeKey, "", name)
}

// ScopedRemoteID resolves a natural key that is only unique within a
// parent scope, such as an interface name within its device.
func (r *Resolver) ScopedRemoteID(ctx context.Context, typeKey, scopeName, name string) (int64, error) {
	return r.lookup(ctx, typeKey, scopeName, name)
}

func (r *Resolver) lookup(ctx context.Context, typeKey, scopeName, name string) (int64, error) {
	if id, ok := r.ids[cacheKey(typeKey, scopeName, name)]; ok {
		return id, nil
	}

	def, ok := Get(typeKey)
	if !ok {
		return 0, &DependencyError{RefType: typeKey, Name: name, Reason: "unknown object type"}
	}

	params := url.Values{}
	params.Set(def.refParam(), name)
	if scopeName != "" && def.Scope != nil {
		params.Set(def.Scope.param(), scopeName)
	}

	obj, err := r.client.Find(ctx, def.Endpoint, params)
	if err != nil {
		return 0, &DependencyError{RefType: typeKey, Name: name, Reason: err.Error()}
	}
	if obj == nil {
		return 0, &DependencyError{RefType: typeKey, Name: name, Reason: "not found in target"}
	}

	r.ids[cacheKey(typeKey, scopeName, name)] = obj.ID
	return obj.ID, nil
}
