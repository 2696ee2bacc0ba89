package core

import (
	"context"
)

// buildPayload dispatches to the type's custom builder when one is
// declared, otherwise applies the generic field/ref mapping.
func (t *ObjectType) buildPayload(ctx context.Context, rec Record, rz *Resolver) (map[string]any, error) {
	if t.BuildPayload != nil {
		return t.BuildPayload(ctx, t, rec, rz)
	}
	return GenericPayload(ctx, t, rec, rz)
}

// GenericPayload builds a create payload declaratively: literal fields are
// copied (or defaulted), and each reference's source ID is translated to a
// natural key and then to the remote identifier. A required reference that
// cannot be resolved fails the record; optional ones are omitted, matching
// the source data's nullable foreign keys.
//
// Custom builders call this first and then adjust the result.
func GenericPayload(ctx context.Context, def *ObjectType, rec Record, rz *Resolver) (map[string]any, error) {
	p := make(map[string]any, len(def.Fields)+len(def.Refs)+1)

	for _, f := range def.Fields {
		if rec.Has(f.Name) {
			p[f.Name] = rec[f.Name]
		} else if f.Default != nil {
			p[f.Name] = f.Default
		}
	}

	for _, ref := range def.AllRefs() {
		id, err := resolveRef(ctx, ref, rec, rz)
		if err != nil {
			return nil, err
		}
		if id != 0 {
			p[ref.payloadKey()] = id
		}
	}

	return p, nil
}

// resolveRef resolves one reference to a remote ID. Returns 0 without an
// error when an optional reference is absent or unresolvable.
func resolveRef(ctx context.Context, ref RefSpec, rec Record, rz *Resolver) (int64, error) {
	sourceID, ok := rec.Int(ref.Field)
	if !ok {
		if ref.Required {
			return 0, &DependencyError{RefType: ref.Type, Reason: "record has no " + ref.Field + " reference"}
		}
		return 0, nil
	}

	name, ok := rz.NameOf(ref.Type, sourceID)
	if !ok {
		if ref.Required {
			return 0, &DependencyError{RefType: ref.Type, Reason: "source ID not in id_mappings"}
		}
		return 0, nil
	}

	id, err := rz.RemoteID(ctx, ref.Type, name)
	if err != nil {
		if ref.Required {
			return 0, err
		}
		return 0, nil
	}
	return id, nil
}
