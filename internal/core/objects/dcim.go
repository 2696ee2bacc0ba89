package objects

import (
	"context"

	"github.com/richbibby/netbox-population-tool/internal/core"
)

func init() {
	core.Register(&core.ObjectType{
		Key:            "dcim_manufacturer",
		Endpoint:       "dcim/manufacturers",
		Label:          "manufacturer",
		Tier:           core.TierFoundation,
		Foundational:   true,
		IsManufacturer: true,
		NaturalKey:     []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "description"},
		},
	})

	core.Register(&core.ObjectType{
		Key:             "dcim_platform",
		Endpoint:        "dcim/platforms",
		Label:           "platform",
		Tier:            core.TierFoundation,
		IsPlatform:      true,
		ManufacturerRef: "manufacturer",
		NaturalKey:      []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "manufacturer", Type: "dcim_manufacturer"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "dcim_region",
		Endpoint:   "dcim/regions",
		Label:      "region",
		Tier:       core.TierOrganization,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "parent", Type: "dcim_region"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "dcim_sitegroup",
		Endpoint:   "dcim/site-groups",
		Label:      "site group",
		Tier:       core.TierOrganization,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "parent", Type: "dcim_sitegroup"},
		},
	})

	core.Register(&core.ObjectType{
		Key:          "dcim_site",
		Endpoint:     "dcim/sites",
		Label:        "site",
		Tier:         core.TierOrganization,
		Foundational: true,
		NaturalKey:   []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "status", Default: "active"},
			{Name: "description"},
			{Name: "facility"},
			{Name: "physical_address"},
		},
		Refs: []core.RefSpec{
			{Field: "region", Type: "dcim_region"},
			{Field: "group", Type: "dcim_sitegroup"},
			{Field: "tenant", Type: "tenancy_tenant"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "dcim_location",
		Endpoint:   "dcim/locations",
		Label:      "location",
		Tier:       core.TierOrganization,
		NaturalKey: []string{"name"},
		Scope:      &core.RefSpec{Field: "site", Type: "dcim_site", Required: true},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "status", Default: "active"},
			{Name: "description"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "dcim_rackrole",
		Endpoint:   "dcim/rack-roles",
		Label:      "rack role",
		Tier:       core.TierOrganization,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "color", Default: "9e9e9e"},
			{Name: "description"},
		},
	})

	core.Register(&core.ObjectType{
		Key:          "dcim_devicerole",
		Endpoint:     "dcim/device-roles",
		Label:        "device role",
		Tier:         core.TierOrganization,
		Foundational: true,
		NaturalKey:   []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "color", Default: "9e9e9e"},
			{Name: "vm_role"},
			{Name: "description"},
		},
	})

	core.Register(&core.ObjectType{
		Key:             "dcim_devicetype",
		Endpoint:        "dcim/device-types",
		Label:           "device type",
		Tier:            core.TierTemplates,
		Foundational:    true,
		NaturalKey:      []string{"model"},
		RefField:        "slug",
		ManufacturerRef: "manufacturer",
		Fields: []core.FieldSpec{
			{Name: "model"},
			{Name: "slug"},
			{Name: "u_height", Default: 1},
			{Name: "is_full_depth", Default: false},
			{Name: "part_number"},
			{Name: "airflow"},
		},
		Refs: []core.RefSpec{
			{Field: "manufacturer", Type: "dcim_manufacturer", Required: true},
		},
	})

	core.Register(&core.ObjectType{
		Key:             "dcim_moduletype",
		Endpoint:        "dcim/module-types",
		Label:           "module type",
		Tier:            core.TierTemplates,
		NaturalKey:      []string{"model"},
		ManufacturerRef: "manufacturer",
		Fields: []core.FieldSpec{
			{Name: "model"},
			{Name: "part_number"},
		},
		Refs: []core.RefSpec{
			{Field: "manufacturer", Type: "dcim_manufacturer", Required: true},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "dcim_rack",
		Endpoint:   "dcim/racks",
		Label:      "rack",
		Tier:       core.TierInfrastructure,
		NaturalKey: []string{"name"},
		Scope:      &core.RefSpec{Field: "site", Type: "dcim_site", Required: true},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "status", Default: "active"},
			{Name: "u_height"},
			{Name: "serial"},
		},
		// Locations are omitted; their names are ambiguous across sites
		// in the extracted data.
		Refs: []core.RefSpec{
			{Field: "role", Type: "dcim_rackrole"},
			{Field: "tenant", Type: "tenancy_tenant"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "dcim_powerpanel",
		Endpoint:   "dcim/power-panels",
		Label:      "power panel",
		Tier:       core.TierInfrastructure,
		NaturalKey: []string{"name"},
		Scope:      &core.RefSpec{Field: "site", Type: "dcim_site", Required: true},
		Fields: []core.FieldSpec{
			{Name: "name"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "dcim_powerfeed",
		Endpoint:   "dcim/power-feeds",
		Label:      "power feed",
		Tier:       core.TierInfrastructure,
		NaturalKey: []string{"name"},
		Scope:      &core.RefSpec{Field: "power_panel", Type: "dcim_powerpanel", Required: true},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "status", Default: "active"},
			{Name: "type"},
			{Name: "supply"},
			{Name: "phase"},
			{Name: "voltage"},
			{Name: "amperage"},
		},
	})

	core.Register(&core.ObjectType{
		Key:          "dcim_device",
		Endpoint:     "dcim/devices",
		Label:        "device",
		Tier:         core.TierDevices,
		Foundational: true,
		NaturalKey:   []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "status", Default: "active"},
			{Name: "position"},
			{Name: "face"},
			{Name: "serial"},
			{Name: "asset_tag"},
			{Name: "airflow"},
		},
		Refs: []core.RefSpec{
			{Field: "device_type", Type: "dcim_devicetype", Required: true},
			{Field: "role", Type: "dcim_devicerole", Required: true},
			{Field: "site", Type: "dcim_site", Required: true},
			{Field: "platform", Type: "dcim_platform"},
			{Field: "tenant", Type: "tenancy_tenant"},
		},
		BuildPayload: devicePayload,
	})

	registerComponent("dcim_interface", "dcim/interfaces", "interface", []core.FieldSpec{
		{Name: "name"},
		{Name: "type", Default: "1000base-t"},
		{Name: "enabled"},
		{Name: "mtu"},
		{Name: "mode"},
		{Name: "description"},
	})

	registerComponent("dcim_consoleport", "dcim/console-ports", "console port", []core.FieldSpec{
		{Name: "name"},
		{Name: "type", Default: "rj-45"},
	})

	registerComponent("dcim_consoleserverport", "dcim/console-server-ports", "console server port", []core.FieldSpec{
		{Name: "name"},
		{Name: "type", Default: "rj-45"},
	})

	registerComponent("dcim_powerport", "dcim/power-ports", "power port", []core.FieldSpec{
		{Name: "name"},
		{Name: "type"},
		{Name: "maximum_draw"},
		{Name: "allocated_draw"},
	})

	registerComponent("dcim_poweroutlet", "dcim/power-outlets", "power outlet", []core.FieldSpec{
		{Name: "name"},
		{Name: "type"},
	})

	registerComponent("dcim_rearport", "dcim/rear-ports", "rear port", []core.FieldSpec{
		{Name: "name"},
		{Name: "type", Default: "8p8c"},
		{Name: "positions", Default: 1},
	})

	// Front ports reference a rear port on the same device, so they come
	// after rear ports and carry a custom builder for that lookup.
	core.Register(&core.ObjectType{
		Key:        "dcim_frontport",
		Endpoint:   "dcim/front-ports",
		Label:      "front port",
		Tier:       core.TierComponents,
		NaturalKey: []string{"name"},
		Scope:      &core.RefSpec{Field: "device", Type: "dcim_device", Required: true},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "type", Default: "8p8c"},
			{Name: "rear_port_position", Default: 1},
		},
		BuildPayload: frontPortPayload,
	})

	registerComponent("dcim_modulebay", "dcim/module-bays", "module bay", []core.FieldSpec{
		{Name: "name"},
		{Name: "position"},
	})

	core.Register(&core.ObjectType{
		Key:          "dcim_cable",
		Endpoint:     "dcim/cables",
		Label:        "cable",
		Tier:         core.TierConnectivity,
		NaturalKey:   []string{"label"},
		NoPrecheck:   true,
		BuildPayload: cablePayload,
	})
}

// registerComponent declares a device-scoped component type. All of them
// share the same shape: unique per device, referenced by name, created
// in the components tier.
func registerComponent(key, endpoint, label string, fields []core.FieldSpec) {
	core.Register(&core.ObjectType{
		Key:        key,
		Endpoint:   endpoint,
		Label:      label,
		Tier:       core.TierComponents,
		NaturalKey: []string{"name"},
		Scope:      &core.RefSpec{Field: "device", Type: "dcim_device", Required: true},
		Fields:     fields,
	})
}

// devicePayload extends the generic mapping with the rack reference,
// which is only unique within the device's site.
func devicePayload(ctx context.Context, def *core.ObjectType, rec core.Record, rz *core.Resolver) (map[string]any, error) {
	p, err := core.GenericPayload(ctx, def, rec, rz)
	if err != nil {
		return nil, err
	}

	if rackID, ok := rec.Int("rack"); ok {
		rackName, ok := rz.NameOf("dcim_rack", rackID)
		if !ok {
			return p, nil
		}
		siteID, _ := rec.Int("site")
		siteName, ok := rz.NameOf("dcim_site", siteID)
		if !ok {
			return p, nil
		}
		if id, err := rz.ScopedRemoteID(ctx, "dcim_rack", siteName, rackName); err == nil {
			p["rack"] = id
		}
	}

	return p, nil
}

// frontPortPayload adds the rear port reference, scoped to the same
// device as the front port itself.
func frontPortPayload(ctx context.Context, def *core.ObjectType, rec core.Record, rz *core.Resolver) (map[string]any, error) {
	p, err := core.GenericPayload(ctx, def, rec, rz)
	if err != nil {
		return nil, err
	}

	rearID, ok := rec.Int("rear_port")
	if !ok {
		return nil, &core.DependencyError{RefType: "dcim_rearport", Reason: "record has no rear_port reference"}
	}
	rear := rz.RecordByID("dcim_rearport", rearID)
	if rear == nil {
		return nil, &core.DependencyError{RefType: "dcim_rearport", Reason: "rear port not present in source data"}
	}

	deviceID, _ := rec.Int("device")
	deviceName, ok := rz.NameOf("dcim_device", deviceID)
	if !ok {
		return nil, &core.DependencyError{RefType: "dcim_device", Reason: "source ID not in id_mappings"}
	}

	id, err := rz.ScopedRemoteID(ctx, "dcim_rearport", deviceName, rear.Str("name"))
	if err != nil {
		return nil, err
	}
	p["rear_port"] = id
	return p, nil
}

// cableTerminationTypes maps the content-type strings found in cable
// termination records to registered component types.
var cableTerminationTypes = map[string]string{
	"dcim.interface":         "dcim_interface",
	"dcim.consoleport":       "dcim_consoleport",
	"dcim.consoleserverport": "dcim_consoleserverport",
	"dcim.powerport":         "dcim_powerport",
	"dcim.poweroutlet":       "dcim_poweroutlet",
	"dcim.frontport":         "dcim_frontport",
	"dcim.rearport":          "dcim_rearport",
}

// cablePayload resolves both termination lists. A cable with either side
// fully unresolvable is skipped rather than failed: its endpoints were
// filtered out or never extracted.
func cablePayload(ctx context.Context, def *core.ObjectType, rec core.Record, rz *core.Resolver) (map[string]any, error) {
	aTerms, err := resolveTerminations(ctx, rec, "a_terminations", rz)
	if err != nil {
		return nil, err
	}
	bTerms, err := resolveTerminations(ctx, rec, "b_terminations", rz)
	if err != nil {
		return nil, err
	}
	if len(aTerms) == 0 || len(bTerms) == 0 {
		return nil, &core.SkipError{Reason: "termination endpoints unavailable in target"}
	}

	p := map[string]any{
		"a_terminations": aTerms,
		"b_terminations": bTerms,
		"status":         "connected",
	}
	if rec.Has("status") {
		p["status"] = rec["status"]
	}
	for _, f := range []string{"type", "label", "color", "length", "length_unit", "description"} {
		if rec.Has(f) {
			p[f] = rec[f]
		}
	}
	if id, err := resolveOptionalRef(ctx, rec, "tenant", "tenancy_tenant", rz); err == nil && id != 0 {
		p["tenant"] = id
	}
	return p, nil
}

// resolveTerminations maps one side's termination list to target object
// references, dropping entries that cannot be resolved.
func resolveTerminations(ctx context.Context, rec core.Record, field string, rz *core.Resolver) ([]map[string]any, error) {
	raw, ok := rec[field].([]any)
	if !ok {
		return nil, nil
	}

	var out []map[string]any
	for _, item := range raw {
		term, ok := item.(map[string]any)
		if !ok {
			continue
		}
		objType, _ := term["object_type"].(string)
		typeKey, ok := cableTerminationTypes[objType]
		if !ok {
			continue
		}
		objID, ok := core.Record(term).Int("object_id")
		if !ok {
			continue
		}

		comp := rz.RecordByID(typeKey, objID)
		if comp == nil {
			continue
		}
		deviceID, ok := comp.Int("device")
		if !ok {
			continue
		}
		deviceName, ok := rz.NameOf("dcim_device", deviceID)
		if !ok {
			continue
		}
		id, err := rz.ScopedRemoteID(ctx, typeKey, deviceName, comp.Str("name"))
		if err != nil {
			continue
		}
		out = append(out, map[string]any{
			"object_type": objType,
			"object_id":   id,
		})
	}
	return out, nil
}

// resolveOptionalRef resolves a single optional reference field for
// custom builders. Returns 0 when absent or unresolvable.
func resolveOptionalRef(ctx context.Context, rec core.Record, field, typeKey string, rz *core.Resolver) (int64, error) {
	sourceID, ok := rec.Int(field)
	if !ok {
		return 0, nil
	}
	name, ok := rz.NameOf(typeKey, sourceID)
	if !ok {
		return 0, nil
	}
	id, err := rz.RemoteID(ctx, typeKey, name)
	if err != nil {
		return 0, nil
	}
	return id, nil
}
