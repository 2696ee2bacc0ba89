package objects

import (
	"context"

	"github.com/richbibby/netbox-population-tool/internal/core"
)

func init() {
	core.Register(&core.ObjectType{
		Key:        "ipam_rir",
		Endpoint:   "ipam/rirs",
		Label:      "RIR",
		Tier:       core.TierFoundation,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "is_private"},
			{Name: "description"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "ipam_role",
		Endpoint:   "ipam/roles",
		Label:      "IPAM role",
		Tier:       core.TierTemplates,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "weight"},
			{Name: "description"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "ipam_vlangroup",
		Endpoint:   "ipam/vlan-groups",
		Label:      "VLAN group",
		Tier:       core.TierTemplates,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "description"},
		},
		BuildPayload: vlanGroupPayload,
	})

	core.Register(&core.ObjectType{
		Key:        "ipam_vlan",
		Endpoint:   "ipam/vlans",
		Label:      "VLAN",
		Tier:       core.TierInfrastructure,
		NaturalKey: []string{"name", "vid"},
		RefField:   "name",
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "vid"},
			{Name: "status", Default: "active"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "site", Type: "dcim_site"},
			{Field: "group", Type: "ipam_vlangroup"},
			{Field: "role", Type: "ipam_role"},
			{Field: "tenant", Type: "tenancy_tenant"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "ipam_aggregate",
		Endpoint:   "ipam/aggregates",
		Label:      "aggregate",
		Tier:       core.TierConnectivity,
		NaturalKey: []string{"prefix"},
		Fields: []core.FieldSpec{
			{Name: "prefix"},
			{Name: "date_added"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "rir", Type: "ipam_rir", Required: true},
			{Field: "tenant", Type: "tenancy_tenant"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "ipam_prefix",
		Endpoint:   "ipam/prefixes",
		Label:      "prefix",
		Tier:       core.TierConnectivity,
		NaturalKey: []string{"prefix"},
		Fields: []core.FieldSpec{
			{Name: "prefix"},
			{Name: "status", Default: "active"},
			{Name: "is_pool"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "site", Type: "dcim_site"},
			{Field: "vlan", Type: "ipam_vlan"},
			{Field: "role", Type: "ipam_role"},
			{Field: "tenant", Type: "tenancy_tenant"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "ipam_ipaddress",
		Endpoint:   "ipam/ip-addresses",
		Label:      "IP address",
		Tier:       core.TierConnectivity,
		NaturalKey: []string{"address"},
		Fields: []core.FieldSpec{
			{Name: "address"},
			{Name: "status", Default: "active"},
			{Name: "dns_name"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "tenant", Type: "tenancy_tenant"},
		},
		Poly: []core.PolyRef{
			{
				TypeField: "assigned_object_type",
				IDField:   "assigned_object_id",
				Types: map[string]string{
					"dcim.interface":             "dcim_interface",
					"virtualization.vminterface": "virtualization_vminterface",
				},
			},
		},
		BuildPayload: ipAddressPayload,
	})

	core.Register(&core.ObjectType{
		Key:        "ipam_service",
		Endpoint:   "ipam/services",
		Label:      "service",
		Tier:       core.TierServices,
		NaturalKey: []string{"name"},
		NoPrecheck: true,
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "protocol", Default: "tcp"},
			{Name: "ports"},
			{Name: "description"},
		},
		BuildPayload: servicePayload,
	})
}

// vlanGroupPayload maps a source site reference onto the generic
// scope_type/scope_id pair the API expects.
func vlanGroupPayload(ctx context.Context, def *core.ObjectType, rec core.Record, rz *core.Resolver) (map[string]any, error) {
	p, err := core.GenericPayload(ctx, def, rec, rz)
	if err != nil {
		return nil, err
	}

	if id, err := resolveOptionalRef(ctx, rec, "site", "dcim_site", rz); err == nil && id != 0 {
		p["scope_type"] = "dcim.site"
		p["scope_id"] = id
	}
	return p, nil
}

// ipAddressPayload resolves the assigned interface, if any, through the
// source component record to its remote ID. An unresolvable assignment
// drops the assignment but still creates the address.
func ipAddressPayload(ctx context.Context, def *core.ObjectType, rec core.Record, rz *core.Resolver) (map[string]any, error) {
	p, err := core.GenericPayload(ctx, def, rec, rz)
	if err != nil {
		return nil, err
	}

	objType := rec.Str("assigned_object_type")
	objID, ok := rec.Int("assigned_object_id")
	if objType == "" || !ok {
		return p, nil
	}

	var typeKey, parentField, parentType string
	switch objType {
	case "dcim.interface":
		typeKey, parentField, parentType = "dcim_interface", "device", "dcim_device"
	case "virtualization.vminterface":
		typeKey, parentField, parentType = "virtualization_vminterface", "virtual_machine", "virtualization_virtualmachine"
	default:
		return p, nil
	}

	intf := rz.RecordByID(typeKey, objID)
	if intf == nil {
		return p, nil
	}
	parentID, ok := intf.Int(parentField)
	if !ok {
		return p, nil
	}
	parentName, ok := rz.NameOf(parentType, parentID)
	if !ok {
		return p, nil
	}
	id, err := rz.ScopedRemoteID(ctx, typeKey, parentName, intf.Str("name"))
	if err != nil {
		return p, nil
	}

	p["assigned_object_type"] = objType
	p["assigned_object_id"] = id
	return p, nil
}

// servicePayload attaches the service to its device or virtual machine
// parent through the generic parent_object pair. A service with neither
// parent resolvable is skipped.
func servicePayload(ctx context.Context, def *core.ObjectType, rec core.Record, rz *core.Resolver) (map[string]any, error) {
	p, err := core.GenericPayload(ctx, def, rec, rz)
	if err != nil {
		return nil, err
	}

	if id, err := resolveOptionalRef(ctx, rec, "device", "dcim_device", rz); err == nil && id != 0 {
		p["parent_object_type"] = "dcim.device"
		p["parent_object_id"] = id
		return p, nil
	}
	if id, err := resolveOptionalRef(ctx, rec, "virtual_machine", "virtualization_virtualmachine", rz); err == nil && id != 0 {
		p["parent_object_type"] = "virtualization.virtualmachine"
		p["parent_object_id"] = id
		return p, nil
	}

	return nil, &core.SkipError{Reason: "parent device or VM unavailable in target"}
}
