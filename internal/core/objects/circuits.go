package objects

import "github.com/richbibby/netbox-population-tool/internal/core"

func init() {
	core.Register(&core.ObjectType{
		Key:        "circuits_provider",
		Endpoint:   "circuits/providers",
		Label:      "provider",
		Tier:       core.TierFoundation,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "description"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "circuits_circuittype",
		Endpoint:   "circuits/circuit-types",
		Label:      "circuit type",
		Tier:       core.TierTemplates,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "description"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "circuits_circuit",
		Endpoint:   "circuits/circuits",
		Label:      "circuit",
		Tier:       core.TierInfrastructure,
		NaturalKey: []string{"cid"},
		Fields: []core.FieldSpec{
			{Name: "cid"},
			{Name: "status", Default: "active"},
			{Name: "commit_rate"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "provider", Type: "circuits_provider", Required: true},
			{Field: "type", Type: "circuits_circuittype", Required: true},
			{Field: "tenant", Type: "tenancy_tenant"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "circuits_circuittermination",
		Endpoint:   "circuits/circuit-terminations",
		Label:      "circuit termination",
		Tier:       core.TierConnectivity,
		NaturalKey: []string{"term_side"},
		SkipReason: "requires terminating objects and cables",
	})
}
