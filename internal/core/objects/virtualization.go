package objects

import "github.com/richbibby/netbox-population-tool/internal/core"

func init() {
	core.Register(&core.ObjectType{
		Key:        "virtualization_clustertype",
		Endpoint:   "virtualization/cluster-types",
		Label:      "cluster type",
		Tier:       core.TierTemplates,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "description"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "virtualization_cluster",
		Endpoint:   "virtualization/clusters",
		Label:      "cluster",
		Tier:       core.TierInfrastructure,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "type", Type: "virtualization_clustertype", Required: true},
			{Field: "site", Type: "dcim_site"},
			{Field: "tenant", Type: "tenancy_tenant"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "virtualization_virtualmachine",
		Endpoint:   "virtualization/virtual-machines",
		Label:      "virtual machine",
		Tier:       core.TierDevices,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "status", Default: "active"},
			{Name: "vcpus"},
			{Name: "memory"},
			{Name: "disk"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "cluster", Type: "virtualization_cluster", Required: true},
			{Field: "role", Type: "dcim_devicerole"},
			{Field: "platform", Type: "dcim_platform"},
			{Field: "tenant", Type: "tenancy_tenant"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "virtualization_vminterface",
		Endpoint:   "virtualization/interfaces",
		Label:      "VM interface",
		Tier:       core.TierComponents,
		NaturalKey: []string{"name"},
		Scope:      &core.RefSpec{Field: "virtual_machine", Type: "virtualization_virtualmachine", Required: true},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "enabled", Default: true},
			{Name: "mtu"},
			{Name: "mode"},
			{Name: "mac_address"},
			{Name: "description"},
		},
	})
}
