package objects

import "github.com/richbibby/netbox-population-tool/internal/core"

func init() {
	core.Register(&core.ObjectType{
		Key:        "tenancy_tenantgroup",
		Endpoint:   "tenancy/tenant-groups",
		Label:      "tenant group",
		Tier:       core.TierFoundation,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "parent", Type: "tenancy_tenantgroup"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "tenancy_tenant",
		Endpoint:   "tenancy/tenants",
		Label:      "tenant",
		Tier:       core.TierFoundation,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "group", Type: "tenancy_tenantgroup"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "tenancy_contactrole",
		Endpoint:   "tenancy/contact-roles",
		Label:      "contact role",
		Tier:       core.TierFoundation,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "description"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "tenancy_contactgroup",
		Endpoint:   "tenancy/contact-groups",
		Label:      "contact group",
		Tier:       core.TierFoundation,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "parent", Type: "tenancy_contactgroup"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "tenancy_contact",
		Endpoint:   "tenancy/contacts",
		Label:      "contact",
		Tier:       core.TierFoundation,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "title"},
			{Name: "phone"},
			{Name: "email"},
			{Name: "address"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "group", Type: "tenancy_contactgroup"},
		},
	})
}
