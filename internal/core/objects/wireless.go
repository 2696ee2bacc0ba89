package objects

import "github.com/richbibby/netbox-population-tool/internal/core"

func init() {
	core.Register(&core.ObjectType{
		Key:        "wireless_wirelesslangroup",
		Endpoint:   "wireless/wireless-lan-groups",
		Label:      "wireless LAN group",
		Tier:       core.TierTemplates,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "parent", Type: "wireless_wirelesslangroup"},
		},
	})

	core.Register(&core.ObjectType{
		Key:        "wireless_wirelesslan",
		Endpoint:   "wireless/wireless-lans",
		Label:      "wireless LAN",
		Tier:       core.TierInfrastructure,
		NaturalKey: []string{"ssid"},
		Fields: []core.FieldSpec{
			{Name: "ssid"},
			{Name: "status", Default: "active"},
			{Name: "auth_type"},
			{Name: "auth_cipher"},
			{Name: "auth_psk"},
			{Name: "description"},
		},
		Refs: []core.RefSpec{
			{Field: "group", Type: "wireless_wirelesslangroup"},
			{Field: "vlan", Type: "ipam_vlan"},
			{Field: "tenant", Type: "tenancy_tenant"},
		},
	})
}
