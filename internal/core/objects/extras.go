package objects

import "github.com/richbibby/netbox-population-tool/internal/core"

func init() {
	core.Register(&core.ObjectType{
		Key:        "extras_tag",
		Endpoint:   "extras/tags",
		Label:      "tag",
		Tier:       core.TierFoundation,
		NaturalKey: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "color", Default: "9e9e9e"},
			{Name: "description"},
		},
	})
}
