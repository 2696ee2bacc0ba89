package core

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// resetRegistry gives each test an empty registry and restores the empty
// state afterwards, so tests can declare their own small schemas.
func resetRegistry(t *testing.T) {
	t.Helper()
	Clear()
	t.Cleanup(Clear)
}

// registerTestSchema declares a reduced schema covering the behaviors the
// pipeline tests need: direct filter targets, a required reference chain,
// a device-scoped component and a polymorphic assignment.
func registerTestSchema(t *testing.T) {
	t.Helper()
	resetRegistry(t)

	Register(&ObjectType{
		Key:            "dcim_manufacturer",
		Endpoint:       "dcim/manufacturers",
		Label:          "manufacturer",
		Tier:           TierFoundation,
		Foundational:   true,
		IsManufacturer: true,
		NaturalKey:     []string{"name"},
		Fields: []FieldSpec{
			{Name: "name"},
			{Name: "slug"},
		},
	})

	Register(&ObjectType{
		Key:        "dcim_platform",
		Endpoint:   "dcim/platforms",
		Label:      "platform",
		Tier:       TierFoundation,
		IsPlatform: true,
		NaturalKey: []string{"name"},
		Fields: []FieldSpec{
			{Name: "name"},
			{Name: "slug"},
		},
	})

	Register(&ObjectType{
		Key:          "dcim_site",
		Endpoint:     "dcim/sites",
		Label:        "site",
		Tier:         TierOrganization,
		Foundational: true,
		NaturalKey:   []string{"name"},
		Fields: []FieldSpec{
			{Name: "name"},
			{Name: "slug"},
			{Name: "status", Default: "active"},
		},
	})

	Register(&ObjectType{
		Key:        "dcim_devicerole",
		Endpoint:   "dcim/device-roles",
		Label:      "device role",
		Tier:       TierOrganization,
		NaturalKey: []string{"name"},
		Fields: []FieldSpec{
			{Name: "name"},
			{Name: "slug"},
		},
	})

	Register(&ObjectType{
		Key:             "dcim_devicetype",
		Endpoint:        "dcim/device-types",
		Label:           "device type",
		Tier:            TierTemplates,
		NaturalKey:      []string{"model"},
		RefField:        "slug",
		ManufacturerRef: "manufacturer",
		Fields: []FieldSpec{
			{Name: "model"},
			{Name: "slug"},
			{Name: "u_height", Default: 1},
		},
		Refs: []RefSpec{
			{Field: "manufacturer", Type: "dcim_manufacturer", Required: true},
		},
	})

	Register(&ObjectType{
		Key:        "dcim_device",
		Endpoint:   "dcim/devices",
		Label:      "device",
		Tier:       TierDevices,
		NaturalKey: []string{"name"},
		Fields: []FieldSpec{
			{Name: "name"},
			{Name: "status", Default: "active"},
		},
		Refs: []RefSpec{
			{Field: "device_type", Type: "dcim_devicetype", Required: true},
			{Field: "role", Type: "dcim_devicerole", Required: true},
			{Field: "site", Type: "dcim_site", Required: true},
			{Field: "platform", Type: "dcim_platform"},
		},
	})

	Register(&ObjectType{
		Key:        "dcim_interface",
		Endpoint:   "dcim/interfaces",
		Label:      "interface",
		Tier:       TierComponents,
		NaturalKey: []string{"name"},
		Scope:      &RefSpec{Field: "device", Type: "dcim_device", Required: true},
		Fields: []FieldSpec{
			{Name: "name"},
			{Name: "type", Default: "1000base-t"},
		},
	})

	Register(&ObjectType{
		Key:        "ipam_ipaddress",
		Endpoint:   "ipam/ip-addresses",
		Label:      "IP address",
		Tier:       TierConnectivity,
		NaturalKey: []string{"address"},
		Fields: []FieldSpec{
			{Name: "address"},
			{Name: "status", Default: "active"},
		},
		Poly: []PolyRef{
			{
				TypeField: "assigned_object_type",
				IDField:   "assigned_object_id",
				Types:     map[string]string{"dcim.interface": "dcim_interface"},
			},
		},
	})
}

// writeDataset writes one JSON file per entry into a temp dir. Keys
// without a .json suffix get one; values are marshaled as-is.
func writeDataset(t *testing.T, files map[string]any) string {
	t.Helper()
	dir := t.TempDir()
	for name, v := range files {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name+".json"), data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

// records is a convenience alias for building test data files.
type records = []map[string]any

// testDataFiles is the happy-path dataset: two manufacturers (one
// matching the default exclusions), device types, devices and interfaces
// for both, all under a single site.
func testDataFiles() map[string]any {
	return map[string]any{
		"dcim_manufacturer": records{
			{"id": 1, "name": "Cisco", "slug": "cisco"},
			{"id": 2, "name": "Arista Networks", "slug": "arista"},
		},
		"dcim_platform": records{},
		"dcim_site": records{
			{"id": 1, "name": "dc-east", "slug": "dc-east"},
		},
		"dcim_devicerole": records{
			{"id": 1, "name": "core", "slug": "core"},
		},
		"dcim_devicetype": records{
			{"id": 1, "model": "C9300", "slug": "c9300", "manufacturer": 1},
			{"id": 2, "model": "DCS-7050", "slug": "dcs-7050", "manufacturer": 2},
		},
		"dcim_device": records{
			{"id": 1, "name": "sw1", "device_type": 1, "role": 1, "site": 1},
			{"id": 2, "name": "leaf1", "device_type": 2, "role": 1, "site": 1},
		},
		"dcim_interface": records{
			{"id": 1, "name": "Gi1/0/1", "device": 1},
			{"id": 2, "name": "Et1", "device": 2},
		},
		"ipam_ipaddress": records{
			{"id": 1, "address": "10.0.0.1/24", "assigned_object_type": "dcim.interface", "assigned_object_id": 1},
			{"id": 2, "address": "10.0.0.2/24", "assigned_object_type": "dcim.interface", "assigned_object_id": 2},
		},
	}
}
