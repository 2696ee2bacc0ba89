package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMatchRules(t *testing.T) {
	rules := DefaultRules()

	cases := []struct {
		name string
		want bool
	}{
		{"Arista", true},
		{"Arista Networks", true},
		{"arista networks", true},
		{"Juniper", true},
		{"Juniper Networks", true},
		{"Cisco", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := rules.MatchManufacturer(tc.name); got != tc.want {
			t.Errorf("MatchManufacturer(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}

	if !rules.MatchPlatform("eos") {
		t.Error("MatchPlatform(eos) = false")
	}
	if !rules.MatchPlatform("Juniper JunOS") {
		t.Error("MatchPlatform(Juniper JunOS) = false")
	}
	if rules.MatchPlatform("ios-xe") {
		t.Error("MatchPlatform(ios-xe) = true")
	}
}

func TestLoadRulesPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("manufacturers:\n  - ACME\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules.Manufacturers) != 1 || rules.Manufacturers[0] != "ACME" {
		t.Errorf("Manufacturers = %v", rules.Manufacturers)
	}
	if len(rules.Platforms) == 0 {
		t.Error("Platforms not defaulted")
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

// TestApplyFilterTransitive builds a three-manufacturer dataset where only
// the middle one is excluded and verifies the whole chain under it, and
// nothing else, ends up filtered.
func TestApplyFilterTransitive(t *testing.T) {
	registerTestSchema(t)

	files := map[string]any{
		"dcim_manufacturer": records{
			{"id": 1, "name": "Alpha", "slug": "alpha"},
			{"id": 2, "name": "Bravo", "slug": "bravo"},
			{"id": 3, "name": "Charlie", "slug": "charlie"},
		},
		"dcim_platform": records{},
		"dcim_site": records{
			{"id": 1, "name": "dc-east", "slug": "dc-east"},
		},
		"dcim_devicerole": records{
			{"id": 1, "name": "core", "slug": "core"},
		},
		"dcim_devicetype": records{
			{"id": 1, "model": "A-1000", "slug": "a-1000", "manufacturer": 1},
			{"id": 2, "model": "B-2000", "slug": "b-2000", "manufacturer": 2},
			{"id": 3, "model": "C-3000", "slug": "c-3000", "manufacturer": 3},
		},
		"dcim_device": records{
			{"id": 1, "name": "a1", "device_type": 1, "role": 1, "site": 1},
			{"id": 2, "name": "b1", "device_type": 2, "role": 1, "site": 1},
			{"id": 3, "name": "c1", "device_type": 3, "role": 1, "site": 1},
		},
		"dcim_interface": records{
			{"id": 1, "name": "eth0", "device": 1},
			{"id": 2, "name": "eth0", "device": 2},
			{"id": 3, "name": "eth0", "device": 3},
		},
		"ipam_ipaddress": records{
			{"id": 1, "address": "10.0.0.2/24", "assigned_object_type": "dcim.interface", "assigned_object_id": 2},
		},
	}
	ds, err := LoadDataset(writeDataset(t, files))
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}

	n := ApplyFilter(ds, Rules{Manufacturers: []string{"Bravo"}})

	// Manufacturer, device type, device, interface, IP address.
	if n != 5 {
		t.Errorf("ApplyFilter = %d, want 5", n)
	}

	filtered := func(key string, id int64) bool {
		return ds.RowByID(key, id).Outcome == OutcomeFiltered
	}
	for _, check := range []struct {
		key  string
		id   int64
		want bool
	}{
		{"dcim_manufacturer", 2, true},
		{"dcim_devicetype", 2, true},
		{"dcim_device", 2, true},
		{"dcim_interface", 2, true},
		{"ipam_ipaddress", 1, true},
		{"dcim_manufacturer", 1, false},
		{"dcim_devicetype", 1, false},
		{"dcim_device", 3, false},
		{"dcim_interface", 3, false},
	} {
		if got := filtered(check.key, check.id); got != check.want {
			t.Errorf("%s/%d filtered = %v, want %v", check.key, check.id, got, check.want)
		}
	}
}

func TestApplyFilterPlatformPropagates(t *testing.T) {
	registerTestSchema(t)

	files := testDataFiles()
	files["dcim_platform"] = records{
		{"id": 1, "name": "Arista EOS", "slug": "eos"},
		{"id": 2, "name": "IOS-XE", "slug": "ios-xe"},
	}
	files["dcim_manufacturer"] = records{
		{"id": 1, "name": "Cisco", "slug": "cisco"},
	}
	files["dcim_devicetype"] = records{
		{"id": 1, "model": "C9300", "slug": "c9300", "manufacturer": 1},
	}
	files["dcim_device"] = records{
		{"id": 1, "name": "sw1", "device_type": 1, "role": 1, "site": 1, "platform": 2},
		{"id": 2, "name": "leaf1", "device_type": 1, "role": 1, "site": 1, "platform": 1},
	}
	files["dcim_interface"] = records{}
	files["ipam_ipaddress"] = records{}

	ds, err := LoadDataset(writeDataset(t, files))
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}

	ApplyFilter(ds, DefaultRules())

	if ds.RowByID("dcim_device", 2).Outcome != OutcomeFiltered {
		t.Error("device on excluded platform not filtered")
	}
	if ds.RowByID("dcim_device", 1).Outcome == OutcomeFiltered {
		t.Error("device on allowed platform filtered")
	}
}

func TestApplyFilterIdempotentCounts(t *testing.T) {
	registerTestSchema(t)
	ds, err := LoadDataset(writeDataset(t, testDataFiles()))
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}

	first := ApplyFilter(ds, DefaultRules())
	second := ApplyFilter(ds, DefaultRules())
	if first != second {
		t.Errorf("repeated ApplyFilter: %d then %d", first, second)
	}
}
