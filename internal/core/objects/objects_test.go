package objects

import (
	"testing"

	"github.com/richbibby/netbox-population-tool/internal/core"
)

func TestNoForwardReferences(t *testing.T) {
	all := core.All()
	pos := make(map[string]int, len(all))
	for i, def := range all {
		pos[def.Key] = i
	}

	// Every reference must point at a type processed no later than the
	// referrer. Self-references (parent hierarchies) are allowed.
	for _, def := range all {
		refs := def.AllRefs()
		for _, ref := range refs {
			target, ok := pos[ref.Type]
			if !ok {
				t.Errorf("%s references unregistered type %s", def.Key, ref.Type)
				continue
			}
			if target > pos[def.Key] {
				t.Errorf("%s (at %d) references %s (at %d), which is processed later",
					def.Key, pos[def.Key], ref.Type, target)
			}
		}
		if def.ManufacturerRef != "" {
			if _, ok := pos["dcim_manufacturer"]; !ok {
				t.Errorf("%s has a manufacturer ref but dcim_manufacturer is not registered", def.Key)
			}
		}
		for _, poly := range def.Poly {
			for _, typeKey := range poly.Types {
				if target, ok := pos[typeKey]; !ok {
					t.Errorf("%s poly ref targets unregistered type %s", def.Key, typeKey)
				} else if target > pos[def.Key] {
					t.Errorf("%s poly ref targets %s, which is processed later", def.Key, typeKey)
				}
			}
		}
	}
}

func TestFoundationalTypes(t *testing.T) {
	want := map[string]bool{
		"dcim_manufacturer": true,
		"dcim_site":         true,
		"dcim_devicetype":   true,
		"dcim_devicerole":   true,
		"dcim_device":       true,
	}
	for _, def := range core.All() {
		if def.Foundational != want[def.Key] {
			t.Errorf("%s Foundational = %v, want %v", def.Key, def.Foundational, want[def.Key])
		}
	}
}

func TestFilterMarkers(t *testing.T) {
	mfr, ok := core.Get("dcim_manufacturer")
	if !ok || !mfr.IsManufacturer {
		t.Error("dcim_manufacturer not marked as manufacturer")
	}
	platform, ok := core.Get("dcim_platform")
	if !ok || !platform.IsPlatform {
		t.Error("dcim_platform not marked as platform")
	}
	for _, key := range []string{"dcim_platform", "dcim_devicetype", "dcim_moduletype"} {
		def, ok := core.Get(key)
		if !ok || def.ManufacturerRef != "manufacturer" {
			t.Errorf("%s missing manufacturer ref", key)
		}
	}
}

func TestDeviceTypeReferencedBySlug(t *testing.T) {
	def, ok := core.Get("dcim_devicetype")
	if !ok {
		t.Fatal("dcim_devicetype not registered")
	}
	if def.RefField != "slug" {
		t.Errorf("RefField = %q, want slug", def.RefField)
	}
	rec := core.Record{"model": "C9300-48P", "slug": "c9300-48p"}
	if got := def.RefName(rec); got != "c9300-48p" {
		t.Errorf("RefName = %q", got)
	}
	if got := def.KeyValue(rec); got != "C9300-48P" {
		t.Errorf("KeyValue = %q", got)
	}
}

func TestComponentScopes(t *testing.T) {
	deviceScoped := []string{
		"dcim_interface", "dcim_consoleport", "dcim_consoleserverport",
		"dcim_powerport", "dcim_poweroutlet", "dcim_frontport",
		"dcim_rearport", "dcim_modulebay",
	}
	for _, key := range deviceScoped {
		def, ok := core.Get(key)
		if !ok {
			t.Errorf("%s not registered", key)
			continue
		}
		if def.Tier != core.TierComponents {
			t.Errorf("%s tier = %v, want components", key, def.Tier)
		}
		if def.Scope == nil || def.Scope.Type != "dcim_device" || !def.Scope.Required {
			t.Errorf("%s not scoped to a device", key)
		}
	}

	vmIntf, ok := core.Get("virtualization_vminterface")
	if !ok || vmIntf.Scope == nil || vmIntf.Scope.Type != "virtualization_virtualmachine" {
		t.Error("virtualization_vminterface not scoped to a VM")
	}
}

func TestSpecialCreateModes(t *testing.T) {
	cable, ok := core.Get("dcim_cable")
	if !ok || !cable.NoPrecheck || cable.BuildPayload == nil {
		t.Error("dcim_cable must skip prechecks and use a custom builder")
	}
	svc, ok := core.Get("ipam_service")
	if !ok || !svc.NoPrecheck || svc.BuildPayload == nil {
		t.Error("ipam_service must skip prechecks and use a custom builder")
	}
	term, ok := core.Get("circuits_circuittermination")
	if !ok || term.SkipReason == "" {
		t.Error("circuits_circuittermination must carry a skip reason")
	}
}

func TestCableTerminationTypesRegistered(t *testing.T) {
	for objType, key := range cableTerminationTypes {
		def, ok := core.Get(key)
		if !ok {
			t.Errorf("termination type %s maps to unregistered %s", objType, key)
			continue
		}
		if def.Scope == nil || def.Scope.Type != "dcim_device" {
			t.Errorf("termination target %s is not device-scoped", key)
		}
	}
}
