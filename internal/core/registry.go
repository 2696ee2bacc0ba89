package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry    = make(map[string]*ObjectType)
	registryMu  sync.RWMutex
	registrySeq int
)

// Register adds an object type to the registry. Declaration order within a
// tier is preserved; it encodes same-tier dependencies (e.g. VLAN groups
// before VLANs). Panics if a type with the same key is already registered.
func Register(def *ObjectType) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Key]; exists {
		panic(fmt.Sprintf("object type already registered: %s", def.Key))
	}
	if len(def.NaturalKey) == 0 {
		panic(fmt.Sprintf("object type %s has no natural key", def.Key))
	}

	registrySeq++
	def.order = registrySeq
	registry[def.Key] = def
}

// Get returns an object type by key.
func Get(key string) (*ObjectType, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns every registered object type, sorted by tier and then by
// declaration order.
func All() []*ObjectType {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]*ObjectType, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Tier != result[j].Tier {
			return result[i].Tier < result[j].Tier
		}
		return result[i].order < result[j].order
	})

	return result
}

// ByTier returns the object types of one tier in declaration order.
func ByTier(tier Tier) []*ObjectType {
	var result []*ObjectType
	for _, def := range All() {
		if def.Tier == tier {
			result = append(result, def)
		}
	}
	return result
}

// Tiers returns the tiers that have registered types, in order.
func Tiers() []Tier {
	seen := make(map[Tier]bool)
	var tiers []Tier
	for _, def := range All() {
		if !seen[def.Tier] {
			seen[def.Tier] = true
			tiers = append(tiers, def.Tier)
		}
	}
	return tiers
}

// TypeCount returns the number of registered object types.
func TypeCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered types. Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]*ObjectType)
	registrySeq = 0
}
