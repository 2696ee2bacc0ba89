// Package objects declares every NetBox object type the population
// pipeline handles. Each file covers one NetBox app and registers its
// types in an init function; importing this package for side effects
// fills the core registry.
//
// Most types are fully declarative: fields to copy, references to
// resolve, a tier, a natural key. Types whose API payloads need
// non-trivial assembly (devices, cables, IP assignments, services)
// declare a custom payload builder instead.
package objects
