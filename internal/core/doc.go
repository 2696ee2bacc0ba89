// Package core implements the population pipeline: loading extracted
// records from disk, applying manufacturer filter rules, and creating the
// records in a target NetBox instance in dependency-tier order.
//
// Object types are registered by the objects subpackage; the registry
// preserves tier ordering and the declaration order within each tier,
// because later types may reference earlier ones by natural key.
package core
