// Package registryservice owns the master data of the Almoner monolith:
// households, distribution centers, aid packages and staff members.
//
// The module is deliberately plain CRUD. The distribution engine consumes
// these rows read-only through its own reference projections, so the only
// invariants enforced here are field validation and the unique phone and
// email constraints.
package registryservice
