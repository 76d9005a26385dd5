// Package authz implements the authorization subsystem of the back office.
//
// Two parallel representations of what a role may do exist in the database:
// the editable RoleRight grid (per role, per menu: view/create/edit/delete
// flags) that administrators manipulate, and the derived RolePermission set
// (per role, per fine grained permission code) that business-logic checks
// consult. This package owns the catalog lookups, the sync engine that keeps
// the two representations consistent, the read side query service and the
// fiber middleware enforcing permissions at the HTTP boundary.
//
// The query service reads only RolePermission rows, never the RoleRight grid,
// which decouples authorization checks from the editable rights UI.
package authz
