// Package main provides the entry point for the Evination back-office service.
// It starts a Fiber based REST API for managing organizations, branches,
// departments, users, roles and menus, with a role-based menu/permission
// model. Role rights edited through the API are synchronized into fine
// grained permissions consumed by authorization checks. The application uses
// gorm for data persistence and supports MySQL and PostgreSQL backends.
package main
