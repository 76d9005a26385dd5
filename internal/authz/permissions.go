package authz

// Permission code constants define the well known permissions in the system.
// These are used for role-based access control (RBAC) to restrict access
// to specific modules and actions. The catalog seeder creates matching
// Permission rows for each of them.
const (
	// PermRoleManage allows managing roles, role rights and their permissions.
	// The first grant of this permission must be seeded, not created through
	// the API, since granting it already requires holding it.
	PermRoleManage = "role.manage"

	// PermDashboardView allows viewing the main dashboard.
	PermDashboardView = "dashboard.view"

	// PermUserView allows viewing user accounts.
	PermUserView = "user.view"
	// PermUserCreate allows creating user accounts.
	PermUserCreate = "user.create"
	// PermUserUpdate allows editing user accounts.
	PermUserUpdate = "user.update"
	// PermUserDelete allows deactivating user accounts.
	PermUserDelete = "user.delete"

	// PermOrganizationView allows viewing organizations.
	PermOrganizationView = "organization.view"
	// PermOrganizationCreate allows creating organizations.
	PermOrganizationCreate = "organization.create"
	// PermOrganizationUpdate allows editing organizations.
	PermOrganizationUpdate = "organization.update"
	// PermOrganizationDelete allows deactivating organizations.
	PermOrganizationDelete = "organization.delete"

	// PermBranchView allows viewing branches.
	PermBranchView = "branch.view"
	// PermBranchCreate allows creating branches.
	PermBranchCreate = "branch.create"
	// PermBranchUpdate allows editing branches.
	PermBranchUpdate = "branch.update"
	// PermBranchDelete allows deactivating branches.
	PermBranchDelete = "branch.delete"

	// PermRoleView allows viewing roles.
	PermRoleView = "role.view"
	// PermRoleCreate allows creating roles.
	PermRoleCreate = "role.create"
	// PermRoleUpdate allows editing roles.
	PermRoleUpdate = "role.update"
	// PermRoleDelete allows deactivating roles.
	PermRoleDelete = "role.delete"

	// PermSettingsView allows viewing organization settings.
	PermSettingsView = "settings.view"
	// PermSettingsUpdate allows editing organization settings.
	PermSettingsUpdate = "settings.update"
)
