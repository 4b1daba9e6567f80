// Package authz implements the static role-permission model gating every
// tab and action of the asset registry. Lookups are pure and fail closed:
// an unknown permission or tab grants nothing to anyone.
package authz

import "fmt"

// Role is the fixed role enumeration carried by every authenticated user.
type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleMinistryAdmin Role = "ministry_admin"
	RoleEditor        Role = "editor"
	RoleViewer        Role = "viewer"
)

// AllRoles enumerates every valid role. Permission and tab tables are
// validated against it at package init so a new role cannot be silently
// denied by omission.
var AllRoles = []Role{RoleSuperAdmin, RoleMinistryAdmin, RoleEditor, RoleViewer}

// Valid reports whether r is a member of the role enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleMinistryAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// Permission names gate individual actions.
const (
	PermViewUsers      = "view_users"
	PermManageUsers    = "manage_users"
	PermManageSettings = "manage_settings"
	PermViewAllAssets  = "view_all_assets"
	PermEditAssets     = "edit_assets"
	PermViewAssets     = "view_assets"
)

// Tab identifies a navigable section of the application.
type Tab string

const (
	TabDashboard   Tab = "dashboard"
	TabDirectory   Tab = "directory"
	TabMap         Tab = "map"
	TabDeclaration Tab = "declaration"
	TabAssistant   Tab = "assistant"
	TabUsers       Tab = "users"
	TabSettings    Tab = "settings"
)

// AllTabs enumerates every tab the application knows.
var AllTabs = []Tab{
	TabDashboard, TabDirectory, TabMap, TabDeclaration,
	TabAssistant, TabUsers, TabSettings,
}

type roleSet map[Role]struct{}

func roles(rs ...Role) roleSet {
	set := make(roleSet, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}
	return set
}

// permissions maps each permission name to the roles allowed to exercise it.
// Super-admin is listed for readability even though HasPermission
// short-circuits before the table is consulted.
var permissions = map[string]roleSet{
	PermViewUsers:      roles(RoleSuperAdmin),
	PermManageUsers:    roles(RoleSuperAdmin),
	PermManageSettings: roles(RoleSuperAdmin),
	PermViewAllAssets:  roles(RoleSuperAdmin, RoleMinistryAdmin),
	PermEditAssets:     roles(RoleSuperAdmin, RoleMinistryAdmin, RoleEditor),
	PermViewAssets:     roles(RoleSuperAdmin, RoleMinistryAdmin, RoleEditor, RoleViewer),
}

// tabs maps each tab to the roles allowed to open it.
var tabs = map[Tab]roleSet{
	TabDashboard:   roles(RoleSuperAdmin, RoleMinistryAdmin, RoleEditor, RoleViewer),
	TabDirectory:   roles(RoleSuperAdmin, RoleMinistryAdmin, RoleEditor, RoleViewer),
	TabMap:         roles(RoleSuperAdmin, RoleMinistryAdmin, RoleEditor, RoleViewer),
	TabDeclaration: roles(RoleSuperAdmin, RoleMinistryAdmin, RoleEditor),
	TabAssistant:   roles(RoleSuperAdmin, RoleMinistryAdmin, RoleEditor, RoleViewer),
	TabUsers:       roles(RoleSuperAdmin),
	TabSettings:    roles(RoleSuperAdmin),
}

func init() {
	if err := validateTables(); err != nil {
		panic(err)
	}
}

// validateTables rejects table entries referencing roles outside the
// enumeration and tab entries missing from the tab table.
func validateTables() error {
	for perm, set := range permissions {
		for role := range set {
			if !role.Valid() {
				return fmt.Errorf("authz: permission %q references unknown role %q", perm, role)
			}
		}
	}
	for _, tab := range AllTabs {
		set, ok := tabs[tab]
		if !ok {
			return fmt.Errorf("authz: tab %q has no role mapping", tab)
		}
		for role := range set {
			if !role.Valid() {
				return fmt.Errorf("authz: tab %q references unknown role %q", tab, role)
			}
		}
	}
	return nil
}

// HasPermission reports whether the role may exercise the named permission.
// Super-admin is granted unconditionally; unknown permissions are denied.
func HasPermission(role Role, permission string) bool {
	if role == RoleSuperAdmin {
		return true
	}
	set, ok := permissions[permission]
	if !ok {
		return false
	}
	_, ok = set[role]
	return ok
}

// CanAccessTab reports whether the role may open the tab.
// Super-admin is granted unconditionally; unknown tabs are denied.
func CanAccessTab(role Role, tab Tab) bool {
	if role == RoleSuperAdmin {
		return true
	}
	set, ok := tabs[tab]
	if !ok {
		return false
	}
	_, ok = set[role]
	return ok
}
