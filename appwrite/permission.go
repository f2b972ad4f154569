package appwrite

import "fmt"

// Role scopes a permission to a subject, e.g. `user:<id>`.
type Role string

// RoleUser scopes a permission to a single account.
func RoleUser(accountID string) Role {
	return Role(fmt.Sprintf("user:%s", accountID))
}

// Permission capability strings in the provider grammar, e.g.
// `read("user:abc")`. They are attached to a document at creation time.
func PermissionRead(role Role) string   { return permission("read", role) }
func PermissionWrite(role Role) string  { return permission("write", role) }
func PermissionUpdate(role Role) string { return permission("update", role) }
func PermissionDelete(role Role) string { return permission("delete", role) }

// OwnerPermissions returns the four capability strings restricting a
// document's read/write/update/delete to the owning account.
func OwnerPermissions(accountID string) []string {
	role := RoleUser(accountID)
	return []string{
		PermissionRead(role),
		PermissionWrite(role),
		PermissionUpdate(role),
		PermissionDelete(role),
	}
}

func permission(capability string, role Role) string {
	return fmt.Sprintf(`%s("%s")`, capability, role)
}
