package auth

const (
	RoleUser   = "User"
	RoleSeller = "Seller"
	RoleAdmin  = "Admin"
)

// RoleAllowed reports whether actorRole is a member of allowedRoles. Route
// permission checks compose this predicate explicitly instead of sharing
// mutable middleware state.
func RoleAllowed(actorRole string, allowedRoles ...string) bool {
	for _, role := range allowedRoles {
		if actorRole == role {
			return true
		}
	}

	return false
}

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return RoleAllowed(role, RoleUser, RoleSeller, RoleAdmin)
}
