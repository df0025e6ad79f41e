package models

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin Role = "admin"
)

// Capability names a permission granted by a role.
type Capability string

const (
	CapManageProjects   Capability = "projects:manage"
	CapManageCategories Capability = "categories:manage"
	CapModerateComments Capability = "comments:moderate"
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin: {CapManageProjects, CapManageCategories, CapModerateComments},
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	for _, have := range roleCapabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}
