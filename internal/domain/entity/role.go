package entity

// Role is the database role a request runs under. Supabase maps anonymous
// requests to anon, signed-in users to authenticated and backend keys to
// service_role, which bypasses row-level security.
type Role string

const (
	RoleAnon          Role = "anon"
	RoleAuthenticated Role = "authenticated"
	RoleServiceRole   Role = "service_role"
)

// Valid reports whether r is one of the known request roles
func (r Role) Valid() bool {
	switch r {
	case RoleAnon, RoleAuthenticated, RoleServiceRole:
		return true
	}
	return false
}
