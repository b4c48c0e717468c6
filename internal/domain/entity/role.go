package entity

// Role is the assigned role on a user document. There is no implicit
// hierarchy: a gate allows exactly the roles it names.
type Role string

const (
	RoleSupervisor Role = "Supervisor"
	RoleASHA       Role = "ASHA"
	RoleAdmin      Role = "Admin"
)

func (r Role) Valid() bool {
	return r == RoleSupervisor || r == RoleASHA || r == RoleAdmin
}

// OneOf reports whether the role is in the allowed set.
func (r Role) OneOf(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// Principal is the resolved, authenticated caller.
type Principal struct {
	// Phone is the provider-registered contact number.
	Phone string
	// UID is the identity provider's unique id.
	UID string
	// Role comes from the backing user document, never from the token.
	Role Role
	// DocID is the user document's own key, which differs from Phone for
	// workers keyed by their generated id.
	DocID string
}

// CanAccess reports whether the principal may act on the resource at
// resourceKey: either it is the principal's own document or the principal
// holds one of the elevated roles.
func (p *Principal) CanAccess(resourceKey string, elevated ...Role) bool {
	if p.DocID == resourceKey {
		return true
	}
	return p.Role.OneOf(elevated...)
}
