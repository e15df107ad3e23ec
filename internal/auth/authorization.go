package auth

// RoleHierarchy maps an acting role to the roles it may create. Roles absent
// from the map have no creation rights at all.
type RoleHierarchy map[Role][]Role

// DefaultRoleHierarchy is the platform's fixed creation hierarchy.
func DefaultRoleHierarchy() RoleHierarchy {
	return RoleHierarchy{
		RoleSuperadmin: {RoleAdmin, RoleTeacher, RoleParent, RoleStudent},
		RoleAdmin:      {RoleTeacher, RoleParent, RoleStudent},
	}
}

// Authorizer answers the two cross-user questions in the system: who may
// create which role, and who may manage whom. The hierarchy is injected at
// construction and never mutated.
type Authorizer struct {
	hierarchy RoleHierarchy
}

func NewAuthorizer(hierarchy RoleHierarchy) *Authorizer {
	return &Authorizer{hierarchy: hierarchy}
}

// CanCreate reports whether actingRole may create an account with targetRole.
func (a *Authorizer) CanCreate(actingRole, targetRole Role) bool {
	allowed, ok := a.hierarchy[actingRole]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == targetRole {
			return true
		}
	}
	return false
}

// CanManage reports whether actor may act on target. Superadmins manage
// anyone; admins manage only their own institution. The institution equality
// check here is the sole multi-tenancy boundary and must guard every
// cross-user mutation.
func (a *Authorizer) CanManage(actor, target *User) bool {
	if actor == nil || target == nil {
		return false
	}
	switch actor.Role {
	case RoleSuperadmin:
		return true
	case RoleAdmin:
		return actor.SameInstitution(target)
	default:
		return false
	}
}
