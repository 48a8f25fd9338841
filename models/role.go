package models

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleMember     Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleMember:
		return true
	}
	return false
}

// Role policy. Every rule is a pure function over roles so the decision can
// be checked without touching the database.

// CanCreateCustomer reports whether the actor may create an organization.
func CanCreateCustomer(actor Role) bool {
	return actor == RoleAdmin || actor == RoleSupervisor
}

// CanCreateTeam reports whether the actor may create a team.
func CanCreateTeam(actor Role) bool {
	return actor == RoleAdmin || actor == RoleSupervisor
}

// CanCreateTask reports whether the actor may create a task.
func CanCreateTask(actor Role) bool {
	return actor == RoleAdmin || actor == RoleSupervisor
}

// CanUpdateTask reports whether the actor may update a task. Only admins may.
func CanUpdateTask(actor Role) bool {
	return actor == RoleAdmin
}

// CanDeleteTask reports whether the actor may delete a task. Supervisors are
// allowed alongside admins, matching the deployed delete route.
func CanDeleteTask(actor Role) bool {
	return actor == RoleAdmin || actor == RoleSupervisor
}

// CanCreateReport reports whether the actor may file a report. Reports flow
// upward, so only members may.
func CanCreateReport(actor Role) bool {
	return actor == RoleMember
}

// CanInviteMember reports whether the actor may register a new member.
func CanInviteMember(actor Role) bool {
	return actor == RoleAdmin || actor == RoleSupervisor
}

// CanDeleteUser reports whether the actor may remove a user account.
func CanDeleteUser(actor Role) bool {
	return actor == RoleAdmin || actor == RoleSupervisor
}

// CanChangeRole reports whether the actor may change the target's role.
// Admin accounts are immutable and members cannot change anyone.
func CanChangeRole(actor, target Role) bool {
	if actor == RoleMember {
		return false
	}
	return target != RoleAdmin
}
