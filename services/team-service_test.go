package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UtopicUnicorn995/teamstarAPI/errs"
	"github.com/UtopicUnicorn995/teamstarAPI/models"
)

func containsID(ids []primitive.ObjectID, want primitive.ObjectID) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

func TestPlanRoleTransitionPromoteWithExistingSupervisor(t *testing.T) {
	// Team has supervisor A and member B; promoting B must swap them.
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	team := &models.Team{
		Supervisors: []primitive.ObjectID{a},
		Members:     []primitive.ObjectID{b},
	}

	transition, err := planRoleTransition(models.RoleMember, b, team)
	if err != nil {
		t.Fatalf("planRoleTransition: %v", err)
	}

	if transition.NewRole != models.RoleSupervisor {
		t.Errorf("NewRole = %s, want supervisor", transition.NewRole)
	}
	if transition.Demoted == nil || *transition.Demoted != a {
		t.Errorf("Demoted = %v, want %s", transition.Demoted, a.Hex())
	}
	if len(transition.Supervisors) != 1 || transition.Supervisors[0] != b {
		t.Errorf("Supervisors = %v, want [%s]", transition.Supervisors, b.Hex())
	}
	if len(transition.Members) != 1 || transition.Members[0] != a {
		t.Errorf("Members = %v, want [%s]", transition.Members, a.Hex())
	}
}

func TestPlanRoleTransitionPromoteIntoEmptySlot(t *testing.T) {
	b := primitive.NewObjectID()
	other := primitive.NewObjectID()
	team := &models.Team{
		Supervisors: []primitive.ObjectID{},
		Members:     []primitive.ObjectID{b, other},
	}

	transition, err := planRoleTransition(models.RoleMember, b, team)
	if err != nil {
		t.Fatalf("planRoleTransition: %v", err)
	}

	if transition.Demoted != nil {
		t.Errorf("Demoted = %v, want nil", transition.Demoted)
	}
	if len(transition.Supervisors) != 1 || transition.Supervisors[0] != b {
		t.Errorf("Supervisors = %v, want [%s]", transition.Supervisors, b.Hex())
	}
	if containsID(transition.Members, b) {
		t.Error("promoted user still present in member set")
	}
	if !containsID(transition.Members, other) {
		t.Error("unrelated member dropped from member set")
	}
}

func TestPlanRoleTransitionDemoteSupervisor(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	team := &models.Team{
		Supervisors: []primitive.ObjectID{a},
		Members:     []primitive.ObjectID{b},
	}

	transition, err := planRoleTransition(models.RoleSupervisor, a, team)
	if err != nil {
		t.Fatalf("planRoleTransition: %v", err)
	}

	if transition.NewRole != models.RoleMember {
		t.Errorf("NewRole = %s, want member", transition.NewRole)
	}
	if len(transition.Supervisors) != 0 {
		t.Errorf("Supervisors = %v, want empty", transition.Supervisors)
	}
	if !containsID(transition.Members, a) || !containsID(transition.Members, b) {
		t.Errorf("Members = %v, want both %s and %s", transition.Members, a.Hex(), b.Hex())
	}
	if transition.Demoted != nil {
		t.Errorf("Demoted = %v, want nil (target demotes itself)", transition.Demoted)
	}
}

// TestChangeUserRoleRejectsMalformedActor checks that a claim with an
// unparseable user id is rejected during input validation. The service has
// nil collections here, so reaching the store would panic: validation must
// come first, and updated_by must never be written as the zero id.
func TestChangeUserRoleRejectsMalformedActor(t *testing.T) {
	s := &TeamService{}
	actor := &Claims{UserID: "not-a-hex-id", Role: models.RoleAdmin}

	_, err := s.ChangeUserRole(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex(), actor)
	if !errors.Is(err, errs.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestPlanRoleTransitionRejectsAdmin(t *testing.T) {
	team := &models.Team{}
	_, err := planRoleTransition(models.RoleAdmin, primitive.NewObjectID(), team)
	if !errors.Is(err, errs.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

func TestPlanRoleTransitionRejectsUnknownRole(t *testing.T) {
	team := &models.Team{}
	_, err := planRoleTransition(models.Role("manager"), primitive.NewObjectID(), team)
	if !errors.Is(err, errs.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

// TestPlanRoleTransitionSupervisorCardinality applies a long, arbitrary
// sequence of transitions to an in-memory team and checks the invariant:
// after every successful transition the supervisor set has at most one
// entry and nobody sits in both sets.
func TestPlanRoleTransitionSupervisorCardinality(t *testing.T) {
	users := make([]primitive.ObjectID, 5)
	roles := make(map[primitive.ObjectID]models.Role, 5)
	team := &models.Team{
		Supervisors: []primitive.ObjectID{},
		Members:     []primitive.ObjectID{},
	}
	for i := range users {
		users[i] = primitive.NewObjectID()
		roles[users[i]] = models.RoleMember
		team.Members = append(team.Members, users[i])
	}

	// Deterministic walk: toggle each user in a rotating pattern.
	for step := 0; step < 50; step++ {
		target := users[step%len(users)]

		transition, err := planRoleTransition(roles[target], target, team)
		if err != nil {
			t.Fatalf("step %d: planRoleTransition: %v", step, err)
		}

		// Apply the plan the way ChangeUserRole persists it.
		team.Supervisors = transition.Supervisors
		team.Members = transition.Members
		roles[target] = transition.NewRole
		if transition.Demoted != nil {
			roles[*transition.Demoted] = models.RoleMember
		}

		if len(team.Supervisors) > 1 {
			t.Fatalf("step %d: supervisor set has %d entries", step, len(team.Supervisors))
		}
		for _, supervisor := range team.Supervisors {
			if containsID(team.Members, supervisor) {
				t.Fatalf("step %d: user %s in both supervisor and member sets", step, supervisor.Hex())
			}
		}
		if len(team.Supervisors)+len(team.Members) != len(users) {
			t.Fatalf("step %d: team lost or duplicated users: %d supervisors, %d members",
				step, len(team.Supervisors), len(team.Members))
		}
	}
}
