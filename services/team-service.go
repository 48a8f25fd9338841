package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/UtopicUnicorn995/teamstarAPI/db"
	"github.com/UtopicUnicorn995/teamstarAPI/errs"
	"github.com/UtopicUnicorn995/teamstarAPI/logging"
	"github.com/UtopicUnicorn995/teamstarAPI/models"
)

const (
	roleChangeAttempts = 3
	roleChangeBackoff  = 100 * time.Millisecond
)

type TeamService struct {
	teams *mongo.Collection
	users *mongo.Collection
}

func NewTeamService(store *db.Store) *TeamService {
	return &TeamService{
		teams: store.Teams,
		users: store.Users,
	}
}

// roleTransition is the full outcome of one change-role request, computed
// before anything is written: the target's new role, the complete new
// supervisor and member sets, and the user demoted to make room, if any.
type roleTransition struct {
	NewRole     models.Role
	Demoted     *primitive.ObjectID
	Supervisors []primitive.ObjectID
	Members     []primitive.ObjectID
}

// planRoleTransition computes the team state after toggling the target's
// role. A member becomes the supervisor, displacing and demoting the current
// one; a supervisor steps down into the member set. The returned sets always
// hold at most one supervisor and never contain the same user twice.
func planRoleTransition(current models.Role, target primitive.ObjectID, team *models.Team) (*roleTransition, error) {
	switch current {
	case models.RoleAdmin:
		return nil, fmt.Errorf("admin roles are immutable: %w", errs.ErrForbidden)

	case models.RoleMember:
		transition := &roleTransition{
			NewRole:     models.RoleSupervisor,
			Supervisors: []primitive.ObjectID{target},
			Members:     withoutID(team.Members, target),
		}
		if prior := team.Supervisor(); prior != nil && *prior != target {
			transition.Demoted = prior
			transition.Members = append(transition.Members, *prior)
		}
		return transition, nil

	case models.RoleSupervisor:
		transition := &roleTransition{
			NewRole:     models.RoleMember,
			Supervisors: withoutID(team.Supervisors, target),
			Members:     withoutID(team.Members, target),
		}
		transition.Members = append(transition.Members, target)
		return transition, nil

	default:
		return nil, fmt.Errorf("invalid role %q: %w", current, errs.ErrValidation)
	}
}

func withoutID(ids []primitive.ObjectID, remove primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id != remove {
			out = append(out, id)
		}
	}
	return out
}

// RoleChangeResult reports what a successful change-role call did.
type RoleChangeResult struct {
	TargetID primitive.ObjectID  `json:"targetId"`
	NewRole  models.Role         `json:"newRole"`
	Demoted  *primitive.ObjectID `json:"demoted,omitempty"`
}

// ChangeUserRole runs the role/team transition workflow. The team's
// supervisor and member sets are replaced in a single conditional update
// keyed on the team's version field, so two concurrent calls cannot both
// win; the loser re-reads the team and replans, up to roleChangeAttempts
// times. The user role writes happen only after the team update commits.
func (s *TeamService) ChangeUserRole(ctx context.Context, targetID, teamID string, actor *Claims) (*RoleChangeResult, error) {
	targetObjectID, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", errs.ErrValidation)
	}
	teamObjectID, err := primitive.ObjectIDFromHex(teamID)
	if err != nil {
		return nil, fmt.Errorf("invalid team ID format: %w", errs.ErrValidation)
	}
	actorObjectID, err := primitive.ObjectIDFromHex(actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor ID: %w", errs.ErrValidation)
	}

	var target models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": targetObjectID}).Decode(&target); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found: %w", errs.ErrNotFound)
		}
		return nil, fmt.Errorf("load user: %v: %w", err, errs.ErrStore)
	}

	if !models.CanChangeRole(actor.Role, target.Role) {
		return nil, fmt.Errorf("role change not permitted: %w", errs.ErrForbidden)
	}

	var transition *roleTransition
	committed := false
	for attempt := 1; attempt <= roleChangeAttempts; attempt++ {
		var team models.Team
		if err := s.teams.FindOne(ctx, bson.M{"_id": teamObjectID}).Decode(&team); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, fmt.Errorf("team not found: %w", errs.ErrNotFound)
			}
			return nil, fmt.Errorf("load team: %v: %w", err, errs.ErrStore)
		}

		transition, err = planRoleTransition(target.Role, targetObjectID, &team)
		if err != nil {
			return nil, err
		}

		filter := bson.M{"_id": teamObjectID, "version": team.Version}
		update := bson.M{
			"$set": bson.M{
				"supervisors": transition.Supervisors,
				"members":     transition.Members,
				"updatedAt":   time.Now(),
			},
			"$inc": bson.M{"version": 1},
		}

		result, err := s.teams.UpdateOne(ctx, filter, update)
		if err != nil {
			return nil, fmt.Errorf("update team: %v: %w", err, errs.ErrStore)
		}
		if result.ModifiedCount == 1 {
			committed = true
			break
		}

		// Someone else moved the team between our read and write.
		logging.Logger.Warnf("Event ID: ROLE_CHANGE_RETRY, Description: Team %s changed concurrently, attempt %d of %d", teamID, attempt, roleChangeAttempts)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("role change cancelled: %v: %w", ctx.Err(), errs.ErrStore)
		case <-time.After(time.Duration(attempt) * roleChangeBackoff):
		}
	}
	if !committed {
		return nil, fmt.Errorf("team %s kept changing concurrently: %w", teamID, errs.ErrStore)
	}

	// The team document is committed; from here on a failure leaves a user
	// role out of sync with the team sets, which must be reported, not
	// swallowed.
	if err := s.setUserRole(ctx, targetObjectID, transition.NewRole, actorObjectID); err != nil {
		return nil, fmt.Errorf("team %s updated but role write for user %s failed: %v: %w", teamID, targetID, err, errs.ErrStore)
	}
	if transition.Demoted != nil {
		if err := s.setUserRole(ctx, *transition.Demoted, models.RoleMember, actorObjectID); err != nil {
			return nil, fmt.Errorf("team %s updated but demotion of user %s failed: %v: %w", teamID, transition.Demoted.Hex(), err, errs.ErrStore)
		}
	}

	logging.Logger.Infof("Event ID: ROLE_CHANGED, Description: User %s is now %s in team %s", targetID, transition.NewRole, teamID)

	return &RoleChangeResult{
		TargetID: targetObjectID,
		NewRole:  transition.NewRole,
		Demoted:  transition.Demoted,
	}, nil
}

func (s *TeamService) setUserRole(ctx context.Context, userID primitive.ObjectID, role models.Role, updatedBy primitive.ObjectID) error {
	_, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{
			"role":       role,
			"updated_by": updatedBy,
			"updatedAt":  time.Now(),
		},
	})
	return err
}

// CreateTeam creates an empty team under the actor's customer.
func (s *TeamService) CreateTeam(ctx context.Context, name, customerID string, actor *Claims) (*models.Team, error) {
	if name == "" {
		return nil, fmt.Errorf("team name is required: %w", errs.ErrValidation)
	}

	customerObjectID, err := resolveCustomerID(customerID, actor)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	team := &models.Team{
		ID:          primitive.NewObjectID(),
		Name:        name,
		CustomerID:  customerObjectID,
		Supervisors: []primitive.ObjectID{},
		Members:     []primitive.ObjectID{},
		Tasks:       []primitive.ObjectID{},
		Version:     0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.teams.InsertOne(ctx, team); err != nil {
		return nil, fmt.Errorf("insert team: %v: %w", err, errs.ErrStore)
	}

	return team, nil
}

// GetTeamsByCustomer lists every team belonging to a customer.
func (s *TeamService) GetTeamsByCustomer(ctx context.Context, customerID string) ([]models.Team, error) {
	customerObjectID, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format: %w", errs.ErrValidation)
	}

	cursor, err := s.teams.Find(ctx, bson.M{"customer_id": customerObjectID})
	if err != nil {
		return nil, fmt.Errorf("find teams: %v: %w", err, errs.ErrStore)
	}
	defer cursor.Close(ctx)

	teams := []models.Team{}
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("decode teams: %v: %w", err, errs.ErrStore)
	}
	return teams, nil
}

// resolveCustomerID prefers an explicit customer id and falls back to the
// actor's own organization.
func resolveCustomerID(customerID string, actor *Claims) (primitive.ObjectID, error) {
	if customerID != "" {
		id, err := primitive.ObjectIDFromHex(customerID)
		if err != nil {
			return primitive.NilObjectID, fmt.Errorf("invalid customer ID format: %w", errs.ErrValidation)
		}
		return id, nil
	}
	id, err := primitive.ObjectIDFromHex(actor.CustomerID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("actor has no customer: %w", errs.ErrValidation)
	}
	return id, nil
}
