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
	"github.com/UtopicUnicorn995/teamstarAPI/utils"
)

type UserService struct {
	users      *mongo.Collection
	customers  *mongo.Collection
	jwtService *JWTService
}

func NewUserService(store *db.Store, jwtService *JWTService) *UserService {
	return &UserService{
		users:      store.Users,
		customers:  store.Customers,
		jwtService: jwtService,
	}
}

// Authenticate checks a phone+PIN pair and issues an access token. An
// unknown phone is NotFound, a wrong PIN is Forbidden, so the mobile client
// can tell "register first" apart from "try again".
//
// The PIN comparison is plain equality against the stored value. PINs are
// stored in cleartext today; the mobile clients sync the raw value through
// Realm, so hashing here would lock every device out. Known gap.
func (s *UserService) Authenticate(ctx context.Context, phone, pin string) (models.User, string, error) {
	if phone == "" || pin == "" {
		return models.User{}, "", fmt.Errorf("phone and pin are required: %w", errs.ErrValidation)
	}

	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"phone": phone}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, "", fmt.Errorf("user not found: %w", errs.ErrNotFound)
		}
		return models.User{}, "", fmt.Errorf("load user: %v: %w", err, errs.ErrStore)
	}

	if pin != user.Pin {
		return models.User{}, "", fmt.Errorf("invalid pin: %w", errs.ErrForbidden)
	}

	token, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return models.User{}, "", fmt.Errorf("generate token: %v: %w", err, errs.ErrStore)
	}

	logging.Logger.Infof("Event ID: LOGIN_SUCCESS, Description: User %s logged in", user.ID.Hex())
	return user, token, nil
}

// RegisterAdminRequest is the unauthenticated bootstrap: a new organization
// with its first (admin) account.
type RegisterAdminRequest struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Pin         string `json:"pin"`
}

// RegisterAdmin creates the admin user and its customer, then back-links the
// customer id onto the user. Phone and email must both be unused.
func (s *UserService) RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*models.User, *models.Customer, error) {
	switch {
	case req.CompanyName == "":
		return nil, nil, fmt.Errorf("company name is required to register: %w", errs.ErrValidation)
	case req.Email == "" || req.Phone == "":
		return nil, nil, fmt.Errorf("email address and phone number are required to register: %w", errs.ErrValidation)
	case req.Name == "":
		return nil, nil, fmt.Errorf("new user's name is required to register: %w", errs.ErrValidation)
	case req.Pin == "":
		return nil, nil, fmt.Errorf("pin is required to register: %w", errs.ErrValidation)
	}

	if err := s.users.FindOne(ctx, bson.M{"phone": req.Phone}).Err(); err == nil {
		return nil, nil, fmt.Errorf("phone number already registered: %w", errs.ErrValidation)
	} else if err != mongo.ErrNoDocuments {
		return nil, nil, fmt.Errorf("check phone: %v: %w", err, errs.ErrStore)
	}
	if err := s.users.FindOne(ctx, bson.M{"email": req.Email}).Err(); err == nil {
		return nil, nil, fmt.Errorf("email address already registered: %w", errs.ErrValidation)
	} else if err != mongo.ErrNoDocuments {
		return nil, nil, fmt.Errorf("check email: %v: %w", err, errs.ErrStore)
	}

	now := time.Now()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Email:     req.Email,
		Name:      req.Name,
		Phone:     req.Phone,
		Pin:       req.Pin,
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	customer := &models.Customer{
		ID:        primitive.NewObjectID(),
		Name:      req.CompanyName,
		Email:     req.Email,
		CreatedBy: user.ID,
		Admin:     user.ID,
		Members:   []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	user.CustomerID = customer.ID

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("insert user: %v: %w", err, errs.ErrStore)
	}
	if _, err := s.customers.InsertOne(ctx, customer); err != nil {
		return nil, nil, fmt.Errorf("user %s created but customer insert failed: %v: %w", user.ID.Hex(), err, errs.ErrStore)
	}

	logging.Logger.Infof("Event ID: ADMIN_REGISTERED, Description: Admin %s registered with customer %s", user.ID.Hex(), customer.ID.Hex())
	return user, customer, nil
}

// InviteMemberRequest adds a member account under the inviter's customer.
type InviteMemberRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Pin   string `json:"pin"`
}

// InviteMember registers a member under the inviter's organization. When the
// inviter did not choose a PIN, a random 4-digit one is generated and
// returned so it can be handed to the new member.
func (s *UserService) InviteMember(ctx context.Context, req InviteMemberRequest, actor *Claims) (*models.User, string, error) {
	if req.Name == "" || req.Phone == "" {
		return nil, "", fmt.Errorf("name and phone are required: %w", errs.ErrValidation)
	}

	if err := s.users.FindOne(ctx, bson.M{"phone": req.Phone}).Err(); err == nil {
		return nil, "", fmt.Errorf("phone number already registered: %w", errs.ErrValidation)
	} else if err != mongo.ErrNoDocuments {
		return nil, "", fmt.Errorf("check phone: %v: %w", err, errs.ErrStore)
	}

	actorObjectID, err := primitive.ObjectIDFromHex(actor.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("invalid actor ID: %w", errs.ErrValidation)
	}
	customerObjectID, err := primitive.ObjectIDFromHex(actor.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("actor has no customer: %w", errs.ErrValidation)
	}

	pin := req.Pin
	if pin == "" {
		pin = utils.GeneratePin()
	}

	now := time.Now()
	user := &models.User{
		ID:         primitive.NewObjectID(),
		Name:       req.Name,
		Phone:      req.Phone,
		Pin:        pin,
		Role:       models.RoleMember,
		CustomerID: customerObjectID,
		CreatedBy:  &actorObjectID,
		UpdatedBy:  &actorObjectID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return nil, "", fmt.Errorf("insert user: %v: %w", err, errs.ErrStore)
	}

	logging.Logger.Infof("Event ID: MEMBER_INVITED, Description: Member %s invited by %s", user.ID.Hex(), actor.UserID)
	return user, pin, nil
}

// GetAllUsers returns every user. PINs never serialize: the model hides
// them.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find users: %v: %w", err, errs.ErrStore)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %v: %w", err, errs.ErrStore)
	}
	return users, nil
}

// GetUserByID returns one user.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", errs.ErrValidation)
	}

	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": userObjectID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found: %w", errs.ErrNotFound)
		}
		return nil, fmt.Errorf("load user: %v: %w", err, errs.ErrStore)
	}
	return &user, nil
}

// FindUser looks a user up by email or, failing that, phone number.
func (s *UserService) FindUser(ctx context.Context, email, phone string) (*models.User, error) {
	query := bson.M{}
	switch {
	case email != "":
		query["email"] = email
	case phone != "":
		query["phone"] = phone
	default:
		return nil, fmt.Errorf("email or phone number is required: %w", errs.ErrValidation)
	}

	var user models.User
	if err := s.users.FindOne(ctx, query).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found: %w", errs.ErrNotFound)
		}
		return nil, fmt.Errorf("find user: %v: %w", err, errs.ErrStore)
	}
	return &user, nil
}

// UserPatch holds the self-service profile fields.
type UserPatch struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Pin   *string `json:"pin"`
	Email *string `json:"email"`
}

// UpdateCurrentUser merges the supplied fields over the actor's own record.
func (s *UserService) UpdateCurrentUser(ctx context.Context, patch UserPatch, actor *Claims) error {
	actorObjectID, err := primitive.ObjectIDFromHex(actor.UserID)
	if err != nil {
		return fmt.Errorf("invalid actor ID: %w", errs.ErrValidation)
	}

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Pin != nil {
		set["pin"] = *patch.Pin
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if len(set) == 0 {
		return fmt.Errorf("no fields supplied: %w", errs.ErrNoChange)
	}
	set["updatedAt"] = time.Now()

	result, err := s.users.UpdateOne(ctx, bson.M{"_id": actorObjectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update user: %v: %w", err, errs.ErrStore)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user not found: %w", errs.ErrNotFound)
	}
	if result.ModifiedCount == 0 {
		return fmt.Errorf("no changes made to the user: %w", errs.ErrNoChange)
	}
	return nil
}

// ResetPin replaces a user's PIN. Unauthenticated recovery path; the id
// comes from the find-user flow.
func (s *UserService) ResetPin(ctx context.Context, userID, pin string) error {
	if pin == "" {
		return fmt.Errorf("pin is required: %w", errs.ErrValidation)
	}
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", errs.ErrValidation)
	}

	result, err := s.users.UpdateOne(ctx, bson.M{"_id": userObjectID}, bson.M{
		"$set": bson.M{"pin": pin, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("update pin: %v: %w", err, errs.ErrStore)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user not found: %w", errs.ErrNotFound)
	}

	logging.Logger.Infof("Event ID: PIN_RESET, Description: PIN reset for user %s", userID)
	return nil
}

// DeleteUser removes a user account.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", errs.ErrValidation)
	}

	result, err := s.users.DeleteOne(ctx, bson.M{"_id": userObjectID})
	if err != nil {
		return fmt.Errorf("delete user: %v: %w", err, errs.ErrStore)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("user not found: %w", errs.ErrNotFound)
	}

	logging.Logger.Infof("Event ID: USER_DELETED, Description: User %s deleted", userID)
	return nil
}
