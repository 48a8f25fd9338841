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

type CustomerService struct {
	customers *mongo.Collection
}

func NewCustomerService(store *db.Store) *CustomerService {
	return &CustomerService{customers: store.Customers}
}

// CreateCustomerRequest names a new organization. The actor becomes both
// creator and admin reference.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest, actor *Claims) (*models.Customer, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required: %w", errs.ErrValidation)
	}
	if req.Email == "" {
		return nil, fmt.Errorf("email is required: %w", errs.ErrValidation)
	}

	actorObjectID, err := primitive.ObjectIDFromHex(actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor ID: %w", errs.ErrValidation)
	}

	now := time.Now()
	customer := &models.Customer{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		CreatedBy: actorObjectID,
		Admin:     actorObjectID,
		Members:   []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.customers.InsertOne(ctx, customer); err != nil {
		return nil, fmt.Errorf("insert customer: %v: %w", err, errs.ErrStore)
	}

	logging.Logger.Infof("Event ID: CUSTOMER_CREATED, Description: Customer %s created by %s", customer.ID.Hex(), actor.UserID)
	return customer, nil
}

func (s *CustomerService) GetAllCustomers(ctx context.Context) ([]models.Customer, error) {
	cursor, err := s.customers.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find customers: %v: %w", err, errs.ErrStore)
	}
	defer cursor.Close(ctx)

	customers := []models.Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("decode customers: %v: %w", err, errs.ErrStore)
	}
	return customers, nil
}

func (s *CustomerService) GetCustomerByID(ctx context.Context, customerID string) (*models.Customer, error) {
	customerObjectID, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format: %w", errs.ErrValidation)
	}

	var customer models.Customer
	if err := s.customers.FindOne(ctx, bson.M{"_id": customerObjectID}).Decode(&customer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("customer not found: %w", errs.ErrNotFound)
		}
		return nil, fmt.Errorf("load customer: %v: %w", err, errs.ErrStore)
	}
	return &customer, nil
}

// GetCustomersByCreator lists customers created by one user.
func (s *CustomerService) GetCustomersByCreator(ctx context.Context, userID string) ([]models.Customer, error) {
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", errs.ErrValidation)
	}

	cursor, err := s.customers.Find(ctx, bson.M{"created_by": userObjectID})
	if err != nil {
		return nil, fmt.Errorf("find customers: %v: %w", err, errs.ErrStore)
	}
	defer cursor.Close(ctx)

	customers := []models.Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("decode customers: %v: %w", err, errs.ErrStore)
	}
	return customers, nil
}
