package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/UtopicUnicorn995/teamstarAPI/db"
	"github.com/UtopicUnicorn995/teamstarAPI/errs"
	"github.com/UtopicUnicorn995/teamstarAPI/logging"
	"github.com/UtopicUnicorn995/teamstarAPI/models"
)

type ReportService struct {
	reports *mongo.Collection
}

func NewReportService(store *db.Store) *ReportService {
	return &ReportService{reports: store.Reports}
}

type CreateReportRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CustomerID  string `json:"customer_id"`
	Recipient   string `json:"recipient"`
}

// CreateReport files a report from the actor to a recipient. Status always
// starts pending.
func (s *ReportService) CreateReport(ctx context.Context, req CreateReportRequest, actor *Claims) (*models.Report, error) {
	switch {
	case req.Title == "":
		return nil, fmt.Errorf("report title is required: %w", errs.ErrValidation)
	case req.Description == "":
		return nil, fmt.Errorf("report description is required: %w", errs.ErrValidation)
	case req.Recipient == "":
		return nil, fmt.Errorf("report recipient is required: %w", errs.ErrValidation)
	}

	actorObjectID, err := primitive.ObjectIDFromHex(actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor ID: %w", errs.ErrValidation)
	}
	recipientObjectID, err := primitive.ObjectIDFromHex(req.Recipient)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient ID format: %w", errs.ErrValidation)
	}
	customerObjectID, err := resolveCustomerID(req.CustomerID, actor)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		ID:          primitive.NewObjectID(),
		UserID:      actorObjectID,
		Title:       req.Title,
		Description: req.Description,
		CustomerID:  customerObjectID,
		Recipient:   recipientObjectID,
		Status:      models.ReportPending,
	}

	if _, err := s.reports.InsertOne(ctx, report); err != nil {
		return nil, fmt.Errorf("insert report: %v: %w", err, errs.ErrStore)
	}

	logging.Logger.Infof("Event ID: REPORT_CREATED, Description: Report %s filed by %s", report.ID.Hex(), actor.UserID)
	return report, nil
}

func (s *ReportService) GetAllReports(ctx context.Context) ([]models.Report, error) {
	return s.findReports(ctx, bson.M{})
}

func (s *ReportService) GetReportByID(ctx context.Context, reportID string) (*models.Report, error) {
	reportObjectID, err := primitive.ObjectIDFromHex(reportID)
	if err != nil {
		return nil, fmt.Errorf("invalid report ID format: %w", errs.ErrValidation)
	}

	var report models.Report
	if err := s.reports.FindOne(ctx, bson.M{"_id": reportObjectID}).Decode(&report); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("report not found: %w", errs.ErrNotFound)
		}
		return nil, fmt.Errorf("load report: %v: %w", err, errs.ErrStore)
	}
	return &report, nil
}

func (s *ReportService) GetReportsByCustomer(ctx context.Context, customerID string) ([]models.Report, error) {
	customerObjectID, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format: %w", errs.ErrValidation)
	}
	return s.findReports(ctx, bson.M{"customer_id": customerObjectID})
}

func (s *ReportService) DeleteReport(ctx context.Context, reportID string) error {
	reportObjectID, err := primitive.ObjectIDFromHex(reportID)
	if err != nil {
		return fmt.Errorf("invalid report ID format: %w", errs.ErrValidation)
	}

	result, err := s.reports.DeleteOne(ctx, bson.M{"_id": reportObjectID})
	if err != nil {
		return fmt.Errorf("delete report: %v: %w", err, errs.ErrStore)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("report not found: %w", errs.ErrNotFound)
	}
	return nil
}

func (s *ReportService) findReports(ctx context.Context, filter bson.M) ([]models.Report, error) {
	cursor, err := s.reports.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find reports: %v: %w", err, errs.ErrStore)
	}
	defer cursor.Close(ctx)

	reports := []models.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("decode reports: %v: %w", err, errs.ErrStore)
	}
	return reports, nil
}
