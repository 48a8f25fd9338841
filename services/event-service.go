package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/UtopicUnicorn995/teamstarAPI/db"
	"github.com/UtopicUnicorn995/teamstarAPI/errs"
	"github.com/UtopicUnicorn995/teamstarAPI/logging"
	"github.com/UtopicUnicorn995/teamstarAPI/models"
)

type EventService struct {
	events   *mongo.Collection
	users    *mongo.Collection
	notifier *NotificationService
}

func NewEventService(store *db.Store, notifier *NotificationService) *EventService {
	return &EventService{
		events:   store.Events,
		users:    store.Users,
		notifier: notifier,
	}
}

type CreateEventRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	EventDate      *time.Time `json:"eventDate"`
	EventStartTime string     `json:"eventStartTime"`
	EventEndTime   string     `json:"eventEndTime"`
	CustomerID     string     `json:"customer_id"`
	Location       string     `json:"location"`
	Members        []string   `json:"members"`
}

// parseClock reads an "HH:MM" string into minutes since midnight.
func parseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("time %q is not HH:MM", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("time %q is not HH:MM", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("time %q is not HH:MM", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range", value)
	}
	return hour*60 + minute, nil
}

// validateEventWindow checks that the start clock reading precedes the end.
func validateEventWindow(start, end string) error {
	startMinutes, err := parseClock(start)
	if err != nil {
		return fmt.Errorf("%v: %w", err, errs.ErrValidation)
	}
	endMinutes, err := parseClock(end)
	if err != nil {
		return fmt.Errorf("%v: %w", err, errs.ErrValidation)
	}
	if startMinutes >= endMinutes {
		return fmt.Errorf("event start time must be before the end time: %w", errs.ErrValidation)
	}
	return nil
}

// CreateEvent validates the time window and the invited member ids, then
// inserts the event.
func (s *EventService) CreateEvent(ctx context.Context, req CreateEventRequest, actor *Claims) (*models.Event, error) {
	if req.EventStartTime == "" {
		req.EventStartTime = "8:00"
	}
	if req.EventEndTime == "" {
		req.EventEndTime = "9:00"
	}
	if err := validateEventWindow(req.EventStartTime, req.EventEndTime); err != nil {
		return nil, err
	}

	customerObjectID, err := resolveCustomerID(req.CustomerID, actor)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]primitive.ObjectID, 0, len(req.Members))
	for _, id := range req.Members {
		memberID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("invalid member ID format: %w", errs.ErrValidation)
		}
		memberIDs = append(memberIDs, memberID)
	}

	// Every invited member must exist; a dangling id would leave the mobile
	// calendar with ghosts.
	if len(memberIDs) > 0 {
		count, err := s.users.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": memberIDs}})
		if err != nil {
			return nil, fmt.Errorf("validate members: %v: %w", err, errs.ErrStore)
		}
		if count != int64(len(memberIDs)) {
			return nil, fmt.Errorf("some members are invalid or not associated with this customer: %w", errs.ErrValidation)
		}
	}

	eventDate := time.Now()
	if req.EventDate != nil {
		eventDate = *req.EventDate
	}

	event := &models.Event{
		ID:             primitive.NewObjectID(),
		CustomerID:     customerObjectID,
		Title:          req.Title,
		Description:    req.Description,
		EventDate:      eventDate,
		EventStartTime: req.EventStartTime,
		EventEndTime:   req.EventEndTime,
		Location:       req.Location,
		Members:        memberIDs,
	}

	if _, err := s.events.InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("insert event: %v: %w", err, errs.ErrStore)
	}

	s.notifier.Notify(ctx, "event_created", event.ID.Hex(), event.Title)

	logging.Logger.Infof("Event ID: EVENT_CREATED, Description: Event %s created for customer %s", event.ID.Hex(), customerObjectID.Hex())
	return event, nil
}
