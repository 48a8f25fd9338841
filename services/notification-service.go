package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/UtopicUnicorn995/teamstarAPI/logging"
)

// NotificationService pushes events to the mobile push gateway. The gateway
// is flaky under load, so every call goes through a circuit breaker and no
// caller treats a failure as fatal.
type NotificationService struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	url     string
}

func NewNotificationService(client *http.Client, breaker *gobreaker.CircuitBreaker, url string) *NotificationService {
	return &NotificationService{
		client:  client,
		breaker: breaker,
		url:     url,
	}
}

type notificationPayload struct {
	Kind  string `json:"kind"`
	RefID string `json:"refId"`
	Title string `json:"title"`
}

// Notify posts one event to the gateway and reports whether it was
// delivered. A disabled gateway (empty URL), an open breaker or a non-2xx
// response all come back as false; the event is logged and dropped.
func (s *NotificationService) Notify(ctx context.Context, kind, refID, title string) bool {
	if s == nil || s.url == "" {
		return false
	}

	body, err := json.Marshal(notificationPayload{Kind: kind, RefID: refID, Title: title})
	if err != nil {
		logging.Logger.Errorf("Event ID: NOTIFICATION_ENCODE_FAILED, Description: Could not encode %s notification for %s: %v", kind, refID, err)
		return false
	}

	_, err = s.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("notification gateway returned %s", resp.Status)
		}
		return nil, nil
	})
	if err != nil {
		logging.Logger.Warnf("Event ID: NOTIFICATION_FAILED, Description: %s notification for %s not delivered: %v", kind, refID, err)
		return false
	}

	return true
}
