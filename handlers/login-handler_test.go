package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/UtopicUnicorn995/teamstarAPI/errs"
	"github.com/UtopicUnicorn995/teamstarAPI/models"
)

type stubAuthenticator struct {
	token string
	err   error
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, phone, pin string) (models.User, string, error) {
	return models.User{Phone: phone}, s.token, s.err
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		auth       *stubAuthenticator
		wantStatus int
		wantToken  string
	}{
		{
			name:       "valid credentials",
			body:       `{"phone":"0612345678","pin":"1234"}`,
			auth:       &stubAuthenticator{token: "token-abc"},
			wantStatus: http.StatusOK,
			wantToken:  "token-abc",
		},
		{
			name:       "unknown phone",
			body:       `{"phone":"0600000000","pin":"1234"}`,
			auth:       &stubAuthenticator{err: fmt.Errorf("user not found: %w", errs.ErrNotFound)},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrong pin",
			body:       `{"phone":"0612345678","pin":"9999"}`,
			auth:       &stubAuthenticator{err: fmt.Errorf("invalid pin: %w", errs.ErrForbidden)},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "malformed body",
			body:       `{"phone":`,
			auth:       &stubAuthenticator{token: "token-abc"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			handler := NewLoginHandler(test.auth)

			r := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(test.body))
			w := httptest.NewRecorder()

			handler.Login(w, r)

			if w.Code != test.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, test.wantStatus)
			}
			if test.wantStatus != http.StatusOK {
				if strings.Contains(w.Body.String(), "token-abc") {
					t.Errorf("failed login leaked an access token: %s", w.Body.String())
				}
				return
			}

			var resp LoginResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.AccessToken != test.wantToken {
				t.Errorf("accessToken = %q, want %q", resp.AccessToken, test.wantToken)
			}
		})
	}
}
