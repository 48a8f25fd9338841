package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UtopicUnicorn995/teamstarAPI/models"
	"github.com/UtopicUnicorn995/teamstarAPI/services"
)

func TestAuth(t *testing.T) {
	jwtService := services.NewJWTService("test-secret")

	user := models.User{
		ID:         primitive.NewObjectID(),
		Role:       models.RoleAdmin,
		CustomerID: primitive.NewObjectID(),
	}
	token, err := jwtService.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	var gotClaims *services.Claims
	handler := Auth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r)
		if !ok {
			t.Error("claims missing from request context")
		}
		gotClaims = claims
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"no bearer prefix", token, http.StatusUnauthorized},
		{"garbage token", "Bearer garbage", http.StatusForbidden},
		{"wrong secret", "Bearer " + mustToken(t, "other-secret", user), http.StatusForbidden},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gotClaims = nil
			r := httptest.NewRequest(http.MethodGet, "/api/getAllTasks", nil)
			if test.authHeader != "" {
				r.Header.Set("Authorization", test.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			if w.Code != test.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, test.wantStatus)
			}
			if test.wantStatus == http.StatusOK {
				if gotClaims == nil {
					t.Fatal("handler ran without claims")
				}
				if gotClaims.UserID != user.ID.Hex() {
					t.Errorf("claims UserID = %s, want %s", gotClaims.UserID, user.ID.Hex())
				}
				if gotClaims.Role != models.RoleAdmin {
					t.Errorf("claims Role = %s, want admin", gotClaims.Role)
				}
			}
		})
	}
}

func mustToken(t *testing.T, secret string, user models.User) string {
	t.Helper()
	token, err := services.NewJWTService(secret).GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	return token
}

// TestDeadlineCoversWholeRouterTree wires Deadline the way main does, on
// the root router, and checks that both a directly registered route and a
// subrouter route see a bounded context. Login and the other open routes
// must not escape the deadline just because they sit outside the
// authenticated subrouter.
func TestDeadlineCoversWholeRouterTree(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Deadline(time.Second))

	requireDeadline := func(w http.ResponseWriter, req *http.Request) {
		if _, ok := req.Context().Deadline(); !ok {
			t.Errorf("%s reached its handler without a context deadline", req.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}

	r.HandleFunc("/api/login", requireDeadline).Methods(http.MethodPost)
	sub := r.PathPrefix("/api").Subrouter()
	sub.HandleFunc("/getAllTasks", requireDeadline).Methods(http.MethodGet)

	for _, request := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/api/login", nil),
		httptest.NewRequest(http.MethodGet, "/api/getAllTasks", nil),
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, request)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", request.URL.Path, w.Code)
		}
	}
}

func TestDeadline(t *testing.T) {
	handler := Deadline(50 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok := r.Context().Deadline()
		if !ok {
			t.Error("request context has no deadline")
		}
		if time.Until(deadline) > 50*time.Millisecond {
			t.Errorf("deadline %v further out than configured timeout", time.Until(deadline))
		}
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
