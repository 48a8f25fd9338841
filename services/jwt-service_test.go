package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UtopicUnicorn995/teamstarAPI/errs"
	"github.com/UtopicUnicorn995/teamstarAPI/models"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	user := models.User{
		ID:         primitive.NewObjectID(),
		Role:       models.RoleSupervisor,
		CustomerID: primitive.NewObjectID(),
	}

	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != user.ID.Hex() {
		t.Errorf("UserID = %s, want %s", claims.UserID, user.ID.Hex())
	}
	if claims.Role != models.RoleSupervisor {
		t.Errorf("Role = %s, want supervisor", claims.Role)
	}
	if claims.CustomerID != user.CustomerID.Hex() {
		t.Errorf("CustomerID = %s, want %s", claims.CustomerID, user.CustomerID.Hex())
	}
}

func TestValidateTokenRejectsBadInput(t *testing.T) {
	svc := NewJWTService("test-secret")

	user := models.User{ID: primitive.NewObjectID(), Role: models.RoleMember}

	goodToken, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: user.ID.Hex(),
		Role:   models.RoleMember,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredToken, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}

	otherSvc := NewJWTService("different-secret")

	tests := []struct {
		name  string
		svc   *JWTService
		token string
	}{
		{"garbage", svc, "not-a-token"},
		{"empty", svc, ""},
		{"wrong secret", otherSvc, goodToken},
		{"expired", svc, expiredToken},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := test.svc.ValidateToken(test.token)
			if err == nil {
				t.Fatal("ValidateToken succeeded, want error")
			}
			if !errors.Is(err, errs.ErrForbidden) {
				t.Errorf("error = %v, want ErrForbidden", err)
			}
		})
	}
}
