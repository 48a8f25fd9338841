package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/UtopicUnicorn995/teamstarAPI/errs"
	"github.com/UtopicUnicorn995/teamstarAPI/models"
)

// Claims is the signed identity a request carries: who, which role, which
// organization. Everything downstream trusts these three fields instead of
// re-reading the user document.
type Claims struct {
	UserID     string      `json:"user_id"`
	Role       models.Role `json:"role"`
	CustomerID string      `json:"customer_id"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService builds the token service. Tokens expire after one hour,
// uniformly for every caller.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    time.Hour,
	}
}

// GenerateAccessToken signs an HS256 token for the given user.
func (s *JWTService) GenerateAccessToken(user models.User) (string, error) {
	claims := &Claims{
		UserID:     user.ID.Hex(),
		Role:       user.Role,
		CustomerID: user.CustomerID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses and verifies a token string. A bad signature, a wrong
// algorithm or an expired token all come back as ErrForbidden; the caller
// presented a credential, it just is not usable.
func (s *JWTService) ValidateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", errs.ErrForbidden)
	}
	return claims, nil
}
