package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret       []byte
	expiryInSecs int64
}

func NewTokenService(secret string, expiryInSecs int64) *TokenService {
	return &TokenService{
		secret:       []byte(secret),
		expiryInSecs: expiryInSecs,
	}
}

// GenerateToken issues a signed token embedding the user id and role.
func (ts *TokenService) GenerateToken(userID uuid.UUID, role string) (string, error) {
	now := time.Now()

	claims := &TokenClaims{
		UserID: userID.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ts.expiryInSecs) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		claims,
	)

	tokenStr, err := token.SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenStr, nil
}

// ValidateToken reports whether tokenStr carries a valid signature and has
// not expired, returning the decoded claims when it is valid.
func (ts *TokenService) ValidateToken(tokenStr string) (isValid bool, claims *TokenClaims, err error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&TokenClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf(
					"unexpected token signing method: %v",
					t.Header["alg"],
				)
			}

			return ts.secret, nil
		},
	)
	if err != nil {
		return false, nil, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return false, nil, nil
	}

	return true, claims, nil
}
