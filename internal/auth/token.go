package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTTokenService signs and verifies HS256 tokens with a single process-wide
// secret and a fixed lifetime.
type JWTTokenService struct {
	Secret   []byte
	TokenTTL time.Duration
}

func NewJWTTokenService(secret string, ttl time.Duration) *JWTTokenService {
	return &JWTTokenService{
		Secret:   []byte(secret),
		TokenTTL: ttl,
	}
}

// Issue encodes the user's identity plus the password-changed flag. The flag
// in the token is a hint only; the session middleware always re-reads it from
// the store.
func (j *JWTTokenService) Issue(user *User) (string, error) {
	now := time.Now()
	userID := strconv.FormatInt(user.ID, 10)

	claims := &Claims{
		UserID:            userID,
		Email:             user.Email,
		Role:              user.Role.String(),
		InstitutionID:     user.InstitutionID,
		IsPasswordChanged: user.IsPasswordChanged,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify parses and validates a token. A token signed with any non-HMAC
// algorithm is rejected before signature verification, so an attacker cannot
// substitute the algorithm.
func (j *JWTTokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
