package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"devconnector/internal/config"
	"devconnector/internal/model"
)

// AuthService hashes credentials and issues/verifies session tokens.
// Tokens are stateless: a signed claims blob with an expiry, nothing persisted.
type AuthService struct {
	config *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{config: cfg}
}

// HashPassword derives a salted one-way hash. bcrypt salts per call, so the
// same plaintext yields a different hash every time.
func (s *AuthService) HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func (s *AuthService) CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// IssueToken signs a session token carrying the user identifier.
// TTL is config.TokenMaxAge seconds.
func (s *AuthService) IssueToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user": map[string]interface{}{
			"id": userID,
		},
		"exp": now.Add(time.Duration(s.config.TokenMaxAge) * time.Second).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature and expiry and returns the user id claim.
// Every failure mode collapses to model.ErrInvalidToken.
func (s *AuthService) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, model.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, model.ErrInvalidToken
	}

	userClaim, ok := claims["user"].(map[string]interface{})
	if !ok {
		return 0, model.ErrInvalidToken
	}

	idFloat, ok := userClaim["id"].(float64)
	if !ok {
		return 0, model.ErrInvalidToken
	}

	return int64(idFloat), nil
}
