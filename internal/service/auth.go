package service

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alzmate/internal/model"
	"alzmate/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles caregiver authentication
type AuthService struct {
	caregiverUsername string
	caregiverPassword string
	jwtSecret         []byte
	users             repository.UserRepo
	logger            *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepo, logger *zap.Logger) *AuthService {
	username := os.Getenv("CAREGIVER_USERNAME")
	if username == "" {
		username = "caregiver"
	}
	password := os.Getenv("CAREGIVER_PASSWORD")
	if password == "" {
		password = "password123"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}

	return &AuthService{
		caregiverUsername: username,
		caregiverPassword: password,
		jwtSecret:         []byte(secret),
		users:             users,
		logger:            logger,
	}
}

// Login validates credentials and returns a session token. The claims carry
// the caregiver's stored user ID so that alert fanout, which targets the
// caregiver IDs linked on patient documents, reaches this caregiver's live
// WebSocket connections. When no user document exists the username itself is
// used; it is stable across logins and can be linked on patients directly.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	if username != s.caregiverUsername || password != s.caregiverPassword {
		return nil, ErrInvalidCredentials
	}

	caregiverID, err := s.resolveCaregiverID(ctx, username)
	if err != nil {
		return nil, err
	}

	claims := &model.CaregiverClaims{
		CaregiverID: caregiverID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:       tokenString,
		CaregiverID: caregiverID,
	}, nil
}

func (s *AuthService) resolveCaregiverID(ctx context.Context, username string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		s.logger.Warn("no user document for caregiver, using username as caregiver id",
			zap.String("username", username))
		return username, nil
	}
	return user.ID, nil
}

// ValidateToken validates a caregiver JWT and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*model.CaregiverClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.CaregiverClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.CaregiverClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
