package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rxtrack/rxtrack-api/internal/domain"
	"github.com/rxtrack/rxtrack-api/pkg/auth"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

type AuthService struct {
	userRepo   UserRepository
	jwtManager *auth.JWTManager
	log        *zap.Logger
}

func NewAuthService(userRepo UserRepository, jwtManager *auth.JWTManager, log *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, jwtManager: jwtManager, log: log}
}

// Login verifies a username/password pair. Unknown usernames and wrong
// passwords collapse into the same error so the response never reveals
// which factor failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// Burn a bcrypt round anyway so response timing does not reveal
		// whether the username exists.
		_, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("failed login attempt", zap.String("username", username))
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(&domain.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		s.log.Error("failed to generate access token", zap.Error(err))
		return nil, "", err
	}

	s.log.Info("user logged in", zap.String("username", username))
	return user, token, nil
}
