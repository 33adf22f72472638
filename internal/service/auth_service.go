package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kawanlib/internal/model"
	"kawanlib/internal/repository"
	"kawanlib/internal/utils"
)

var (
	ErrUsernameTaken     = errors.New("username already taken")
	ErrUserNotFound      = errors.New("username not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrInvalidSession    = errors.New("invalid or expired session")
)

// AuthService provides authentication related services
type AuthService interface {
	// Signup creates a self-service account. The account gets the lowest
	// privilege role and starts unverified.
	Signup(ctx context.Context, req model.SignupRequest) (*model.User, error)
	// Login verifies credentials and issues both tokens. The refresh token
	// is persisted on the user row, superseding any previous session.
	Login(ctx context.Context, username, password string) (*model.User, string, string, error)
	// Verify re-derives a fresh access token from a valid refresh token.
	// The refresh token itself is not rotated.
	Verify(ctx context.Context, refreshToken string) (*model.User, string, error)
	// Logout invalidates the stored refresh token.
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo repository.UserRepository
	issuer   *utils.TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, issuer *utils.TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

func (s *authService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	existingUser, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hashedPassword,
		Role:         model.RoleUser,
		Verified:     false,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", "", fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return nil, "", "", ErrUserNotFound
	}

	// A malformed stored hash verifies false, indistinguishable from a
	// wrong password.
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", "", ErrIncorrectPassword
	}

	accessToken, err := s.issuer.GenerateAccessToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.issuer.GenerateRefreshToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// Single active session per user: overwrite any previous token.
	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, "", "", fmt.Errorf("failed to persist refresh token: %w", err)
	}
	user.RefreshToken = &refreshToken

	return user, accessToken, refreshToken, nil
}

func (s *authService) Verify(ctx context.Context, refreshToken string) (*model.User, string, error) {
	// The stored-token match is what makes logout effective even though
	// refresh tokens are self-contained signed tokens.
	user, err := s.userRepo.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by refresh token: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidSession
	}

	if _, err := s.issuer.ValidateRefreshToken(refreshToken); err != nil {
		return nil, "", ErrInvalidSession
	}

	accessToken, err := s.issuer.GenerateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return user, accessToken, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	user, err := s.userRepo.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("error finding user by refresh token: %w", err)
	}
	if user == nil {
		// A second logout finds no matching row; reported as a failed
		// lookup rather than a crash.
		return ErrInvalidSession
	}

	if err := s.userRepo.ClearRefreshToken(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}
