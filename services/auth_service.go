package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
	"github.com/Dosada05/league-api/validation"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, input LoginInput) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.TokenRepository
}

func NewAuthService(userRepo repositories.UserRepository, tokenRepo repositories.TokenRepository) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// Register creates the user and immediately issues a token, as if login had
// succeeded.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	if err := validation.Struct(input); err != nil {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, "", ErrAuthEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Login never reveals which of email/password was wrong.
func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, string, error) {
	if err := validation.Struct(input); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", ErrAuthInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, "", ErrAuthInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to compare password hash: %w", err)
	}

	// Tokens are additive: a fresh login never invalidates earlier tokens.
	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Logout revokes exactly the presented token.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrAuthenticationFailed
	}
	err := s.tokenRepo.DeleteByHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return ErrAuthenticationFailed
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to its user. Missing, malformed and
// revoked tokens are indistinguishable to the caller.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrAuthenticationFailed
	}

	hash := hashToken(token)
	user, err := s.tokenRepo.GetUserByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}

	// Best effort; auth must not fail on bookkeeping.
	_ = s.tokenRepo.Touch(ctx, hash)

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) issueToken(ctx context.Context, userID int) (string, error) {
	plaintext, err := generateToken(tokenLength)
	if err != nil {
		return "", err
	}

	accessToken := &models.AccessToken{
		UserID:    userID,
		TokenHash: hashToken(plaintext),
	}
	if err := s.tokenRepo.Create(ctx, accessToken); err != nil {
		return "", fmt.Errorf("failed to store access token: %w", err)
	}
	return plaintext, nil
}

const (
	tokenLength  = 40
	tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func generateToken(length int) (string, error) {
	randomBytes := make([]byte, length)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	b := make([]byte, length)
	for i, rb := range randomBytes {
		b[i] = tokenCharset[int(rb)%len(tokenCharset)]
	}
	return string(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
