package auth

import (
	"context"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/simp-lee/jwt"

	"github.com/simp-lee/svcadmin/internal/domain"
)

// Service defines the authentication operations.
type Service interface {
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	Register(ctx context.Context, name, email, password string) (*domain.Admin, error)
	Me(ctx context.Context, id uint) (*domain.Admin, error)
	Logout(ctx context.Context, token string) error
}

// authService implements Service.
type authService struct {
	jwtSvc      jwt.Service
	adminRepo   domain.AdminRepository
	tokenExpiry time.Duration
}

// NewService creates a new auth Service.
func NewService(jwtSvc jwt.Service, adminRepo domain.AdminRepository, tokenExpiry time.Duration) Service {
	return &authService{
		jwtSvc:      jwtSvc,
		adminRepo:   adminRepo,
		tokenExpiry: tokenExpiry,
	}
}

// Login authenticates an admin by email and password and returns a JWT.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		// Don't reveal whether the account exists.
		if domain.IsNotFound(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.jwtSvc.GenerateToken(strconv.FormatUint(uint64(admin.ID), 10), nil, s.tokenExpiry)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to generate token", err)
	}

	parsed, err := s.jwtSvc.ParseToken(token)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to parse generated token", err)
	}

	return &TokenResponse{
		Token:     token,
		ExpiresAt: parsed.ExpiresAt.Unix(),
	}, nil
}

// validateRegisterInput validates registration input. name and email are expected
// to be pre-trimmed by callers; TrimSpace here ensures the validator is self-contained.
func validateRegisterInput(name, email, password string) error {
	nameLen := utf8.RuneCountInString(strings.TrimSpace(name))
	if nameLen == 0 {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if nameLen > 100 {
		return domain.NewAppError(domain.CodeValidation, "name must not exceed 100 characters", nil)
	}
	trimmedEmail := strings.TrimSpace(email)
	if len(trimmedEmail) == 0 {
		return domain.NewAppError(domain.CodeValidation, "email is required", nil)
	}
	addr, err := mail.ParseAddress(trimmedEmail)
	if err != nil || addr.Name != "" || addr.Address != trimmedEmail {
		return domain.NewAppError(domain.CodeValidation, "email must be a valid email address", nil)
	}
	if len(password) < 8 {
		return domain.NewAppError(domain.CodeValidation, "password must be at least 8 characters", nil)
	}
	if len(password) > 72 {
		return domain.NewAppError(domain.CodeValidation, "password must not exceed 72 characters", nil)
	}
	return nil
}

// Register creates a new admin account with the given credentials.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.Admin, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if err := validateRegisterInput(name, email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
	}

	admin := domain.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.adminRepo.Create(ctx, &admin); err != nil {
		if domain.IsAlreadyExists(err) {
			return nil, domain.NewAppError(domain.CodeAlreadyExists, "email already registered", err)
		}
		return nil, err
	}

	return &admin, nil
}

// Me returns the account behind an authenticated request.
func (s *authService) Me(ctx context.Context, id uint) (*domain.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if domain.IsNotFound(err) {
		return nil, domain.ErrUnauthorized
	}
	return admin, err
}

// Logout revokes token.
func (s *authService) Logout(_ context.Context, token string) error {
	if err := s.jwtSvc.RevokeToken(token); err != nil {
		return domain.NewAppError(domain.CodeUnauthorized, "invalid token", err)
	}
	return nil
}
