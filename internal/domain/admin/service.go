package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tigermarine/internal/pkg/jwt"
)

const RoleAdmin = "admin"

type Service struct {
	repo AdminRepository
	jwt  *jwt.Service
	log  *zap.Logger
}

func NewService(repo AdminRepository, jwtService *jwt.Service, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, jwt: jwtService, log: log}
}

// EnsureAdmin creates the account unless one with the same email exists.
// It reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, errors.New("email is required")
	}
	if password == "" {
		return false, ErrPasswordRequired
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		s.log.Info("admin already exists, skipping", zap.String("email", email))
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	admin := &AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
		Role:         RoleAdmin,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	s.log.Info("admin created", zap.Uint("id", admin.ID), zap.String("email", email))
	return true, nil
}

// Login checks the password and returns a signed token. Unknown emails and
// wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, *AdminUser, error) {
	admin, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		return "", nil, ErrAccountDisabled
	}

	token, err := s.jwt.GenerateToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	if err := s.repo.TouchLogin(ctx, admin.ID, now); err != nil {
		s.log.Warn("record last login", zap.Uint("id", admin.ID), zap.Error(err))
	} else {
		admin.LastLoginAt = &now
	}
	return token, admin, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
