package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"portfolio_api/internal/errs"
	"portfolio_api/internal/models"
	"portfolio_api/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = errs.Unauthorized("invalid credentials")

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      models.User
}

// AuthService handles credential checks, token issue and admin bootstrap.
type AuthService struct {
	users      repository.Users
	tokens     *TokenManager
	bcryptCost int
	admin      models.AdminCredentials

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(users repository.Users, tokens *TokenManager, bcryptCost int, admin models.AdminCredentials) *AuthService {
	if bcryptCost < bcrypt.DefaultCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost, admin: admin}
}

// Login checks email and password and returns a signed token. Unknown email
// and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errs.MissingField("email")
	}
	if password == "" {
		return nil, errs.MissingField("password")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if u == nil {
		// keep timing close to the wrong-password path
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, errInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, errInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(models.ClaimsOf(u))
	if err != nil {
		return nil, errs.Internal(err)
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: *u}, nil
}

// ParseToken verifies an access token and returns its identity.
func (s *AuthService) ParseToken(accessToken string) (models.Claims, error) {
	return s.tokens.Parse(accessToken)
}

// ResetAdmin replaces the admin account with a freshly hashed one. Empty
// arguments fall back to the configured admin credentials.
func (s *AuthService) ResetAdmin(ctx context.Context, email, password string) (*models.AdminCredentials, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		email = s.admin.Email
	}
	if password == "" {
		password = s.admin.Password
	}
	if email == "" {
		return nil, errs.MissingField("email")
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.DeleteByEmail(ctx, email); err != nil {
		return nil, errs.Internal(err)
	}
	if _, err := s.users.Create(ctx, email, hash, models.RoleAdmin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errs.Conflict("admin account was recreated concurrently")
		}
		return nil, errs.Internal(err)
	}
	return &models.AdminCredentials{Email: email, Password: password}, nil
}

// EnsureAdmin creates the configured admin if no user holds its email.
func (s *AuthService) EnsureAdmin(ctx context.Context) (bool, error) {
	u, err := s.users.GetByEmail(ctx, s.admin.Email)
	if err != nil {
		return false, fmt.Errorf("look up admin: %w", err)
	}
	if u != nil {
		return false, nil
	}

	hash, err := s.hashPassword(s.admin.Password)
	if err != nil {
		return false, err
	}
	if _, err := s.users.Create(ctx, s.admin.Email, hash, models.RoleAdmin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}

func (s *AuthService) hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errs.MissingField("password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", errs.InvalidField("password", "too long")
		}
		return "", errs.Internal(fmt.Errorf("hash password: %w", err))
	}
	return string(hash), nil
}

// dummy returns a hash of a random secret, computed on first use.
func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.bcryptCost)
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
