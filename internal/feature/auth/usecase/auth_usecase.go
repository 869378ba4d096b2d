// Package usecase implements the business logic of the auth feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"coffee_backend/internal/feature/auth/domain"
	"coffee_backend/internal/feature/auth/domain/entity"
)

const (
	MinPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

// dummyHash is compared against when the email is unknown so that login takes
// the same time either way.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type UserRepository interface {
	// Create returns domain.ErrUserAlreadyExists for a taken email.
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	Delete(ctx context.Context, id uint) error
}

type JWTGenerator interface {
	GenerateToken(userID uint, email string) (string, error)
}

// UserDataEraser removes data other features keep per user.
type UserDataEraser interface {
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
}

type SignupInput struct {
	Name        string
	Email       string
	Password    string
	AccountType string
}

type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
	erasers      []UserDataEraser
}

// NewAuthUsecase creates the auth usecase. erasers run before a user is deleted.
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator, erasers ...UserDataEraser) *authUsecase {
	return &authUsecase{users: users, jwtGenerator: jwtGenerator, erasers: erasers}
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", domain.ErrWeakPassword, MinPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: must be at most %d bytes long", domain.ErrWeakPassword, maxPasswordBytes)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a user with a bcrypt-hashed password.
func (u *authUsecase) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	accountType, ok := entity.ParseAccountType(in.AccountType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAccountType, in.AccountType)
	}
	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		AccountType:  accountType,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns a signed JWT. The bcrypt comparison
// runs even for an unknown email.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.PasswordHash
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		slog.Error("user lookup failed", "error", err)
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

func (u *authUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// ChangePassword replaces the password after verifying the current one.
func (u *authUsecase) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return domain.ErrInvalidCredentials
	}
	if err := validatePassword(next); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return u.users.UpdatePassword(ctx, userID, string(hashed))
}

// DeleteMe removes the user and everything stored for them.
func (u *authUsecase) DeleteMe(ctx context.Context, userID uint) error {
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		return err
	}
	for _, e := range u.erasers {
		n, err := e.DeleteByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("erase user data: %w", err)
		}
		slog.Info("user data erased", "user_id", userID, "rows", n)
	}
	return u.users.Delete(ctx, userID)
}
