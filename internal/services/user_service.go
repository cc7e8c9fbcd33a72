package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/welldanyogia/recipe-api-backend/internal/errors"
	"github.com/welldanyogia/recipe-api-backend/internal/models"
	"github.com/welldanyogia/recipe-api-backend/internal/repository"
	"github.com/welldanyogia/recipe-api-backend/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceConfig holds configuration for the user service
type UserServiceConfig struct {
	// BcryptCost is the hashing cost; zero means bcrypt.DefaultCost
	BcryptCost int
}

// ProfileUpdate carries the optional fields of a profile update.
// Nil fields are left unchanged.
type ProfileUpdate struct {
	Name     *string
	Password *string
}

// UserService defines account management operations
type UserService interface {
	// CreateUser creates an active account with a normalized email and hashed password
	CreateUser(ctx context.Context, email, password, name string) (*models.User, error)

	// CreateSuperuser creates an account with staff and superuser flags set
	CreateSuperuser(ctx context.Context, email, password string) (*models.User, error)

	// CheckPassword reports whether raw matches the stored hash
	CheckPassword(user *models.User, raw string) bool

	// Authenticate resolves an active user from credentials
	Authenticate(ctx context.Context, email, password string) (*models.User, error)

	// UpdateProfile applies a partial update to the user's own account
	UpdateProfile(ctx context.Context, user *models.User, update ProfileUpdate) (*models.User, error)

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id uint) (*models.User, error)

	// ListUsers retrieves all accounts
	ListUsers(ctx context.Context) ([]models.User, error)
}

// userService implements UserService
type userService struct {
	repo repository.UserRepository
	cost int

	// dummyHash is compared against on unknown emails so every login attempt costs one bcrypt check
	dummyHash []byte
}

// NewUserService creates a new UserService instance
func NewUserService(repo repository.UserRepository, config UserServiceConfig) UserService {
	cost := config.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("recipe-api-dummy-password"), cost)
	if err != nil {
		// only reachable with a cost outside bcrypt's range
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("recipe-api-dummy-password"), bcrypt.DefaultCost)
	}
	return &userService{
		repo:      repo,
		cost:      cost,
		dummyHash: dummyHash,
	}
}

// CreateUser creates a new active user
func (s *userService) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	return s.create(ctx, email, password, name, false)
}

// CreateSuperuser creates a new staff superuser
func (s *userService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	return s.create(ctx, email, password, "", true)
}

func (s *userService) create(ctx context.Context, email, password, name string, superuser bool) (*models.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationError("email", "email is required")
	}
	if err := validator.ValidateEmail(email); err != nil {
		return nil, apperrors.NewValidationError("email", "enter a valid email address")
	}
	if err := checkPassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:       validator.NormalizeEmail(email),
		Password:    hash,
		Name:        strings.TrimSpace(name),
		IsActive:    true,
		IsStaff:     superuser,
		IsSuperuser: superuser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func checkPassword(password string) error {
	if err := validator.ValidatePassword(password); err != nil {
		return apperrors.NewValidationError("password",
			fmt.Sprintf("password must be at least %d characters", validator.MinPasswordLength))
	}
	return nil
}

func (s *userService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.NewValidationError("password", "password is too long")
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares raw against the stored bcrypt hash
func (s *userService) CheckPassword(user *models.User, raw string) bool {
	if user == nil || user.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(raw)) == nil
}

// Authenticate returns ErrUnauthorized for unknown emails, wrong passwords and inactive accounts
func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, validator.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !s.CheckPassword(user, password) || !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// UpdateProfile updates name and/or password; the password is re-hashed
func (s *userService) UpdateProfile(ctx context.Context, user *models.User, update ProfileUpdate) (*models.User, error) {
	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Password != nil {
		if err := checkPassword(*update.Password); err != nil {
			return nil, err
		}
		hash, err := s.hash(*update.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all users ordered by email
func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
