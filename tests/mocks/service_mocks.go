package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/welldanyogia/recipe-api-backend/internal/models"
	"github.com/welldanyogia/recipe-api-backend/internal/services"
)

// MockUserService implements services.UserService
type MockUserService struct {
	mock.Mock
}

// CreateUser creates a user
func (m *MockUserService) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// CreateSuperuser creates a superuser
func (m *MockUserService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// CheckPassword compares a raw password with the stored hash
func (m *MockUserService) CheckPassword(user *models.User, raw string) bool {
	args := m.Called(user, raw)
	return args.Bool(0)
}

// Authenticate resolves a user from credentials
func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// UpdateProfile applies a partial profile update
func (m *MockUserService) UpdateProfile(ctx context.Context, user *models.User, update services.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, user, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// GetUser retrieves a user by ID
func (m *MockUserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// ListUsers retrieves all users
func (m *MockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockTokenService implements services.TokenService
type MockTokenService struct {
	mock.Mock
}

// Issue signs a token for the user
func (m *MockTokenService) Issue(user *models.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// Verify resolves a token to a user ID
func (m *MockTokenService) Verify(token string) (uint, error) {
	args := m.Called(token)
	return args.Get(0).(uint), args.Error(1)
}
