package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/welldanyogia/recipe-api-backend/internal/errors"
	"github.com/welldanyogia/recipe-api-backend/internal/models"
	"github.com/welldanyogia/recipe-api-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestUserService(repo *MockUserRepository) UserService {
	return NewUserService(repo, UserServiceConfig{BcryptCost: bcrypt.MinCost})
}

func hashedUser(t *testing.T, email, password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{ID: 1, Email: email, Password: string(hash), IsActive: true}
}

func TestCreateUser_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestUserService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "test@example.com" &&
			u.IsActive &&
			!u.IsStaff &&
			!u.IsSuperuser &&
			u.Password != "test123"
	})).Return(nil)

	user, err := service.CreateUser(context.Background(), "test@example.com", "test123", "Test Name")

	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "Test Name", user.Name)
	assert.True(t, service.CheckPassword(user, "test123"))
	assert.False(t, service.CheckPassword(user, "wrong"))
	mockRepo.AssertExpectations(t)
}

func TestCreateUser_NormalizesEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestUserService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, err := service.CreateUser(context.Background(), "  test@LONDONAPPDEV.COM ", "test123", "")

	require.NoError(t, err)
	assert.Equal(t, "test@londonappdev.com", user.Email)
}

func TestCreateUser_EmptyEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestUserService(mockRepo)

	for _, email := range []string{"", "   "} {
		user, err := service.CreateUser(context.Background(), email, "test123", "")

		assert.Nil(t, user)
		assert.True(t, apperrors.IsInvalidInput(err))
		require.NotNil(t, apperrors.GetValidationError(err))
		assert.Equal(t, "email", apperrors.GetValidationError(err).Fields[0].Field)
	}
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUser_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		field    string
	}{
		{"malformed email", "not-an-email", "test123", "email"},
		{"display name form", "Test <test@example.com>", "test123", "email"},
		{"empty password", "test@example.com", "", "password"},
		{"short password", "test@example.com", "pw", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			service := newTestUserService(mockRepo)

			user, err := service.CreateUser(context.Background(), tt.email, tt.password, "")

			assert.Nil(t, user)
			assert.True(t, apperrors.IsInvalidInput(err))
			require.NotNil(t, apperrors.GetValidationError(err))
			assert.Equal(t, tt.field, apperrors.GetValidationError(err).Fields[0].Field)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateSuperuser_ValidatesCredentials(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestUserService(mockRepo)

	_, err := service.CreateSuperuser(context.Background(), "admin", "pw")

	assert.True(t, apperrors.IsInvalidInput(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUser_Duplicate(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestUserService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateEntry)

	user, err := service.CreateUser(context.Background(), "test@example.com", "test123", "")

	assert.Nil(t, user)
	assert.True(t, apperrors.IsDuplicateEntry(err))
}

func TestCreateSuperuser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestUserService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, err := service.CreateSuperuser(context.Background(), "test@example.com", "test123")

	require.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsActive)
}

func TestCheckPassword_EmptyHash(t *testing.T) {
	service := newTestUserService(new(MockUserRepository))

	assert.False(t, service.CheckPassword(&models.User{}, ""))
	assert.False(t, service.CheckPassword(nil, "anything"))
}

func TestAuthenticate_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestUserService(mockRepo)
	stored := hashedUser(t, "test@example.com", "testpass")

	mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(stored, nil)

	user, err := service.Authenticate(context.Background(), "Test@Example.com", "testpass")

	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
}

func TestAuthenticate_Failures(t *testing.T) {
	inactive := hashedUser(t, "inactive@example.com", "testpass")
	inactive.IsActive = false

	tests := []struct {
		name     string
		email    string
		password string
		user     *models.User
		repoErr  error
	}{
		{"unknown email", "nobody@example.com", "testpass", nil, repository.ErrNotFound},
		{"wrong password", "test@example.com", "wrong", hashedUser(t, "test@example.com", "testpass"), nil},
		{"inactive user", "inactive@example.com", "testpass", inactive, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			service := newTestUserService(mockRepo)
			if tt.user != nil {
				mockRepo.On("GetByEmail", mock.Anything, tt.email).Return(tt.user, nil)
			} else {
				mockRepo.On("GetByEmail", mock.Anything, tt.email).Return(nil, tt.repoErr)
			}

			user, err := service.Authenticate(context.Background(), tt.email, tt.password)

			assert.Nil(t, user)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		})
	}
}

func TestAuthenticate_UnknownEmailStillComparesHash(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, UserServiceConfig{BcryptCost: bcrypt.MinCost + 1})

	impl, ok := service.(*userService)
	require.True(t, ok)
	cost, err := bcrypt.Cost(impl.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)

	mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	user, err := service.Authenticate(context.Background(), "nobody@example.com", "recipe-api-dummy-password")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthenticate_RepositoryError(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestUserService(mockRepo)

	mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, errors.New("connection refused"))

	_, err := service.Authenticate(context.Background(), "test@example.com", "testpass")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestUpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestUserService(mockRepo)
	user := hashedUser(t, "test@example.com", "oldpass")

	mockRepo.On("Update", mock.Anything, user).Return(nil)

	name := "New Name"
	password := "newpassword123"
	updated, err := service.UpdateProfile(context.Background(), user, ProfileUpdate{Name: &name, Password: &password})

	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.True(t, service.CheckPassword(updated, "newpassword123"))
	assert.False(t, service.CheckPassword(updated, "oldpass"))
	mockRepo.AssertExpectations(t)
}

func TestUpdateProfile_ShortPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestUserService(mockRepo)
	user := hashedUser(t, "test@example.com", "oldpass")

	password := "pw"
	updated, err := service.UpdateProfile(context.Background(), user, ProfileUpdate{Password: &password})

	assert.Nil(t, updated)
	assert.True(t, apperrors.IsInvalidInput(err))
	assert.True(t, service.CheckPassword(user, "oldpass"))
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateProfile_NameOnlyKeepsPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestUserService(mockRepo)
	user := hashedUser(t, "test@example.com", "oldpass")
	oldHash := user.Password

	mockRepo.On("Update", mock.Anything, user).Return(nil)

	name := "Only Name"
	updated, err := service.UpdateProfile(context.Background(), user, ProfileUpdate{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, oldHash, updated.Password)
}

func TestGetUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestUserService(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(42)).Return(nil, repository.ErrNotFound)

	user, err := service.GetUser(context.Background(), 42)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestUserService(mockRepo)

	mockRepo.On("List", mock.Anything).Return([]models.User{{ID: 1}, {ID: 2}}, nil)

	users, err := service.ListUsers(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 2)
}
