package identity

import (
	"context"

	"github.com/clubfinanzas/backend/internal/domain/audit"
	"github.com/clubfinanzas/backend/internal/domain/club"
	"github.com/clubfinanzas/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByClub(ctx context.Context, clubID uuid.UUID, filter identity.UserFilter) ([]identity.User, int64, error) {
	args := m.Called(ctx, clubID, filter)
	return args.Get(0).([]identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CountActiveAdmins(ctx context.Context, clubID, excludeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, clubID, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockClubRepository is a mock implementation of club.ClubRepository
type MockClubRepository struct {
	mock.Mock
}

func (m *MockClubRepository) FindByID(ctx context.Context, id uuid.UUID) (*club.Club, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*club.Club), args.Error(1)
}

func (m *MockClubRepository) FindBySlug(ctx context.Context, slug string) (*club.Club, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*club.Club), args.Error(1)
}

func (m *MockClubRepository) FindAll(ctx context.Context, filter club.ClubFilter) ([]club.Club, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]club.Club), args.Get(1).(int64), args.Error(2)
}

func (m *MockClubRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClubRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClubRepository) Save(ctx context.Context, c *club.Club) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClubRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLogRepository is a mock implementation of audit.LogRepository
type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) Create(ctx context.Context, log *audit.Log) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockLogRepository) FindAllForClub(ctx context.Context, clubID uuid.UUID, filter audit.LogFilter) ([]audit.Log, int64, error) {
	args := m.Called(ctx, clubID, filter)
	return args.Get(0).([]audit.Log), args.Get(1).(int64), args.Error(2)
}
