package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/identity"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// MockBranchRepository is a mock implementation of catalog.BranchRepository
type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindByCode(ctx context.Context, code string) (*catalog.Branch, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Branch, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindActive(ctx context.Context) ([]catalog.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Branch), args.Error(1)
}

func (m *MockBranchRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBranchRepository) Save(ctx context.Context, branch *catalog.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newUserService() (*UserService, *MockUserRepository, *MockBranchRepository) {
	userRepo := new(MockUserRepository)
	branchRepo := new(MockBranchRepository)
	return NewUserService(userRepo, branchRepo, zap.NewNop()), userRepo, branchRepo
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("registers cashier with branch", func(t *testing.T) {
		svc, userRepo, branchRepo := newUserService()

		branchID := uuid.New()
		userRepo.On("FindByUsername", ctx, "juan.dela.cruz").Return(nil, shared.ErrNotFound)
		userRepo.On("FindByEmail", ctx, "juan@example.com").Return(nil, shared.ErrNotFound)
		branchRepo.On("ExistsByID", ctx, branchID).Return(true, nil)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		info, err := svc.Register(ctx, RegisterUserRequest{
			Username:  "juan.dela.cruz",
			Email:     "juan@example.com",
			Password:  "strong.pw1",
			FirstName: "Juan",
			LastName:  "Dela Cruz",
			Role:      "cashier",
			BranchID:  &branchID,
		})

		require.NoError(t, err)
		assert.Equal(t, "juan.dela.cruz", info.Username)
		assert.Equal(t, "cashier", info.Role)
		assert.Equal(t, "Juan Dela Cruz", info.FullName)
		assert.Equal(t, &branchID, info.BranchID)
		assert.Equal(t, &branchID, info.CurrentBranchID)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		svc, userRepo, _ := newUserService()

		existing, err := identity.NewUser("juan.dela.cruz", "other@example.com", "strong.pw1", identity.RoleCashier)
		require.NoError(t, err)
		userRepo.On("FindByUsername", ctx, "juan.dela.cruz").Return(existing, nil)

		info, err := svc.Register(ctx, RegisterUserRequest{
			Username: "juan.dela.cruz",
			Email:    "juan@example.com",
			Password: "strong.pw1",
			Role:     "cashier",
		})

		assert.Nil(t, info)
		assert.Equal(t, "ALREADY_EXISTS", shared.ErrorCode(err))
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown branch", func(t *testing.T) {
		svc, userRepo, branchRepo := newUserService()

		branchID := uuid.New()
		userRepo.On("FindByUsername", ctx, "juan.dela.cruz").Return(nil, shared.ErrNotFound)
		userRepo.On("FindByEmail", ctx, "juan@example.com").Return(nil, shared.ErrNotFound)
		branchRepo.On("ExistsByID", ctx, branchID).Return(false, nil)

		info, err := svc.Register(ctx, RegisterUserRequest{
			Username: "juan.dela.cruz",
			Email:    "juan@example.com",
			Password: "strong.pw1",
			Role:     "cashier",
			BranchID: &branchID,
		})

		assert.Nil(t, info)
		assert.Equal(t, "INVALID_BRANCH", shared.ErrorCode(err))
	})
}

func TestUserService_SwitchBranch(t *testing.T) {
	ctx := context.Background()

	t.Run("moves user to another branch", func(t *testing.T) {
		svc, userRepo, branchRepo := newUserService()

		user, err := identity.NewUser("maria.santos", "maria@example.com", "strong.pw1", identity.RoleManager)
		require.NoError(t, err)
		home := uuid.New()
		require.NoError(t, user.AssignBranch(home))

		target := uuid.New()
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		branchRepo.On("ExistsByID", ctx, target).Return(true, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		err = svc.SwitchBranch(ctx, user.ID, target)

		require.NoError(t, err)
		assert.Equal(t, &target, user.CurrentBranchID)
		assert.Equal(t, &home, user.BranchID)
	})
}

func TestUserService_Deactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses self deactivation", func(t *testing.T) {
		svc, userRepo, _ := newUserService()

		id := uuid.New()
		err := svc.Deactivate(ctx, id, id)

		assert.Equal(t, "SELF_DEACTIVATION", shared.ErrorCode(err))
		userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("deactivates another user", func(t *testing.T) {
		svc, userRepo, _ := newUserService()

		user, err := identity.NewUser("maria.santos", "maria@example.com", "strong.pw1", identity.RoleCashier)
		require.NoError(t, err)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		err = svc.Deactivate(ctx, user.ID, uuid.New())

		require.NoError(t, err)
		assert.False(t, user.IsActive)
	})
}
