package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/identity"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/auth"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of UserRepository
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

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
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

func (m *MockUserRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, branchID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testAuthService(userRepo *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars!",
		RefreshSecret:          "test-refresh-key-at-least-32-char!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "pharmacy-api-test",
	})
	return NewAuthService(
		userRepo,
		jwtService,
		auth.NewInMemoryTokenBlacklist(),
		DefaultAuthServiceConfig(),
		zap.NewNop(),
	)
}

func testUser(t *testing.T, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser("maria.santos", "maria@example.com", password, identity.RoleCashier)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("successful login returns tokens and resets failures", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := testAuthService(userRepo)

		user := testUser(t, "secret.pw1")
		user.FailedAttempts = 2

		userRepo.On("FindByUsername", ctx, "maria.santos").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginRequest{Username: "maria.santos", Password: "secret.pw1"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "maria.santos", result.User.Username)
		assert.Equal(t, "cashier", result.User.Role)
		assert.Equal(t, 0, user.FailedAttempts)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("unknown username yields invalid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := testAuthService(userRepo)

		userRepo.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

		result, err := svc.Login(ctx, LoginRequest{Username: "ghost", Password: "whatever1"})

		assert.Nil(t, result)
		assert.Equal(t, "INVALID_CREDENTIALS", shared.ErrorCode(err))
	})

	t.Run("wrong password counts a failure", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := testAuthService(userRepo)

		user := testUser(t, "secret.pw1")
		userRepo.On("FindByUsername", ctx, "maria.santos").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginRequest{Username: "maria.santos", Password: "wrong.pw99"})

		assert.Nil(t, result)
		assert.Equal(t, "INVALID_CREDENTIALS", shared.ErrorCode(err))
		assert.Equal(t, 1, user.FailedAttempts)
	})

	t.Run("account locks after max failed attempts", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := testAuthService(userRepo)

		user := testUser(t, "secret.pw1")
		user.FailedAttempts = 4

		userRepo.On("FindByUsername", ctx, "maria.santos").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginRequest{Username: "maria.santos", Password: "wrong.pw99"})

		assert.Nil(t, result)
		assert.Equal(t, "ACCOUNT_LOCKED", shared.ErrorCode(err))
		assert.True(t, user.IsLocked())
	})

	t.Run("locked account rejects even the right password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := testAuthService(userRepo)

		user := testUser(t, "secret.pw1")
		until := time.Now().Add(10 * time.Minute)
		user.LockedUntil = &until

		userRepo.On("FindByUsername", ctx, "maria.santos").Return(user, nil)

		result, err := svc.Login(ctx, LoginRequest{Username: "maria.santos", Password: "secret.pw1"})

		assert.Nil(t, result)
		assert.Equal(t, "ACCOUNT_LOCKED", shared.ErrorCode(err))
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := testAuthService(userRepo)

		user := testUser(t, "secret.pw1")
		user.Deactivate()

		userRepo.On("FindByUsername", ctx, "maria.santos").Return(user, nil)

		result, err := svc.Login(ctx, LoginRequest{Username: "maria.santos", Password: "secret.pw1"})

		assert.Nil(t, result)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", shared.ErrorCode(err))
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("issues fresh tokens with the user's current role", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := testAuthService(userRepo)

		user := testUser(t, "secret.pw1")
		userRepo.On("FindByUsername", ctx, "maria.santos").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		login, err := svc.Login(ctx, LoginRequest{Username: "maria.santos", Password: "secret.pw1"})
		require.NoError(t, err)

		// Promote between login and refresh
		user.Role = identity.RoleManager

		result, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: login.RefreshToken})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)

		claims, err := auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-at-least-32-chars!",
			RefreshSecret:          "test-refresh-key-at-least-32-char!",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 7 * 24 * time.Hour,
			Issuer:                 "pharmacy-api-test",
		}).ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "manager", claims.Role)
	})

	t.Run("garbage refresh token is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := testAuthService(userRepo)

		result, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: "not-a-token"})

		assert.Nil(t, result)
		assert.Equal(t, "TOKEN_INVALID", shared.ErrorCode(err))
	})

	t.Run("deactivated user cannot refresh", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := testAuthService(userRepo)

		user := testUser(t, "secret.pw1")
		userRepo.On("FindByUsername", ctx, "maria.santos").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		login, err := svc.Login(ctx, LoginRequest{Username: "maria.santos", Password: "secret.pw1"})
		require.NoError(t, err)

		user.Deactivate()

		result, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: login.RefreshToken})

		assert.Nil(t, result)
		assert.Equal(t, "ACCOUNT_INACTIVE", shared.ErrorCode(err))
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked refresh token cannot be used again", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := testAuthService(userRepo)

		user := testUser(t, "secret.pw1")
		userRepo.On("FindByUsername", ctx, "maria.santos").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		login, err := svc.Login(ctx, LoginRequest{Username: "maria.santos", Password: "secret.pw1"})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, login.AccessToken, login.RefreshToken))

		result, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: login.RefreshToken})

		assert.Nil(t, result)
		assert.Equal(t, "TOKEN_REVOKED", shared.ErrorCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes password with correct old password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := testAuthService(userRepo)

		user := testUser(t, "secret.pw1")
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
			OldPassword: "secret.pw1",
			NewPassword: "brand.new.pw2",
		})

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("brand.new.pw2"))
	})

	t.Run("rejects wrong old password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := testAuthService(userRepo)

		user := testUser(t, "secret.pw1")
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
			OldPassword: "wrong.pw99",
			NewPassword: "brand.new.pw2",
		})

		assert.Equal(t, "INVALID_PASSWORD", shared.ErrorCode(err))
		assert.True(t, user.VerifyPassword("secret.pw1"))
	})
}
