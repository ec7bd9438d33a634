package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/identity"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/auth"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		config:     config,
		logger:     logger,
	}
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", req.Username))

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("username", req.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if user.IsLocked() {
		s.logger.Warn("Login attempt for locked account", zap.String("username", req.Username))
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later or contact support")
	}
	if !user.IsActive {
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", req.Username))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Error("Failed to update user after login failure", zap.Error(err))
		}

		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("username", req.Username),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		s.logger.Warn("Invalid password attempt",
			zap.String("username", req.Username),
			zap.Int("failed_attempts", user.FailedAttempts))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		BranchID: user.CurrentBranchID,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Don't fail the login, the tokens are already issued
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("User logged in successfully",
		zap.String("username", req.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  ToUserInfo(user),
	}, nil
}

// RefreshToken issues a new token pair from a valid refresh token. The
// user's role and branch are re-read from storage so a demoted or
// reassigned user gets their current privileges in the fresh tokens.
func (s *AuthService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	if claims.ID != "" {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("Failed to check token blacklist", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate refresh token")
		}
		if revoked {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("User not found during token refresh", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if !user.IsActive || user.IsLocked() {
		s.logger.Warn("Token refresh for inactive user", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, string(user.Role), user.CurrentBranchID)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed successfully", zap.String("user_id", userID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the presented tokens by blacklisting their IDs for the
// remainder of their lifetime.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if err := s.revokeToken(ctx, accessToken, s.jwtService.ValidateAccessToken); err != nil {
		return err
	}
	if refreshToken != "" {
		if err := s.revokeToken(ctx, refreshToken, s.jwtService.ValidateRefreshToken); err != nil {
			return err
		}
	}
	return nil
}

func (s *AuthService) revokeToken(ctx context.Context, token string, validate func(string) (*auth.Claims, error)) error {
	claims, err := validate(token)
	if err != nil {
		// An expired or garbage token needs no revocation
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil
		}
		return mapTokenError(err)
	}

	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}

	s.logger.Info("Token revoked", zap.String("user_id", claims.UserID))
	return nil
}

// GetCurrentUser retrieves the current user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	info := ToUserInfo(user)
	return &info, nil
}

// ChangePassword changes a user's password
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to update user after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	s.logger.Info("User password changed", zap.String("user_id", userID.String()))
	return nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidTokenType), errors.Is(err, auth.ErrInvalidClaims):
		return shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate token")
	}
}
