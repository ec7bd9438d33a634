package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/config"
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrTokenRevoked     = errors.New("token has been revoked")
)

// Claims carries the authenticated identity inside a signed token.
// BranchID is empty for users not pinned to a branch.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	BranchID  string    `json:"branch_id,omitempty"`
	TokenType TokenType `json:"token_type"`
}

// TokenPair is the login and refresh response payload.
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"` // Bearer
}

// JWTService signs and validates HS256 tokens. Access and refresh tokens
// use separate secrets so a leaked access secret cannot mint refresh tokens.
type JWTService struct {
	accessSecret      []byte
	refreshSecret     []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
	issuer            string
}

// NewJWTService builds a service from config. When no refresh secret is
// configured the access secret signs both token types.
func NewJWTService(cfg config.JWTConfig) *JWTService {
	svc := &JWTService{
		accessSecret:      []byte(cfg.Secret),
		refreshSecret:     []byte(cfg.RefreshSecret),
		accessExpiration:  cfg.AccessTokenExpiration,
		refreshExpiration: cfg.RefreshTokenExpiration,
		issuer:            cfg.Issuer,
	}
	if cfg.RefreshSecret == "" {
		svc.refreshSecret = svc.accessSecret
	}
	return svc
}

// GenerateTokenInput is the identity a token pair is minted for.
type GenerateTokenInput struct {
	UserID   uuid.UUID
	Username string
	Role     string
	BranchID *uuid.UUID
}

// registered builds the standard claim set shared by both token types.
func (s *JWTService) registered(subject string, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Issuer:    s.issuer,
		Subject:   subject,
		Audience:  jwt.ClaimStrings{s.issuer},
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}
}

// GenerateTokenPair mints an access and refresh token for the given identity.
// The refresh token carries only the user identifier; role and branch are
// re-resolved at refresh time.
func (s *JWTService) GenerateTokenPair(input GenerateTokenInput) (*TokenPair, error) {
	now := time.Now()
	subject := input.UserID.String()

	access := &Claims{
		RegisteredClaims: s.registered(subject, now, s.accessExpiration),
		UserID:           subject,
		Username:         input.Username,
		Role:             input.Role,
		TokenType:        TokenTypeAccess,
	}
	if input.BranchID != nil {
		access.BranchID = input.BranchID.String()
	}

	refresh := &Claims{
		RegisteredClaims: s.registered(subject, now, s.refreshExpiration),
		UserID:           subject,
		TokenType:        TokenTypeRefresh,
	}

	accessToken, err := s.sign(access, s.accessSecret)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.sign(refresh, s.refreshSecret)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  access.ExpiresAt.Time,
		RefreshTokenExpiresAt: refresh.ExpiresAt.Time,
		TokenType:             "Bearer",
	}, nil
}

func (s *JWTService) sign(claims *Claims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ValidateAccessToken parses and verifies an access token.
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, s.accessSecret, TokenTypeAccess)
}

// ValidateRefreshToken parses and verifies a refresh token.
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, s.refreshSecret, TokenTypeRefresh)
}

func (s *JWTService) validate(tokenString string, secret []byte, want TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Reject any non-HMAC algorithm, including "none".
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	case err != nil:
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	switch {
	case !ok || !token.Valid:
		return nil, ErrInvalidClaims
	case claims.TokenType != want:
		return nil, ErrInvalidTokenType
	case claims.UserID == "":
		return nil, ErrMissingUserID
	}
	return claims, nil
}

// RefreshTokenPair issues a new token pair from a valid refresh token.
// The caller resolves the user's current role and branch so revoked
// privileges never survive a refresh.
func (s *JWTService) RefreshTokenPair(refreshToken string, role string, branchID *uuid.UUID) (*TokenPair, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidClaims
	}

	return s.GenerateTokenPair(GenerateTokenInput{
		UserID:   userID,
		Username: claims.Username,
		Role:     role,
		BranchID: branchID,
	})
}
