package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hadirin/attendance-backend-go/internal/domain/auth"
	"github.com/hadirin/attendance-backend-go/internal/domain/user"
	"github.com/hadirin/attendance-backend-go/internal/pkg/jwt"
	"github.com/hadirin/attendance-backend-go/internal/pkg/oauth"
	"github.com/hadirin/attendance-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

const googleProvider = "google"

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	postgresql.RefreshTokenRepository
	googleService oauth.GoogleService
}

func NewAuthService(
	userRepository user.UserRepository,
	jwtService jwt.Service,
	refreshTokenRepository postgresql.RefreshTokenRepository,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository:         userRepository,
		Service:                jwtService,
		RefreshTokenRepository: refreshTokenRepository,
		googleService:          googleService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// OAuth-only accounts have no password hash.
	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData)
}

// RefreshToken implements auth.AuthService. The old refresh token is revoked
// in the refresh_tokens table so each one can only be redeemed once, even
// across process restarts.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := a.Service.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by ID: %w", err)
	}

	if err := a.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return a.issueTokens(ctx, userData)
}

// Logout implements auth.AuthService. Revocation is idempotent, so a token
// that is already revoked logs out cleanly.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	return a.RevokeRefreshToken(ctx, refreshToken)
}

// LoginWithGoogle implements auth.AuthService. Google sign-in never creates
// accounts: the email must belong to an existing admin user.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, state, code string) (auth.TokenResponse, error) {
	if state == "" {
		return auth.TokenResponse{}, auth.ErrOAuthStateMismatch
	}

	token, err := a.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	info, err := a.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to verify google user: %w", err)
	}

	if !info.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrOAuthEmailNotFound
	}

	userData, err := a.UserRepository.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrOAuthEmailNotFound
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Linking is best-effort: the login succeeds even if the provider
	// columns cannot be updated.
	if userData.OAuthProviderID == nil || *userData.OAuthProviderID != info.GoogleID {
		if err := a.UserRepository.UpdateOAuthProvider(ctx, userData.ID, googleProvider, info.GoogleID); err != nil {
			slog.Error("Failed to link google account", "user_id", userData.ID, "error", err)
		}
	}

	return a.issueTokens(ctx, userData)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var err error

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.CreateRefreshToken(ctx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return tokenResponse, nil
}
