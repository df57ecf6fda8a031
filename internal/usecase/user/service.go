package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"contacts-api/internal/config"
	domainUser "contacts-api/internal/domain/user"
	"contacts-api/internal/infrastructure/email"
	"contacts-api/internal/infrastructure/storage"
	"contacts-api/internal/logger"
	appErrors "contacts-api/pkg/errors"
	"contacts-api/pkg/utils"

	"go.uber.org/zap"
)

// Mailer enqueues confirmation emails for background delivery.
type Mailer interface {
	Enqueue(job email.Job)
}

// Service implements registration, confirmation, login, token refresh and
// profile use cases.
type Service struct {
	userRepo    domainUser.Repository
	mailer      Mailer
	avatarStore storage.AvatarStore
	config      *config.Config
}

// NewService creates a new user service
func NewService(
	userRepo domainUser.Repository,
	mailer Mailer,
	avatarStore storage.AvatarStore,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo:    userRepo,
		mailer:      mailer,
		avatarStore: avatarStore,
		config:      cfg,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	// Duplicate email or username both reject the registration
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		logger.Warn("Registration attempt with existing email",
			zap.String("email", req.Email),
			zap.String("event", "registration_failed_duplicate_email"),
		)
		return nil, appErrors.ErrUserAlreadyExists
	} else if !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		logger.Warn("Registration attempt with existing username",
			zap.String("username", req.Username),
			zap.String("event", "registration_failed_duplicate_username"),
		)
		return nil, appErrors.ErrUserAlreadyExists
	} else if !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domainUser.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Role:           domainUser.RoleUser,
		IsConfirmed:    false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			return nil, appErrors.ErrUserAlreadyExists
		}
		return nil, err
	}

	s.enqueueConfirmationEmail(user)

	logger.Info("User registered successfully",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("username", user.Username),
		zap.String("event", "user_registered"),
	)

	return ToUserResponse(user), nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	// Unknown username and wrong password are indistinguishable to the caller
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with unknown username",
				zap.String("username", req.Username),
				zap.String("event", "login_failed_unknown_username"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.HashedPassword, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.Uint("user_id", user.ID),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	if !user.IsConfirmed {
		logger.Warn("Login attempt for unconfirmed user",
			zap.Uint("user_id", user.ID),
			zap.String("event", "login_failed_unconfirmed"),
		)
		return nil, appErrors.ErrEmailNotConfirmed
	}

	accessToken, err := utils.GenerateAccessToken(user.Username, s.config.JWT.Secret, s.accessExpiry())
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.Username, s.config.JWT.Secret, s.refreshExpiry())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// Single point of refresh token rotation: the new token overwrites any
	// prior one, invalidating it.
	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	logger.Info("User logged in successfully",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("event", "login_success"),
	)

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new access token. The
// presented refresh token is echoed back unchanged; it is only rotated at
// login.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	user, err := s.verifyRefreshToken(ctx, refreshToken)
	if err != nil {
		logger.Warn("Token refresh attempt with invalid token",
			zap.String("event", "token_refresh_failed"),
			zap.Error(err),
		)
		return nil, appErrors.ErrInvalidToken
	}

	accessToken, err := utils.GenerateAccessToken(user.Username, s.config.JWT.Secret, s.accessExpiry())
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	logger.Debug("Token refreshed successfully",
		zap.Uint("user_id", user.ID),
		zap.String("event", "token_refresh_success"),
	)

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// verifyRefreshToken checks signature, expiry and token type, then requires
// both the decoded subject to resolve to a user and the raw token to match
// that user's currently stored refresh token. A rotated-away token fails here
// even though its signature is still valid.
func (s *Service) verifyRefreshToken(ctx context.Context, refreshToken string) (*domainUser.User, error) {
	claims, err := utils.ValidateToken(refreshToken, s.config.JWT.Secret, utils.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, appErrors.ErrInvalidToken
	}

	return user, nil
}

// GetCurrentUser resolves an access token to its user. Any decode failure,
// missing subject or unknown user is a uniform authentication error.
func (s *Service) GetCurrentUser(ctx context.Context, accessToken string) (*domainUser.User, error) {
	claims, err := utils.ValidateToken(accessToken, s.config.JWT.Secret, utils.TokenTypeAccess)
	if err != nil {
		return nil, appErrors.ErrUnauthorized
	}

	user, err := s.userRepo.GetByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, appErrors.ErrUnauthorized
	}

	return user, nil
}

// ConfirmEmail flips the one-way unconfirmed → confirmed transition. A second
// confirmation with a valid token answers idempotently.
func (s *Service) ConfirmEmail(ctx context.Context, token string) (string, error) {
	claims, err := utils.ValidateToken(token, s.config.JWT.Secret, utils.TokenTypeEmail)
	if err != nil {
		return "", appErrors.ErrInvalidEmailToken
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return "", appErrors.ErrVerificationError
		}
		return "", err
	}

	if user.IsConfirmed {
		return "Email already confirmed", nil
	}

	if err := s.userRepo.ConfirmEmail(ctx, user.Email); err != nil {
		return "", err
	}

	logger.Info("Email confirmed",
		zap.Uint("user_id", user.ID),
		zap.String("event", "email_confirmed"),
	)

	return "Email confirmed", nil
}

// RequestEmail re-sends the confirmation email. An unknown email answers the
// same message as success so the endpoint cannot be used for enumeration.
func (s *Service) RequestEmail(ctx context.Context, req *RequestEmailRequest) (string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return "", appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Info("Confirmation requested for unknown email",
				zap.String("event", "request_email_unknown"),
			)
			return "Check your email for confirmation link", nil
		}
		return "", err
	}

	if user.IsConfirmed {
		return "Email already confirmed", nil
	}

	s.enqueueConfirmationEmail(user)

	return "Check your email for confirmation link", nil
}

func (s *Service) GetProfile(ctx context.Context, userID uint) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

// UpdateAvatar stores the processed image, overwriting any previous avatar for
// the user, and persists the resulting URL.
func (s *Service) UpdateAvatar(ctx context.Context, user *domainUser.User, file io.Reader) (*UserResponse, error) {
	avatarURL, err := s.avatarStore.UploadAvatar(ctx, user.Username, file)
	if err != nil {
		return nil, appErrors.NewAppError("UPLOAD_ERROR", "Failed to upload avatar", err)
	}

	if err := s.userRepo.UpdateAvatar(ctx, user.ID, avatarURL); err != nil {
		return nil, err
	}

	user.Avatar = &avatarURL

	logger.Info("Avatar updated",
		zap.Uint("user_id", user.ID),
		zap.String("event", "avatar_updated"),
	)

	return ToUserResponse(user), nil
}

func (s *Service) enqueueConfirmationEmail(user *domainUser.User) {
	token, err := utils.GenerateEmailToken(user.Email, s.config.JWT.Secret, s.emailTokenExpiry())
	if err != nil {
		logger.Error("Failed to generate email token",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return
	}

	s.mailer.Enqueue(email.Job{
		To:         user.Email,
		Username:   user.Username,
		ConfirmURL: fmt.Sprintf("%s/api/v1/auth/confirm_email/%s", s.config.Server.BaseURL, token),
	})
}

func (s *Service) accessExpiry() time.Duration {
	return time.Duration(s.config.JWT.AccessExpiryMinutes) * time.Minute
}

func (s *Service) refreshExpiry() time.Duration {
	return time.Duration(s.config.JWT.RefreshExpiryHours) * time.Hour
}

func (s *Service) emailTokenExpiry() time.Duration {
	return time.Duration(s.config.JWT.EmailTokenExpiryDays) * 24 * time.Hour
}
