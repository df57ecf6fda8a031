package user

import (
	"context"
	"io"
	"testing"
	"time"

	"contacts-api/internal/config"
	domainUser "contacts-api/internal/domain/user"
	"contacts-api/internal/infrastructure/email"
	"contacts-api/internal/logger"
	appErrors "contacts-api/pkg/errors"
	"contacts-api/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Init("development")
}

// MockUserRepository is a mock implementation of the user repository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domainUser.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainUser.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domainUser.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainUser.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID uint) (*domainUser.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainUser.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID uint, token *string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockUserRepository) ConfirmEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAvatar(ctx context.Context, userID uint, avatarURL string) error {
	args := m.Called(ctx, userID, avatarURL)
	return args.Error(0)
}

// MockMailer records enqueued confirmation emails.
type MockMailer struct {
	jobs []email.Job
}

func (m *MockMailer) Enqueue(job email.Job) {
	m.jobs = append(m.jobs, job)
}

// MockAvatarStore is a mock implementation of the avatar store.
type MockAvatarStore struct {
	mock.Mock
}

func (m *MockAvatarStore) UploadAvatar(ctx context.Context, username string, file io.Reader) (string, error) {
	args := m.Called(ctx, username, file)
	return args.String(0), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{BaseURL: "http://localhost:8080"},
		JWT: config.JWTConfig{
			Secret:               "test-secret",
			AccessExpiryMinutes:  15,
			RefreshExpiryHours:   24 * 7,
			EmailTokenExpiryDays: 7,
		},
	}
}

func newTestService(repo *MockUserRepository, mailer *MockMailer, store *MockAvatarStore) *Service {
	return NewService(repo, mailer, store, testConfig())
}

func confirmedUser(username, password string) *domainUser.User {
	hash, _ := utils.HashPassword(password)
	return &domainUser.User{
		ID:             1,
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: hash,
		Role:           domainUser.RoleUser,
		IsConfirmed:    true,
	}
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name          string
		req           *RegisterRequest
		setupMock     func(*MockUserRepository)
		expectedError error
		wantEmail     bool
	}{
		{
			name: "successful registration",
			req:  &RegisterRequest{Username: "nick", Email: "nick@example.com", Password: "7654321"},
			setupMock: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "nick@example.com").Return(nil, domainUser.ErrUserNotFound)
				m.On("GetByUsername", mock.Anything, "nick").Return(nil, domainUser.ErrUserNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)
			},
			wantEmail: true,
		},
		{
			name: "duplicate email",
			req:  &RegisterRequest{Username: "nick2", Email: "nick@example.com", Password: "7654321"},
			setupMock: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "nick@example.com").Return(&domainUser.User{ID: 1}, nil)
			},
			expectedError: appErrors.ErrUserAlreadyExists,
		},
		{
			name: "duplicate username",
			req:  &RegisterRequest{Username: "nick", Email: "other@example.com", Password: "7654321"},
			setupMock: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "other@example.com").Return(nil, domainUser.ErrUserNotFound)
				m.On("GetByUsername", mock.Anything, "nick").Return(&domainUser.User{ID: 1}, nil)
			},
			expectedError: appErrors.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			mailer := &MockMailer{}
			tt.setupMock(repo)

			svc := newTestService(repo, mailer, new(MockAvatarStore))
			resp, err := svc.Register(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.req.Username, resp.Username)
				assert.False(t, resp.IsConfirmed)
			}

			if tt.wantEmail {
				require.Len(t, mailer.jobs, 1)
				assert.Equal(t, tt.req.Email, mailer.jobs[0].To)
				assert.Contains(t, mailer.jobs[0].ConfirmURL, "/api/v1/auth/confirm_email/")
			} else {
				assert.Empty(t, mailer.jobs)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_Login(t *testing.T) {
	t.Run("unknown username and wrong password are indistinguishable", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, domainUser.ErrUserNotFound)
		repo.On("GetByUsername", mock.Anything, "nick").Return(confirmedUser("nick", "7654321"), nil)

		svc := newTestService(repo, &MockMailer{}, new(MockAvatarStore))

		_, errUnknown := svc.Login(context.Background(), &LoginRequest{Username: "ghost", Password: "7654321"})
		_, errWrongPassword := svc.Login(context.Background(), &LoginRequest{Username: "nick", Password: "1234567"})

		assert.ErrorIs(t, errUnknown, appErrors.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPassword, appErrors.ErrInvalidCredentials)
		assert.Equal(t, errUnknown, errWrongPassword)
	})

	t.Run("unconfirmed user cannot log in with correct credentials", func(t *testing.T) {
		unconfirmed := confirmedUser("nick", "7654321")
		unconfirmed.IsConfirmed = false

		repo := new(MockUserRepository)
		repo.On("GetByUsername", mock.Anything, "nick").Return(unconfirmed, nil)

		svc := newTestService(repo, &MockMailer{}, new(MockAvatarStore))

		_, err := svc.Login(context.Background(), &LoginRequest{Username: "nick", Password: "7654321"})
		assert.ErrorIs(t, err, appErrors.ErrEmailNotConfirmed)
	})

	t.Run("successful login rotates the stored refresh token", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByUsername", mock.Anything, "nick").Return(confirmedUser("nick", "7654321"), nil)
		repo.On("UpdateRefreshToken", mock.Anything, uint(1), mock.AnythingOfType("*string")).Return(nil)

		svc := newTestService(repo, &MockMailer{}, new(MockAvatarStore))

		tokens, err := svc.Login(context.Background(), &LoginRequest{Username: "nick", Password: "7654321"})
		require.NoError(t, err)
		assert.Equal(t, "bearer", tokens.TokenType)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)

		repo.AssertExpectations(t)
	})
}

func TestService_RefreshToken(t *testing.T) {
	cfg := testConfig()

	issueRefresh := func(username string) string {
		token, err := utils.GenerateRefreshToken(username, cfg.JWT.Secret, 7*24*time.Hour)
		require.NoError(t, err)
		return token
	}

	t.Run("valid token matching the stored one yields a new access token", func(t *testing.T) {
		stored := issueRefresh("nick")
		u := confirmedUser("nick", "7654321")
		u.RefreshToken = &stored

		repo := new(MockUserRepository)
		repo.On("GetByUsername", mock.Anything, "nick").Return(u, nil)

		svc := newTestService(repo, &MockMailer{}, new(MockAvatarStore))

		tokens, err := svc.RefreshToken(context.Background(), stored)
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		// The refresh token is echoed back, not rotated on use
		assert.Equal(t, stored, tokens.RefreshToken)
	})

	t.Run("rotated-away token fails even with a valid signature", func(t *testing.T) {
		old := issueRefresh("nick")
		current := issueRefresh("nick") + "x"
		u := confirmedUser("nick", "7654321")
		u.RefreshToken = &current

		repo := new(MockUserRepository)
		repo.On("GetByUsername", mock.Anything, "nick").Return(u, nil)

		svc := newTestService(repo, &MockMailer{}, new(MockAvatarStore))

		_, err := svc.RefreshToken(context.Background(), old)
		assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
	})

	t.Run("access token is rejected as a refresh token", func(t *testing.T) {
		accessToken, err := utils.GenerateAccessToken("nick", cfg.JWT.Secret, 15*time.Minute)
		require.NoError(t, err)

		svc := newTestService(new(MockUserRepository), &MockMailer{}, new(MockAvatarStore))

		_, err = svc.RefreshToken(context.Background(), accessToken)
		assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		svc := newTestService(new(MockUserRepository), &MockMailer{}, new(MockAvatarStore))

		_, err := svc.RefreshToken(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
	})
}

func TestService_GetCurrentUser(t *testing.T) {
	cfg := testConfig()

	t.Run("valid access token resolves the user", func(t *testing.T) {
		token, err := utils.GenerateAccessToken("nick", cfg.JWT.Secret, 15*time.Minute)
		require.NoError(t, err)

		repo := new(MockUserRepository)
		repo.On("GetByUsername", mock.Anything, "nick").Return(confirmedUser("nick", "7654321"), nil)

		svc := newTestService(repo, &MockMailer{}, new(MockAvatarStore))

		u, err := svc.GetCurrentUser(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "nick", u.Username)
	})

	t.Run("refresh token is not accepted for authentication", func(t *testing.T) {
		token, err := utils.GenerateRefreshToken("nick", cfg.JWT.Secret, 7*24*time.Hour)
		require.NoError(t, err)

		svc := newTestService(new(MockUserRepository), &MockMailer{}, new(MockAvatarStore))

		_, err = svc.GetCurrentUser(context.Background(), token)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})

	t.Run("unknown subject fails the same way as a bad token", func(t *testing.T) {
		token, err := utils.GenerateAccessToken("ghost", cfg.JWT.Secret, 15*time.Minute)
		require.NoError(t, err)

		repo := new(MockUserRepository)
		repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, domainUser.ErrUserNotFound)

		svc := newTestService(repo, &MockMailer{}, new(MockAvatarStore))

		_, err = svc.GetCurrentUser(context.Background(), token)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})
}

func TestService_ConfirmEmail(t *testing.T) {
	cfg := testConfig()

	issueEmailToken := func(email string) string {
		token, err := utils.GenerateEmailToken(email, cfg.JWT.Secret, 7*24*time.Hour)
		require.NoError(t, err)
		return token
	}

	t.Run("confirms an unconfirmed user", func(t *testing.T) {
		u := confirmedUser("nick", "7654321")
		u.IsConfirmed = false

		repo := new(MockUserRepository)
		repo.On("GetByEmail", mock.Anything, "nick@example.com").Return(u, nil)
		repo.On("ConfirmEmail", mock.Anything, "nick@example.com").Return(nil)

		svc := newTestService(repo, &MockMailer{}, new(MockAvatarStore))

		message, err := svc.ConfirmEmail(context.Background(), issueEmailToken("nick@example.com"))
		require.NoError(t, err)
		assert.Equal(t, "Email confirmed", message)

		repo.AssertExpectations(t)
	})

	t.Run("already confirmed answers idempotently", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", mock.Anything, "nick@example.com").Return(confirmedUser("nick", "7654321"), nil)

		svc := newTestService(repo, &MockMailer{}, new(MockAvatarStore))

		message, err := svc.ConfirmEmail(context.Background(), issueEmailToken("nick@example.com"))
		require.NoError(t, err)
		assert.Equal(t, "Email already confirmed", message)
		repo.AssertNotCalled(t, "ConfirmEmail", mock.Anything, mock.Anything)
	})

	t.Run("unknown user is a verification error", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domainUser.ErrUserNotFound)

		svc := newTestService(repo, &MockMailer{}, new(MockAvatarStore))

		_, err := svc.ConfirmEmail(context.Background(), issueEmailToken("ghost@example.com"))
		assert.ErrorIs(t, err, appErrors.ErrVerificationError)
	})

	t.Run("malformed token is an invalid email token", func(t *testing.T) {
		svc := newTestService(new(MockUserRepository), &MockMailer{}, new(MockAvatarStore))

		_, err := svc.ConfirmEmail(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, appErrors.ErrInvalidEmailToken)
	})

	t.Run("access token is not a valid email token", func(t *testing.T) {
		token, err := utils.GenerateAccessToken("nick@example.com", cfg.JWT.Secret, 15*time.Minute)
		require.NoError(t, err)

		svc := newTestService(new(MockUserRepository), &MockMailer{}, new(MockAvatarStore))

		_, err = svc.ConfirmEmail(context.Background(), token)
		assert.ErrorIs(t, err, appErrors.ErrInvalidEmailToken)
	})
}

func TestService_RequestEmail(t *testing.T) {
	t.Run("unknown email answers the same as success", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domainUser.ErrUserNotFound)

		mailer := &MockMailer{}
		svc := newTestService(repo, mailer, new(MockAvatarStore))

		message, err := svc.RequestEmail(context.Background(), &RequestEmailRequest{Email: "ghost@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Check your email for confirmation link", message)
		assert.Empty(t, mailer.jobs)
	})

	t.Run("confirmed email answers idempotently without sending", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", mock.Anything, "nick@example.com").Return(confirmedUser("nick", "7654321"), nil)

		mailer := &MockMailer{}
		svc := newTestService(repo, mailer, new(MockAvatarStore))

		message, err := svc.RequestEmail(context.Background(), &RequestEmailRequest{Email: "nick@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Email already confirmed", message)
		assert.Empty(t, mailer.jobs)
	})

	t.Run("unconfirmed email re-enqueues the confirmation", func(t *testing.T) {
		u := confirmedUser("nick", "7654321")
		u.IsConfirmed = false

		repo := new(MockUserRepository)
		repo.On("GetByEmail", mock.Anything, "nick@example.com").Return(u, nil)

		mailer := &MockMailer{}
		svc := newTestService(repo, mailer, new(MockAvatarStore))

		message, err := svc.RequestEmail(context.Background(), &RequestEmailRequest{Email: "nick@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Check your email for confirmation link", message)
		require.Len(t, mailer.jobs, 1)
		assert.Equal(t, "nick@example.com", mailer.jobs[0].To)
	})
}

func TestService_UpdateAvatar(t *testing.T) {
	u := confirmedUser("nick", "7654321")

	store := new(MockAvatarStore)
	store.On("UploadAvatar", mock.Anything, "nick", mock.Anything).
		Return("https://bucket.s3.eu-central-1.amazonaws.com/avatars/nick", nil)

	repo := new(MockUserRepository)
	repo.On("UpdateAvatar", mock.Anything, uint(1), "https://bucket.s3.eu-central-1.amazonaws.com/avatars/nick").Return(nil)

	svc := newTestService(repo, &MockMailer{}, store)

	resp, err := svc.UpdateAvatar(context.Background(), u, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Avatar)
	assert.Equal(t, "https://bucket.s3.eu-central-1.amazonaws.com/avatars/nick", *resp.Avatar)

	store.AssertExpectations(t)
	repo.AssertExpectations(t)
}
