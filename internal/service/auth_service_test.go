package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"feedbackhub/internal/auth"
	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateAvatar(ctx context.Context, id uint, avatarPath string) error {
	args := m.Called(ctx, id, avatarPath)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestRegister_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	svc := NewAuthService(userRepo, newTestJWTService(), tokenStore, bcrypt.MinCost)

	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 1
	}).Return(nil)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret-pw")

	assert.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "alice", user.Username)

	// The stored hash verifies against the plaintext but never equals it.
	assert.NotEqual(t, "s3cret-pw", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pw")))

	// Serialized form must not leak the password or its hash.
	payload, err := json.Marshal(user)
	assert.NoError(t, err)
	assert.NotContains(t, string(payload), "s3cret-pw")
	assert.NotContains(t, string(payload), user.PasswordHash)

	userRepo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	svc := NewAuthService(userRepo, newTestJWTService(), tokenStore, bcrypt.MinCost)

	existing := &model.User{ID: 7, Email: "alice@example.com"}
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(existing, nil)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret-pw")

	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	assert.Nil(t, user)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmailRace(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	svc := NewAuthService(userRepo, newTestJWTService(), tokenStore, bcrypt.MinCost)

	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret-pw")

	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	jwtService := newTestJWTService()
	svc := NewAuthService(userRepo, jwtService, tokenStore, bcrypt.MinCost)

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret-pw"), bcrypt.MinCost)
	assert.NoError(t, err)

	user := &model.User{ID: 42, Username: "alice", Email: "alice@example.com", PasswordHash: string(hashed)}
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	tokenStore.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), uint(42), 7*24*time.Hour).Return(nil)

	accessToken, refreshToken, err := svc.Login(context.Background(), "alice@example.com", "s3cret-pw")

	assert.NoError(t, err)

	accessClaims, err := jwtService.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), accessClaims.UserID)
	assert.Equal(t, "alice", accessClaims.Username)
	assert.Equal(t, "alice@example.com", accessClaims.Email)

	refreshClaims, err := jwtService.ValidateRefreshToken(refreshToken)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), refreshClaims.UserID)
	assert.NotEmpty(t, refreshClaims.ID)

	tokenStore.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	svc := NewAuthService(userRepo, newTestJWTService(), tokenStore, bcrypt.MinCost)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("s3cret-pw"), bcrypt.MinCost)
	user := &model.User{ID: 42, Email: "alice@example.com", PasswordHash: string(hashed)}
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong-pw")

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	svc := NewAuthService(userRepo, newTestJWTService(), tokenStore, bcrypt.MinCost)

	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret-pw")

	// Same error as a wrong password, with no distinguishing detail.
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefresh_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	jwtService := newTestJWTService()
	svc := NewAuthService(userRepo, jwtService, tokenStore, bcrypt.MinCost)

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(42)
	assert.NoError(t, err)

	user := &model.User{ID: 42, Username: "alice", Email: "alice@example.com"}
	tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(42), nil)
	userRepo.On("FindByID", mock.Anything, uint(42)).Return(user, nil)

	accessToken, err := svc.Refresh(context.Background(), refreshToken)

	assert.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestRefresh_NoSession(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	jwtService := newTestJWTService()
	svc := NewAuthService(userRepo, jwtService, tokenStore, bcrypt.MinCost)

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(42)
	assert.NoError(t, err)

	tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(0), assert.AnError)

	_, err = svc.Refresh(context.Background(), refreshToken)

	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	jwtService := newTestJWTService()
	svc := NewAuthService(userRepo, jwtService, tokenStore, bcrypt.MinCost)

	// An access token is signed with the access secret and must not pass the
	// refresh verifier.
	user := &model.User{ID: 42, Email: "alice@example.com"}
	accessToken, err := jwtService.GenerateAccessToken(user)
	assert.NoError(t, err)

	_, err = svc.Refresh(context.Background(), accessToken)

	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestLogout(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	jwtService := newTestJWTService()
	svc := NewAuthService(userRepo, jwtService, tokenStore, bcrypt.MinCost)

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(42)
	assert.NoError(t, err)

	tokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), refreshToken))
	tokenStore.AssertExpectations(t)
}
