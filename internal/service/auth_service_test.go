package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/onboarding-api/internal/config"
	"github.com/spec-kit/onboarding-api/internal/domain"
	"github.com/spec-kit/onboarding-api/internal/events"
	"github.com/spec-kit/onboarding-api/internal/repository"
	"github.com/spec-kit/onboarding-api/internal/repository/memstore"
	apperrors "github.com/spec-kit/onboarding-api/pkg/util"
)

func testConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	}}
}

func newAuthService(t *testing.T) (*AuthService, *memstore.UserStore) {
	t.Helper()
	users := memstore.NewUserStore(nil)
	svc, err := NewAuthService(testConfig(), AuthDependencies{UserRepo: users})
	require.NoError(t, err)
	return svc, users
}

func TestRegister_Success(t *testing.T) {
	svc, users := newAuthService(t)

	res, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(1), res.User.ID)
	assert.Equal(t, domain.RoleCustomer, res.User.Role)
	assert.Equal(t, 1, users.Count())

	stored, err := users.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))

	claims, err := svc.TokenManager().ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestRegister_AdminRole(t *testing.T) {
	svc, _ := newAuthService(t)

	res, err := svc.Register(context.Background(), RegisterInput{Email: "admin@b.com", Password: "password123", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.User.Role)
}

func TestRegister_Validation(t *testing.T) {
	cases := map[string]RegisterInput{
		"missing email":    {Password: "password123"},
		"missing password": {Email: "a@b.com"},
		"malformed email":  {Email: "a-at-b.com", Password: "password123"},
		"short password":   {Email: "a@b.com", Password: "pass123"},
		"unknown role":     {Email: "a@b.com", Password: "password123", Role: "superuser"},
		"too long":         {Email: "a@b.com", Password: string(make([]byte, 73))},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			svc, users := newAuthService(t)
			_, err := svc.Register(context.Background(), input)
			requireCode(t, err, apperrors.CodeValidationFailed)
			assert.Equal(t, 0, users.Count())
		})
	}
}

func TestRegister_PasswordLengthBoundary(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "1234567"})
	requireCode(t, err, apperrors.CodeValidationFailed)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "12345678"})
	assert.NoError(t, err)
}

func TestRegister_Duplicate(t *testing.T) {
	svc, users := newAuthService(t)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "different123"})
	requireCode(t, err, apperrors.CodeConflict)
	assert.Equal(t, 1, users.Count())
}

// racingUsers reports no existing user on lookup but rejects the insert,
// as when two registrations for one email interleave.
type racingUsers struct {
	repository.UserRepository
}

func (racingUsers) Create(context.Context, *domain.User) error {
	return repository.ErrDuplicateEmail
}

func TestRegister_DuplicateFromStore(t *testing.T) {
	svc, err := NewAuthService(testConfig(), AuthDependencies{UserRepo: racingUsers{memstore.NewUserStore(nil)}})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "password123"})
	requireCode(t, err, apperrors.CodeConflict)
}

func TestRegister_PublishesEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var got []events.Event
	dispatcher.Subscribe(events.EventUserRegistered, func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})
	svc, err := NewAuthService(testConfig(), AuthDependencies{UserRepo: memstore.NewUserStore(nil), Dispatcher: dispatcher})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "password123"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, events.UserRegisteredPayload{Email: "a@b.com", Role: domain.RoleCustomer}, got[0].Payload)
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "password123"})
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", res.User.Email)

	claims, err := svc.TokenManager().ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestLogin_Validation(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), LoginInput{Email: "a@b.com"})
	requireCode(t, err, apperrors.CodeValidationFailed)
	_, err = svc.Login(context.Background(), LoginInput{Password: "password123"})
	requireCode(t, err, apperrors.CodeValidationFailed)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "password123"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "wrong-password"})
	_, unknownEmail := svc.Login(context.Background(), LoginInput{Email: "nobody@b.com", Password: "password123"})

	wp := requireCode(t, wrongPassword, apperrors.CodeUnauthorized)
	ue := requireCode(t, unknownEmail, apperrors.CodeUnauthorized)
	assert.Equal(t, wp.Message, ue.Message)
	assert.Equal(t, wp.HTTPStatus, ue.HTTPStatus)
	assert.Equal(t, wp.Details, ue.Details)
}

func TestMe(t *testing.T) {
	svc, _ := newAuthService(t)
	res, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "password123"})
	require.NoError(t, err)

	user, err := svc.Me(context.Background(), domain.Principal{UserID: res.User.ID})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)

	_, err = svc.Me(context.Background(), domain.Principal{UserID: 77})
	requireCode(t, err, apperrors.CodeNotFound)
}
