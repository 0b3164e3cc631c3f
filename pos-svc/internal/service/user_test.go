package service_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"overcooked-pos/pos-svc/internal/mocks"
	"overcooked-pos/pos-svc/internal/service"
	"overcooked-pos/pos-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var sixDigits = regexp.MustCompile(`^[0-9]{6}$`)

type userFixture struct {
	ctx    context.Context
	mr     *miniredis.Miniredis
	repo   *storage.MemoryRepository
	mailer *mocks.Mailer
	users  *service.UserService
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := storage.NewMemoryRepository()
	mailer := mocks.NewMailer(t)

	return &userFixture{
		ctx:    context.Background(),
		mr:     mr,
		repo:   repo,
		mailer: mailer,
		users:  service.NewUserService(repo, storage.NewRedisCache(client), mailer, bcrypt.MinCost, "http://localhost:3000/", zap.NewNop()),
	}
}

// register signs up a user and returns the verification code that was mailed.
func (f *userFixture) register(t *testing.T, email string) (int, string) {
	t.Helper()

	var code string
	f.mailer.On("SendMail", mock.Anything, email, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { code = args.String(2) }).
		Return(nil).Once()

	user, err := f.users.Register(f.ctx, service.RegisterInput{Name: "Chef", Email: email, Password: "secret1"})
	require.NoError(t, err)
	return user.ID, code
}

func TestRegister(t *testing.T) {
	f := newUserFixture(t)

	userID, code := f.register(t, "chef@example.com")

	assert.Regexp(t, sixDigits, code)
	stored, err := f.mr.Get(service.ConfirmUserPrefix + code)
	require.NoError(t, err)
	assert.Equal(t, "1", stored)
	assert.Greater(t, f.mr.TTL(service.ConfirmUserPrefix+code).Hours(), 23.0)

	user, err := f.repo.GetUser(f.ctx, userID)
	require.NoError(t, err)
	assert.False(t, user.Confirmed)
	assert.NotEqual(t, "secret1", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))
}

func TestRegister_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   service.RegisterInput
		wantErr error
	}{
		{name: "missing name", input: service.RegisterInput{Email: "a@b.co", Password: "secret1"}, wantErr: service.ErrValidation},
		{name: "bad email", input: service.RegisterInput{Name: "A", Email: "not-an-email", Password: "secret1"}, wantErr: service.ErrValidation},
		{name: "short password", input: service.RegisterInput{Name: "A", Email: "a@b.co", Password: "12345"}, wantErr: service.ErrValidation},
		{name: "taken email", input: service.RegisterInput{Name: "A", Email: "Taken@Example.com", Password: "secret1"}, wantErr: service.ErrConflict},
	}

	f := newUserFixture(t)
	f.register(t, "taken@example.com")

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			user, err := f.users.Register(f.ctx, testCase.input)
			assert.ErrorIs(t, err, testCase.wantErr)
			assert.Nil(t, user)
		})
	}
}

func TestRegister_MailFailureDoesNotFail(t *testing.T) {
	f := newUserFixture(t)
	f.mailer.On("SendMail", mock.Anything, "chef@example.com", mock.Anything).Return(errors.New("broker down")).Once()

	user, err := f.users.Register(f.ctx, service.RegisterInput{Name: "Chef", Email: "chef@example.com", Password: "secret1"})

	require.NoError(t, err)
	assert.NotNil(t, user)
}

func TestLogin(t *testing.T) {
	f := newUserFixture(t)
	userID, _ := f.register(t, "chef@example.com")

	user, err := f.users.Login(f.ctx, " Chef@Example.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, userID, user.ID)

	user, err = f.users.Login(f.ctx, "chef@example.com", "wrong")
	assert.NoError(t, err)
	assert.Nil(t, user)

	user, err = f.users.Login(f.ctx, "nobody@example.com", "secret1")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestConfirmUser(t *testing.T) {
	f := newUserFixture(t)
	userID, code := f.register(t, "chef@example.com")

	ok, err := f.users.ConfirmUser(f.ctx, "000000x")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.users.ConfirmUser(f.ctx, code)
	require.NoError(t, err)
	assert.True(t, ok)

	user, err := f.users.Me(f.ctx, userID)
	require.NoError(t, err)
	assert.True(t, user.Confirmed)
	assert.False(t, f.mr.Exists(service.ConfirmUserPrefix+code))

	ok, err = f.users.ConfirmUser(f.ctx, code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResendVerificationCode(t *testing.T) {
	f := newUserFixture(t)
	userID, first := f.register(t, "chef@example.com")

	var second string
	f.mailer.On("SendMail", mock.Anything, "chef@example.com", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { second = args.String(2) }).
		Return(nil).Once()

	ok, err := f.users.ResendVerificationCode(f.ctx, userID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Regexp(t, sixDigits, second)
	assert.True(t, f.mr.Exists(service.ConfirmUserPrefix+first))
	assert.True(t, f.mr.Exists(service.ConfirmUserPrefix+second))

	ok, err = f.users.ResendVerificationCode(f.ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestForgotAndChangePassword(t *testing.T) {
	f := newUserFixture(t)
	userID, _ := f.register(t, "chef@example.com")

	ok, err := f.users.ForgotPassword(f.ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	var link string
	f.mailer.On("SendMail", mock.Anything, "chef@example.com", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { link = args.String(2) }).
		Return(nil).Once()

	ok, err = f.users.ForgotPassword(f.ctx, "chef@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
	require.True(t, strings.HasPrefix(link, "http://localhost:3000/user/change-password/"))
	token := strings.TrimPrefix(link, "http://localhost:3000/user/change-password/")

	_, err = f.users.ChangePassword(f.ctx, token, "123")
	assert.ErrorIs(t, err, service.ErrValidation)

	user, err := f.users.ChangePassword(f.ctx, "unknown-token", "newsecret")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = f.users.ChangePassword(f.ctx, token, "newsecret")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, userID, user.ID)
	assert.False(t, f.mr.Exists(service.ForgetPasswordPrefix+token))

	loggedIn, err := f.users.Login(f.ctx, "chef@example.com", "newsecret")
	require.NoError(t, err)
	assert.NotNil(t, loggedIn)

	reused, err := f.users.ChangePassword(f.ctx, token, "another1")
	require.NoError(t, err)
	assert.Nil(t, reused)
}

func TestMe_Unknown(t *testing.T) {
	f := newUserFixture(t)

	user, err := f.users.Me(f.ctx, 42)
	assert.NoError(t, err)
	assert.Nil(t, user)
}
