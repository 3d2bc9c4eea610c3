package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/IcaroDrumond17/onhappy/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type issuerStub struct{}

func (issuerStub) Issue(user model.User, now time.Time) (string, time.Time, error) {
	return "stub-token", now.Add(time.Hour), nil
}

func TestLogin_Success(t *testing.T) {
	usersM := &UserRepoMock{}

	hasher := NewBcryptPasswordHasher(4)
	hash, err := hasher.Hash("1234")
	assert.NoError(t, err)

	user := &model.User{ID: 7, Email: "default@teste.com", PasswordHash: hash, TypeUser: model.RoleDefault}
	usersM.On("FindByEmail", mock.Anything, "default@teste.com").Return(user, nil)

	uc := NewAuthUsecase(usersM, NewBcryptPasswordVerifier(), issuerStub{}, testLogger())

	out, err := uc.Login(context.Background(), LoginInput{Email: "default@teste.com", Password: "1234"})
	assert.NoError(t, err)
	assert.Equal(t, "stub-token", out.Token)
	assert.Equal(t, int64(3600), out.ExpiresIn)
	assert.Equal(t, int64(7), out.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	usersM := &UserRepoMock{}

	hasher := NewBcryptPasswordHasher(4)
	hash, _ := hasher.Hash("1234")
	user := &model.User{ID: 7, Email: "default@teste.com", PasswordHash: hash}
	usersM.On("FindByEmail", mock.Anything, "default@teste.com").Return(user, nil)

	uc := NewAuthUsecase(usersM, NewBcryptPasswordVerifier(), issuerStub{}, testLogger())

	_, err := uc.Login(context.Background(), LoginInput{Email: "default@teste.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	usersM := &UserRepoMock{}
	usersM.On("FindByEmail", mock.Anything, "nobody@teste.com").Return(nil, nil)

	uc := NewAuthUsecase(usersM, NewBcryptPasswordVerifier(), issuerStub{}, testLogger())

	_, err := uc.Login(context.Background(), LoginInput{Email: "nobody@teste.com", Password: "1234"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_EmptyInput(t *testing.T) {
	uc := NewAuthUsecase(&UserRepoMock{}, NewBcryptPasswordVerifier(), issuerStub{}, testLogger())

	_, err := uc.Login(context.Background(), LoginInput{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestBcryptVerifier_RoundTrip(t *testing.T) {
	hasher := NewBcryptPasswordHasher(4)
	hash, err := hasher.Hash("s3cret")
	assert.NoError(t, err)

	v := NewBcryptPasswordVerifier()
	assert.True(t, v.Verify("s3cret", hash))
	assert.False(t, v.Verify("other", hash))
}
