package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital_diary/models"
	"digital_diary/utils"
)

func newTestUserService(users UserStore) *UserService {
	tokens := utils.NewTokenManager("test-secret", "digital_diary", 15*time.Minute, 24*time.Hour)
	return NewUserService(users, tokens)
}

func registerInput(username, email string) RegisterInput {
	return RegisterInput{
		Firstname:   "三",
		Lastname:    "张",
		Username:    username,
		Email:       email,
		Password:    "secret123",
		DateOfBirth: time.Date(1995, time.June, 15, 0, 0, 0, 0, time.Local),
		Gender:      "male",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	store := &fakeUserStore{users: map[int64]*models.User{}}
	svc := newTestUserService(store)

	id, err := svc.Register(registerInput("zhangsan", "zhangsan@example.com"))
	require.NoError(t, err)
	require.NotZero(t, id)

	// 密码以bcrypt哈希落库
	assert.NotEqual(t, "secret123", store.users[id].Password)

	// 用户名登录
	pair, err := svc.Login("zhangsan", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	// 邮箱登录
	_, err = svc.Login("zhangsan@example.com", "secret123")
	assert.NoError(t, err)
}

func TestRegisterDuplicateRejected(t *testing.T) {
	store := &fakeUserStore{users: map[int64]*models.User{}}
	svc := newTestUserService(store)

	_, err := svc.Register(registerInput("zhangsan", "zhangsan@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(registerInput("zhangsan", "other@example.com"))
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Register(registerInput("lisi", "zhangsan@example.com"))
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginWrongPassword(t *testing.T) {
	store := &fakeUserStore{users: map[int64]*models.User{}}
	svc := newTestUserService(store)

	_, err := svc.Register(registerInput("zhangsan", "zhangsan@example.com"))
	require.NoError(t, err)

	_, err = svc.Login("zhangsan", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestUserService(&fakeUserStore{users: map[int64]*models.User{}})

	_, err := svc.Login("nobody", "secret123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRefreshRotatesTokenPair(t *testing.T) {
	store := &fakeUserStore{users: map[int64]*models.User{}}
	svc := newTestUserService(store)

	_, err := svc.Register(registerInput("zhangsan", "zhangsan@example.com"))
	require.NoError(t, err)
	pair, err := svc.Login("zhangsan", "secret123")
	require.NoError(t, err)

	renewed, err := svc.Refresh(pair.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.Access)
	assert.NotEmpty(t, renewed.Refresh)
}

func TestRefreshRejectedAfterLogout(t *testing.T) {
	store := &fakeUserStore{users: map[int64]*models.User{}}
	svc := newTestUserService(store)

	id, err := svc.Register(registerInput("zhangsan", "zhangsan@example.com"))
	require.NoError(t, err)
	pair, err := svc.Login("zhangsan", "secret123")
	require.NoError(t, err)

	// 登出时间晚于令牌签发时间
	require.NoError(t, store.UpdateLastLogout(id, time.Now().Add(time.Second)))

	_, err = svc.Refresh(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshWithAccessTokenRejected(t *testing.T) {
	store := &fakeUserStore{users: map[int64]*models.User{}}
	svc := newTestUserService(store)

	_, err := svc.Register(registerInput("zhangsan", "zhangsan@example.com"))
	require.NoError(t, err)
	pair, err := svc.Login("zhangsan", "secret123")
	require.NoError(t, err)

	_, err = svc.Refresh(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetUserInfoHidesCredentials(t *testing.T) {
	store := &fakeUserStore{users: map[int64]*models.User{}}
	svc := newTestUserService(store)

	id, err := svc.Register(registerInput("zhangsan", "zhangsan@example.com"))
	require.NoError(t, err)

	info, err := svc.GetUserInfo(id)
	require.NoError(t, err)
	assert.Equal(t, "zhangsan", info.Username)
	assert.Equal(t, "zhangsan@example.com", info.Email)
}
