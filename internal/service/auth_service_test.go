package service

import (
	"assess_prep_backend/internal/config"
	"assess_prep_backend/internal/model"
	"assess_prep_backend/internal/util"
	"fmt"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeUserStore is an in-memory UserStore keyed by auto-assigned id.
type fakeUserStore struct {
	mu     sync.Mutex
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint]*model.User{}}
}

func (s *fakeUserStore) Create(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) FindByID(id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) UpdateLastLogin(userID uint) error { return nil }

func (s *fakeUserStore) List(page, pageSize int) ([]model.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	var out []model.User
	for i := (page - 1) * pageSize; i < len(ids) && len(out) < pageSize; i++ {
		out = append(out, *s.users[ids[i]])
	}
	return out, int64(len(ids)), nil
}

func newTestAuthService(store *fakeUserStore) *AuthService {
	return NewAuthService(store, &config.Config{
		JWT: config.JWTConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			ExpireTime: time.Hour,
		},
	})
}

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)

	user := &model.User{Name: "Ada", Email: "ada@example.com", Password: "supersecret"}
	require.NoError(t, svc.Register(user))

	stored, err := store.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCandidate, stored.Role)
	assert.NotEqual(t, "supersecret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("supersecret")))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)

	first := &model.User{Name: "Ada", Email: "ada@example.com", Password: "supersecret"}
	require.NoError(t, svc.Register(first))

	second := &model.User{Name: "Eve", Email: "ada@example.com", Password: "anothersecret"}
	assert.ErrorIs(t, svc.Register(second), util.ErrEmailRegistered)
}

func TestLoginChecksPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	require.NoError(t, svc.Register(&model.User{Name: "Ada", Email: "ada@example.com", Password: "supersecret"}))

	_, _, err := svc.Login("ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	token, user, err := svc.Login("ada@example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestListUsersPaginatesNewestFirst(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	for i := 1; i <= 25; i++ {
		require.NoError(t, store.Create(&model.User{
			Name:  fmt.Sprintf("user %d", i),
			Email: fmt.Sprintf("u%d@example.com", i),
		}))
	}

	users, total, err := svc.ListUsers(2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, users, 10)
	assert.Equal(t, uint(15), users[0].ID, "page 2 starts after the 10 newest")
}

func TestListUsersClampsBadPaging(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	for i := 1; i <= 30; i++ {
		require.NoError(t, store.Create(&model.User{Email: fmt.Sprintf("u%d@example.com", i)}))
	}

	users, total, err := svc.ListUsers(0, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(30), total)
	assert.Len(t, users, 20, "bad paging falls back to page 1, size 20")
}

func TestGetCurrentUserMissingUser(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := svc.GetCurrentUser(ctx)
	assert.ErrorIs(t, err, util.ErrUserNotFound, "no claims on the context")

	ctx, _ = gin.CreateTestContext(httptest.NewRecorder())
	ctx.Set("user", &util.Claims{UserID: 99})
	_, err = svc.GetCurrentUser(ctx)
	assert.ErrorIs(t, err, util.ErrUserNotFound, "claims for a deleted account")
}
