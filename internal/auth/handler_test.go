package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mbishu2002/newDesk/internal/rate_limiter"
	"github.com/Mbishu2002/newDesk/internal/users"
	"github.com/Mbishu2002/newDesk/pkg/models"
	"github.com/Mbishu2002/newDesk/pkg/security"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) PersistUser(req models.CreateUserRequest, hashedPassword []byte) (*models.User, error) {
	args := m.Called(req, hashedPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUser(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(id string, changes users.UserChanges) error {
	args := m.Called(id, changes)
	return args.Error(0)
}

// fakeRecorder collects events synchronously enough to assert on after
// a short wait; Record is fired with `go` in the handler.
type fakeRecorder struct {
	mu     sync.Mutex
	events []models.SecurityLog
}

func (f *fakeRecorder) Record(event models.SecurityLog) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeRecorder) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, 0, len(f.events))
	for _, e := range f.events {
		types = append(types, e.EventType)
	}
	return types
}

func newAuthHandler(t *testing.T, userRepo users.UserRepository, limit int) (*Handler, *fakeRecorder) {
	t.Helper()

	tokens, err := security.NewTokenManager("test-secret")
	assert.NoError(t, err)

	recorder := &fakeRecorder{}
	limiter := rate_limiter.NewRateLimiter(limit, time.Minute)
	return NewHandler(userRepo, tokens, limiter, recorder, zap.NewNop()), recorder
}

func postJSON(t *testing.T, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestLoginReturnsTokenAndUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	handler, _ := newAuthHandler(t, userRepo, 5)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	user := &models.User{ID: "user-1", Username: "owner", Role: "shop_owner", PasswordHash: string(hash)}
	userRepo.On("GetByUsername", "owner").Return(user, nil)

	c, w := postJSON(t, gin.H{"username": "owner", "password": "secret123"})

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	userRepo := new(MockUserRepository)
	handler, recorder := newAuthHandler(t, userRepo, 5)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	user := &models.User{ID: "user-1", Username: "owner", Role: "shop_owner", PasswordHash: string(hash)}
	userRepo.On("GetByUsername", "owner").Return(user, nil)

	c, w := postJSON(t, gin.H{"username": "owner", "password": "wrong"})

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Eventually(t, func() bool {
		types := recorder.eventTypes()
		return len(types) == 1 && types[0] == models.EventFailedLogin
	}, time.Second, 10*time.Millisecond)
}

func TestLoginUnknownUserIsUnauthorized(t *testing.T) {
	userRepo := new(MockUserRepository)
	handler, _ := newAuthHandler(t, userRepo, 5)

	userRepo.On("GetByUsername", "ghost").Return(nil, nil)

	c, w := postJSON(t, gin.H{"username": "ghost", "password": "whatever"})

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRateLimited(t *testing.T) {
	userRepo := new(MockUserRepository)
	handler, _ := newAuthHandler(t, userRepo, 1)

	userRepo.On("GetByUsername", "owner").Return(nil, nil)

	c1, _ := postJSON(t, gin.H{"username": "owner", "password": "x"})
	handler.Login(c1)

	c2, w2 := postJSON(t, gin.H{"username": "owner", "password": "x"})
	handler.Login(c2)

	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
}

func TestCheckReturnsCurrentUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	handler, _ := newAuthHandler(t, userRepo, 5)

	user := &models.User{ID: "user-1", Username: "owner", Role: "shop_owner"}
	userRepo.On("GetUser", "user-1").Return(user, nil)

	c, w := postJSON(t, gin.H{})
	security.SetSession(c, security.Session{UserID: "user-1", Username: "owner", Role: "shop_owner"})

	handler.Check(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"owner"`)
}

func TestCheckStaleTokenForRemovedUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	handler, _ := newAuthHandler(t, userRepo, 5)

	userRepo.On("GetUser", "gone").Return(nil, nil)

	c, w := postJSON(t, gin.H{})
	security.SetSession(c, security.Session{UserID: "gone", Username: "x", Role: "employee"})

	handler.Check(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
