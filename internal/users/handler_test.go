package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

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

func (m *MockUserRepository) UpdateUser(id string, changes UserChanges) error {
	args := m.Called(id, changes)
	return args.Error(0)
}

func testContext(t *testing.T, body any) (*gin.Context, *httptest.ResponseRecorder) {
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

func TestGetUserAllowsSelf(t *testing.T) {
	repo := new(MockUserRepository)
	handler := NewHandler(repo)

	user := &models.User{ID: "user-1", Username: "worker", Role: "employee"}
	repo.On("GetUser", "user-1").Return(user, nil)

	c, w := testContext(t, gin.H{"id": "user-1"})
	security.SetSession(c, security.Session{UserID: "user-1", Username: "worker", Role: "employee"})

	handler.GetUser(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"worker"`)
}

func TestGetUserForbidsOtherEmployees(t *testing.T) {
	repo := new(MockUserRepository)
	handler := NewHandler(repo)

	c, w := testContext(t, gin.H{"id": "user-2"})
	security.SetSession(c, security.Session{UserID: "user-1", Username: "worker", Role: "employee"})

	handler.GetUser(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	repo.AssertNotCalled(t, "GetUser", mock.Anything)
}

func TestUpdateUserRejectsShortPassword(t *testing.T) {
	repo := new(MockUserRepository)
	handler := NewHandler(repo)

	user := &models.User{ID: "user-1", Username: "worker", Role: "employee"}
	repo.On("GetUser", "user-1").Return(user, nil)

	c, w := testContext(t, gin.H{"id": "user-1", "password": "abc"})
	security.SetSession(c, security.Session{UserID: "user-1", Username: "worker", Role: "employee"})

	handler.UpdateUser(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestUpdateUserNoChangesReturnsCurrentRow(t *testing.T) {
	repo := new(MockUserRepository)
	handler := NewHandler(repo)

	user := &models.User{ID: "user-1", Username: "worker", Role: "employee"}
	repo.On("GetUser", "user-1").Return(user, nil)

	c, w := testContext(t, gin.H{"id": "user-1"})
	security.SetSession(c, security.Session{UserID: "user-1", Username: "worker", Role: "employee"})

	handler.UpdateUser(c)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}
