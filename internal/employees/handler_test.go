package employees

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Mbishu2002/newDesk/internal/users"
	"github.com/Mbishu2002/newDesk/pkg/models"
)

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) CreateWithUser(employee models.Employee, user models.User) error {
	args := m.Called(employee, user)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Get(id string) (*models.Employee, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByShops(shopIDs []string) ([]models.Employee, error) {
	args := m.Called(shopIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Update(id string, req UpdateEmployeeRequest) (*models.Employee, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockEmployeeRepository) SalesFor(employeeID string) ([]models.Sale, error) {
	args := m.Called(employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sale), args.Error(1)
}

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

func newTestContext(t *testing.T, body any) (*gin.Context, *httptest.ResponseRecorder) {
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

func TestCreateEmployeeWritesBothRows(t *testing.T) {
	repo := new(MockEmployeeRepository)
	userRepo := new(MockUserRepository)
	handler := NewHandler(repo, userRepo, zap.NewNop())

	userRepo.On("GetByEmail", "jane@shop.example").Return(nil, nil)
	repo.On("CreateWithUser",
		mock.MatchedBy(func(e models.Employee) bool {
			return e.FirstName == "Jane" && e.ShopID == "shop-1" && e.UserID != ""
		}),
		mock.MatchedBy(func(u models.User) bool {
			return u.Email == "jane@shop.example" && u.Role == "employee" && u.PasswordHash != ""
		}),
	).Return(nil)

	c, w := newTestContext(t, gin.H{
		"firstName":  "Jane",
		"lastName":   "Doe",
		"email":      "jane@shop.example",
		"password":   "secret123",
		"shopId":     "shop-1",
		"businessId": "biz-1",
	})

	handler.CreateEmployee(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	repo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestCreateEmployeeDuplicateEmailLeavesNoRows(t *testing.T) {
	repo := new(MockEmployeeRepository)
	userRepo := new(MockUserRepository)
	handler := NewHandler(repo, userRepo, zap.NewNop())

	existing := &models.User{ID: "user-1", Email: "jane@shop.example"}
	userRepo.On("GetByEmail", "jane@shop.example").Return(existing, nil)

	c, w := newTestContext(t, gin.H{
		"firstName":  "Jane",
		"lastName":   "Doe",
		"email":      "jane@shop.example",
		"password":   "secret123",
		"shopId":     "shop-1",
		"businessId": "biz-1",
	})

	handler.CreateEmployee(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	repo.AssertNotCalled(t, "CreateWithUser", mock.Anything, mock.Anything)
}

func TestCreateEmployeeRejectsIncompletePayload(t *testing.T) {
	repo := new(MockEmployeeRepository)
	userRepo := new(MockUserRepository)
	handler := NewHandler(repo, userRepo, zap.NewNop())

	c, w := newTestContext(t, gin.H{"firstName": "Jane"})

	handler.CreateEmployee(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything)
}

func TestGetEmployeeNotFound(t *testing.T) {
	repo := new(MockEmployeeRepository)
	handler := NewHandler(repo, new(MockUserRepository), zap.NewNop())

	repo.On("Get", "missing").Return(nil, nil)

	c, w := newTestContext(t, gin.H{"id": "missing"})

	handler.GetEmployee(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestGetAllEmployeesRequiresScope(t *testing.T) {
	repo := new(MockEmployeeRepository)
	handler := NewHandler(repo, new(MockUserRepository), zap.NewNop())

	c, w := newTestContext(t, gin.H{})

	handler.GetAllEmployees(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "GetByShops", mock.Anything)
}
