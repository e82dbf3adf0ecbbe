package employees

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mbishu2002/newDesk/internal/users"
	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/envelope"
	"github.com/Mbishu2002/newDesk/pkg/models"
	"github.com/Mbishu2002/newDesk/pkg/roles"
)

type Handler struct {
	Repository EmployeeRepository
	Users      users.UserRepository
	Log        *zap.Logger
}

func NewHandler(repo EmployeeRepository, userRepo users.UserRepository, log *zap.Logger) *Handler {
	return &Handler{Repository: repo, Users: userRepo, Log: log}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/entities/employee/create", h.CreateEmployee)
	router.POST("/entities/employee/get-all", h.GetAllEmployees)
	router.POST("/entities/employee/get", h.GetEmployee)
	router.POST("/entities/employee/update", h.UpdateEmployee)
	router.POST("/entities/employee/delete", h.DeleteEmployee)
	router.POST("/entities/employee/get-sales", h.GetEmployeeSales)
}

type CreateEmployeeRequest struct {
	FirstName        string           `json:"firstName" binding:"required"`
	LastName         string           `json:"lastName" binding:"required"`
	Phone            *string          `json:"phone"`
	Email            string           `json:"email" binding:"required,email"`
	Password         string           `json:"password" binding:"required,min=6"`
	Role             string           `json:"role"`
	EmploymentStatus *string          `json:"employmentStatus"`
	Salary           *decimal.Decimal `json:"salary"`
	ShopID           string           `json:"shopId" binding:"required"`
	BusinessID       string           `json:"businessId" binding:"required"`
}

// CreateEmployee provisions the employee record together with its login
// account. Both rows are written in one transaction; a duplicate email
// leaves no partial state behind.
func (h *Handler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("firstName, lastName, email, password, shopId and businessId are required"))
		return
	}

	role := req.Role
	if role == "" {
		role = string(roles.Employee)
	}
	if !roles.Valid(role) {
		envelope.Fail(c, apperrors.Validation("unknown role %q", role))
		return
	}

	if existing, err := h.Users.GetByEmail(req.Email); err != nil {
		envelope.Fail(c, err)
		return
	} else if existing != nil {
		envelope.Fail(c, apperrors.Conflict("an account with email %s already exists", req.Email))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		envelope.Fail(c, apperrors.Store(err))
		return
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.NewString(),
		Username:     req.Email,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		ShopID:       &req.ShopID,
		CreatedAt:    now,
	}
	employee := models.Employee{
		ID:               uuid.NewString(),
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Status:           "active",
		HireDate:         now,
		EmploymentStatus: req.EmploymentStatus,
		Salary:           req.Salary,
		UserID:           user.ID,
		ShopID:           req.ShopID,
		BusinessID:       req.BusinessID,
		CreatedAt:        now,
	}

	if err := h.Repository.CreateWithUser(employee, user); err != nil {
		envelope.Fail(c, err)
		return
	}

	user.PasswordHash = ""
	employee.User = &user
	envelope.Created(c, gin.H{"employee": employee})
}

type employeeListRequest struct {
	ShopID  *string  `json:"shopId"`
	ShopIDs []string `json:"shopIds"`
}

func (h *Handler) GetAllEmployees(c *gin.Context) {
	var req employeeListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("invalid request payload"))
		return
	}

	shopIDs := req.ShopIDs
	if req.ShopID != nil && *req.ShopID != "" {
		shopIDs = []string{*req.ShopID}
	}
	if len(shopIDs) == 0 {
		envelope.Fail(c, apperrors.ScopeRequired("either shopId or shopIds is required"))
		return
	}

	employees, err := h.Repository.GetByShops(shopIDs)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{"employees": employees})
}

type idRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *Handler) GetEmployee(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("id is required"))
		return
	}

	employee, err := h.Repository.Get(req.ID)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	if employee == nil {
		envelope.Fail(c, apperrors.NotFound("employee %s not found", req.ID))
		return
	}

	envelope.OK(c, gin.H{"employee": employee})
}

type updateEmployeeRequest struct {
	ID      string                `json:"id" binding:"required"`
	Updates UpdateEmployeeRequest `json:"updates"`
}

func (h *Handler) UpdateEmployee(c *gin.Context) {
	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("id is required"))
		return
	}

	employee, err := h.Repository.Update(req.ID, req.Updates)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{"employee": employee})
}

func (h *Handler) DeleteEmployee(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("id is required"))
		return
	}

	if err := h.Repository.Delete(req.ID); err != nil {
		envelope.Fail(c, err)
		return
	}

	h.Log.Info("employee deleted", zap.String("employee_id", req.ID))
	envelope.Message(c, "Employee deleted successfully")
}

type employeeSalesRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
}

func (h *Handler) GetEmployeeSales(c *gin.Context) {
	var req employeeSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("employeeId is required"))
		return
	}

	sales, err := h.Repository.SalesFor(req.EmployeeID)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{"sales": sales})
}
