package users

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/gin-gonic/gin"

	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/envelope"
	"github.com/Mbishu2002/newDesk/pkg/models"
	"github.com/Mbishu2002/newDesk/pkg/roles"
	"github.com/Mbishu2002/newDesk/pkg/security"
)

type UsersHandler struct {
	Repository UserRepository
}

func NewHandler(r UserRepository) *UsersHandler {
	return &UsersHandler{Repository: r}
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/users/create", security.Authorize(roles.Admin), h.CreateUser)
	router.POST("/users/get", h.GetUser)
	router.POST("/users/get-all", security.Authorize(roles.ShopOwner), h.GetUserList)
	router.POST("/users/update", h.UpdateUser)
}

func (h *UsersHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("username, email, password and role are required"))
		return
	}

	if !roles.Valid(req.Role) {
		envelope.Fail(c, apperrors.Validation("unknown role %q", req.Role))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		envelope.Fail(c, apperrors.Store(err))
		return
	}

	user, err := h.Repository.PersistUser(req, hashedPassword)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.Created(c, gin.H{"user": user})
}

type getUserRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *UsersHandler) GetUser(c *gin.Context) {
	var req getUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("id is required"))
		return
	}

	if !h.isAllowed(c, req.ID, roles.ShopOwner) {
		envelope.FailWith(c, http.StatusForbidden, "You are not allowed to access this resource")
		return
	}

	user, err := h.Repository.GetUser(req.ID)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	if user == nil {
		envelope.Fail(c, apperrors.NotFound("user %s not found", req.ID))
		return
	}

	envelope.OK(c, gin.H{"user": user})
}

func (h *UsersHandler) GetUserList(c *gin.Context) {
	users, err := h.Repository.GetUsers()
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{"users": users})
}

type updateUserRequest struct {
	ID       string  `json:"id" binding:"required"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	ShopID   *string `json:"shopId"`
}

func (h *UsersHandler) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("id is required"))
		return
	}

	if !h.isAllowed(c, req.ID, roles.Admin) {
		envelope.FailWith(c, http.StatusForbidden, "You are not allowed to access this resource")
		return
	}

	user, err := h.Repository.GetUser(req.ID)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	if user == nil {
		envelope.Fail(c, apperrors.NotFound("user %s not found", req.ID))
		return
	}

	changes := UserChanges{
		Username: req.Username,
		Email:    req.Email,
		ShopID:   req.ShopID,
	}

	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 6 {
			envelope.Fail(c, apperrors.Validation("password must be at least 6 characters long"))
			return
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			envelope.Fail(c, apperrors.Store(err))
			return
		}
		passwordHash := string(hashedPassword)
		changes.PasswordHash = &passwordHash
	}

	if req.Role != nil && *req.Role != user.Role {
		if !roles.Valid(*req.Role) {
			envelope.Fail(c, apperrors.Validation("unknown role %q", *req.Role))
			return
		}
		changes.Role = req.Role
	}

	if !changes.HasChanges() {
		envelope.OK(c, gin.H{"user": user})
		return
	}

	if err := h.Repository.UpdateUser(req.ID, changes); err != nil {
		envelope.Fail(c, err)
		return
	}

	updated, err := h.Repository.GetUser(req.ID)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{"user": updated})
}

// isAllowed lets users act on their own row; anything else needs the
// given role.
func (h *UsersHandler) isAllowed(c *gin.Context, userID string, required roles.Role) bool {
	session, ok := security.SessionFrom(c)
	if !ok {
		return false
	}
	if session.UserID == userID {
		return true
	}
	return session.Role.AtLeast(required)
}
