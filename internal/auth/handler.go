package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mbishu2002/newDesk/internal/rate_limiter"
	"github.com/Mbishu2002/newDesk/internal/users"
	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/envelope"
	"github.com/Mbishu2002/newDesk/pkg/models"
	"github.com/Mbishu2002/newDesk/pkg/roles"
	"github.com/Mbishu2002/newDesk/pkg/security"
)

// SecurityRecorder appends security events; satisfied by
// auditlog.Recorder.
type SecurityRecorder interface {
	Record(event models.SecurityLog)
}

type Handler struct {
	Users   users.UserRepository
	Tokens  *security.TokenManager
	Limiter *rate_limiter.RateLimiter
	Audit   SecurityRecorder
	Log     *zap.Logger
}

func NewHandler(userRepo users.UserRepository, tokens *security.TokenManager, limiter *rate_limiter.RateLimiter, audit SecurityRecorder, log *zap.Logger) *Handler {
	return &Handler{
		Users:   userRepo,
		Tokens:  tokens,
		Limiter: limiter,
		Audit:   audit,
		Log:     log,
	}
}

// RegisterPublicRoutes mounts the endpoints that do not require a token.
func (h *Handler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.POST("/auth/login", h.Login)
	router.POST("/auth/register", h.Register)
}

func (h *Handler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/auth/logout", h.Logout)
	router.POST("/auth/check", h.Check)
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	if !h.Limiter.IsAllowed(c.ClientIP()) {
		envelope.FailWith(c, http.StatusTooManyRequests, "Too many login attempts, try again later")
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Username == "" && req.Email == "") {
		envelope.Fail(c, apperrors.Validation("username or email and password are required"))
		return
	}

	user, err := h.lookup(req)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		h.recordFailedLogin(c, req, user)
		envelope.FailWith(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	session := security.Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     roles.Role(user.Role),
		ShopID:   user.ShopID,
	}

	token, err := h.Tokens.Generate(session)
	if err != nil {
		h.Log.Error("unable to sign session token", zap.Error(err))
		envelope.FailWith(c, http.StatusInternalServerError, "Unable to sign session token")
		return
	}

	go h.Audit.Record(models.SecurityLog{
		UserID:      &user.ID,
		EventType:   models.EventLogin,
		Status:      "success",
		Description: "user logged in",
		Severity:    "info",
		ShopID:      user.ShopID,
	})

	envelope.OK(c, gin.H{"token": token, "user": user})
}

func (h *Handler) lookup(req loginRequest) (*models.User, error) {
	if req.Username != "" {
		return h.Users.GetByUsername(req.Username)
	}
	return h.Users.GetByEmail(req.Email)
}

func (h *Handler) recordFailedLogin(c *gin.Context, req loginRequest, user *models.User) {
	event := models.SecurityLog{
		EventType:   models.EventFailedLogin,
		Status:      "failure",
		Description: "failed login from " + c.ClientIP(),
		Severity:    "warning",
	}
	if user != nil {
		event.UserID = &user.ID
		event.ShopID = user.ShopID
	}
	go h.Audit.Record(event)

	name := req.Username
	if name == "" {
		name = req.Email
	}
	h.Log.Warn("failed login attempt",
		zap.String("login", name),
		zap.String("ip", c.ClientIP()),
	)
}

// Register creates the first account of a business: a shop_owner user.
// Employee accounts are created through the employees module instead.
func (h *Handler) Register(c *gin.Context) {
	if !h.Limiter.IsAllowed(c.ClientIP()) {
		envelope.FailWith(c, http.StatusTooManyRequests, "Too many requests, try again later")
		return
	}

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("username, email and password are required"))
		return
	}
	req.Role = string(roles.ShopOwner)

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

	user, err := h.Users.PersistUser(req, hashedPassword)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	session := security.Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     roles.Role(user.Role),
	}

	token, err := h.Tokens.Generate(session)
	if err != nil {
		h.Log.Error("unable to sign session token", zap.Error(err))
		envelope.FailWith(c, http.StatusInternalServerError, "Unable to sign session token")
		return
	}

	envelope.Created(c, gin.H{"token": token, "user": user})
}

// Logout only records the event. Tokens are stateless, so the client
// drops its copy and the ledger keeps the trace.
func (h *Handler) Logout(c *gin.Context) {
	if session, ok := security.SessionFrom(c); ok {
		go h.Audit.Record(models.SecurityLog{
			UserID:      &session.UserID,
			EventType:   models.EventLogout,
			Status:      "success",
			Description: "user logged out",
			Severity:    "info",
			ShopID:      session.ShopID,
		})
	}

	envelope.Message(c, "Logged out successfully")
}

// Check validates the bearer token and returns the live session.
func (h *Handler) Check(c *gin.Context) {
	session, ok := security.SessionFrom(c)
	if !ok {
		envelope.FailWith(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	user, err := h.Users.GetUser(session.UserID)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	if user == nil {
		envelope.FailWith(c, http.StatusUnauthorized, "Account no longer exists")
		return
	}

	envelope.OK(c, gin.H{"user": user})
}
