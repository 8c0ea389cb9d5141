package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"taskflow/internal/auth"
	"taskflow/internal/middleware"
	"taskflow/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthHandler struct {
	db     *gorm.DB
	users  services.UserService
	tokens *auth.TokenService
}

func NewAuthHandler(db *gorm.DB, users services.UserService, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{db: db, users: users, tokens: tokens}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" || req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "Please provide name, email, and password")
		return
	}
	if !emailRe.MatchString(req.Email) {
		fail(c, http.StatusBadRequest, "Please provide a valid email")
		return
	}

	user, err := h.users.Register(h.db, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			fail(c, http.StatusBadRequest, "User already exists with this email")
			return
		}
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"user":    user.Public(),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "Please provide email and password")
		return
	}

	user, err := h.users.Authenticate(h.db, req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password return the identical status and
		// message so neither case is distinguishable.
		if errors.Is(err, services.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user.Public(),
	})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.UserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" || req.Email == "" {
		fail(c, http.StatusBadRequest, "Please provide name and email")
		return
	}
	if !emailRe.MatchString(req.Email) {
		fail(c, http.StatusBadRequest, "Please provide a valid email")
		return
	}

	user, err := h.users.UpdateProfile(h.db, userID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			fail(c, http.StatusBadRequest, "Email is already in use")
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, "User not found")
		default:
			fail(c, http.StatusInternalServerError, "Server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user.Public(),
	})
}
