package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/saloonhq/saloon-backend/internal/auth"
	"github.com/saloonhq/saloon-backend/internal/config"
	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/middleware"
	"github.com/saloonhq/saloon-backend/internal/models"
	"github.com/saloonhq/saloon-backend/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role"`
	Phone     string `json:"phone" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type UpdateProfileRequest struct {
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	ProfilePicture *string `json:"profile_picture"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

var validRoles = map[string]bool{
	models.RoleCustomer: true,
	models.RoleOwner:    true,
	models.RoleBarber:   true,
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if !validRoles[role] {
		httperr.BadRequest(c, "invalid_role", "Role must be customer, owner or barber.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "username_taken", "This username is already in use.")
		return
	}
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_taken", "This email is already in use.")
		return
	}
	h.db.Model(&models.User{}).Where("phone = ?", req.Phone).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "phone_taken", "This phone number is already in use.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process the password.")
		return
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		Phone:        req.Phone,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not create the account.")
		return
	}

	access, refresh, err := h.tokenPair(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate tokens.")
		return
	}

	c.JSON(201, gin.H{
		"user":    user,
		"access":  access,
		"refresh": refresh,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var user models.User
	if err := h.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
		return
	}

	access, refresh, err := h.tokenPair(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate tokens.")
		return
	}

	c.JSON(200, gin.H{
		"user":    user,
		"access":  access,
		"refresh": refresh,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	claims, err := auth.Parse(h.config.JWTSecret, req.Refresh)
	if err != nil || claims.TokenType != auth.TokenTypeRefresh {
		httperr.Unauthorized(c, "invalid_refresh_token", "Refresh token is invalid or expired.")
		return
	}

	// Re-read the user so a role or account change invalidates old claims.
	var user models.User
	if err := h.db.First(&user, claims.UserID).Error; err != nil {
		httperr.Unauthorized(c, "invalid_refresh_token", "Refresh token is invalid or expired.")
		return
	}

	access, err := auth.GenerateAccessToken(h.config.JWTSecret, user.ID, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate tokens.")
		return
	}

	c.JSON(200, gin.H{"access": access})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	c.JSON(200, user)
}

// UpdateProfile patches the mutable fields. Role is never touched here,
// no matter what the payload carries.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = *req.ProfilePicture
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Could not update the profile.")
		return
	}

	c.JSON(200, user)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		httperr.BadRequest(c, "wrong_password", "Old password is incorrect.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process the password.")
		return
	}

	user.PasswordHash = string(hashed)
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Could not update the password.")
		return
	}

	c.JSON(200, gin.H{"message": "Password updated successfully."})
}

// --------- JWT ---------

func (h *AuthHandler) tokenPair(user *models.User) (string, string, error) {
	access, err := auth.GenerateAccessToken(h.config.JWTSecret, user.ID, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(h.config.JWTSecret, user.ID, user.Role)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
