package controllers

import (
	"time"

	"github.com/Aravind-813/GigSphere/config"
	"github.com/Aravind-813/GigSphere/models"
	"github.com/Aravind-813/GigSphere/pricing"
	"github.com/Aravind-813/GigSphere/utils"
	"github.com/gin-gonic/gin"
)

// POST /v1/register
func Register(c *gin.Context) {
	utils.LogInfo("Register called")

	var req struct {
		Username        string `json:"username" binding:"required"`
		Email           string `json:"email" binding:"required"`
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
		Role            string `json:"role" binding:"required"`
		FirstName       string `json:"first_name"`
		LastName        string `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid registration request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if valid, msg := utils.ValidateUsername(req.Username); !valid {
		utils.ValidationError(c, msg, nil)
		return
	}
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.ValidationError(c, msg, nil)
		return
	}
	if valid, msg := utils.ValidatePassword(req.Password); !valid {
		utils.ValidationError(c, msg, nil)
		return
	}
	if req.Password != req.ConfirmPassword {
		utils.BadRequest(c, "Passwords do not match", nil)
		return
	}
	if req.Role != models.RoleClient && req.Role != models.RoleFreelancer {
		utils.BadRequest(c, "Role must be client or freelancer", nil)
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		utils.LogError("Registration rejected, email or username taken: %s", req.Email)
		utils.Conflict(c, "An account with this email or username already exists", nil)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		Role:      req.Role,
		FirstName: utils.SanitizeString(req.FirstName),
		LastName:  utils.SanitizeString(req.LastName),
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user: %v", err)
		utils.InternalServerError(c, "Failed to create account", err.Error())
		return
	}
	utils.LogInfo("User %d registered as %s", user.ID, user.Role)

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.Created(c, "Account created successfully", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// POST /v1/login
func Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. email and password are required", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Login failed, user not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login failed, wrong password for user ID: %d", user.ID)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if user.IsBlocked {
		utils.LogError("Blocked user attempted login: %d", user.ID)
		utils.Forbidden(c, "Account is blocked")
		return
	}

	config.DB.Model(&user).Update("last_login_at", time.Now())

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}
	utils.LogInfo("User %d logged in", user.ID)

	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// GET /v1/profile
func GetProfile(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "Please login for access")
		return
	}
	user := userVal.(models.User)

	profile := gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"role":       user.Role,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	}
	switch user.Role {
	case models.RoleFreelancer:
		profile["lifetime_earnings"] = user.LifetimeEarnings
		profile["earnings_display"] = pricing.FormatINR(user.LifetimeEarnings)
		profile["orders_completed"] = user.OrdersCompleted
	case models.RoleClient:
		profile["lifetime_spend"] = user.LifetimeSpend
		profile["spend_display"] = pricing.FormatINR(user.LifetimeSpend)
	}

	utils.Success(c, "Profile retrieved successfully", gin.H{"user": profile})
}

// GET /v1/notifications
func ListNotifications(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	rows, err := notifier.ListForUser(actor.ID, 50)
	if err != nil {
		utils.InternalServerError(c, "Failed to load notifications", err.Error())
		return
	}

	utils.Success(c, "Notifications retrieved successfully", gin.H{
		"notifications": rows,
		"count":         len(rows),
	})
}

// POST /v1/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	notificationID, ok := orderIDParam(c)
	if !ok {
		return
	}

	if err := notifier.MarkRead(actor.ID, notificationID); err != nil {
		utils.NotFound(c, "Notification not found")
		return
	}

	utils.Success(c, "Notification marked as read", nil)
}
