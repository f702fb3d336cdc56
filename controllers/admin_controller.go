package controllers

import (
	"os"
	"time"

	"github.com/Aravind-813/GigSphere/config"
	"github.com/Aravind-813/GigSphere/models"
	"github.com/Aravind-813/GigSphere/utils"
	"github.com/gin-gonic/gin"
)

// POST /v1/admin/login
func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. email and password are required", err.Error())
		return
	}

	var admin models.Admin
	if err := config.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		utils.LogError("Admin login failed, not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.LogError("Admin login failed, wrong password for admin ID: %d", admin.ID)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if !admin.IsActive {
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	config.DB.Model(&admin).Update("last_login", time.Now())

	token, err := utils.GenerateAdminToken(&admin)
	if err != nil {
		utils.LogError("Failed to generate admin token: %v", err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}
	utils.LogInfo("Admin %d logged in", admin.ID)

	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
		},
	})
}

// CreateSampleAdmin seeds the first operator account from environment
// variables when none exists yet.
func CreateSampleAdmin() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.LogInfo("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing models.Admin
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.Admin{
		Email:    email,
		Password: hashed,
		IsActive: true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}
	utils.LogInfo("Seeded admin account %s", email)
	return nil
}
