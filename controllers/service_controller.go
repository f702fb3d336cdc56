package controllers

import (
	"strconv"

	"github.com/Aravind-813/GigSphere/models"
	"github.com/Aravind-813/GigSphere/pricing"
	"github.com/Aravind-813/GigSphere/utils"
	"github.com/gin-gonic/gin"
)

// GET /v1/services/:id
func GetService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid service id", nil)
		return
	}

	service, err := catalog.FindService(uint(id))
	if err != nil {
		utils.NotFound(c, "Service not found")
		return
	}

	plans := make([]gin.H, 0, len(service.Plans))
	for _, plan := range service.Plans {
		breakdown := pricing.Compute(plan.Price)
		plans = append(plans, gin.H{
			"tier":              plan.Tier,
			"price":             plan.Price,
			"price_display":     pricing.FormatINR(plan.Price),
			"total":             breakdown.Total,
			"total_display":     pricing.FormatINR(breakdown.Total),
			"delivery_days":     plan.DeliveryDays,
			"revisions_allowed": plan.RevisionsAllowed,
			"description":       plan.Description,
		})
	}

	utils.Success(c, "Service retrieved successfully", gin.H{
		"service": gin.H{
			"id":          service.ID,
			"title":       service.Title,
			"description": service.Description,
			"category":    service.Category,
			"active":      service.Active,
		},
		"plans": plans,
	})
}

// GET /v1/freelancer/services
func ListMyServices(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	listings, err := catalog.ListByFreelancer(actor.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to list services", err.Error())
		return
	}

	utils.Success(c, "Services retrieved successfully", gin.H{
		"services": listings,
		"count":    len(listings),
	})
}

// POST /v1/freelancer/services
func CreateService(c *gin.Context) {
	utils.LogInfo("CreateService called")
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Plans       []struct {
			Tier             string `json:"tier" binding:"required"`
			Price            int64  `json:"price" binding:"required"`
			DeliveryDays     int    `json:"delivery_days" binding:"required"`
			RevisionsAllowed int    `json:"revisions_allowed"`
			Description      string `json:"description"`
		} `json:"plans" binding:"required,min=1,max=3"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid create service request from user ID: %d: %v", actor.ID, err)
		utils.BadRequest(c, "Invalid request. title and at least one plan are required", err.Error())
		return
	}

	if err := utils.ValidateStringLength(req.Title, 5, 120); err != nil {
		utils.BadRequest(c, "Title "+err.Error(), nil)
		return
	}

	seen := map[string]bool{}
	plans := make([]models.ServicePlan, 0, len(req.Plans))
	for _, p := range req.Plans {
		if !models.ValidPlanTier(p.Tier) {
			utils.BadRequest(c, "Unknown plan tier: "+p.Tier, nil)
			return
		}
		if seen[p.Tier] {
			utils.BadRequest(c, "Duplicate plan tier: "+p.Tier, nil)
			return
		}
		seen[p.Tier] = true
		if p.Price <= 0 {
			utils.BadRequest(c, "Plan price must be positive", nil)
			return
		}
		if p.DeliveryDays <= 0 {
			utils.BadRequest(c, "Plan delivery window must be at least one day", nil)
			return
		}
		if p.RevisionsAllowed < 0 {
			utils.BadRequest(c, "Revisions allowed cannot be negative", nil)
			return
		}
		plans = append(plans, models.ServicePlan{
			Tier:             p.Tier,
			Price:            p.Price,
			DeliveryDays:     p.DeliveryDays,
			RevisionsAllowed: p.RevisionsAllowed,
			Description:      utils.SanitizeString(p.Description),
		})
	}

	service := &models.Service{
		FreelancerID: actor.ID,
		Title:        utils.SanitizeString(req.Title),
		Description:  utils.SanitizeString(req.Description),
		Category:     utils.SanitizeString(req.Category),
		Active:       true,
		Plans:        plans,
	}
	if err := catalog.Save(service); err != nil {
		utils.LogError("Failed to create service for user ID: %d: %v", actor.ID, err)
		utils.InternalServerError(c, "Failed to create service", err.Error())
		return
	}
	utils.LogInfo("Service %d created by freelancer %d with %d plans", service.ID, actor.ID, len(plans))

	utils.Created(c, "Service listed successfully", gin.H{"service": service})
}
