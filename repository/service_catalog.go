package repository

import (
	"errors"
	"fmt"

	"github.com/Aravind-813/GigSphere/models"
	"github.com/Aravind-813/GigSphere/utils"
	"gorm.io/gorm"
)

// ServiceCatalog resolves service listings and their plan tiers.
type ServiceCatalog struct {
	db *gorm.DB
}

// NewServiceCatalog returns a catalog on the given connection.
func NewServiceCatalog(db *gorm.DB) *ServiceCatalog {
	return &ServiceCatalog{db: db}
}

// FindService loads a service with its plans.
func (c *ServiceCatalog) FindService(serviceID uint) (*models.Service, error) {
	var service models.Service
	err := c.db.Preload("Plans").First(&service, serviceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError(fmt.Sprintf("service %d not found", serviceID), err)
		}
		return nil, err
	}
	return &service, nil
}

// ListByFreelancer returns a freelancer's own listings.
func (c *ServiceCatalog) ListByFreelancer(freelancerID uint) ([]models.Service, error) {
	var listings []models.Service
	err := c.db.Preload("Plans").Where("freelancer_id = ?", freelancerID).Find(&listings).Error
	return listings, err
}

// Save creates or updates a listing with its plans.
func (c *ServiceCatalog) Save(service *models.Service) error {
	return c.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(service).Error
}
