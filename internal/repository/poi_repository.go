package repository

import (
	"github.com/Oganesson0221/debate-ai/internal/models"
	"github.com/Oganesson0221/debate-ai/internal/storage"
)

type POIRepository interface {
	Create(poi *models.PointOfInformation) error
	FindByID(id uint) (*models.PointOfInformation, error)
	FindBySession(sessionID uint) ([]models.PointOfInformation, error)
	Update(poi *models.PointOfInformation) error
}

type poiRepository struct {
	db *storage.PostgresDB
}

func NewPOIRepository(db *storage.PostgresDB) POIRepository {
	return &poiRepository{db: db}
}

func (r *poiRepository) Create(poi *models.PointOfInformation) error {
	return r.db.Create(poi).Error
}

func (r *poiRepository) FindByID(id uint) (*models.PointOfInformation, error) {
	var poi models.PointOfInformation
	if err := r.db.First(&poi, id).Error; err != nil {
		return nil, err
	}
	return &poi, nil
}

func (r *poiRepository) FindBySession(sessionID uint) ([]models.PointOfInformation, error) {
	var pois []models.PointOfInformation
	err := r.db.Where("session_id = ?", sessionID).Find(&pois).Error
	return pois, err
}

func (r *poiRepository) Update(poi *models.PointOfInformation) error {
	return r.db.Save(poi).Error
}
