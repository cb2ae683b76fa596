package repository

import (
	"github.com/Oganesson0221/debate-ai/internal/models"
	"github.com/Oganesson0221/debate-ai/internal/storage"
)

type ViolationRepository interface {
	Create(violation *models.RuleViolation) error
	FindBySession(sessionID uint) ([]models.RuleViolation, error)
}

type violationRepository struct {
	db *storage.PostgresDB
}

func NewViolationRepository(db *storage.PostgresDB) ViolationRepository {
	return &violationRepository{db: db}
}

func (r *violationRepository) Create(violation *models.RuleViolation) error {
	return r.db.Create(violation).Error
}

func (r *violationRepository) FindBySession(sessionID uint) ([]models.RuleViolation, error) {
	var violations []models.RuleViolation
	err := r.db.Where("session_id = ?", sessionID).Find(&violations).Error
	return violations, err
}
