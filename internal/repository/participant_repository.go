package repository

import (
	"github.com/Oganesson0221/debate-ai/internal/models"
	"github.com/Oganesson0221/debate-ai/internal/storage"
)

type ParticipantRepository interface {
	Create(participant *models.DebateParticipant) error
	FindBySession(sessionID uint) ([]models.DebateParticipant, error)
	FindByUserAndSession(userID, sessionID uint) (*models.DebateParticipant, error)
	SetConnected(participantID uint, connected bool) error
}

type participantRepository struct {
	db *storage.PostgresDB
}

func NewParticipantRepository(db *storage.PostgresDB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Create(participant *models.DebateParticipant) error {
	return r.db.Create(participant).Error
}

func (r *participantRepository) FindBySession(sessionID uint) ([]models.DebateParticipant, error) {
	var participants []models.DebateParticipant
	err := r.db.Where("session_id = ?", sessionID).Order("joined_at").Find(&participants).Error
	return participants, err
}

func (r *participantRepository) FindByUserAndSession(userID, sessionID uint) (*models.DebateParticipant, error) {
	var participant models.DebateParticipant
	err := r.db.Where("user_id = ? AND session_id = ?", userID, sessionID).First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepository) SetConnected(participantID uint, connected bool) error {
	return r.db.Model(&models.DebateParticipant{}).
		Where("id = ?", participantID).
		Update("is_connected", connected).Error
}
