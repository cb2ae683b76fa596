package repository

import (
	"github.com/Oganesson0221/debate-ai/internal/models"
	"github.com/Oganesson0221/debate-ai/internal/storage"
)

type SpeechRepository interface {
	Create(speech *models.Speech) error
	FindByID(id uint) (*models.Speech, error)
	FindBySession(sessionID uint) ([]models.Speech, error)
	Update(speech *models.Speech) error
	AddSegment(segment *models.TranscriptSegment) error
	FindSegments(speechID uint) ([]models.TranscriptSegment, error)
}

type speechRepository struct {
	db *storage.PostgresDB
}

func NewSpeechRepository(db *storage.PostgresDB) SpeechRepository {
	return &speechRepository{db: db}
}

func (r *speechRepository) Create(speech *models.Speech) error {
	return r.db.Create(speech).Error
}

func (r *speechRepository) FindByID(id uint) (*models.Speech, error) {
	var speech models.Speech
	if err := r.db.First(&speech, id).Error; err != nil {
		return nil, err
	}
	return &speech, nil
}

func (r *speechRepository) FindBySession(sessionID uint) ([]models.Speech, error) {
	var speeches []models.Speech
	err := r.db.Where("session_id = ?", sessionID).Order("started_at").Find(&speeches).Error
	return speeches, err
}

func (r *speechRepository) Update(speech *models.Speech) error {
	return r.db.Save(speech).Error
}

func (r *speechRepository) AddSegment(segment *models.TranscriptSegment) error {
	return r.db.Create(segment).Error
}

func (r *speechRepository) FindSegments(speechID uint) ([]models.TranscriptSegment, error) {
	var segments []models.TranscriptSegment
	err := r.db.Where("speech_id = ?", speechID).Order("start_time").Find(&segments).Error
	return segments, err
}
