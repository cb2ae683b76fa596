package repository

import (
	"github.com/Oganesson0221/debate-ai/internal/models"
	"github.com/Oganesson0221/debate-ai/internal/storage"
)

type SessionRepository interface {
	Create(session *models.DebateSession) error
	FindByID(id uint) (*models.DebateSession, error)
	FindByRoomCode(roomCode string) (*models.DebateSession, error)
	Update(session *models.DebateSession) error
}

type sessionRepository struct {
	db *storage.PostgresDB
}

func NewSessionRepository(db *storage.PostgresDB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *models.DebateSession) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) FindByID(id uint) (*models.DebateSession, error) {
	var session models.DebateSession
	if err := r.db.First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByRoomCode(roomCode string) (*models.DebateSession, error) {
	var session models.DebateSession
	if err := r.db.Where("room_code = ?", roomCode).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Update(session *models.DebateSession) error {
	return r.db.Save(session).Error
}
