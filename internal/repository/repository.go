package repository

import "github.com/Oganesson0221/debate-ai/internal/storage"

type Repositories struct {
	Session     SessionRepository
	Participant ParticipantRepository
	Speech      SpeechRepository
	POI         POIRepository
	Violation   ViolationRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		Session:     NewSessionRepository(db),
		Participant: NewParticipantRepository(db),
		Speech:      NewSpeechRepository(db),
		POI:         NewPOIRepository(db),
		Violation:   NewViolationRepository(db),
	}
}
