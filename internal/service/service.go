package service

import (
	"github.com/rs/zerolog"

	"github.com/Oganesson0221/debate-ai/internal/repository"
)

// Services bundles everything the API layer needs.
type Services struct {
	Room     *RoomService
	Speech   *SpeechService
	Registry *RoomRegistry
	Hub      *Hub
	Router   *EventRouter
}

func NewServices(repos *repository.Repositories, logger zerolog.Logger) *Services {
	registry := NewRoomRegistry()
	hub := NewHub(logger)
	router := NewEventRouter(hub, registry, repos.Session, repos.Participant, logger)

	return &Services{
		Room:     NewRoomService(repos.Session, repos.Participant, repos.POI, repos.Violation),
		Speech:   NewSpeechService(repos.Speech, repos.Session),
		Registry: registry,
		Hub:      hub,
		Router:   router,
	}
}
