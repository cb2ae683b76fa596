package service

import (
	"errors"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/Oganesson0221/debate-ai/internal/models"
	"github.com/Oganesson0221/debate-ai/internal/repository"
)

// Room codes are short, shareable and unambiguous when read aloud.
const (
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomCodeLength   = 8
)

var (
	ErrSessionNotFound = errors.New("debate room not found")
	ErrNotJoinable     = errors.New("debate has already started or ended")
	ErrRoleTaken       = errors.New("this role is already taken")
	ErrAlreadyJoined   = errors.New("you have already joined this debate")
	ErrNotEnoughTeams  = errors.New("need 6 participants to start (3 per team)")
	ErrNotInProgress   = errors.New("debate is not in progress")
)

// RoomService owns the persisted session lifecycle: creation, seating,
// start/end, and turn advancement along the fixed speaker order. The
// live registry never holds this state; it only references it.
type RoomService struct {
	sessions     repository.SessionRepository
	participants repository.ParticipantRepository
	pois         repository.POIRepository
	violations   repository.ViolationRepository
}

func NewRoomService(
	sessions repository.SessionRepository,
	participants repository.ParticipantRepository,
	pois repository.POIRepository,
	violations repository.ViolationRepository,
) *RoomService {
	return &RoomService{
		sessions:     sessions,
		participants: participants,
		pois:         pois,
		violations:   violations,
	}
}

// CreateSession persists a new waiting session under a fresh room code.
func (s *RoomService) CreateSession(createdBy uint, format models.DebateFormat, motionTitle string) (*models.DebateSession, error) {
	if format == "" {
		format = models.FormatAsianParliamentary
	}

	code, err := gonanoid.Generate(roomCodeAlphabet, roomCodeLength)
	if err != nil {
		return nil, fmt.Errorf("generate room code: %w", err)
	}

	session := &models.DebateSession{
		RoomCode:    code,
		MotionTitle: motionTitle,
		Format:      format,
		Status:      models.SessionStatusWaiting,
		CreatedBy:   createdBy,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetByRoomCode returns the session and its roster.
func (s *RoomService) GetByRoomCode(roomCode string) (*models.DebateSession, []models.DebateParticipant, error) {
	session, err := s.sessions.FindByRoomCode(roomCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}

	roster, err := s.participants.FindBySession(session.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, roster, nil
}

// Join seats a user in a waiting session. Each (team, role) seat is
// taken at most once and a user joins a session at most once.
func (s *RoomService) Join(roomCode string, userID uint, team models.Team, role models.SpeakerRole) (*models.DebateParticipant, error) {
	if !validTeam(team) {
		return nil, fmt.Errorf("invalid team %q", team)
	}
	if !validRole(role) {
		return nil, fmt.Errorf("invalid speaker role %q", role)
	}

	session, err := s.sessions.FindByRoomCode(roomCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.Status != models.SessionStatusWaiting {
		return nil, ErrNotJoinable
	}

	roster, err := s.participants.FindBySession(session.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range roster {
		if p.Team == team && p.SpeakerRole == role {
			return nil, ErrRoleTaken
		}
	}

	if _, err := s.participants.FindByUserAndSession(userID, session.ID); err == nil {
		return nil, ErrAlreadyJoined
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	participant := &models.DebateParticipant{
		SessionID:   session.ID,
		UserID:      userID,
		Team:        team,
		SpeakerRole: role,
		JoinedAt:    time.Now(),
	}
	if err := s.participants.Create(participant); err != nil {
		return nil, err
	}
	return participant, nil
}

// Start moves a waiting session into progress at speaker index zero.
// Without force a full bench of six debaters is required.
func (s *RoomService) Start(sessionID uint, force bool) error {
	session, err := s.sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	if session.Status != models.SessionStatusWaiting {
		return ErrNotJoinable
	}

	if !force {
		roster, err := s.participants.FindBySession(sessionID)
		if err != nil {
			return err
		}
		if len(roster) < 6 {
			return ErrNotEnoughTeams
		}
	}

	now := time.Now()
	session.Status = models.SessionStatusInProgress
	session.StartedAt = &now
	session.CurrentSpeakerIndex = 0
	session.CurrentSpeakerStart = &now
	return s.sessions.Update(session)
}

// End completes an in-progress session.
func (s *RoomService) End(sessionID uint) error {
	session, err := s.sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	if session.Status != models.SessionStatusInProgress {
		return ErrNotInProgress
	}

	now := time.Now()
	session.Status = models.SessionStatusCompleted
	session.EndedAt = &now
	return s.sessions.Update(session)
}

// AdvanceSpeaker moves the session to the next seat in the speaking
// order. Past the final seat the session is completed and finished is
// reported with no next speaker.
func (s *RoomService) AdvanceSpeaker(sessionID uint) (finished bool, next models.SpeakerRole, err error) {
	session, err := s.sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, "", ErrSessionNotFound
		}
		return false, "", err
	}
	if session.Status != models.SessionStatusInProgress {
		return false, "", ErrNotInProgress
	}

	now := time.Now()
	nextIndex := session.CurrentSpeakerIndex + 1
	if nextIndex >= len(models.APSpeakerOrder) {
		session.Status = models.SessionStatusCompleted
		session.EndedAt = &now
		if err := s.sessions.Update(session); err != nil {
			return false, "", err
		}
		return true, "", nil
	}

	session.CurrentSpeakerIndex = nextIndex
	session.CurrentSpeakerStart = &now
	if err := s.sessions.Update(session); err != nil {
		return false, "", err
	}
	return false, models.APSpeakerOrder[nextIndex], nil
}

// OfferPOI records a point of information against a speech.
func (s *RoomService) OfferPOI(sessionID, offeredByID, targetSpeechID uint, timestamp float64, content string) (*models.PointOfInformation, error) {
	poi := &models.PointOfInformation{
		SessionID:      sessionID,
		OfferedByID:    offeredByID,
		TargetSpeechID: targetSpeechID,
		Timestamp:      timestamp,
		Content:        content,
	}
	if err := s.pois.Create(poi); err != nil {
		return nil, err
	}
	return poi, nil
}

// RespondPOI records whether the speaker accepted the POI.
func (s *RoomService) RespondPOI(poiID uint, accepted bool) error {
	poi, err := s.pois.FindByID(poiID)
	if err != nil {
		return err
	}
	poi.WasAccepted = accepted
	return s.pois.Update(poi)
}

func (s *RoomService) ListPOIs(sessionID uint) ([]models.PointOfInformation, error) {
	return s.pois.FindBySession(sessionID)
}

// ReportViolation records a flagged rule breach.
func (s *RoomService) ReportViolation(v *models.RuleViolation) error {
	if v.Severity == "" {
		v.Severity = models.SeverityMinor
	}
	return s.violations.Create(v)
}

func (s *RoomService) ListViolations(sessionID uint) ([]models.RuleViolation, error) {
	return s.violations.FindBySession(sessionID)
}

func validTeam(team models.Team) bool {
	return team == models.TeamGovernment || team == models.TeamOpposition
}

func validRole(role models.SpeakerRole) bool {
	for _, r := range models.APSpeakerOrder {
		if r == role {
			return true
		}
	}
	return false
}
