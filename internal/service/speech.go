package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Oganesson0221/debate-ai/internal/models"
	"github.com/Oganesson0221/debate-ai/internal/repository"
)

var ErrSpeechNotFound = errors.New("speech not found")

// SpeechService owns the durable speech and transcript records. The
// live router broadcasts transcript segments in real time but persists
// nothing; clients submit the durable copies here.
type SpeechService struct {
	speeches repository.SpeechRepository
	sessions repository.SessionRepository
}

func NewSpeechService(speeches repository.SpeechRepository, sessions repository.SessionRepository) *SpeechService {
	return &SpeechService{
		speeches: speeches,
		sessions: sessions,
	}
}

// CreateSpeech opens a speech record stamped with the current time.
func (s *SpeechService) CreateSpeech(sessionID, participantID uint, role models.SpeakerRole) (*models.Speech, error) {
	if _, err := s.sessions.FindByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	now := time.Now()
	speech := &models.Speech{
		SessionID:     sessionID,
		ParticipantID: participantID,
		SpeakerRole:   role,
		StartedAt:     &now,
	}
	if err := s.speeches.Create(speech); err != nil {
		return nil, err
	}
	return speech, nil
}

// EndSpeech closes a speech with its final transcript and duration.
func (s *SpeechService) EndSpeech(speechID uint, duration int, transcript string) error {
	speech, err := s.speeches.FindByID(speechID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSpeechNotFound
		}
		return err
	}

	now := time.Now()
	speech.Duration = duration
	speech.Transcript = transcript
	speech.EndedAt = &now
	return s.speeches.Update(speech)
}

// AddSegment appends a timestamped transcript segment to a speech.
func (s *SpeechService) AddSegment(speechID uint, text string, startTime, endTime, confidence float64) (*models.TranscriptSegment, error) {
	if _, err := s.speeches.FindByID(speechID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpeechNotFound
		}
		return nil, err
	}

	segment := &models.TranscriptSegment{
		SpeechID:   speechID,
		Text:       text,
		StartTime:  startTime,
		EndTime:    endTime,
		Confidence: confidence,
	}
	if err := s.speeches.AddSegment(segment); err != nil {
		return nil, err
	}
	return segment, nil
}

func (s *SpeechService) ListSpeeches(sessionID uint) ([]models.Speech, error) {
	return s.speeches.FindBySession(sessionID)
}

func (s *SpeechService) ListSegments(speechID uint) ([]models.TranscriptSegment, error) {
	return s.speeches.FindSegments(speechID)
}
