package service

import (
	"encoding/json"

	"github.com/Oganesson0221/debate-ai/internal/models"
)

// Envelope frames every message on the live connection, both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client -> server events.
const (
	EventJoinRoom         = "join-room"
	EventLeaveRoom        = "leave-room"
	EventStartSpeaking    = "start-speaking"
	EventStopSpeaking     = "stop-speaking"
	EventAudioData        = "audio-data"
	EventTranscriptUpdate = "transcript-update"
	EventPOIOffered       = "poi-offered"
	EventPOIResponse      = "poi-response"
	EventTimerPause       = "timer-pause"
	EventTimerResume      = "timer-resume"
	EventDebateStart      = "debate-start"
	EventAdvanceSpeaker   = "advance-speaker"
	EventDebateEnd        = "debate-end"
	EventRuleViolation    = "rule-violation"
)

// Server -> client events.
const (
	EventError               = "error"
	EventRoomState           = "room-state"
	EventParticipantsUpdated = "participants-updated"
	EventParticipantLeft     = "participant-left"
	EventSpeakerStarted      = "speaker-started"
	EventSpeakerStopped      = "speaker-stopped"
	EventSpeakerDisconnected = "speaker-disconnected"
	EventAudioStream         = "audio-stream"
	EventTranscriptSegment   = "transcript-segment"
	EventPOIOffer            = "poi-offer"
	EventPOIResult           = "poi-result"
	EventTimerPaused         = "timer-paused"
	EventTimerResumed        = "timer-resumed"
	EventDebateStarted       = "debate-started"
	EventSpeakerAdvanced     = "speaker-advanced"
	EventDebateEnded         = "debate-ended"
	EventViolationFlagged    = "violation-flagged"
)

// Inbound payloads.

type JoinRoomData struct {
	RoomCode      string `json:"roomCode"`
	ParticipantID uint   `json:"participantId"`
	UserID        uint   `json:"userId"`
}

type SpeechRefData struct {
	SpeechID uint `json:"speechId"`
}

type AudioData struct {
	AudioChunk []byte `json:"audioChunk"`
}

type TranscriptUpdateData struct {
	SpeechID  uint    `json:"speechId"`
	Text      string  `json:"text"`
	Timestamp float64 `json:"timestamp"`
}

type POIOfferedData struct {
	TargetSpeechID uint    `json:"targetSpeechId"`
	Timestamp      float64 `json:"timestamp"`
}

type POIResponseData struct {
	Accepted bool `json:"accepted"`
	POIID    uint `json:"poiId,omitempty"`
}

type AdvanceSpeakerData struct {
	NextSpeaker string `json:"nextSpeaker"`
}

type RuleViolationData struct {
	ViolationType string `json:"violationType"`
	Description   string `json:"description"`
}

// Outbound payloads.

type ErrorData struct {
	Message string `json:"message"`
}

// RoomStateData is sent to a joining connection only. Status and speaker
// index come from the persisted session; speaker and pause state from
// the live room.
type RoomStateData struct {
	SessionID           uint                       `json:"sessionId"`
	Status              models.SessionStatus       `json:"status"`
	CurrentSpeakerIndex int                        `json:"currentSpeakerIndex"`
	Participants        []models.DebateParticipant `json:"participants"`
	CurrentSpeaker      string                     `json:"currentSpeaker,omitempty"`
	SpeechStartTime     *int64                     `json:"speechStartTime,omitempty"` // unix ms
	IsPaused            bool                       `json:"isPaused"`
}

type ParticipantsUpdatedData struct {
	Participants []models.DebateParticipant `json:"participants"`
}

type ParticipantLeftData struct {
	ParticipantID uint               `json:"participantId"`
	SpeakerRole   models.SpeakerRole `json:"speakerRole"`
}

type SpeakerStartedData struct {
	ParticipantID uint               `json:"participantId"`
	SpeakerRole   models.SpeakerRole `json:"speakerRole"`
	Team          models.Team        `json:"team"`
	SpeechID      uint               `json:"speechId"`
	StartTime     int64              `json:"startTime"` // unix ms
}

type SpeakerStoppedData struct {
	ParticipantID uint               `json:"participantId"`
	SpeakerRole   models.SpeakerRole `json:"speakerRole"`
	SpeechID      uint               `json:"speechId"`
	Duration      int                `json:"duration"` // seconds
}

type SpeakerDisconnectedData struct {
	ParticipantID uint `json:"participantId"`
}

type AudioStreamData struct {
	SenderID   string `json:"senderId"`
	AudioChunk []byte `json:"audioChunk"`
}

type TranscriptSegmentData struct {
	SpeechID  uint    `json:"speechId"`
	Text      string  `json:"text"`
	Timestamp float64 `json:"timestamp"`
	SenderID  string  `json:"senderId"`
}

type POIOfferData struct {
	OfferedBy      uint               `json:"offeredBy"`
	Team           models.Team        `json:"team"`
	SpeakerRole    models.SpeakerRole `json:"speakerRole"`
	TargetSpeechID uint               `json:"targetSpeechId"`
	Timestamp      float64            `json:"timestamp"`
}

type POIResultData struct {
	Accepted bool `json:"accepted"`
	POIID    uint `json:"poiId,omitempty"`
}

type TimerEventData struct {
	Timestamp int64 `json:"timestamp"` // unix ms
}

type DebateStartedData struct {
	Timestamp    int64              `json:"timestamp"`
	FirstSpeaker models.SpeakerRole `json:"firstSpeaker"`
}

type SpeakerAdvancedData struct {
	NextSpeaker string `json:"nextSpeaker"`
	Timestamp   int64  `json:"timestamp"`
}

type DebateEndedData struct {
	Timestamp int64 `json:"timestamp"`
}

type ViolationFlaggedData struct {
	ViolationType string `json:"violationType"`
	Description   string `json:"description"`
	Timestamp     int64  `json:"timestamp"`
}
