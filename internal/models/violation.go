package models

import (
	"gorm.io/gorm"
)

// RuleViolation records a flagged breach of debate rules.
type RuleViolation struct {
	gorm.Model
	SessionID     uint              `gorm:"index;not null" json:"sessionId"`
	SpeechID      uint              `json:"speechId"`
	ParticipantID uint              `json:"participantId"`
	ViolationType ViolationType     `gorm:"size:32;not null" json:"violationType"`
	Description   string            `gorm:"type:text" json:"description"`
	Severity      ViolationSeverity `gorm:"size:16;not null;default:minor" json:"severity"`
	Timestamp     float64           `json:"timestamp"`
}

type ViolationType string

const (
	ViolationNewArgumentInReply ViolationType = "new_argument_in_reply"
	ViolationTimeExceeded       ViolationType = "time_exceeded"
	ViolationPOIDuringProtected ViolationType = "poi_during_protected"
	ViolationSpeakingOutOfTurn  ViolationType = "speaking_out_of_turn"
)

type ViolationSeverity string

const (
	SeverityMinor    ViolationSeverity = "minor"
	SeverityModerate ViolationSeverity = "moderate"
	SeverityMajor    ViolationSeverity = "major"
)
