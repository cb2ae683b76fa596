package models

import (
	"time"

	"gorm.io/gorm"
)

// Speech is the durable record of one delivered speech. The transcript
// is assembled by the client and submitted when the speech ends.
type Speech struct {
	gorm.Model
	SessionID     uint        `gorm:"index;not null" json:"sessionId"`
	ParticipantID uint        `gorm:"not null" json:"participantId"`
	SpeakerRole   SpeakerRole `gorm:"size:8;not null" json:"speakerRole"`
	Transcript    string      `gorm:"type:text" json:"transcript"`
	Duration      int         `json:"duration"` // seconds
	StartedAt     *time.Time  `json:"startedAt"`
	EndedAt       *time.Time  `json:"endedAt"`
}

// TranscriptSegment is a timestamped slice of a speech transcript.
// Times are seconds from the start of the speech.
type TranscriptSegment struct {
	gorm.Model
	SpeechID   uint    `gorm:"index;not null" json:"speechId"`
	Text       string  `gorm:"type:text;not null" json:"text"`
	StartTime  float64 `gorm:"not null" json:"startTime"`
	EndTime    float64 `gorm:"not null" json:"endTime"`
	Confidence float64 `json:"confidence"`
}
