package models

import (
	"time"

	"gorm.io/gorm"
)

// DebateSession is the persisted record behind one live debate room.
// The room code is the short identifier clients join with; live
// connection state is never stored here.
type DebateSession struct {
	gorm.Model
	RoomCode            string `gorm:"size:8;uniqueIndex;not null"`
	MotionTitle         string
	Format              DebateFormat  `gorm:"size:32;not null"`
	Status              SessionStatus `gorm:"size:16;not null"`
	CurrentSpeakerIndex int           `gorm:"not null;default:0"`
	CurrentSpeakerStart *time.Time
	CreatedBy           uint
	StartedAt           *time.Time
	EndedAt             *time.Time
}

// SessionStatus defines the lifecycle of a debate session.
type SessionStatus string

const (
	SessionStatusWaiting    SessionStatus = "waiting"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusCancelled  SessionStatus = "cancelled"
)

// DebateFormat defines the supported debate formats.
type DebateFormat string

const (
	FormatAsianParliamentary   DebateFormat = "asian_parliamentary"
	FormatBritishParliamentary DebateFormat = "british_parliamentary"
	FormatWorldSchools         DebateFormat = "world_schools"
)

// APSpeakerOrder is the fixed Asian Parliamentary speaking sequence.
// Turn position is tracked as an index into this slice on the session.
var APSpeakerOrder = []SpeakerRole{
	RolePM, RoleLO, RoleDPM, RoleDLO, RoleGW, RoleOW, RolePMR, RoleLOR,
}
