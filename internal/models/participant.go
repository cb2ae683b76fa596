package models

import (
	"time"

	"gorm.io/gorm"
)

// DebateParticipant binds a user to a team and speaker role within one
// session. IsConnected mirrors live connectivity for clients that read
// the roster over HTTP.
type DebateParticipant struct {
	gorm.Model
	SessionID   uint        `gorm:"index;not null" json:"sessionId"`
	UserID      uint        `gorm:"not null" json:"userId"`
	Team        Team        `gorm:"size:16;not null" json:"team"`
	SpeakerRole SpeakerRole `gorm:"size:8;not null" json:"speakerRole"`
	IsConnected bool        `gorm:"not null;default:false" json:"isConnected"`
	JoinedAt    time.Time   `json:"joinedAt"`
}

// Team is one of the two benches.
type Team string

const (
	TeamGovernment Team = "government"
	TeamOpposition Team = "opposition"
)

// SpeakerRole identifies a seat in the speaking order.
type SpeakerRole string

const (
	RolePM  SpeakerRole = "pm"  // Prime Minister
	RoleDPM SpeakerRole = "dpm" // Deputy Prime Minister
	RoleGW  SpeakerRole = "gw"  // Government Whip
	RoleLO  SpeakerRole = "lo"  // Leader of Opposition
	RoleDLO SpeakerRole = "dlo" // Deputy Leader of Opposition
	RoleOW  SpeakerRole = "ow"  // Opposition Whip
	RolePMR SpeakerRole = "pmr" // PM Reply
	RoleLOR SpeakerRole = "lor" // LO Reply
)
