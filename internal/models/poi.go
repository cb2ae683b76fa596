package models

import (
	"gorm.io/gorm"
)

// PointOfInformation records a POI offered during a speech. Timestamp is
// seconds into the target speech at the moment of the offer.
type PointOfInformation struct {
	gorm.Model
	SessionID      uint    `gorm:"index;not null" json:"sessionId"`
	OfferedByID    uint    `gorm:"not null" json:"offeredById"`
	TargetSpeechID uint    `gorm:"not null" json:"targetSpeechId"`
	WasAccepted    bool    `gorm:"not null;default:false" json:"wasAccepted"`
	Content        string  `gorm:"type:text" json:"content"`
	Timestamp      float64 `json:"timestamp"`
}
