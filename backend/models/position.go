package models

import (
	"time"

	"gorm.io/gorm"
)

// Stance values a user can take on a procedure
const (
	PositionSupport = "support"
	PositionOppose  = "oppose"
	PositionNeutral = "neutral"
)

func IsValidPosition(p string) bool {
	return p == PositionSupport || p == PositionOppose || p == PositionNeutral
}

// Civic action types recorded against a stance
const (
	ActionContactMEP   = "contact_mep"
	ActionConsultation = "consultation"
	ActionPetition     = "petition"
	ActionShare        = "share"
)

// UserPosition is a user's stance on one procedure. The composite unique
// index enforces at most one stance per (user, procedure) pair.
type UserPosition struct {
	gorm.Model
	PublicID       string `gorm:"uniqueIndex;not null"`
	UserID         uint   `gorm:"uniqueIndex:idx_user_procedure;not null"`
	ProcedureID    string `gorm:"uniqueIndex:idx_user_procedure;not null"`
	ProcedureTitle string
	Position       string
	Reason         string
	ActionsTaken   []string `gorm:"serializer:json"`
}

// Position is the transport shape of a stance, shared with the guest store
// documents.
type Position struct {
	ID             string    `json:"id"`
	ProcedureID    string    `json:"procedureId"`
	ProcedureTitle string    `json:"procedureTitle"`
	Position       string    `json:"position"`
	Reason         string    `json:"reason,omitempty"`
	ActionsTaken   []string  `json:"actionsTaken"`
	Timestamp      time.Time `json:"timestamp"`
}

// UserAlert is a per-user alert subscription for a procedure or topic
type UserAlert struct {
	gorm.Model
	PublicID           string `gorm:"uniqueIndex;not null"`
	UserID             uint   `gorm:"index;not null"`
	ProcedureReference string
	Topic              string
	Type               string
	Channel            string // email or in_app
}

// Alert is the transport shape of an alert subscription
type Alert struct {
	ID                 string    `json:"id"`
	ProcedureReference string    `json:"procedureReference,omitempty"`
	Topic              string    `json:"topic,omitempty"`
	Type               string    `json:"type"`
	Channel            string    `json:"channel"`
	CreatedAt          time.Time `json:"createdAt"`
}
