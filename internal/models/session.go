package models

import "time"

type Session struct {
	ID              string        `gorm:"primaryKey;size:36" json:"id"`
	Code            string        `gorm:"size:6;index" json:"code"`
	Status          string        `gorm:"size:20;not null;default:'WAITING'" json:"status"`
	Phase           string        `gorm:"size:20;not null;default:'SELECTION'" json:"phase"`
	MaxParticipants int           `gorm:"not null;default:2" json:"max_participants"`
	Participants    []Participant `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
	DirectMatches   []string      `gorm:"serializer:json" json:"direct_matches,omitempty"`
	Result          *GameResult   `gorm:"serializer:json" json:"result,omitempty"`
	ExpiresAt       time.Time     `json:"expires_at"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

const (
	SessionStatusWaiting   = "WAITING"
	SessionStatusActive    = "ACTIVE"
	SessionStatusCompleted = "COMPLETED"
	SessionStatusExpired   = "EXPIRED"

	PhaseSelection = "SELECTION"
	PhaseMatching  = "MATCHING"
	PhaseRating    = "RATING"
	PhaseResults   = "RESULTS"
)

var phaseOrder = map[string]int{
	PhaseSelection: 0,
	PhaseMatching:  1,
	PhaseRating:    2,
	PhaseResults:   3,
}

// PhaseIndex returns the position of a phase in the fixed
// SELECTION → MATCHING → RATING → RESULTS progression.
func PhaseIndex(phase string) int {
	return phaseOrder[phase]
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

func (s *Session) Terminal() bool {
	return s.Status == SessionStatusCompleted || s.Status == SessionStatusExpired
}
