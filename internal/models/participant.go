package models

import "time"

type Participant struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"size:36;not null;index" json:"session_id"`
	Nickname  string    `gorm:"size:20;not null" json:"nickname"`
	IsCreator bool      `gorm:"not null;default:false" json:"is_creator"`
	JoinedAt  time.Time `json:"joined_at"`
}
