package models

import "time"

// Selection is one of the three animes a participant picked.
// OrderNum only drives display order, it has no scoring effect.
type Selection struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID     string    `gorm:"size:36;not null;uniqueIndex:idx_selection_unique" json:"session_id"`
	ParticipantID string    `gorm:"size:36;not null;uniqueIndex:idx_selection_unique" json:"participant_id"`
	AnimeID       string    `gorm:"size:36;not null;uniqueIndex:idx_selection_unique" json:"anime_id"`
	OrderNum      int       `gorm:"not null" json:"order_num"`
	CreatedAt     time.Time `json:"created_at"`
}

// Rating holds one participant's answers for one anime:
// q1 story intrigue, q2 mood alignment, q3 immediate viewing impulse,
// each in [1,4]. IsSelfRating distinguishes rating one's own pick from
// the blind cross-rating of the partner's pick.
type Rating struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID     string    `gorm:"size:36;not null;uniqueIndex:idx_rating_unique" json:"session_id"`
	ParticipantID string    `gorm:"size:36;not null;uniqueIndex:idx_rating_unique" json:"participant_id"`
	AnimeID       string    `gorm:"size:36;not null;uniqueIndex:idx_rating_unique" json:"anime_id"`
	IsSelfRating  bool      `gorm:"not null;uniqueIndex:idx_rating_unique" json:"is_self_rating"`
	Q1            int       `gorm:"not null" json:"q1"`
	Q2            int       `gorm:"not null" json:"q2"`
	Q3            int       `gorm:"not null" json:"q3"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	RatingMin = 1
	RatingMax = 4

	SelectionCount = 3
)

func (r Rating) Total() int {
	return r.Q1 + r.Q2 + r.Q3
}

func ValidRating(q int) bool {
	return q >= RatingMin && q <= RatingMax
}
