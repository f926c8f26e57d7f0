package store

import (
	"strings"
	"time"

	"github.com/neestoralvz/app-anime-conexion/internal/models"
)

// Record is the full state of one session: the session row plus every
// entity scoped to it. All entities live and die with the session.
type Record struct {
	Session      models.Session
	Participants []models.Participant
	Selections   []models.Selection
	Ratings      []models.Rating
}

// Store is the authoritative home of session state. Implementations must
// serialize Join and Update per session identity, and must evaluate TTL
// expiry lazily on every access: an expired session is marked EXPIRED and
// surfaced as ErrNotFound.
type Store interface {
	// Create persists a fresh session with its creator. Returns
	// ErrCodeTaken when the join code collides with a live session.
	Create(rec *Record) error

	// Get returns the session with everything scoped to it.
	Get(id string) (*Record, error)

	// Join atomically adds a participant to the session with the given
	// code, flipping status to ACTIVE when capacity is reached. Exactly
	// one of two concurrent joins against the last free slot succeeds.
	Join(code string, p models.Participant) (*Record, error)

	// Update runs fn with exclusive access to the session's record and
	// persists the mutations fn made. fn returning an error aborts the
	// update without persisting anything.
	Update(id string, fn func(rec *Record) error) (*Record, error)
}

func (r *Record) Participant(id string) *models.Participant {
	for i := range r.Participants {
		if r.Participants[i].ID == id {
			return &r.Participants[i]
		}
	}
	return nil
}

func (r *Record) NicknameTaken(nickname string) bool {
	for _, p := range r.Participants {
		if strings.EqualFold(p.Nickname, nickname) {
			return true
		}
	}
	return false
}

// expireIfDue applies the lazy TTL check to a record that is already under
// the implementation's session lock. Past the TTL the session is gone for
// callers no matter what status it had; the EXPIRED transition is only
// recorded for states that were not already terminal.
func expireIfDue(rec *Record, now time.Time) bool {
	if rec.Session.Status == models.SessionStatusExpired {
		return true
	}
	if !rec.Session.Expired(now) {
		return false
	}
	if !rec.Session.Terminal() {
		rec.Session.Status = models.SessionStatusExpired
		rec.Session.UpdatedAt = now
	}
	return true
}
