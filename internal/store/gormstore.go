package store

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/neestoralvz/app-anime-conexion/internal/models"
)

// Gorm implements Store on a relational backend. Join and Update take a
// row lock on the session so the capacity and phase-advance races are
// serialized per session, same contract as the in-memory backend.
type Gorm struct {
	db    *gorm.DB
	clock func() time.Time
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db, clock: time.Now}
}

func (g *Gorm) Create(rec *Record) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Session{}).
			Where("code = ? AND status IN ? AND expires_at > ?",
				rec.Session.Code,
				[]string{models.SessionStatusWaiting, models.SessionStatusActive},
				g.clock()).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCodeTaken
		}

		session := rec.Session
		session.Participants = nil
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		return tx.Create(&rec.Participants).Error
	})
}

func (g *Gorm) Get(id string) (*Record, error) {
	var rec *Record
	err := g.db.Transaction(func(tx *gorm.DB) error {
		loaded, err := g.load(tx, id, false)
		if err != nil {
			return err
		}
		rec = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (g *Gorm) Join(code string, p models.Participant) (*Record, error) {
	var rec *Record
	err := g.db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("code = ?", code).
			First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		loaded, err := g.load(tx, session.ID, true)
		if err != nil {
			return err
		}
		if loaded.Session.Terminal() {
			return ErrNotFound
		}
		if len(loaded.Participants) >= loaded.Session.MaxParticipants {
			return ErrFull
		}
		if loaded.NicknameTaken(p.Nickname) {
			return ErrDuplicateNickname
		}

		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		loaded.Participants = append(loaded.Participants, p)

		now := g.clock()
		loaded.Session.UpdatedAt = now
		if len(loaded.Participants) == loaded.Session.MaxParticipants {
			loaded.Session.Status = models.SessionStatusActive
		}
		if err := g.saveSession(tx, &loaded.Session); err != nil {
			return err
		}
		rec = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (g *Gorm) Update(id string, fn func(rec *Record) error) (*Record, error) {
	var rec *Record
	err := g.db.Transaction(func(tx *gorm.DB) error {
		loaded, err := g.load(tx, id, true)
		if err != nil {
			return err
		}

		beforeSelections := len(loaded.Selections)
		beforeRatings := len(loaded.Ratings)

		if err := fn(loaded); err != nil {
			return err
		}

		if len(loaded.Selections) > beforeSelections {
			added := loaded.Selections[beforeSelections:]
			if err := tx.Create(&added).Error; err != nil {
				return err
			}
		}
		if len(loaded.Ratings) > beforeRatings {
			added := loaded.Ratings[beforeRatings:]
			if err := tx.Create(&added).Error; err != nil {
				return err
			}
		}

		loaded.Session.UpdatedAt = g.clock()
		if err := g.saveSession(tx, &loaded.Session); err != nil {
			return err
		}
		rec = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// load fetches the full record, applying the lazy expiry check. With
// forUpdate the session row is locked for the rest of the transaction.
func (g *Gorm) load(tx *gorm.DB, id string, forUpdate bool) (*Record, error) {
	q := tx
	if forUpdate {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var session models.Session
	if err := q.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rec := &Record{Session: session}
	if expireIfDue(rec, g.clock()) {
		if rec.Session.Status == models.SessionStatusExpired && session.Status != models.SessionStatusExpired {
			// Best effort, the read path answers NotFound either way.
			tx.Model(&models.Session{}).Where("id = ?", id).
				Update("status", models.SessionStatusExpired)
		}
		return nil, ErrNotFound
	}

	if err := tx.Where("session_id = ?", id).Order("joined_at ASC").
		Find(&rec.Participants).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("session_id = ?", id).Order("order_num ASC").
		Find(&rec.Selections).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("session_id = ?", id).Order("created_at ASC").
		Find(&rec.Ratings).Error; err != nil {
		return nil, err
	}
	rec.Session.Participants = rec.Participants
	return rec, nil
}

func (g *Gorm) saveSession(tx *gorm.DB, session *models.Session) error {
	s := *session
	s.Participants = nil
	return tx.Save(&s).Error
}
