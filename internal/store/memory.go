package store

import (
	"sync"
	"time"

	"github.com/neestoralvz/app-anime-conexion/internal/models"
)

// Memory is the default Store backend: a mutex-guarded map with one lock
// per session. Cross-session operations never contend with each other.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*entry
	byCode  map[string]string
	clock   func() time.Time
}

type entry struct {
	mu  sync.Mutex
	rec Record
}

type Option func(*Memory)

// WithClock overrides the time source, used by expiry tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Memory) {
		m.clock = clock
	}
}

func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		entries: make(map[string]*entry),
		byCode:  make(map[string]string),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Create(rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if holderID, ok := m.byCode[rec.Session.Code]; ok {
		if holder, ok := m.entries[holderID]; ok && m.codeStillLive(holder) {
			return ErrCodeTaken
		}
		// Stale index entry left by an expired or finished session,
		// the code is free to reuse.
		delete(m.byCode, rec.Session.Code)
	}

	e := &entry{rec: *cloneRecord(rec)}
	m.entries[rec.Session.ID] = e
	m.byCode[rec.Session.Code] = rec.Session.ID
	return nil
}

func (m *Memory) Get(id string) (*Record, error) {
	e, ok := m.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if expireIfDue(&e.rec, m.clock()) {
		return nil, ErrNotFound
	}
	return cloneRecord(&e.rec), nil
}

func (m *Memory) Join(code string, p models.Participant) (*Record, error) {
	m.mu.RLock()
	id, ok := m.byCode[code]
	var e *entry
	if ok {
		e, ok = m.entries[id]
	}
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := m.clock()
	if expireIfDue(&e.rec, now) || e.rec.Session.Code != code {
		return nil, ErrNotFound
	}
	if e.rec.Session.Terminal() {
		return nil, ErrNotFound
	}
	if len(e.rec.Participants) >= e.rec.Session.MaxParticipants {
		return nil, ErrFull
	}
	if e.rec.NicknameTaken(p.Nickname) {
		return nil, ErrDuplicateNickname
	}

	e.rec.Participants = append(e.rec.Participants, p)
	if len(e.rec.Participants) == e.rec.Session.MaxParticipants {
		e.rec.Session.Status = models.SessionStatusActive
	}
	e.rec.Session.UpdatedAt = now
	return cloneRecord(&e.rec), nil
}

func (m *Memory) Update(id string, fn func(rec *Record) error) (*Record, error) {
	e, ok := m.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if expireIfDue(&e.rec, m.clock()) {
		return nil, ErrNotFound
	}

	// fn works on a scratch copy so a failed update persists nothing.
	scratch := cloneRecord(&e.rec)
	if err := fn(scratch); err != nil {
		return nil, err
	}
	scratch.Session.UpdatedAt = m.clock()
	e.rec = *scratch
	return cloneRecord(&e.rec), nil
}

func (m *Memory) lookup(id string) (*entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	return e, ok
}

// codeStillLive reports whether the entry keeps its claim on its join
// code. Callers hold m.mu.
func (m *Memory) codeStillLive(e *entry) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !expireIfDue(&e.rec, m.clock()) && !e.rec.Session.Terminal()
}

func cloneRecord(rec *Record) *Record {
	out := &Record{
		Session:      rec.Session,
		Participants: append([]models.Participant(nil), rec.Participants...),
		Selections:   append([]models.Selection(nil), rec.Selections...),
		Ratings:      append([]models.Rating(nil), rec.Ratings...),
	}
	out.Session.DirectMatches = append([]string(nil), rec.Session.DirectMatches...)
	if rec.Session.Result != nil {
		res := *rec.Session.Result
		res.Items = append([]models.ItemScore(nil), rec.Session.Result.Items...)
		if rec.Session.Result.Winner != nil {
			w := *rec.Session.Result.Winner
			res.Winner = &w
		}
		out.Session.Result = &res
	}
	out.Session.Participants = out.Participants
	return out
}
