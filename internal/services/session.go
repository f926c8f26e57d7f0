package services

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/neestoralvz/app-anime-conexion/internal/models"
	"github.com/neestoralvz/app-anime-conexion/internal/store"
)

const (
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength      = 6
	codeMaxAttempts = 10
)

var (
	codePattern     = regexp.MustCompile(`^[A-Z0-9]{6}$`)
	nicknamePattern = regexp.MustCompile(`^[A-Za-z0-9 _-]{2,20}$`)
)

// SessionService owns the session lifecycle: create/join, the selection
// and rating writes, and every phase transition. All transitions run
// inside the store's per-session critical section, so a phase can never
// be double-advanced and a capacity race has exactly one winner.
type SessionService struct {
	store       store.Store
	coordinator *MatchCoordinator
	scoring     *ScoringService
	ttl         time.Duration
}

func NewSessionService(st store.Store, coordinator *MatchCoordinator, scoring *ScoringService, ttl time.Duration) *SessionService {
	return &SessionService{store: st, coordinator: coordinator, scoring: scoring, ttl: ttl}
}

type SelectionInput struct {
	AnimeID string `json:"anime_id" binding:"required"`
	Q1      int    `json:"q1" binding:"required"`
	Q2      int    `json:"q2" binding:"required"`
	Q3      int    `json:"q3" binding:"required"`
}

// ParticipantProgress is the non-blocking view of how far each side has
// come, without revealing any rating values.
type ParticipantProgress struct {
	ParticipantID       string   `json:"participant_id"`
	Nickname            string   `json:"nickname"`
	IsCreator           bool     `json:"is_creator"`
	SelectionsSubmitted bool     `json:"selections_submitted"`
	SelfRatings         int      `json:"self_ratings"`
	CrossRatings        int      `json:"cross_ratings"`
	SelectedAnimeIDs    []string `json:"selected_anime_ids,omitempty"`
}

// SessionState is the snapshot served to clients and broadcast over the
// notification channel. Selections become visible once matching has run;
// individual ratings never appear, only the final result.
type SessionState struct {
	Session  models.Session        `json:"session"`
	Progress []ParticipantProgress `json:"progress"`
}

func (s *SessionService) Create(nickname string) (*SessionState, *models.Participant, error) {
	nickname = strings.TrimSpace(nickname)
	if !nicknamePattern.MatchString(nickname) {
		return nil, nil, fmt.Errorf("%w: nickname must be 2-20 letters, digits, spaces, '_' or '-'", ErrInvalidInput)
	}

	now := time.Now()
	participant := models.Participant{
		ID:        uuid.NewString(),
		Nickname:  nickname,
		IsCreator: true,
		JoinedAt:  now,
	}

	for attempt := 0; attempt < codeMaxAttempts; attempt++ {
		session := models.Session{
			ID:              uuid.NewString(),
			Code:            generateCode(),
			Status:          models.SessionStatusWaiting,
			Phase:           models.PhaseSelection,
			MaxParticipants: 2,
			ExpiresAt:       now.Add(s.ttl),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		participant.SessionID = session.ID

		rec := &store.Record{
			Session:      session,
			Participants: []models.Participant{participant},
		}
		err := s.store.Create(rec)
		if errors.Is(err, store.ErrCodeTaken) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		return s.state(rec), &participant, nil
	}
	return nil, nil, errors.New("could not allocate a unique session code")
}

func (s *SessionService) Join(code, nickname string) (*SessionState, *models.Participant, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !codePattern.MatchString(code) {
		return nil, nil, fmt.Errorf("%w: code must be 6 uppercase letters or digits", ErrInvalidInput)
	}
	nickname = strings.TrimSpace(nickname)
	if !nicknamePattern.MatchString(nickname) {
		return nil, nil, fmt.Errorf("%w: nickname must be 2-20 letters, digits, spaces, '_' or '-'", ErrInvalidInput)
	}

	participant := models.Participant{
		ID:       uuid.NewString(),
		Nickname: nickname,
		JoinedAt: time.Now(),
	}

	rec, err := s.store.Join(code, participant)
	if errors.Is(err, store.ErrConflict) {
		// Race loser: retry the intent once before surfacing it.
		rec, err = s.store.Join(code, participant)
	}
	if err != nil {
		return nil, nil, err
	}
	participant.SessionID = rec.Session.ID
	return s.state(rec), &participant, nil
}

// GetState reads the session, opportunistically completing the automatic
// MATCHING → RATING step: matching analysis is stored by the write that
// finished selection, so the next read advances the phase.
func (s *SessionService) GetState(sessionID string) (*SessionState, error) {
	rec, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if rec.Session.Phase == models.PhaseMatching {
		rec, err = s.store.Update(sessionID, func(rec *store.Record) error {
			advancePhase(&rec.Session, models.PhaseRating)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return s.state(rec), nil
}

// SubmitSelections records a participant's three picks together with the
// self-ratings of each pick. Write-once: a second submission is rejected.
func (s *SessionService) SubmitSelections(sessionID, participantID string, picks []SelectionInput) (*SessionState, error) {
	if err := validateSelections(picks); err != nil {
		return nil, err
	}

	rec, err := s.store.Update(sessionID, func(rec *store.Record) error {
		if rec.Participant(participantID) == nil {
			return store.ErrNotFound
		}
		if rec.Session.Status != models.SessionStatusActive {
			return fmt.Errorf("%w: session is not active", store.ErrConflict)
		}
		if rec.Session.Phase != models.PhaseSelection {
			return fmt.Errorf("%w: selection phase is over", store.ErrConflict)
		}
		if s.coordinator.selectionCount(rec, participantID) > 0 {
			return fmt.Errorf("%w: selections already submitted", store.ErrConflict)
		}

		now := time.Now()
		for i, pick := range picks {
			rec.Selections = append(rec.Selections, models.Selection{
				ID:            uuid.NewString(),
				SessionID:     rec.Session.ID,
				ParticipantID: participantID,
				AnimeID:       pick.AnimeID,
				OrderNum:      i,
				CreatedAt:     now,
			})
			rec.Ratings = append(rec.Ratings, models.Rating{
				ID:            uuid.NewString(),
				SessionID:     rec.Session.ID,
				ParticipantID: participantID,
				AnimeID:       pick.AnimeID,
				IsSelfRating:  true,
				Q1:            pick.Q1,
				Q2:            pick.Q2,
				Q3:            pick.Q3,
				CreatedAt:     now,
			})
		}

		if s.coordinator.SelectionsComplete(rec) {
			rec.Session.DirectMatches = s.coordinator.DirectMatches(rec)
			advancePhase(&rec.Session, models.PhaseMatching)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.state(rec), nil
}

// SubmitRating records one blind cross-rating of a partner pick. The
// write completing the last expected rating advances to RESULTS, computes
// and stores the outcome, and completes the session in one step.
func (s *SessionService) SubmitRating(sessionID, participantID, animeID string, q1, q2, q3 int) (*SessionState, error) {
	if !models.ValidRating(q1) || !models.ValidRating(q2) || !models.ValidRating(q3) {
		return nil, fmt.Errorf("%w: ratings must be between %d and %d", ErrInvalidInput, models.RatingMin, models.RatingMax)
	}

	rec, err := s.store.Update(sessionID, func(rec *store.Record) error {
		if rec.Participant(participantID) == nil {
			return store.ErrNotFound
		}
		if rec.Session.Status != models.SessionStatusActive {
			return fmt.Errorf("%w: session is not active", store.ErrConflict)
		}
		if rec.Session.Phase == models.PhaseMatching {
			advancePhase(&rec.Session, models.PhaseRating)
		}
		if rec.Session.Phase != models.PhaseRating {
			return fmt.Errorf("%w: session is not in the rating phase", store.ErrConflict)
		}
		if !s.coordinator.PartnerSelected(rec, participantID, animeID) {
			return fmt.Errorf("%w: anime was not selected by your partner", ErrInvalidInput)
		}
		if s.coordinator.HasRating(rec, participantID, animeID, false) {
			return fmt.Errorf("%w: anime already rated", store.ErrConflict)
		}

		rec.Ratings = append(rec.Ratings, models.Rating{
			ID:            uuid.NewString(),
			SessionID:     rec.Session.ID,
			ParticipantID: participantID,
			AnimeID:       animeID,
			IsSelfRating:  false,
			Q1:            q1,
			Q2:            q2,
			Q3:            q3,
			CreatedAt:     time.Now(),
		})

		if s.coordinator.RatingsComplete(rec) {
			advancePhase(&rec.Session, models.PhaseResults)
			rec.Session.Result = s.scoring.Compute(rec.Selections, rec.Ratings, rec.Session.DirectMatches)
			rec.Session.Status = models.SessionStatusCompleted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.state(rec), nil
}

func (s *SessionService) Results(sessionID string) (*models.GameResult, error) {
	rec, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if rec.Session.Result == nil {
		return nil, fmt.Errorf("%w: results are not ready yet", store.ErrConflict)
	}
	return rec.Session.Result, nil
}

func (s *SessionService) state(rec *store.Record) *SessionState {
	session := rec.Session
	session.Participants = rec.Participants

	revealSelections := models.PhaseIndex(session.Phase) >= models.PhaseIndex(models.PhaseMatching)

	progress := make([]ParticipantProgress, 0, len(rec.Participants))
	for _, p := range rec.Participants {
		pp := ParticipantProgress{
			ParticipantID:       p.ID,
			Nickname:            p.Nickname,
			IsCreator:           p.IsCreator,
			SelectionsSubmitted: s.coordinator.selectionCount(rec, p.ID) == models.SelectionCount,
			SelfRatings:         s.coordinator.ratingCount(rec, p.ID, true),
			CrossRatings:        s.coordinator.ratingCount(rec, p.ID, false),
		}
		if revealSelections {
			for _, sel := range rec.Selections {
				if sel.ParticipantID == p.ID {
					pp.SelectedAnimeIDs = append(pp.SelectedAnimeIDs, sel.AnimeID)
				}
			}
		}
		progress = append(progress, pp)
	}

	return &SessionState{Session: session, Progress: progress}
}

func validateSelections(picks []SelectionInput) error {
	if len(picks) != models.SelectionCount {
		return fmt.Errorf("%w: exactly %d selections required", ErrInvalidInput, models.SelectionCount)
	}
	seen := make(map[string]bool, len(picks))
	for _, pick := range picks {
		if pick.AnimeID == "" {
			return fmt.Errorf("%w: anime_id is required", ErrInvalidInput)
		}
		if seen[pick.AnimeID] {
			return fmt.Errorf("%w: selections must be distinct", ErrInvalidInput)
		}
		seen[pick.AnimeID] = true
		if !models.ValidRating(pick.Q1) || !models.ValidRating(pick.Q2) || !models.ValidRating(pick.Q3) {
			return fmt.Errorf("%w: ratings must be between %d and %d", ErrInvalidInput, models.RatingMin, models.RatingMax)
		}
	}
	return nil
}

// advancePhase moves the session forward only; the phase index is
// monotonically non-decreasing for any sequence of writes.
func advancePhase(session *models.Session, to string) {
	if models.PhaseIndex(to) > models.PhaseIndex(session.Phase) {
		session.Phase = to
	}
}

func generateCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
