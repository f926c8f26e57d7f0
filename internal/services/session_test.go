package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neestoralvz/app-anime-conexion/internal/models"
	"github.com/neestoralvz/app-anime-conexion/internal/store"
)

func newTestService() *SessionService {
	return NewSessionService(store.NewMemory(), NewMatchCoordinator(), NewScoringService(), 24*time.Hour)
}

func picks(items ...string) []SelectionInput {
	out := make([]SelectionInput, 0, len(items))
	for _, item := range items {
		out = append(out, SelectionInput{AnimeID: item, Q1: 3, Q2: 3, Q3: 3})
	}
	return out
}

func TestCreateSession(t *testing.T) {
	svc := newTestService()

	state, participant, err := svc.Create("OtakuMaster")
	require.NoError(t, err)

	assert.Equal(t, models.SessionStatusWaiting, state.Session.Status)
	assert.Equal(t, models.PhaseSelection, state.Session.Phase)
	assert.Equal(t, 2, state.Session.MaxParticipants)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, state.Session.Code)
	assert.True(t, participant.IsCreator)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), state.Session.ExpiresAt, time.Minute)
}

func TestCreateRejectsBadNickname(t *testing.T) {
	svc := newTestService()

	for _, nickname := range []string{"", "x", strings.Repeat("y", 21), "bad!name"} {
		_, _, err := svc.Create(nickname)
		assert.ErrorIs(t, err, ErrInvalidInput, "nickname %q", nickname)
	}
}

func TestJoinNormalizesCode(t *testing.T) {
	svc := newTestService()

	state, _, err := svc.Create("OtakuMaster")
	require.NoError(t, err)

	joined, participant, err := svc.Join("  "+strings.ToLower(state.Session.Code)+" ", "AnimeLover")
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusActive, joined.Session.Status)
	assert.Len(t, joined.Session.Participants, 2)
	assert.False(t, participant.IsCreator)
}

func TestJoinValidation(t *testing.T) {
	svc := newTestService()

	state, _, err := svc.Create("OtakuMaster")
	require.NoError(t, err)

	_, _, err = svc.Join("nope", "AnimeLover")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.Join("ZZZZZ0", "AnimeLover")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, _, err = svc.Join(state.Session.Code, "otakumaster")
	assert.ErrorIs(t, err, store.ErrDuplicateNickname)

	_, _, err = svc.Join(state.Session.Code, "AnimeLover")
	require.NoError(t, err)
	_, _, err = svc.Join(state.Session.Code, "ThirdWheel")
	assert.ErrorIs(t, err, store.ErrFull)
}

func TestSelectionsRejectedBeforePartnerJoins(t *testing.T) {
	svc := newTestService()

	state, creator, err := svc.Create("OtakuMaster")
	require.NoError(t, err)

	_, err = svc.SubmitSelections(state.Session.ID, creator.ID, picks("x", "y", "z"))
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestSelectionValidation(t *testing.T) {
	svc := newTestService()

	state, creator, err := svc.Create("OtakuMaster")
	require.NoError(t, err)
	_, _, err = svc.Join(state.Session.Code, "AnimeLover")
	require.NoError(t, err)

	_, err = svc.SubmitSelections(state.Session.ID, creator.ID, picks("x", "y"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SubmitSelections(state.Session.ID, creator.ID, picks("x", "x", "y"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := picks("x", "y", "z")
	bad[1].Q3 = 5
	_, err = svc.SubmitSelections(state.Session.ID, creator.ID, bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SubmitSelections(state.Session.ID, "stranger", picks("x", "y", "z"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFullRoundTrip(t *testing.T) {
	svc := newTestService()

	created, a, err := svc.Create("OtakuMaster")
	require.NoError(t, err)
	sessionID := created.Session.ID

	joined, b, err := svc.Join(created.Session.Code, "AnimeLover")
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusActive, joined.Session.Status)

	// A picks {x,y,z}, B picks {y,w,v}: y is a direct match.
	state, err := svc.SubmitSelections(sessionID, a.ID, []SelectionInput{
		{AnimeID: "x", Q1: 4, Q2: 3, Q3: 3},
		{AnimeID: "y", Q1: 4, Q2: 4, Q3: 3},
		{AnimeID: "z", Q1: 3, Q2: 3, Q3: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, models.PhaseSelection, state.Session.Phase)

	state, err = svc.SubmitSelections(sessionID, b.ID, []SelectionInput{
		{AnimeID: "y", Q1: 3, Q2: 4, Q3: 3},
		{AnimeID: "w", Q1: 3, Q2: 3, Q3: 2},
		{AnimeID: "v", Q1: 2, Q2: 3, Q3: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, models.PhaseMatching, state.Session.Phase)
	assert.Equal(t, []string{"y"}, state.Session.DirectMatches)

	// Duplicate submission is rejected.
	_, err = svc.SubmitSelections(sessionID, b.ID, picks("y", "w", "v"))
	assert.ErrorIs(t, err, store.ErrConflict)

	// The read after matching advances to RATING and reveals picks.
	state, err = svc.GetState(sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseRating, state.Session.Phase)
	for _, p := range state.Progress {
		assert.Len(t, p.SelectedAnimeIDs, 3)
	}

	// Cross-rating an item the partner never picked is a caller bug.
	_, err = svc.SubmitRating(sessionID, a.ID, "x", 3, 3, 3)
	assert.ErrorIs(t, err, ErrInvalidInput)

	aCross := map[string][3]int{"y": {4, 3, 4}, "w": {2, 4, 3}, "v": {3, 3, 2}}
	bCross := map[string][3]int{"x": {3, 3, 3}, "y": {2, 3, 4}, "z": {3, 2, 2}}

	for item, q := range aCross {
		state, err = svc.SubmitRating(sessionID, a.ID, item, q[0], q[1], q[2])
		require.NoError(t, err)
	}
	// Re-rating the same item is rejected.
	_, err = svc.SubmitRating(sessionID, a.ID, "y", 4, 3, 4)
	assert.ErrorIs(t, err, store.ErrConflict)

	for item, q := range bCross {
		state, err = svc.SubmitRating(sessionID, b.ID, item, q[0], q[1], q[2])
		require.NoError(t, err)
	}

	assert.Equal(t, models.PhaseResults, state.Session.Phase)
	assert.Equal(t, models.SessionStatusCompleted, state.Session.Status)

	result, err := svc.Results(sessionID)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Stats.ItemsEvaluated)
	assert.Equal(t, 1, result.Stats.DirectMatches)
	require.NotNil(t, result.Winner)
	assert.False(t, result.NoWinner)

	// Ratings are closed once both sides have submitted.
	_, err = svc.SubmitRating(sessionID, b.ID, "x", 3, 3, 3)
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestResultsBeforeCompletionIsConflict(t *testing.T) {
	svc := newTestService()

	state, _, err := svc.Create("OtakuMaster")
	require.NoError(t, err)

	_, err = svc.Results(state.Session.ID)
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestNoWinnerWhenEveryItemVetoed(t *testing.T) {
	svc := newTestService()

	created, a, err := svc.Create("OtakuMaster")
	require.NoError(t, err)
	sessionID := created.Session.ID
	_, b, err := svc.Join(created.Session.Code, "AnimeLover")
	require.NoError(t, err)

	veto := func(items ...string) []SelectionInput {
		out := make([]SelectionInput, 0, len(items))
		for _, item := range items {
			out = append(out, SelectionInput{AnimeID: item, Q1: 4, Q2: 4, Q3: 1})
		}
		return out
	}

	_, err = svc.SubmitSelections(sessionID, a.ID, veto("x", "y", "z"))
	require.NoError(t, err)
	_, err = svc.SubmitSelections(sessionID, b.ID, veto("u", "w", "v"))
	require.NoError(t, err)

	var state *SessionState
	for _, item := range []string{"u", "w", "v"} {
		state, err = svc.SubmitRating(sessionID, a.ID, item, 4, 4, 4)
		require.NoError(t, err)
	}
	for _, item := range []string{"x", "y", "z"} {
		state, err = svc.SubmitRating(sessionID, b.ID, item, 4, 4, 4)
		require.NoError(t, err)
	}

	assert.Equal(t, models.SessionStatusCompleted, state.Session.Status)
	result, err := svc.Results(sessionID)
	require.NoError(t, err)
	assert.True(t, result.NoWinner)
	assert.Nil(t, result.Winner)
	assert.Len(t, result.Items, 6)
}

func TestPhaseNeverRegresses(t *testing.T) {
	svc := newTestService()

	created, a, err := svc.Create("OtakuMaster")
	require.NoError(t, err)
	sessionID := created.Session.ID
	_, b, err := svc.Join(created.Session.Code, "AnimeLover")
	require.NoError(t, err)

	lastIndex := models.PhaseIndex(models.PhaseSelection)
	check := func(state *SessionState) {
		t.Helper()
		idx := models.PhaseIndex(state.Session.Phase)
		assert.GreaterOrEqual(t, idx, lastIndex)
		lastIndex = idx
	}

	state, err := svc.SubmitSelections(sessionID, a.ID, picks("x", "y", "z"))
	require.NoError(t, err)
	check(state)

	state, err = svc.SubmitSelections(sessionID, b.ID, picks("x", "w", "v"))
	require.NoError(t, err)
	check(state)

	state, err = svc.GetState(sessionID)
	require.NoError(t, err)
	check(state)

	state, err = svc.SubmitRating(sessionID, a.ID, "w", 3, 3, 3)
	require.NoError(t, err)
	check(state)

	state, err = svc.GetState(sessionID)
	require.NoError(t, err)
	check(state)
}

func TestExpiredSessionReadsAsNotFound(t *testing.T) {
	now := time.Now()
	clock := now
	mem := store.NewMemory(store.WithClock(func() time.Time { return clock }))
	svc := NewSessionService(mem, NewMatchCoordinator(), NewScoringService(), 24*time.Hour)

	state, creator, err := svc.Create("OtakuMaster")
	require.NoError(t, err)

	clock = now.Add(25 * time.Hour)

	_, err = svc.GetState(state.Session.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, _, err = svc.Join(state.Session.Code, "AnimeLover")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.SubmitSelections(state.Session.ID, creator.ID, picks("x", "y", "z"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSelectionsHiddenDuringSelectionPhase(t *testing.T) {
	svc := newTestService()

	created, a, err := svc.Create("OtakuMaster")
	require.NoError(t, err)
	sessionID := created.Session.ID
	_, _, err = svc.Join(created.Session.Code, "AnimeLover")
	require.NoError(t, err)

	state, err := svc.SubmitSelections(sessionID, a.ID, picks("x", "y", "z"))
	require.NoError(t, err)

	for _, p := range state.Progress {
		assert.Empty(t, p.SelectedAnimeIDs, "picks must stay hidden until matching")
	}
	for _, p := range state.Progress {
		if p.ParticipantID == a.ID {
			assert.True(t, p.SelectionsSubmitted)
			assert.Equal(t, 3, p.SelfRatings)
		} else {
			assert.False(t, p.SelectionsSubmitted)
		}
	}
}
