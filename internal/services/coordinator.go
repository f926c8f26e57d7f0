package services

import (
	"sort"

	"github.com/neestoralvz/app-anime-conexion/internal/models"
	"github.com/neestoralvz/app-anime-conexion/internal/store"
)

// MatchCoordinator decides when both participants have completed a phase.
// Every check recomputes readiness from the stored records instead of
// keeping counters, so a retried write can never drift the state.
type MatchCoordinator struct{}

func NewMatchCoordinator() *MatchCoordinator {
	return &MatchCoordinator{}
}

// SelectionsComplete reports whether every participant has recorded
// exactly the required number of selections.
func (c *MatchCoordinator) SelectionsComplete(rec *store.Record) bool {
	if len(rec.Participants) < rec.Session.MaxParticipants {
		return false
	}
	for _, p := range rec.Participants {
		if c.selectionCount(rec, p.ID) != models.SelectionCount {
			return false
		}
	}
	return true
}

// RatingsComplete reports whether every participant has a self-rating for
// each own pick and a cross-rating for each partner pick.
func (c *MatchCoordinator) RatingsComplete(rec *store.Record) bool {
	if !c.SelectionsComplete(rec) {
		return false
	}
	for _, p := range rec.Participants {
		if c.ratingCount(rec, p.ID, true) != models.SelectionCount {
			return false
		}
		if c.ratingCount(rec, p.ID, false) != models.SelectionCount {
			return false
		}
	}
	return true
}

// DirectMatches returns the sorted intersection of the two participants'
// selected item sets. A non-empty intersection is informational only;
// rating still covers every distinct item.
func (c *MatchCoordinator) DirectMatches(rec *store.Record) []string {
	counts := make(map[string]int)
	for _, p := range rec.Participants {
		for _, sel := range rec.Selections {
			if sel.ParticipantID == p.ID {
				counts[sel.AnimeID]++
			}
		}
	}
	var matches []string
	for id, n := range counts {
		if n == len(rec.Participants) && n > 1 {
			matches = append(matches, id)
		}
	}
	sort.Strings(matches)
	return matches
}

// SelectedBy reports whether the participant picked the item.
func (c *MatchCoordinator) SelectedBy(rec *store.Record, participantID, animeID string) bool {
	for _, sel := range rec.Selections {
		if sel.ParticipantID == participantID && sel.AnimeID == animeID {
			return true
		}
	}
	return false
}

// PartnerSelected reports whether any other participant picked the item.
func (c *MatchCoordinator) PartnerSelected(rec *store.Record, participantID, animeID string) bool {
	for _, sel := range rec.Selections {
		if sel.ParticipantID != participantID && sel.AnimeID == animeID {
			return true
		}
	}
	return false
}

// HasRating reports whether the write-once slot for
// (participant, item, role) is already taken.
func (c *MatchCoordinator) HasRating(rec *store.Record, participantID, animeID string, self bool) bool {
	for _, r := range rec.Ratings {
		if r.ParticipantID == participantID && r.AnimeID == animeID && r.IsSelfRating == self {
			return true
		}
	}
	return false
}

func (c *MatchCoordinator) selectionCount(rec *store.Record, participantID string) int {
	n := 0
	for _, sel := range rec.Selections {
		if sel.ParticipantID == participantID {
			n++
		}
	}
	return n
}

func (c *MatchCoordinator) ratingCount(rec *store.Record, participantID string, self bool) int {
	n := 0
	for _, r := range rec.Ratings {
		if r.ParticipantID == participantID && r.IsSelfRating == self {
			n++
		}
	}
	return n
}
