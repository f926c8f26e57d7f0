package services

import (
	"log"
	"sort"

	"github.com/neestoralvz/app-anime-conexion/internal/models"
)

// ScoringService turns both participants' ratings into the final ranked
// outcome. Compute is pure: identical inputs always produce identical
// output regardless of input order, and it touches no session state.
type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// Compute ranks the union of selected items. Per item the self side is
// the selector's own rating and the cross side is the partner's blind
// rating; a direct-match item carries one of each per participant, and
// each side becomes the per-question mean of its ratings. An item with a
// missing side should not occur once RATING completed, but is excluded
// with a log line rather than failing the whole computation.
func (s *ScoringService) Compute(selections []models.Selection, ratings []models.Rating, directMatches []string) *models.GameResult {
	matched := make(map[string]bool, len(directMatches))
	for _, id := range directMatches {
		matched[id] = true
	}

	itemIDs := make([]string, 0, len(selections))
	seen := make(map[string]bool, len(selections))
	for _, sel := range selections {
		if !seen[sel.AnimeID] {
			seen[sel.AnimeID] = true
			itemIDs = append(itemIDs, sel.AnimeID)
		}
	}
	sort.Strings(itemIDs)

	selfByItem := make(map[string][]models.Rating)
	crossByItem := make(map[string][]models.Rating)
	for _, r := range ratings {
		if r.IsSelfRating {
			selfByItem[r.AnimeID] = append(selfByItem[r.AnimeID], r)
		} else {
			crossByItem[r.AnimeID] = append(crossByItem[r.AnimeID], r)
		}
	}

	items := make([]models.ItemScore, 0, len(itemIDs))
	for _, id := range itemIDs {
		self := selfByItem[id]
		cross := crossByItem[id]
		if len(self) == 0 || len(cross) == 0 {
			log.Printf("scoring: item %s has %d self and %d cross ratings, excluded", id, len(self), len(cross))
			continue
		}

		selfSide := breakdown(self)
		crossSide := breakdown(cross)

		item := models.ItemScore{
			AnimeID:          id,
			SelfRating:       selfSide,
			CrossRating:      crossSide,
			TotalScore:       selfSide.Total + crossSide.Total,
			PassedGoldFilter: passesGoldFilter(self, cross),
			DirectMatch:      matched[id],
		}
		items = append(items, item)
	}

	sort.Slice(items, func(a, b int) bool {
		return rankLess(items[a], items[b])
	})
	for i := range items {
		items[i].Position = i + 1
	}

	result := &models.GameResult{Items: items}
	passed := 0
	scoreSum := 0
	for i := range items {
		if items[i].PassedGoldFilter {
			passed++
		}
		scoreSum += items[i].TotalScore
	}
	if len(items) > 0 && items[0].PassedGoldFilter {
		winner := items[0]
		result.Winner = &winner
	} else {
		result.NoWinner = true
	}

	result.Stats = models.ResultStats{
		ItemsEvaluated:    len(items),
		ItemsPassedFilter: passed,
		DirectMatches:     len(directMatches),
	}
	if len(items) > 0 {
		result.Stats.MeanScore = float64(scoreSum) / float64(len(items))
	}
	return result
}

// rankLess orders gold-filter survivors ahead of eliminated items, then
// by total score, breaking ties by q1 sum, then q3 sum, and finally item
// id so the order never depends on input order.
func rankLess(a, b models.ItemScore) bool {
	if a.PassedGoldFilter != b.PassedGoldFilter {
		return a.PassedGoldFilter
	}
	if a.TotalScore != b.TotalScore {
		return a.TotalScore > b.TotalScore
	}
	aq1, bq1 := a.SelfRating.Q1+a.CrossRating.Q1, b.SelfRating.Q1+b.CrossRating.Q1
	if aq1 != bq1 {
		return aq1 > bq1
	}
	aq3, bq3 := a.SelfRating.Q3+a.CrossRating.Q3, b.SelfRating.Q3+b.CrossRating.Q3
	if aq3 != bq3 {
		return aq3 > bq3
	}
	return a.AnimeID < b.AnimeID
}

// passesGoldFilter vetoes an item when any rater, in any role, scored the
// immediate viewing impulse at the minimum.
func passesGoldFilter(sides ...[]models.Rating) bool {
	for _, side := range sides {
		for _, r := range side {
			if r.Q3 == models.RatingMin {
				return false
			}
		}
	}
	return true
}

// breakdown collapses one side's ratings into a single per-question
// score: the identity for the usual single rating, the rounded-half-up
// mean when a direct match gives the side two ratings.
func breakdown(side []models.Rating) models.RatingBreakdown {
	b := models.RatingBreakdown{
		Q1: meanRoundHalfUp(side, func(r models.Rating) int { return r.Q1 }),
		Q2: meanRoundHalfUp(side, func(r models.Rating) int { return r.Q2 }),
		Q3: meanRoundHalfUp(side, func(r models.Rating) int { return r.Q3 }),
	}
	b.Total = b.Q1 + b.Q2 + b.Q3
	return b
}

func meanRoundHalfUp(side []models.Rating, q func(models.Rating) int) int {
	sum := 0
	for _, r := range side {
		sum += q(r)
	}
	n := len(side)
	return (2*sum + n) / (2 * n)
}
