package models

// RatingBreakdown is one side of an item's score as shown in the results
// report.
type RatingBreakdown struct {
	Q1    int `json:"q1"`
	Q2    int `json:"q2"`
	Q3    int `json:"q3"`
	Total int `json:"total"`
}

type ItemScore struct {
	AnimeID          string          `json:"anime_id"`
	Position         int             `json:"position"`
	SelfRating       RatingBreakdown `json:"self_rating"`
	CrossRating      RatingBreakdown `json:"cross_rating"`
	TotalScore       int             `json:"total_score"`
	PassedGoldFilter bool            `json:"passed_gold_filter"`
	DirectMatch      bool            `json:"direct_match"`
}

type ResultStats struct {
	ItemsEvaluated    int     `json:"items_evaluated"`
	ItemsPassedFilter int     `json:"items_passed_filter"`
	DirectMatches     int     `json:"direct_matches"`
	MeanScore         float64 `json:"mean_score"`
}

// GameResult is the final ranked outcome stored on a completed session.
// NoWinner is set when the gold filter eliminated every item; the items
// are still reported so the pair can see why nothing survived.
type GameResult struct {
	Winner   *ItemScore  `json:"winner,omitempty"`
	NoWinner bool        `json:"no_winner"`
	Items    []ItemScore `json:"items"`
	Stats    ResultStats `json:"stats"`
}
