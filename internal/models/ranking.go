package models

// RankedUser is a derived leaderboard entry. It is never persisted: the
// ranking is recomputed from collection requests on every read.
type RankedUser struct {
	Name          string  `json:"name"`
	Points        int     `json:"points"`
	Avatar        string  `json:"avatar"`
	KgRecycled    int     `json:"kg_recycled"`
	TreesSaved    float64 `json:"trees_saved"`
	RequestsCount int     `json:"requests_count"`
}
