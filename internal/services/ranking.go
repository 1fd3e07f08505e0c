package services

import (
	"math"
	"sort"
	"time"

	"recoleta-backend/internal/models"
)

// Fixed heuristics for the regional leaderboard: each collected request
// counts as roughly 5 kg of material and 50 points.
const (
	rankingPointsPerRequest = 50
	rankingKgPerRequest     = 5
	rankingKgPerTree        = 50
	rankingSize             = 10
)

// RankingService derives the monthly regional leaderboard from collection
// requests. Nothing is cached: every call recomputes from storage.
type RankingService struct {
	gamStore GamificationStore
	reqStore RequestStore
}

func NewRankingService(gamStore GamificationStore, reqStore RequestStore) *RankingService {
	return &RankingService{gamStore: gamStore, reqStore: reqStore}
}

// Rank returns the top residents of region for the calendar month
// containing now. Month boundaries are evaluated in UTC so two servers
// in different zones agree on the cutoff. Only requests with status
// collected count; ties break by name to keep the order deterministic.
func (s *RankingService) Rank(region string, now time.Time) ([]models.RankedUser, error) {
	residents, err := s.gamStore.ListResidentsByRegion(region)
	if err != nil {
		return nil, err
	}

	requests, err := s.reqStore.ListByRegion(region)
	if err != nil {
		return nil, err
	}

	year, month, _ := now.UTC().Date()

	counts := make(map[string]int, len(residents))
	for _, req := range requests {
		if req.Status != models.RequestStatusCollected {
			continue
		}
		created := time.Unix(req.CreatedAt, 0).UTC()
		if created.Year() != year || created.Month() != month {
			continue
		}
		counts[req.UserID]++
	}

	ranked := make([]models.RankedUser, 0, len(residents))
	for _, u := range residents {
		count := counts[u.ID]
		kg := count * rankingKgPerRequest
		trees := math.Round(float64(kg)/rankingKgPerTree*100) / 100
		ranked = append(ranked, models.RankedUser{
			Name:          u.Name,
			Points:        count * rankingPointsPerRequest,
			Avatar:        u.Avatar,
			KgRecycled:    kg,
			TreesSaved:    trees,
			RequestsCount: count,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > rankingSize {
		ranked = ranked[:rankingSize]
	}
	return ranked, nil
}
