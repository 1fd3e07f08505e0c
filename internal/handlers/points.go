package handlers

import (
	"net/http"
	"time"

	"recoleta-backend/internal/middleware"
	"recoleta-backend/internal/services"
	"recoleta-backend/pkg/utils"
)

// GetMyPoints returns the caller's live points balance, lazily seeding
// the ledger on first read.
func GetMyPoints(ledger *services.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		points, err := ledger.Balance(claims.UserID)
		if err != nil {
			utils.ServiceError(w, err)
			return
		}

		utils.Success(w, map[string]int{"points": points})
	}
}

// GetRanking returns the monthly top recyclers of the caller's region.
func GetRanking(svc *services.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ranked, err := svc.Rank(claims.Region, time.Now())
		if err != nil {
			utils.ServiceError(w, err)
			return
		}

		utils.Success(w, ranked)
	}
}
