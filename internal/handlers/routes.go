package handlers

import (
	"log"
	"net/http"

	"recoleta-backend/internal/middleware"
	"recoleta-backend/internal/models"
	"recoleta-backend/internal/services"
	"recoleta-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// OptimizeCollectionRoute builds a suggested pickup order over the
// region's bins that need attention. Read-only preview, nothing is
// persisted.
func OptimizeCollectionRoute(db *sqlx.DB, assistant *services.AssistantService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		points := []models.CollectionPoint{}
		err := db.Select(&points, `
			SELECT * FROM collection_points
			WHERE region = $1 AND status IN ($2, $3)
			ORDER BY address ASC`,
			claims.Region, models.BinFull, models.BinOverflowing)
		if err != nil {
			log.Printf("❌ Failed to load route candidates: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.Success(w, assistant.OptimizeRoute(r.Context(), points))
	}
}
