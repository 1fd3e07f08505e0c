package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"recoleta-backend/internal/middleware"
	"recoleta-backend/internal/models"
	"recoleta-backend/internal/services"
	"recoleta-backend/internal/websocket"
	"recoleta-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

// ListRequests returns the caller's view of collection requests: a
// resident sees their own, an organization sees its whole region with
// pending work first.
func ListRequests(db *sqlx.DB, svc *services.RequestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := loadUser(db, claims.UserID)
		if err != nil {
			utils.Error(w, http.StatusNotFound, "Usuário não encontrado.")
			return
		}

		requests, err := svc.List(user)
		if err != nil {
			utils.ServiceError(w, err)
			return
		}

		responses := make([]models.CollectionRequestResponse, len(requests))
		for i := range requests {
			responses[i] = requests[i].ToResponse()
		}
		utils.Success(w, responses)
	}
}

// CreateRequest files a new pickup request for the authenticated resident.
func CreateRequest(db *sqlx.DB, svc *services.RequestService, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var payload models.CreateRequestPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := loadUser(db, claims.UserID)
		if err != nil {
			utils.Error(w, http.StatusNotFound, "Usuário não encontrado.")
			return
		}

		req, err := svc.Create(payload, user)
		if err != nil {
			utils.ServiceError(w, err)
			return
		}

		log.Printf("📦 New collection request %s by %s (%s)", req.ID, user.Name, req.Category)

		// Let the region's administration see new work immediately.
		hub.BroadcastToRegionRole(req.CommunityID, models.RoleOrganization, map[string]interface{}{
			"type": "request_created",
			"data": req.ToResponse(),
		})

		utils.JSON(w, http.StatusCreated, req.ToResponse())
	}
}

// UpdateRequest applies a field patch to an existing request.
func UpdateRequest(db *sqlx.DB, svc *services.RequestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		requestID := chi.URLParam(r, "id")

		var patch models.RequestPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := loadUser(db, claims.UserID)
		if err != nil {
			utils.Error(w, http.StatusNotFound, "Usuário não encontrado.")
			return
		}

		req, err := svc.Update(requestID, patch, user)
		if err != nil {
			utils.ServiceError(w, err)
			return
		}

		utils.Success(w, req.ToResponse())
	}
}

// DeleteRequest removes a request, under the same permission rules as
// editing.
func DeleteRequest(db *sqlx.DB, svc *services.RequestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		requestID := chi.URLParam(r, "id")

		user, err := loadUser(db, claims.UserID)
		if err != nil {
			utils.Error(w, http.StatusNotFound, "Usuário não encontrado.")
			return
		}

		if err := svc.Delete(requestID, user); err != nil {
			utils.ServiceError(w, err)
			return
		}

		utils.Success(w, map[string]bool{"ok": true})
	}
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetRequestStatus moves a request through its lifecycle. Organization
// role and a region match are both enforced inside the service.
func SetRequestStatus(db *sqlx.DB, svc *services.RequestService, hub *websocket.Hub, fcm *services.FCMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		requestID := chi.URLParam(r, "id")

		var body setStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := loadUser(db, claims.UserID)
		if err != nil {
			utils.Error(w, http.StatusNotFound, "Usuário não encontrado.")
			return
		}

		req, err := svc.SetStatus(requestID, body.Status, user)
		if err != nil {
			utils.ServiceError(w, err)
			return
		}

		log.Printf("🔄 Request %s -> %s by %s", req.ID, req.Status, user.Name)

		// Live update for everyone in the region, push for the owner.
		hub.BroadcastToRegion(req.CommunityID, map[string]interface{}{
			"type": "request_status",
			"data": req.ToResponse(),
		})
		for _, token := range fcmTokensForUser(db, req.UserID) {
			if err := fcm.SendStatusNotification(token, req.ID, req.Status); err != nil {
				log.Printf("⚠️  Push notification failed for %s: %v", req.UserID, err)
			}
		}

		utils.Success(w, req.ToResponse())
	}
}
