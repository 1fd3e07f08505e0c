package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"recoleta-backend/internal/services"
	"recoleta-backend/pkg/utils"
)

type chatRequest struct {
	Message string              `json:"message"`
	History []services.ChatTurn `json:"history,omitempty"`
}

// GetEcoTip returns the daily sustainability tip.
func GetEcoTip(assistant *services.AssistantService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tip := assistant.GenerateEcoTip(r.Context())
		utils.Success(w, map[string]string{"tip": tip})
	}
}

// ChatWithAssistant answers a resident question through the EcoBot persona.
func ChatWithAssistant(assistant *services.AssistantService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			utils.Error(w, http.StatusBadRequest, "Mensagem é obrigatória.")
			return
		}

		reply := assistant.Chat(r.Context(), req.History, req.Message)
		utils.Success(w, map[string]string{"reply": reply})
	}
}
