package handlers

import (
	"net/http"

	"recoleta-backend/internal/services"
	"recoleta-backend/internal/validation"
	"recoleta-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// LookupCEP resolves a Brazilian postal code to an address. Accepts both
// "01310-100" and "01310100". Unknown or malformed codes answer 404 so
// the client falls back to manual entry.
func LookupCEP(cep *services.CEPService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address, err := cep.Lookup(r.Context(), validation.CleanDigits(chi.URLParam(r, "cep")))
		if err != nil || address == nil {
			utils.Error(w, http.StatusNotFound, "CEP não encontrado.")
			return
		}
		utils.Success(w, address)
	}
}
