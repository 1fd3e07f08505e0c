package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Address is a Brazilian postal address resolved from a CEP.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

// CEPService resolves postal codes through the ViaCEP public API.
type CEPService struct {
	baseURL string
	client  *http.Client
}

func NewCEPService() *CEPService {
	return &CEPService{
		baseURL: "https://viacep.com.br/ws",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup resolves an 8-digit CEP to an address. Every failure mode, from
// a malformed CEP to a network error to ViaCEP's own "erro" marker,
// returns (nil, nil): address lookup is a convenience, never a blocker.
func (s *CEPService) Lookup(ctx context.Context, cep string) (*Address, error) {
	if len(cep) != 8 {
		return nil, nil
	}
	for _, c := range cep {
		if c < '0' || c > '9' {
			return nil, nil
		}
	}

	url := fmt.Sprintf("%s/%s/json/", s.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var payload struct {
		Address
		Erro bool `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, nil
	}
	if payload.Erro {
		return nil, nil
	}

	return &payload.Address, nil
}
