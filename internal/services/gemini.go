package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"recoleta-backend/internal/models"
)

const geminiModel = "gemini-2.5-flash"

const ecoBotSystemPrompt = `Você é o EcoBot, um assistente virtual amigável do app reColeta.
Seu objetivo é ajudar moradores com:
1. Dúvidas sobre separação de lixo (reciclável vs orgânico).
2. Horários de coleta (invente horários realistas baseados no contexto).
3. Reportar problemas.

Seja conciso, use emojis e mantenha um tom comunitário e encorajador.
Se perguntarem sobre pontos, diga que podem ver no mapa.`

// Deterministic fallbacks used whenever the generative endpoint fails.
// Failures are caught exactly once and never retried.
const (
	fallbackEcoTip     = "A natureza não faz nada em vão. - Aristóteles"
	fallbackChatReply  = "Desculpe, estou com dificuldade de conexão. Tente novamente mais tarde! 🌱"
	fallbackPrediction = "Estável (Sem dados)"
)

// AssistantService talks to the Gemini generateContent REST endpoint for
// eco tips, EcoBot chat, fill-level predictions and route suggestions.
type AssistantService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAssistantService creates the assistant client. A missing API key is
// not an error: every call degrades to its local fallback.
func NewAssistantService() *AssistantService {
	return &AssistantService{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ChatTurn is one entry of the role-tagged conversation history.
type ChatTurn struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// OptimizedRoute is a suggested visiting order over collection points.
type OptimizedRoute struct {
	Points        []models.CollectionPoint `json:"points"`
	EstimatedTime string                   `json:"estimated_time"`
	DistanceSaved string                   `json:"distance_saved"`
	Reasoning     string                   `json:"reasoning"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate performs one generateContent call and returns the first text
// candidate. Single attempt, no retry.
func (s *AssistantService) generate(ctx context.Context, req geminiRequest) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, geminiModel, s.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status code %d", resp.StatusCode)
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateEcoTip returns a short sustainability quote or recycling fact.
func (s *AssistantService) GenerateEcoTip(ctx context.Context) string {
	text, err := s.generate(ctx, geminiRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{{Text: "Gere uma citação curta e inspiradora sobre natureza/sustentabilidade " +
				"de uma pessoa real famosa (cite o autor) OU um fato curioso sobre reciclagem. " +
				"Máximo 25 palavras. Não use markdown (negrito/itálico)."}},
		}},
	})
	if err != nil {
		log.Printf("⚠️  Eco tip generation failed, using fallback: %v", err)
		return fallbackEcoTip
	}

	// Strip markdown artifacts the model sometimes leaves in anyway.
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "*", "")
	text = strings.Trim(strings.TrimSpace(text), `"`)
	if text == "" {
		return fallbackEcoTip
	}
	return text
}

// Chat answers one EcoBot message given the prior conversation.
func (s *AssistantService) Chat(ctx context.Context, history []ChatTurn, message string) string {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, turn := range history {
		role := turn.Role
		if role != "user" {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: turn.Text}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: message}}})

	text, err := s.generate(ctx, geminiRequest{
		Contents:          contents,
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: ecoBotSystemPrompt}}},
	})
	if err != nil {
		log.Printf("⚠️  EcoBot chat failed, using fallback: %v", err)
		return fallbackChatReply
	}
	return text
}

type routeSuggestion struct {
	OrderedIds    []string `json:"orderedIds"`
	EstimatedTime string   `json:"estimatedTime"`
	DistanceSaved string   `json:"distanceSaved"`
	Reasoning     string   `json:"reasoning"`
}

// OptimizeRoute asks the model for a visiting order over the given
// points. Any failure, including an order that references none of the
// input ids, falls back to the local status-priority route.
func (s *AssistantService) OptimizeRoute(ctx context.Context, points []models.CollectionPoint) OptimizedRoute {
	type slimPoint struct {
		ID      string   `json:"id"`
		Address string   `json:"address"`
		Status  string   `json:"status"`
		Lat     *float64 `json:"lat"`
		Lng     *float64 `json:"lng"`
	}
	slim := make([]slimPoint, len(points))
	for i, p := range points {
		slim[i] = slimPoint{ID: p.ID, Address: p.Address, Status: p.Status, Lat: p.Lat, Lng: p.Lng}
	}
	slimJSON, _ := json.Marshal(slim)

	prompt := fmt.Sprintf(`Atue como um sistema logístico inteligente de gestão de resíduos.
Tenho a seguinte lista de pontos de coleta com coordenadas (lat/lng) e status:
%s

Tarefa:
1. Crie uma rota lógica (Problema do Caixeiro Viajante) priorizando pontos com status 'Cheio' e 'Transbordando'.
2. Pontos 'Vazio' devem ser ignorados.
3. Estime o tempo da rota e a economia de distância considerando a geografia.
4. Gere uma explicação ('reasoning').

REGRAS CRÍTICAS DE RESPOSTA:
- No campo 'orderedIds', retorne APENAS os IDs exatos dos pontos na ordem de visita.
- No campo 'reasoning', SEMPRE use o ENDEREÇO (address) do ponto para se referir a ele, NUNCA use o ID.
- Responda estritamente no formato JSON definido.`, slimJSON)

	schema := json.RawMessage(`{
		"type": "OBJECT",
		"properties": {
			"orderedIds": {"type": "ARRAY", "items": {"type": "STRING"}},
			"estimatedTime": {"type": "STRING"},
			"distanceSaved": {"type": "STRING"},
			"reasoning": {"type": "STRING"}
		}
	}`)

	text, err := s.generate(ctx, geminiRequest{
		Contents:         []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{ResponseMimeType: "application/json", ResponseSchema: schema},
	})
	if err != nil {
		log.Printf("⚠️  Route optimization failed, using local fallback: %v", err)
		return fallbackRoute(points)
	}

	var suggestion routeSuggestion
	if err := json.Unmarshal([]byte(text), &suggestion); err != nil {
		log.Printf("⚠️  Route suggestion was not valid JSON, using local fallback: %v", err)
		return fallbackRoute(points)
	}

	byID := make(map[string]models.CollectionPoint, len(points))
	for _, p := range points {
		byID[p.ID] = p
	}
	ordered := make([]models.CollectionPoint, 0, len(suggestion.OrderedIds))
	for _, id := range suggestion.OrderedIds {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	if len(ordered) == 0 {
		return fallbackRoute(points)
	}

	route := OptimizedRoute{
		Points:        ordered,
		EstimatedTime: suggestion.EstimatedTime,
		DistanceSaved: suggestion.DistanceSaved,
		Reasoning:     suggestion.Reasoning,
	}
	if route.EstimatedTime == "" {
		route.EstimatedTime = "30 min"
	}
	if route.DistanceSaved == "" {
		route.DistanceSaved = "2 km"
	}
	if route.Reasoning == "" {
		route.Reasoning = "Rota otimizada baseada na prioridade de volume e proximidade geográfica."
	}
	return route
}

// PredictZoneStatus annotates each point with a short 24h fill forecast.
func (s *AssistantService) PredictZoneStatus(ctx context.Context, points []models.CollectionPoint) []models.CollectionPoint {
	type slimPoint struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		Status string `json:"status"`
		Region string `json:"region"`
	}
	slim := make([]slimPoint, len(points))
	for i, p := range points {
		slim[i] = slimPoint{ID: p.ID, Type: p.Type, Status: p.Status, Region: p.Region}
	}
	slimJSON, _ := json.Marshal(slim)

	prompt := fmt.Sprintf(`Analise estes pontos de coleta e forneça uma PREVISÃO de volume para as próximas 24 horas.
Considere: Áreas residenciais geram mais lixo orgânico fim de semana.

Dados atuais: %s

Retorne um JSON onde as chaves são os IDs e os valores são strings curtas de previsão (ex: "Tendência de alta", "Estável", "Crítico em 4h").`, slimJSON)

	out := make([]models.CollectionPoint, len(points))
	copy(out, points)

	text, err := s.generate(ctx, geminiRequest{
		Contents:         []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		log.Printf("⚠️  Zone prediction failed, using fallback: %v", err)
		for i := range out {
			out[i].PredictedLevel = fallbackPrediction
		}
		return out
	}

	var predictions map[string]string
	if err := json.Unmarshal([]byte(text), &predictions); err != nil {
		for i := range out {
			out[i].PredictedLevel = fallbackPrediction
		}
		return out
	}

	for i := range out {
		if pred, ok := predictions[out[i].ID]; ok && pred != "" {
			out[i].PredictedLevel = pred
		} else {
			out[i].PredictedLevel = "Análise indisponível"
		}
	}
	return out
}
