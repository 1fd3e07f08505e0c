package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recoleta-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// geminiTextResponse wraps text in the generateContent candidate envelope.
func geminiTextResponse(text string) string {
	return fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, text)
}

func assistantFor(t *testing.T, handler http.HandlerFunc) *AssistantService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &AssistantService{
		apiKey:  "test-key",
		baseURL: server.URL,
		client:  &http.Client{Timeout: 2 * time.Second},
	}
}

func offlineAssistant() *AssistantService {
	return &AssistantService{
		apiKey:  "", // generate() fails before any network call
		baseURL: "http://127.0.0.1:0",
		client:  &http.Client{Timeout: time.Second},
	}
}

func TestGenerateEcoTipStripsMarkdown(t *testing.T) {
	svc := assistantFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiTextResponse(`"**Reciclar** é *viver*."`)))
	})

	tip := svc.GenerateEcoTip(context.Background())
	assert.Equal(t, "Reciclar é viver.", tip)
}

func TestGenerateEcoTipFallback(t *testing.T) {
	tip := offlineAssistant().GenerateEcoTip(context.Background())
	assert.Equal(t, fallbackEcoTip, tip)
}

func TestChatFallback(t *testing.T) {
	reply := offlineAssistant().Chat(context.Background(), nil, "Como separo o lixo?")
	assert.Equal(t, fallbackChatReply, reply)
}

func TestChatSendsHistoryAndSystemPrompt(t *testing.T) {
	svc := assistantFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiTextResponse("Olá! 🌱")))
	})

	reply := svc.Chat(context.Background(), []ChatTurn{
		{Role: "user", Text: "Oi"},
		{Role: "model", Text: "Olá!"},
	}, "Como separo o lixo?")
	assert.Equal(t, "Olá! 🌱", reply)
}

func TestOptimizeRouteMapsOrderedIds(t *testing.T) {
	svc := assistantFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiTextResponse(
			`{"orderedIds":["p2","p1"],"estimatedTime":"45 min","distanceSaved":"3 km","reasoning":"Transbordando primeiro."}`)))
	})

	points := []models.CollectionPoint{
		{ID: "p1", Address: "Rua A", Status: models.BinFull},
		{ID: "p2", Address: "Rua B", Status: models.BinOverflowing},
	}

	route := svc.OptimizeRoute(context.Background(), points)
	require.Len(t, route.Points, 2)
	assert.Equal(t, "p2", route.Points[0].ID)
	assert.Equal(t, "p1", route.Points[1].ID)
	assert.Equal(t, "45 min", route.EstimatedTime)
	assert.Equal(t, "3 km", route.DistanceSaved)
}

func TestOptimizeRouteUnknownIdsFallBack(t *testing.T) {
	svc := assistantFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiTextResponse(`{"orderedIds":["ghost-1","ghost-2"]}`)))
	})

	lat, lng := -23.55, -46.63
	points := []models.CollectionPoint{
		{ID: "p1", Status: models.BinOverflowing, Lat: &lat, Lng: &lng},
	}

	// None of the returned ids exist, so the local route takes over.
	route := svc.OptimizeRoute(context.Background(), points)
	require.Len(t, route.Points, 1)
	assert.Equal(t, "p1", route.Points[0].ID)
	assert.Equal(t, "N/D", route.DistanceSaved)
}

func TestOptimizeRouteOfflineUsesLocalFallback(t *testing.T) {
	points := []models.CollectionPoint{
		{ID: "p1", Status: models.BinFull},
		{ID: "p2", Status: models.BinEmpty},
	}

	route := offlineAssistant().OptimizeRoute(context.Background(), points)
	require.Len(t, route.Points, 1)
	assert.Equal(t, "p1", route.Points[0].ID)
}

func TestPredictZoneStatusFallback(t *testing.T) {
	points := []models.CollectionPoint{
		{ID: "p1", Status: models.BinFull},
		{ID: "p2", Status: models.BinEmpty},
	}

	out := offlineAssistant().PredictZoneStatus(context.Background(), points)
	require.Len(t, out, 2)
	assert.Equal(t, fallbackPrediction, out[0].PredictedLevel)
	assert.Equal(t, fallbackPrediction, out[1].PredictedLevel)

	// The input slice is left untouched.
	assert.Empty(t, points[0].PredictedLevel)
}

func TestPredictZoneStatusPartialAnswer(t *testing.T) {
	svc := assistantFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiTextResponse(`{"p1":"Crítico em 4h"}`)))
	})

	points := []models.CollectionPoint{
		{ID: "p1", Status: models.BinFull},
		{ID: "p2", Status: models.BinEmpty},
	}

	out := svc.PredictZoneStatus(context.Background(), points)
	require.Len(t, out, 2)
	assert.Equal(t, "Crítico em 4h", out[0].PredictedLevel)
	assert.Equal(t, "Análise indisponível", out[1].PredictedLevel)
}
