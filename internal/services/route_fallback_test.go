package services

import (
	"testing"

	"recoleta-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func binAt(id, status string, lat, lng float64) models.CollectionPoint {
	return models.CollectionPoint{
		ID:     id,
		Status: status,
		Lat:    &lat,
		Lng:    &lng,
	}
}

func TestFallbackRouteOverflowingBeforeFull(t *testing.T) {
	points := []models.CollectionPoint{
		binAt("full-near", models.BinFull, -23.550, -46.633),
		binAt("overflow-far", models.BinOverflowing, -23.600, -46.700),
		binAt("empty", models.BinEmpty, -23.551, -46.634),
	}

	route := fallbackRoute(points)
	require.Len(t, route.Points, 2)

	// Overflowing wins regardless of distance; empty bins are skipped.
	assert.Equal(t, "overflow-far", route.Points[0].ID)
	assert.Equal(t, "full-near", route.Points[1].ID)
	assert.Equal(t, "N/D", route.DistanceSaved)
}

func TestFallbackRouteNearestNeighborWithinBand(t *testing.T) {
	points := []models.CollectionPoint{
		binAt("a", models.BinFull, -23.550, -46.633),
		binAt("c", models.BinFull, -23.580, -46.680), // farthest from a
		binAt("b", models.BinFull, -23.555, -46.640), // closest to a
	}

	route := fallbackRoute(points)
	require.Len(t, route.Points, 3)

	assert.Equal(t, "a", route.Points[0].ID)
	assert.Equal(t, "b", route.Points[1].ID)
	assert.Equal(t, "c", route.Points[2].ID)
}

func TestFallbackRouteUnlocatedPointsGoLast(t *testing.T) {
	noCoords := models.CollectionPoint{ID: "no-gps", Status: models.BinFull}
	points := []models.CollectionPoint{
		noCoords,
		binAt("a", models.BinFull, -23.550, -46.633),
		binAt("b", models.BinFull, -23.555, -46.640),
	}

	route := fallbackRoute(points)
	require.Len(t, route.Points, 3)
	assert.Equal(t, "no-gps", route.Points[2].ID)
}

func TestFallbackRouteEmpty(t *testing.T) {
	route := fallbackRoute(nil)

	assert.Empty(t, route.Points)
	assert.Equal(t, "Sem paradas necessárias", route.EstimatedTime)
}

func TestHaversineDistance(t *testing.T) {
	// Praça da Sé to Parque Ibirapuera is roughly 5 km straight-line.
	d := haversineDistance(-23.5505, -46.6333, -23.5874, -46.6576)
	assert.InDelta(t, 4.8, d, 1.0)
}
