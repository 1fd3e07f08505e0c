package services

import (
	"fmt"
	"math"
	"sort"

	"recoleta-backend/internal/models"
)

// Status priority bands for the local route fallback. Overflowing points
// are always visited before full ones; empty and half-full are skipped.
func routePriority(status string) int {
	switch status {
	case models.BinOverflowing:
		return 0
	case models.BinFull:
		return 1
	}
	return -1
}

// fallbackRoute builds a deterministic route without the model: keep only
// full and overflowing points, order by status band, and inside each band
// run nearest-neighbor over the points that carry coordinates.
func fallbackRoute(points []models.CollectionPoint) OptimizedRoute {
	var urgent []models.CollectionPoint
	for _, p := range points {
		if routePriority(p.Status) >= 0 {
			urgent = append(urgent, p)
		}
	}

	sort.SliceStable(urgent, func(i, j int) bool {
		return routePriority(urgent[i].Status) < routePriority(urgent[j].Status)
	})

	ordered := make([]models.CollectionPoint, 0, len(urgent))
	totalDistance := 0.0
	for band := 0; band <= 1; band++ {
		var group []models.CollectionPoint
		for _, p := range urgent {
			if routePriority(p.Status) == band {
				group = append(group, p)
			}
		}
		ng, d := nearestNeighborOrder(group)
		ordered = append(ordered, ng...)
		totalDistance += d
	}

	estimated := "Sem paradas necessárias"
	if len(ordered) > 0 {
		// Rough urban estimate: 10 minutes per stop plus 2 min/km.
		estimated = fmt.Sprintf("%d min", len(ordered)*10+int(totalDistance*2))
	}

	return OptimizedRoute{
		Points:        ordered,
		EstimatedTime: estimated,
		DistanceSaved: "N/D",
		Reasoning:     "Rota calculada localmente: pontos transbordando primeiro, depois cheios, ordenados por proximidade.",
	}
}

// nearestNeighborOrder orders the points by repeatedly visiting the
// closest remaining one, starting from the first point. Points without
// coordinates keep their relative position at the end of the group.
// Returns the ordered points and the total route distance in km.
func nearestNeighborOrder(points []models.CollectionPoint) ([]models.CollectionPoint, float64) {
	var located, unlocated []models.CollectionPoint
	for _, p := range points {
		if p.Lat != nil && p.Lng != nil {
			located = append(located, p)
		} else {
			unlocated = append(unlocated, p)
		}
	}
	if len(located) < 2 {
		return append(located, unlocated...), 0
	}

	ordered := []models.CollectionPoint{located[0]}
	remaining := located[1:]
	current := located[0]
	totalDistance := 0.0

	for len(remaining) > 0 {
		bestIdx := 0
		bestDistance := math.MaxFloat64
		for i, p := range remaining {
			d := haversineDistance(*current.Lat, *current.Lng, *p.Lat, *p.Lng)
			if d < bestDistance {
				bestDistance = d
				bestIdx = i
			}
		}
		current = remaining[bestIdx]
		ordered = append(ordered, current)
		totalDistance += bestDistance
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return append(ordered, unlocated...), totalDistance
}

// haversineDistance calculates the distance between two GPS coordinates in kilometers
func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371.0

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
