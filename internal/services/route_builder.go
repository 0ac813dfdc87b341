package services

import (
	"math"
	"shop-delivery-service/internal/domain"
	"shop-delivery-service/internal/geo"
)

// BuildRoute orders candidates into a visiting sequence using a greedy
// nearest-neighbor walk from start.
//
// At each step the closest unvisited candidate (haversine distance) is chosen;
// ties go to the candidate that appears first in candidates. If the chosen
// candidate would push the cumulative distance past maxDistanceKm the route
// ends there, without trying farther candidates. The walk also ends after
// maxStops stops or when no candidates remain.
//
// The result is not globally optimal (no backtracking or 2-opt). Candidates
// without coordinates are skipped.
func BuildRoute(
	start domain.Location,
	candidates []*domain.Shop,
	maxStops int,
	maxDistanceKm float64,
) []domain.RouteStop {
	stops := []domain.RouteStop{}
	if maxStops <= 0 {
		return stops
	}

	remaining := make([]*domain.Shop, 0, len(candidates))
	for _, c := range candidates {
		if c != nil && c.Location != nil {
			remaining = append(remaining, c)
		}
	}

	current := start
	cumulativeKm := 0.0

	for len(remaining) > 0 && len(stops) < maxStops {
		bestIdx := -1
		minKm := math.Inf(1)

		// Select next stop by minimum distance (greedy step).
		// Strict comparison keeps the first candidate on ties.
		for i, c := range remaining {
			d := geo.Between(current, *c.Location)
			if d < minKm {
				minKm = d
				bestIdx = i
			}
		}

		if bestIdx < 0 || cumulativeKm+minKm > maxDistanceKm {
			break
		}

		best := remaining[bestIdx]
		cumulativeKm += minKm
		stops = append(stops, domain.RouteStop{
			Shop:                       best,
			DistanceFromPreviousMeters: minKm * 1000,
			CumulativeDistanceMeters:   cumulativeKm * 1000,
		})

		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		current = *best.Location
	}

	return stops
}
