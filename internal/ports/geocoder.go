package ports

import (
	"context"
	"shop-delivery-service/internal/domain"
)

// Contract for resolving a postal address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Location, error)
}

// Persistent address -> coordinate cache used in front of a Geocoder.
// Keys are expected to be normalized by the caller.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Location, error)
	PutMany(ctx context.Context, results map[string]domain.Location) error
}
