package services

import (
	"context"
	"errors"
	"fmt"
	"shop-delivery-service/internal/domain"
	"shop-delivery-service/internal/platform/obs"
	"shop-delivery-service/internal/ports"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Maximum number of geocoding calls in flight while planning.
const geocodeConcurrency = 5

type PlanWeekRequest struct {
	Week          int
	Depot         domain.Location
	MaxStops      int
	MaxDistanceKm float64
}

// PlanWeek computes the deliveries due in a week and a route through them.
//
// Shops that have an address but no coordinates are geocoded first (when a
// geocoder is configured) and the result is written back to the repository.
// A shop that fails to geocode is logged and reported as unrouted; it does not
// fail the plan.
func PlanWeek(
	ctx context.Context,
	req PlanWeekRequest,
	repo ports.ShopRepository,
	geocoder ports.Geocoder,
) (_ *domain.WeekPlan, err error) {
	defer obs.Time(ctx, "services.PlanWeek")(&err)

	if req.Week < 0 {
		return nil, fmt.Errorf("plan week: week must be non-negative, got %d", req.Week)
	}
	if req.MaxStops < 1 {
		return nil, fmt.Errorf("plan week: max stops must be positive, got %d", req.MaxStops)
	}
	if req.MaxDistanceKm <= 0 {
		return nil, fmt.Errorf("plan week: max distance must be positive, got %v", req.MaxDistanceKm)
	}

	shops, err := repo.ListShops(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan week: list shops: %w", err)
	}

	deliveries := DeliveriesForWeek(shops, req.Week)

	if geocoder != nil {
		due := make([]*domain.Shop, 0, len(deliveries))
		for _, d := range deliveries {
			due = append(due, d.Shop)
		}
		if err := GeocodeMissing(ctx, due, repo, geocoder); err != nil {
			return nil, fmt.Errorf("plan week: %w", err)
		}
	}

	// Candidates follow volume order so equal-distance ties favor bigger deliveries.
	candidates := make([]*domain.Shop, 0, len(deliveries))
	for _, d := range deliveries {
		candidates = append(candidates, d.Shop)
	}

	route := BuildRoute(req.Depot, candidates, req.MaxStops, req.MaxDistanceKm)

	routed := make(map[int]struct{}, len(route))
	for _, s := range route {
		routed[s.Shop.ShopID] = struct{}{}
	}
	unrouted := make([]*domain.Shop, 0)
	for _, c := range candidates {
		if _, ok := routed[c.ShopID]; !ok {
			unrouted = append(unrouted, c)
		}
	}

	return &domain.WeekPlan{
		Week:        req.Week,
		Depot:       req.Depot,
		Deliveries:  deliveries,
		TotalVolume: TotalVolume(deliveries),
		Route:       route,
		Unrouted:    unrouted,
	}, nil
}

// GeocodeMissing resolves coordinates for shops that have an address but no
// location, updating the shops in place and persisting each result.
//
// Geocoding failures are logged and skipped. Only context cancellation and
// repository write failures abort the whole batch.
func GeocodeMissing(
	ctx context.Context,
	shops []*domain.Shop,
	repo ports.ShopRepository,
	geocoder ports.Geocoder,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(geocodeConcurrency)

	for _, s := range shops {
		if s.Location != nil || strings.TrimSpace(s.Address) == "" {
			continue
		}
		s := s

		g.Go(func() error {
			loc, err := geocoder.Geocode(gctx, s.Address)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return fmt.Errorf("geocode shop_id=%d: %w", s.ShopID, err)
				}
				obs.Logger(ctx).WithError(err).WithField("shop_id", s.ShopID).Warn("geocode failed; shop left unrouted")
				return nil
			}
			if loc.Label == "" {
				loc.Label = s.Name
			}

			if err := repo.SetLocation(gctx, s.ShopID, loc); err != nil {
				return fmt.Errorf("store location shop_id=%d: %w", s.ShopID, err)
			}

			s.Location = &loc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("geocode missing: %w", err)
	}
	return nil
}

// CheckShopWeek loads a shop and reports whether it is due in week.
func CheckShopWeek(
	ctx context.Context,
	repo ports.ShopRepository,
	shopID int,
	week int,
) (*domain.Shop, bool, error) {
	shop, err := repo.GetShop(ctx, shopID)
	if err != nil {
		return nil, false, fmt.Errorf("check shop week: %w", err)
	}
	return shop, IsDeliveryWeek(shop, week), nil
}

// CurrentWeek returns WeekNumber for now; kept as a variable for tests.
var CurrentWeek = func() int { return WeekNumber(time.Now()) }
