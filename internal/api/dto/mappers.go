package dto

import "shop-delivery-service/internal/domain"

func FromLocation(l domain.Location) LocationPayload {
	return LocationPayload{Lat: l.Lat, Lon: l.Lon, Label: l.Label}
}

func (p LocationPayload) ToLocation() domain.Location {
	return domain.Location{Lat: p.Lat, Lon: p.Lon, Label: p.Label}
}

func FromShop(s *domain.Shop) ShopResponse {
	res := ShopResponse{
		ShopID:            s.ShopID,
		Name:              s.Name,
		Address:           s.Address,
		FirstDeliveryWeek: s.FirstDeliveryWeek,
		DeliveryFrequency: string(s.DeliveryFrequency),
		Volume:            s.Volume,
	}
	if s.Location != nil {
		loc := FromLocation(*s.Location)
		res.Location = &loc
	}
	return res
}

func FromDeliveries(deliveries []domain.WeeklyDelivery) []DeliveryResponse {
	out := make([]DeliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		out = append(out, DeliveryResponse{
			ShopID:   d.Shop.ShopID,
			ShopName: d.Shop.Name,
			Week:     d.Week,
			Volume:   d.Volume,
		})
	}
	return out
}

func FromWeekPlan(p *domain.WeekPlan) PlanResponse {
	stops := make([]PlanStopResponse, 0, len(p.Route))
	for _, s := range p.Route {
		stops = append(stops, PlanStopResponse{
			ShopID:                     s.Shop.ShopID,
			ShopName:                   s.Shop.Name,
			Lat:                        s.Shop.Location.Lat,
			Lon:                        s.Shop.Location.Lon,
			DistanceFromPreviousMeters: s.DistanceFromPreviousMeters,
			CumulativeDistanceMeters:   s.CumulativeDistanceMeters,
		})
	}

	unrouted := make([]int, 0, len(p.Unrouted))
	for _, s := range p.Unrouted {
		unrouted = append(unrouted, s.ShopID)
	}

	return PlanResponse{
		Week:                p.Week,
		Depot:               FromLocation(p.Depot),
		TotalVolume:         p.TotalVolume,
		TotalDistanceMeters: p.DistanceMeters(),
		Deliveries:          FromDeliveries(p.Deliveries),
		Stops:               stops,
		UnroutedShopIDs:     unrouted,
	}
}
