package dto

type PlanRequest struct {
	Week          *int             `json:"week"`
	Depot         *LocationPayload `json:"depot"`
	MaxStops      int              `json:"max_stops"`
	MaxDistanceKm float64          `json:"max_distance_km"`
}

type PlanStopResponse struct {
	ShopID                     int     `json:"shop_id"`
	ShopName                   string  `json:"shop_name"`
	Lat                        float64 `json:"lat"`
	Lon                        float64 `json:"lon"`
	DistanceFromPreviousMeters float64 `json:"distance_from_previous_meters"`
	CumulativeDistanceMeters   float64 `json:"cumulative_distance_meters"`
}

type PlanResponse struct {
	Week                int                `json:"week"`
	Depot               LocationPayload    `json:"depot"`
	TotalVolume         float64            `json:"total_volume"`
	TotalDistanceMeters float64            `json:"total_distance_meters"`
	Deliveries          []DeliveryResponse `json:"deliveries"`
	Stops               []PlanStopResponse `json:"stops"`
	UnroutedShopIDs     []int              `json:"unrouted_shop_ids"`
}
