package dto

type DistanceResponse struct {
	From        LocationPayload `json:"from"`
	To          LocationPayload `json:"to"`
	DistanceKm  float64         `json:"distance_km"`
	BearingDegs float64         `json:"bearing_degrees"`
}
