package domain

// Represents a single stop in a delivery route.
// Distances are in meters; CumulativeDistanceMeters includes the leg to this stop.
type RouteStop struct {
	Shop                       *Shop
	DistanceFromPreviousMeters float64
	CumulativeDistanceMeters   float64
}

// Represents the delivery plan for one week.
// Route is ordered by visiting sequence; Unrouted holds due shops that did not
// fit the stop or distance budget or have no coordinates.
type WeekPlan struct {
	Week        int
	Depot       Location
	Deliveries  []WeeklyDelivery
	TotalVolume float64
	Route       []RouteStop
	Unrouted    []*Shop
}

// Total route length in meters.
func (p *WeekPlan) DistanceMeters() float64 {
	if len(p.Route) == 0 {
		return 0
	}
	return p.Route[len(p.Route)-1].CumulativeDistanceMeters
}
