package domain

// Immutable geographic point in decimal degrees, with a display label.
type Location struct {
	Lat   float64
	Lon   float64
	Label string
}

// Return coordinates as [lon, lat] for external API compatibility.
func (l Location) CoordsToList() []float64 { return []float64{l.Lon, l.Lat} }
