package handlers

import (
	"fmt"
	"math"
	"net/http"
	"shop-delivery-service/internal/api/dto"
	"shop-delivery-service/internal/geo"
	"strconv"
	"strings"
)

// parseLatLon parses "lat,lon" in decimal degrees.
func parseLatLon(raw string) (dto.LocationPayload, error) {
	latStr, lonStr, ok := strings.Cut(raw, ",")
	if !ok {
		return dto.LocationPayload{}, fmt.Errorf("expected lat,lon but got %q", raw)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		return dto.LocationPayload{}, fmt.Errorf("invalid latitude %q", latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil || math.IsNaN(lon) || lon < -180 || lon > 180 {
		return dto.LocationPayload{}, fmt.Errorf("invalid longitude %q", lonStr)
	}

	return dto.LocationPayload{Lat: lat, Lon: lon}, nil
}

// Distance returns the great-circle distance and rhumb bearing between two points.
func Distance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := parseLatLon(q.Get("from"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "from: "+err.Error())
		return
	}
	to, err := parseLatLon(q.Get("to"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "to: "+err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		From:        from,
		To:          to,
		DistanceKm:  geo.Distance(from.Lat, from.Lon, to.Lat, to.Lon),
		BearingDegs: geo.Bearing(from.Lat, from.Lon, to.Lat, to.Lon),
	})
}
