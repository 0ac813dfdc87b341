package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"shop-delivery-service/internal/api/dto"
	"shop-delivery-service/internal/domain"
	"shop-delivery-service/internal/platform/metrics"
	"shop-delivery-service/internal/platform/obs"
	"shop-delivery-service/internal/ports"
	"shop-delivery-service/internal/services"
)

// Hard caps on client-supplied route budgets.
const (
	maxStopsLimit      = 200
	maxDistanceKmLimit = 2000
)

// PlanDefaults fills fields a plan request leaves out.
type PlanDefaults struct {
	Depot         domain.Location
	MaxStops      int
	MaxDistanceKm float64
}

type PlanHandler struct {
	Repo     ports.ShopRepository
	Geocoder ports.Geocoder
	Defaults PlanDefaults
	Metrics  *metrics.Metrics
}

// Plan computes the week's deliveries and a greedy route from the depot.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	week := services.CurrentWeek()
	if req.Week != nil {
		if err := validateWeek(*req.Week); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		week = *req.Week
	}

	depot := h.Defaults.Depot
	if req.Depot != nil {
		if req.Depot.Lat < -90 || req.Depot.Lat > 90 || req.Depot.Lon < -180 || req.Depot.Lon > 180 {
			writeError(w, r, http.StatusBadRequest, "depot coordinates out of range")
			return
		}
		depot = req.Depot.ToLocation()
	}

	maxStops := req.MaxStops
	if maxStops == 0 {
		maxStops = h.Defaults.MaxStops
	}
	if maxStops < 1 || maxStops > maxStopsLimit {
		writeError(w, r, http.StatusBadRequest, "max_stops must be between 1 and 200")
		return
	}

	maxKm := req.MaxDistanceKm
	if maxKm == 0 {
		maxKm = h.Defaults.MaxDistanceKm
	}
	if maxKm <= 0 || maxKm > maxDistanceKmLimit {
		writeError(w, r, http.StatusBadRequest, "max_distance_km must be greater than 0 and at most 2000")
		return
	}

	plan, err := services.PlanWeek(r.Context(), services.PlanWeekRequest{
		Week:          week,
		Depot:         depot,
		MaxStops:      maxStops,
		MaxDistanceKm: maxKm,
	}, h.Repo, h.Geocoder)
	if err != nil {
		obs.Logger(r.Context()).WithError(err).Error("plan week failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.Metrics != nil {
		h.Metrics.PlannedStops.Add(float64(len(plan.Route)))
		for _, s := range plan.Unrouted {
			if s.Location == nil {
				h.Metrics.GeocodeFailures.Inc()
			}
		}
	}

	writeJSON(w, r, http.StatusOK, dto.FromWeekPlan(plan))
}
