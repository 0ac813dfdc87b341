package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"shop-delivery-service/internal/platform/obs"
	"shop-delivery-service/internal/services"
	"strconv"
	"strings"
)

// Upper bound for a week number from WeekNumber (a year has at most 53 partial weeks).
const maxWeek = 53

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Logger(r.Context()).WithError(err).
			WithField("method", r.Method).
			WithField("path", r.URL.Path).
			Error("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// weekParam reads the optional "week" query parameter, defaulting to the current week.
func weekParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("week"))
	if raw == "" {
		return services.CurrentWeek(), nil
	}
	return parseWeek(raw)
}

func parseWeek(raw string) (int, error) {
	week, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("week must be an integer")
	}
	if err := validateWeek(week); err != nil {
		return 0, err
	}
	return week, nil
}

func validateWeek(week int) error {
	if week < 0 || week > maxWeek {
		return fmt.Errorf("week must be between 0 and %d", maxWeek)
	}
	return nil
}
