package handlers

import (
	"net/http"
	"shop-delivery-service/internal/api/dto"
	"shop-delivery-service/internal/platform/obs"
	"shop-delivery-service/internal/ports"
	"shop-delivery-service/internal/services"
)

type DeliveryHandler struct {
	Repo ports.ShopRepository
}

// List returns the deliveries due in a week, highest volume first.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	week, err := weekParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	shops, err := h.Repo.ListShops(r.Context())
	if err != nil {
		obs.Logger(r.Context()).WithError(err).Error("list shops failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	deliveries := services.DeliveriesForWeek(shops, week)

	writeJSON(w, r, http.StatusOK, dto.ListDeliveriesResponse{
		Week:        week,
		TotalVolume: services.TotalVolume(deliveries),
		Deliveries:  dto.FromDeliveries(deliveries),
	})
}
