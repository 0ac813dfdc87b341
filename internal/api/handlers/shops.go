package handlers

import (
	"errors"
	"net/http"
	"shop-delivery-service/internal/api/dto"
	"shop-delivery-service/internal/platform/obs"
	"shop-delivery-service/internal/ports"
	"shop-delivery-service/internal/services"
	"strconv"

	"github.com/go-chi/chi"
)

// ShopHandler exposes read-only shop endpoints.
type ShopHandler struct {
	Repo ports.ShopRepository
}

func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	shops, err := h.Repo.ListShops(r.Context())
	if err != nil {
		obs.Logger(r.Context()).WithError(err).Error("list shops failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListShopsResponse{Shops: make([]dto.ShopResponse, 0, len(shops))}
	for _, s := range shops {
		res.Shops = append(res.Shops, dto.FromShop(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// DeliveryWeek reports whether one shop is due for delivery in a week.
func (h *ShopHandler) DeliveryWeek(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || shopID <= 0 {
		writeError(w, r, http.StatusBadRequest, "shop id must be a positive integer")
		return
	}

	week, err := weekParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	_, due, err := services.CheckShopWeek(r.Context(), h.Repo, shopID, week)
	if errors.Is(err, ports.ErrShopNotFound) {
		writeError(w, r, http.StatusNotFound, "shop not found")
		return
	}
	if err != nil {
		obs.Logger(r.Context()).WithError(err).Error("check shop week failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ShopWeekResponse{
		ShopID:         shopID,
		Week:           week,
		IsDeliveryWeek: due,
	})
}
