package dto

type DeliveryResponse struct {
	ShopID   int     `json:"shop_id"`
	ShopName string  `json:"shop_name"`
	Week     int     `json:"week"`
	Volume   float64 `json:"volume"`
}

type ListDeliveriesResponse struct {
	Week        int                `json:"week"`
	TotalVolume float64            `json:"total_volume"`
	Deliveries  []DeliveryResponse `json:"deliveries"`
}
