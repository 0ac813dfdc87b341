package dto

type LocationPayload struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label,omitempty"`
}

type ShopResponse struct {
	ShopID            int              `json:"shop_id"`
	Name              string           `json:"name"`
	Address           string           `json:"address"`
	Location          *LocationPayload `json:"location"`
	FirstDeliveryWeek *int             `json:"first_delivery_week"`
	DeliveryFrequency string           `json:"delivery_frequency"`
	Volume            string           `json:"volume"`
}

type ListShopsResponse struct {
	Shops []ShopResponse `json:"shops"`
}

type ShopWeekResponse struct {
	ShopID         int  `json:"shop_id"`
	Week           int  `json:"week"`
	IsDeliveryWeek bool `json:"is_delivery_week"`
}
