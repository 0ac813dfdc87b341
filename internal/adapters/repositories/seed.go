package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"shop-delivery-service/internal/domain"
	"strings"
)

type ShopSeed struct {
	ShopID            int      `json:"shop_id"`
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Lat               *float64 `json:"lat"`
	Lon               *float64 `json:"lon"`
	FirstDeliveryWeek *int     `json:"first_delivery_week"`
	DeliveryFrequency string   `json:"delivery_frequency"`
	Volume            string   `json:"volume"`
}

// ParseShopSeeds validates seed records and converts them to domain shops.
func ParseShopSeeds(data []ShopSeed) ([]*domain.Shop, error) {
	shops := make([]*domain.Shop, 0, len(data))
	for i, item := range data {
		if item.ShopID <= 0 {
			return nil, fmt.Errorf("seed shops: invalid shop_id at index %d: %d", i+1, item.ShopID)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("seed shops: item at index %d: name cannot be empty", i+1)
		}

		freq, err := domain.ParseDeliveryFrequency(item.DeliveryFrequency)
		if err != nil {
			return nil, fmt.Errorf("seed shops: item at index %d: %w", i+1, err)
		}

		if (item.Lat == nil) != (item.Lon == nil) {
			return nil, fmt.Errorf("seed shops: item at index %d: lat and lon must be set together", i+1)
		}

		s := &domain.Shop{
			ShopID:            item.ShopID,
			Name:              name,
			Address:           strings.TrimSpace(item.Address),
			FirstDeliveryWeek: item.FirstDeliveryWeek,
			DeliveryFrequency: freq,
			Volume:            strings.TrimSpace(item.Volume),
		}
		if item.Lat != nil {
			s.Location = &domain.Location{Lat: *item.Lat, Lon: *item.Lon, Label: name}
		}
		shops = append(shops, s)
	}

	return shops, nil
}

// Populate the database with shop data from a JSON file.
func SeedFromJSON(ctx context.Context, repo *SQLShopRepository, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed shops: read %q: %w", jsonPath, err)
	}

	var data []ShopSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed shops: parse json: %w", err)
	}

	shops, err := ParseShopSeeds(data)
	if err != nil {
		return err
	}

	if err := repo.UpsertShops(ctx, shops); err != nil {
		return fmt.Errorf("seed shops: %w", err)
	}

	return nil
}
