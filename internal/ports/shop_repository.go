package ports

import (
	"context"
	"errors"
	"shop-delivery-service/internal/domain"
)

// ErrShopNotFound is returned when a shop lookup has no matching row.
var ErrShopNotFound = errors.New("shop not found")

// Port: a boundary for reading shops and recording their geocoded location.
type ShopRepository interface {
	// Retrieve all shops, ordered by id.
	ListShops(ctx context.Context) ([]*domain.Shop, error)
	// Retrieve a single shop or ErrShopNotFound.
	GetShop(ctx context.Context, shopID int) (*domain.Shop, error)
	// Persist coordinates resolved for a shop address.
	SetLocation(ctx context.Context, shopID int, loc domain.Location) error
}
