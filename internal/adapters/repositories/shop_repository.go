package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"shop-delivery-service/internal/domain"
	"shop-delivery-service/internal/platform/db"
	"shop-delivery-service/internal/platform/obs"
	"shop-delivery-service/internal/ports"
)

// SQL-backed implementation of the ShopRepository port (SQLite or Postgres).
type SQLShopRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLShopRepository(conn *sql.DB, dialect db.Dialect) *SQLShopRepository {
	return &SQLShopRepository{DB: conn, Dialect: dialect}
}

const selectShopColumns = `
	SELECT
		shop_id,
		name,
		address,
		lat,
		lon,
		location_label,
		first_delivery_week,
		delivery_frequency,
		volume
	FROM shops
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShop(row rowScanner) (*domain.Shop, error) {
	var (
		s         domain.Shop
		lat, lon  sql.NullFloat64
		label     string
		firstWeek sql.NullInt64
		freq      string
	)
	if err := row.Scan(&s.ShopID, &s.Name, &s.Address, &lat, &lon, &label, &firstWeek, &freq, &s.Volume); err != nil {
		return nil, err
	}

	if lat.Valid && lon.Valid {
		s.Location = &domain.Location{Lat: lat.Float64, Lon: lon.Float64, Label: label}
	}
	if firstWeek.Valid {
		w := int(firstWeek.Int64)
		s.FirstDeliveryWeek = &w
	}
	s.DeliveryFrequency = domain.DeliveryFrequency(freq)

	return &s, nil
}

// Return all shops stored in the database.
func (r *SQLShopRepository) ListShops(ctx context.Context) (_ []*domain.Shop, err error) {
	defer obs.Time(ctx, "shops.List")(&err)

	if r.DB == nil {
		return nil, errors.New("shop repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, selectShopColumns+" ORDER BY shop_id;")
	if err != nil {
		return nil, fmt.Errorf("list shops: query shops table: %w", err)
	}
	defer rows.Close()

	shops := make([]*domain.Shop, 0, 64)
	for rows.Next() {
		s, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("list shops: scan row: %w", err)
		}
		shops = append(shops, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shops: row iteration: %w", err)
	}

	return shops, nil
}

func (r *SQLShopRepository) GetShop(ctx context.Context, shopID int) (*domain.Shop, error) {
	if r.DB == nil {
		return nil, errors.New("shop repository: DB is nil")
	}

	q := r.Dialect.Rebind(selectShopColumns + " WHERE shop_id = ?;")
	s, err := scanShop(r.DB.QueryRowContext(ctx, q, shopID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get shop %d: %w", shopID, ports.ErrShopNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get shop %d: %w", shopID, err)
	}

	return s, nil
}

func (r *SQLShopRepository) SetLocation(ctx context.Context, shopID int, loc domain.Location) error {
	if r.DB == nil {
		return errors.New("shop repository: DB is nil")
	}

	q := r.Dialect.Rebind(`
	UPDATE shops
	SET lat = ?, lon = ?, location_label = ?
	WHERE shop_id = ?;
	`)
	res, err := r.DB.ExecContext(ctx, q, loc.Lat, loc.Lon, loc.Label, shopID)
	if err != nil {
		return fmt.Errorf("set shop location %d: %w", shopID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set shop location %d: rows affected: %w", shopID, err)
	}
	if n == 0 {
		return fmt.Errorf("set shop location %d: %w", shopID, ports.ErrShopNotFound)
	}

	return nil
}

// UpsertShops inserts or replaces shops in a single transaction.
func (r *SQLShopRepository) UpsertShops(ctx context.Context, shops []*domain.Shop) error {
	if r.DB == nil {
		return errors.New("shop repository: DB is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert shops: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, r.Dialect.Rebind(`
	INSERT INTO shops (
		shop_id,
		name,
		address,
		lat,
		lon,
		location_label,
		first_delivery_week,
		delivery_frequency,
		volume
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (shop_id) DO UPDATE
	SET name = EXCLUDED.name,
		address = EXCLUDED.address,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		location_label = EXCLUDED.location_label,
		first_delivery_week = EXCLUDED.first_delivery_week,
		delivery_frequency = EXCLUDED.delivery_frequency,
		volume = EXCLUDED.volume;
	`))
	if err != nil {
		return fmt.Errorf("upsert shops: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range shops {
		var (
			lat, lon  sql.NullFloat64
			label     string
			firstWeek sql.NullInt64
		)
		if s.Location != nil {
			lat = sql.NullFloat64{Float64: s.Location.Lat, Valid: true}
			lon = sql.NullFloat64{Float64: s.Location.Lon, Valid: true}
			label = s.Location.Label
		}
		if s.FirstDeliveryWeek != nil {
			firstWeek = sql.NullInt64{Int64: int64(*s.FirstDeliveryWeek), Valid: true}
		}

		if _, err := stmt.ExecContext(
			ctx,
			s.ShopID, s.Name, s.Address, lat, lon, label, firstWeek, string(s.DeliveryFrequency), s.Volume,
		); err != nil {
			return fmt.Errorf("upsert shops: insert shop_id=%d: %w", s.ShopID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert shops: commit tx: %w", err)
	}

	return nil
}
