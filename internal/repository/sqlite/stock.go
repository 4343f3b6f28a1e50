package sqlite

import (
	"context"
	"time"

	"rms/internal/domain"
	"rms/internal/repository"
)

var _ repository.StockRepository = (*StockRepository)(nil)

// StockRepository stores stock transactions keyed by "st-<id>"
type StockRepository struct {
	c *Connection

	// now stamps appended rows
	now func() time.Time
}

// Get returns the stock row identified by key or nil if there is none.
// A key not of the form "st-<digits>" is an invalid identifier.
func (r *StockRepository) Get(ctx context.Context, key string) (*domain.Stock, error) {
	id, err := domain.ParseID(domain.EntityStock, key)
	if err != nil {
		return nil, err
	}

	var row stockRow
	found, err := r.c.get(ctx, "get stock", &row,
		`SELECT `+stockColumns+` FROM stock WHERE stockId = ?`, id.Value)
	if err != nil || !found {
		return nil, err
	}

	return row.toRecord()
}

// List returns every stock row in table order
func (r *StockRepository) List(ctx context.Context) ([]domain.StockSummary, error) {
	var rows []stockRow
	if err := r.c.list(ctx, "list stock", &rows,
		`SELECT `+stockColumns+` FROM stock ORDER BY stockId`); err != nil {
		return nil, err
	}

	stock := make([]domain.StockSummary, 0, len(rows))
	for i := range rows {
		s, err := rows[i].toSummary()
		if err != nil {
			return nil, err
		}
		stock = append(stock, s)
	}

	return stock, nil
}

// Append inserts stock stamped with the current time and returns that time.
// It reports false if the restaurant already has a stock row for the item.
// Unknown vendors, items, restaurants or users fail with a foreign key violation.
func (r *StockRepository) Append(ctx context.Context, stock domain.Stock) (time.Time, bool, error) {
	if err := checkStockRefs(stock); err != nil {
		return time.Time{}, false, err
	}

	taken, err := r.c.exists(ctx, "append stock",
		`SELECT stockId FROM stock WHERE itemId = ? AND restaurantId = ? LIMIT 1`,
		stock.ItemID.Value, stock.RestaurantID)
	if err != nil || taken {
		return time.Time{}, false, err
	}

	date := r.stamp()
	_, _, err = r.c.exec(ctx, "append stock", `
INSERT INTO stock (price, quantity, quantityInStock, expireDate, date, transactionType, vendorId, itemId, restaurantId, userId)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stock.Price, stock.Quantity, stock.QuantityInStock, stringToNull(stock.ExpireDate), formatDate(date),
		stringToNull(string(stock.TransactionType)), stock.VendorID.Value, stock.ItemID.Value,
		stock.RestaurantID, stock.UserID)
	if err != nil {
		return time.Time{}, false, err
	}

	return date, true, nil
}

// Modify updates the stock row identified by key. The creation date is kept.
// It reports false if there is no such row or another row already holds
// the item for the restaurant.
func (r *StockRepository) Modify(ctx context.Context, key string, stock domain.Stock) (bool, error) {
	id, err := domain.ParseID(domain.EntityStock, key)
	if err != nil {
		return false, err
	}
	if err := checkStockRefs(stock); err != nil {
		return false, err
	}

	found, err := r.c.exists(ctx, "modify stock", `SELECT stockId FROM stock WHERE stockId = ?`, id.Value)
	if err != nil || !found {
		return false, err
	}

	taken, err := r.c.exists(ctx, "modify stock",
		`SELECT stockId FROM stock WHERE itemId = ? AND restaurantId = ? AND stockId <> ? LIMIT 1`,
		stock.ItemID.Value, stock.RestaurantID, id.Value)
	if err != nil || taken {
		return false, err
	}

	affected, _, err := r.c.exec(ctx, "modify stock", `
UPDATE stock SET price = ?, quantity = ?, quantityInStock = ?, expireDate = ?, transactionType = ?,
	vendorId = ?, itemId = ?, restaurantId = ?, userId = ?
WHERE stockId = ?`,
		stock.Price, stock.Quantity, stock.QuantityInStock, stringToNull(stock.ExpireDate),
		stringToNull(string(stock.TransactionType)), stock.VendorID.Value, stock.ItemID.Value,
		stock.RestaurantID, stock.UserID, id.Value)
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// Delete removes the stock row identified by key
func (r *StockRepository) Delete(ctx context.Context, key string) (bool, error) {
	id, err := domain.ParseID(domain.EntityStock, key)
	if err != nil {
		return false, err
	}

	affected, _, err := r.c.exec(ctx, "delete stock", `DELETE FROM stock WHERE stockId = ?`, id.Value)
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *StockRepository) stamp() time.Time {
	if r.now != nil {
		return r.now().UTC()
	}
	return time.Now().UTC()
}

func checkStockRefs(stock domain.Stock) error {
	if err := stock.VendorID.Expect(domain.EntityVendor); err != nil {
		return err
	}
	return stock.ItemID.Expect(domain.EntityItem)
}
