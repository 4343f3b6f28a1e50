package sqlite

import (
	"context"

	"rms/internal/domain"
	"rms/internal/repository"
)

var _ repository.ItemRepository = (*ItemRepository)(nil)

// ItemRepository stores items keyed by "it-<id>"
type ItemRepository struct {
	c *Connection
}

// Get returns the item identified by key or nil if there is none
func (r *ItemRepository) Get(ctx context.Context, key string) (*domain.Item, error) {
	id, err := domain.ParseID(domain.EntityItem, key)
	if err != nil {
		return nil, err
	}

	var row itemRow
	found, err := r.c.get(ctx, "get item", &row,
		`SELECT `+itemColumns+` FROM item WHERE itemId = ?`, id.Value)
	if err != nil || !found {
		return nil, err
	}

	return row.toRecord(), nil
}

// List returns every item in table order
func (r *ItemRepository) List(ctx context.Context) ([]domain.ItemSummary, error) {
	var rows []itemRow
	if err := r.c.list(ctx, "list items", &rows,
		`SELECT `+itemColumns+` FROM item ORDER BY itemId`); err != nil {
		return nil, err
	}

	items := make([]domain.ItemSummary, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toSummary())
	}

	return items, nil
}

// Append inserts item and returns its identifier.
// It reports false if an item with the same name exists.
// An unknown vendor fails with a foreign key violation.
func (r *ItemRepository) Append(ctx context.Context, item domain.Item) (domain.ID, bool, error) {
	if err := item.VendorID.Expect(domain.EntityVendor); err != nil {
		return domain.ID{}, false, err
	}

	taken, err := r.c.exists(ctx, "append item",
		`SELECT itemId FROM item WHERE itemName = ? LIMIT 1`, item.Name)
	if err != nil || taken {
		return domain.ID{}, false, err
	}

	_, lastID, err := r.c.exec(ctx, "append item",
		`INSERT INTO item (itemName, description, vendorId) VALUES (?, ?, ?)`,
		item.Name, stringToNull(item.Description), item.VendorID.Value)
	if err != nil {
		return domain.ID{}, false, err
	}

	return domain.ItemID(lastID), true, nil
}

// Modify updates the item identified by key.
// It reports false if there is no such item or another item has the new name.
func (r *ItemRepository) Modify(ctx context.Context, key string, item domain.Item) (bool, error) {
	id, err := domain.ParseID(domain.EntityItem, key)
	if err != nil {
		return false, err
	}
	if err := item.VendorID.Expect(domain.EntityVendor); err != nil {
		return false, err
	}

	found, err := r.c.exists(ctx, "modify item", `SELECT itemId FROM item WHERE itemId = ?`, id.Value)
	if err != nil || !found {
		return false, err
	}

	taken, err := r.c.exists(ctx, "modify item",
		`SELECT itemId FROM item WHERE itemName = ? AND itemId <> ? LIMIT 1`, item.Name, id.Value)
	if err != nil || taken {
		return false, err
	}

	affected, _, err := r.c.exec(ctx, "modify item",
		`UPDATE item SET itemName = ?, description = ?, vendorId = ? WHERE itemId = ?`,
		item.Name, stringToNull(item.Description), item.VendorID.Value, id.Value)
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// Delete removes the item together with its stock rows
func (r *ItemRepository) Delete(ctx context.Context, key string) (bool, error) {
	id, err := domain.ParseID(domain.EntityItem, key)
	if err != nil {
		return false, err
	}

	affected, _, err := r.c.exec(ctx, "delete item", `DELETE FROM item WHERE itemId = ?`, id.Value)
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
