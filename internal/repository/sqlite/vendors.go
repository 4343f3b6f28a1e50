package sqlite

import (
	"context"

	"rms/internal/domain"
	"rms/internal/repository"
)

var _ repository.VendorRepository = (*VendorRepository)(nil)

// VendorRepository stores vendors keyed by "v-<id>"
type VendorRepository struct {
	c *Connection
}

// Get returns the vendor identified by key or nil if there is none
func (r *VendorRepository) Get(ctx context.Context, key string) (*domain.Vendor, error) {
	id, err := domain.ParseID(domain.EntityVendor, key)
	if err != nil {
		return nil, err
	}

	var row vendorRow
	found, err := r.c.get(ctx, "get vendor", &row,
		`SELECT `+vendorColumns+` FROM vendor WHERE vendorId = ?`, id.Value)
	if err != nil || !found {
		return nil, err
	}

	return row.toRecord(), nil
}

// List returns every vendor in table order
func (r *VendorRepository) List(ctx context.Context) ([]domain.VendorSummary, error) {
	var rows []vendorRow
	if err := r.c.list(ctx, "list vendors", &rows,
		`SELECT `+vendorColumns+` FROM vendor ORDER BY vendorId`); err != nil {
		return nil, err
	}

	vendors := make([]domain.VendorSummary, 0, len(rows))
	for i := range rows {
		vendors = append(vendors, rows[i].toSummary())
	}

	return vendors, nil
}

// Append inserts vendor and returns its identifier.
// It reports false if a vendor with the same name exists.
func (r *VendorRepository) Append(ctx context.Context, vendor domain.Vendor) (domain.ID, bool, error) {
	taken, err := r.c.exists(ctx, "append vendor",
		`SELECT vendorId FROM vendor WHERE name = ? LIMIT 1`, vendor.Name)
	if err != nil || taken {
		return domain.ID{}, false, err
	}

	_, lastID, err := r.c.exec(ctx, "append vendor",
		`INSERT INTO vendor (name, address, email, phone) VALUES (?, ?, ?, ?)`,
		vendor.Name, stringToNull(vendor.Address), stringToNull(vendor.Email), stringToNull(vendor.Phone))
	if err != nil {
		return domain.ID{}, false, err
	}

	return domain.VendorID(lastID), true, nil
}

// Modify updates the vendor identified by key.
// It reports false if there is no such vendor or another vendor has the new name.
func (r *VendorRepository) Modify(ctx context.Context, key string, vendor domain.Vendor) (bool, error) {
	id, err := domain.ParseID(domain.EntityVendor, key)
	if err != nil {
		return false, err
	}

	found, err := r.c.exists(ctx, "modify vendor", `SELECT vendorId FROM vendor WHERE vendorId = ?`, id.Value)
	if err != nil || !found {
		return false, err
	}

	taken, err := r.c.exists(ctx, "modify vendor",
		`SELECT vendorId FROM vendor WHERE name = ? AND vendorId <> ? LIMIT 1`, vendor.Name, id.Value)
	if err != nil || taken {
		return false, err
	}

	affected, _, err := r.c.exec(ctx, "modify vendor",
		`UPDATE vendor SET name = ?, address = ?, email = ?, phone = ? WHERE vendorId = ?`,
		vendor.Name, stringToNull(vendor.Address), stringToNull(vendor.Email), stringToNull(vendor.Phone), id.Value)
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// Delete removes the vendor together with its items and stock rows
func (r *VendorRepository) Delete(ctx context.Context, key string) (bool, error) {
	id, err := domain.ParseID(domain.EntityVendor, key)
	if err != nil {
		return false, err
	}

	affected, _, err := r.c.exec(ctx, "delete vendor", `DELETE FROM vendor WHERE vendorId = ?`, id.Value)
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
