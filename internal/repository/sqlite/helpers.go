package sqlite

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"rms/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// formatDate renders a stock timestamp the way it is stored
func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// dateLayouts are the stock date formats accepted on read: the one written
// by StockRepository first, then the layouts SQLite's date functions and
// CURRENT_TIMESTAMP produce. Dates without a zone are UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate reads a stored stock timestamp
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, errors.Errorf("can't parse stock date %q", s)
}

// ============================================================================
// Row Types
// ============================================================================

const userColumns = `userId, username, firstname, lastname, email, phone, dob`

type userRow struct {
	UserID    int64          `db:"userId"`
	Username  string         `db:"username"`
	Firstname sql.NullString `db:"firstname"`
	Lastname  sql.NullString `db:"lastname"`
	Email     sql.NullString `db:"email"`
	Phone     sql.NullString `db:"phone"`
	DOB       sql.NullString `db:"dob"`
}

func (r *userRow) toRecord() *domain.User {
	return &domain.User{
		UserID:    r.UserID,
		Username:  r.Username,
		Firstname: nullToString(r.Firstname),
		Lastname:  nullToString(r.Lastname),
		Email:     nullToString(r.Email),
		Phone:     nullToString(r.Phone),
		DOB:       nullToString(r.DOB),
	}
}

func (r *userRow) toSummary() domain.UserSummary {
	return r.toRecord().Summary()
}

const restaurantColumns = `r.restaurantId, r.restaurantName, r.address, r.phone`

type restaurantRow struct {
	RestaurantID int64          `db:"restaurantId"`
	Name         string         `db:"restaurantName"`
	Address      sql.NullString `db:"address"`
	Phone        sql.NullString `db:"phone"`

	// Set by the owner join of Get only
	OwnerUsername  sql.NullString `db:"ownerUsername"`
	OwnerFirstname sql.NullString `db:"ownerFirstname"`
	OwnerLastname  sql.NullString `db:"ownerLastname"`
}

func (r *restaurantRow) toRecord() *domain.Restaurant {
	rec := &domain.Restaurant{
		RestaurantID: r.RestaurantID,
		Name:         r.Name,
		Address:      nullToString(r.Address),
		Phone:        nullToString(r.Phone),
	}

	if r.OwnerUsername.Valid {
		rec.Owner = &domain.UserSummary{
			Username:  r.OwnerUsername.String,
			Firstname: nullToString(r.OwnerFirstname),
			Lastname:  nullToString(r.OwnerLastname),
		}
	}

	return rec
}

func (r *restaurantRow) toSummary() domain.RestaurantSummary {
	return domain.RestaurantSummary{
		Name:    r.Name,
		Address: nullToString(r.Address),
		Phone:   nullToString(r.Phone),
	}
}

type staffingRow struct {
	Username       string `db:"username"`
	RestaurantName string `db:"restaurantName"`
	Position       string `db:"position"`
}

func (r *staffingRow) toRecord() domain.Staffing {
	return domain.Staffing{
		Username:       r.Username,
		RestaurantName: r.RestaurantName,
		Position:       domain.Position(r.Position),
	}
}

const vendorColumns = `vendorId, name, address, email, phone`

type vendorRow struct {
	VendorID int64          `db:"vendorId"`
	Name     string         `db:"name"`
	Address  sql.NullString `db:"address"`
	Email    sql.NullString `db:"email"`
	Phone    sql.NullString `db:"phone"`
}

func (r *vendorRow) toRecord() *domain.Vendor {
	return &domain.Vendor{
		ID:      domain.VendorID(r.VendorID),
		Name:    r.Name,
		Address: nullToString(r.Address),
		Email:   nullToString(r.Email),
		Phone:   nullToString(r.Phone),
	}
}

func (r *vendorRow) toSummary() domain.VendorSummary {
	return domain.VendorSummary{
		ID:      domain.VendorID(r.VendorID),
		Name:    r.Name,
		Address: nullToString(r.Address),
		Phone:   nullToString(r.Phone),
	}
}

const itemColumns = `itemId, itemName, description, vendorId`

type itemRow struct {
	ItemID      int64          `db:"itemId"`
	Name        string         `db:"itemName"`
	Description sql.NullString `db:"description"`
	VendorID    int64          `db:"vendorId"`
}

func (r *itemRow) toRecord() *domain.Item {
	return &domain.Item{
		ID:          domain.ItemID(r.ItemID),
		Name:        r.Name,
		Description: nullToString(r.Description),
		VendorID:    domain.VendorID(r.VendorID),
	}
}

func (r *itemRow) toSummary() domain.ItemSummary {
	return domain.ItemSummary{
		ID:       domain.ItemID(r.ItemID),
		Name:     r.Name,
		VendorID: domain.VendorID(r.VendorID),
	}
}

const stockColumns = `stockId, price, quantity, quantityInStock, expireDate, date, transactionType, vendorId, itemId, restaurantId, userId`

type stockRow struct {
	StockID         int64          `db:"stockId"`
	Price           float64        `db:"price"`
	Quantity        int64          `db:"quantity"`
	QuantityInStock int64          `db:"quantityInStock"`
	ExpireDate      sql.NullString `db:"expireDate"`
	Date            string         `db:"date"`
	TransactionType sql.NullString `db:"transactionType"`
	VendorID        int64          `db:"vendorId"`
	ItemID          int64          `db:"itemId"`
	RestaurantID    int64          `db:"restaurantId"`
	UserID          int64          `db:"userId"`
}

func (r *stockRow) toRecord() (*domain.Stock, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &domain.Stock{
		ID:              domain.StockID(r.StockID),
		Price:           r.Price,
		Quantity:        r.Quantity,
		QuantityInStock: r.QuantityInStock,
		ExpireDate:      nullToString(r.ExpireDate),
		Date:            date,
		TransactionType: domain.TransactionType(nullToString(r.TransactionType)),
		VendorID:        domain.VendorID(r.VendorID),
		ItemID:          domain.ItemID(r.ItemID),
		RestaurantID:    r.RestaurantID,
		UserID:          r.UserID,
	}, nil
}

func (r *stockRow) toSummary() (domain.StockSummary, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return domain.StockSummary{}, err
	}

	return domain.StockSummary{
		ID:              domain.StockID(r.StockID),
		ItemID:          domain.ItemID(r.ItemID),
		QuantityInStock: r.QuantityInStock,
		ExpireDate:      nullToString(r.ExpireDate),
		Date:            date,
		TransactionType: domain.TransactionType(nullToString(r.TransactionType)),
		UserID:          r.UserID,
	}, nil
}
