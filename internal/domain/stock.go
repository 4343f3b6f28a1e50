package domain

import "time"

// TransactionType describes the stock movement recorded by a stock row,
// e.g. "purchase" or "sale". The persistence layer stores it verbatim.
type TransactionType string

// Stock is the full stock transaction record.
// Date is stamped by the database layer when the row is appended.
type Stock struct {
	ID              ID              `json:"stockId,omitempty" yaml:"stockId,omitempty"`
	Price           float64         `json:"price" yaml:"price"`
	Quantity        int64           `json:"quantity" yaml:"quantity"`
	QuantityInStock int64           `json:"quantityInStock" yaml:"quantityInStock"`
	ExpireDate      string          `json:"expireDate,omitempty" yaml:"expireDate,omitempty"`
	Date            time.Time       `json:"date" yaml:"date"`
	TransactionType TransactionType `json:"transactionType,omitempty" yaml:"transactionType,omitempty"`
	VendorID        ID              `json:"vendorId" yaml:"vendorId"`
	ItemID          ID              `json:"itemId" yaml:"itemId"`
	RestaurantID    int64           `json:"restaurantId" yaml:"restaurantId"`
	UserID          int64           `json:"userId" yaml:"userId"`
}

// StockSummary is the stock record returned by list operations
type StockSummary struct {
	ID              ID              `json:"stockId" yaml:"stockId"`
	ItemID          ID              `json:"itemId" yaml:"itemId"`
	QuantityInStock int64           `json:"quantityInStock" yaml:"quantityInStock"`
	ExpireDate      string          `json:"expireDate,omitempty" yaml:"expireDate,omitempty"`
	Date            time.Time       `json:"date" yaml:"date"`
	TransactionType TransactionType `json:"transactionType,omitempty" yaml:"transactionType,omitempty"`
	UserID          int64           `json:"userId" yaml:"userId"`
}
