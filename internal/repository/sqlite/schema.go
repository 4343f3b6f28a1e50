package sqlite

import (
	_ "embed"
	"strings"
)

// table is one relation of the RMS schema
type table struct {
	name string
	body string
}

// tables lists the schema in dependency order: referenced tables first.
var tables = []table{
	{
		name: "user",
		body: `
	userId INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	firstname TEXT,
	lastname TEXT,
	email TEXT,
	password TEXT,
	phone TEXT,
	dob TEXT`,
	},
	{
		name: "restaurant",
		body: `
	restaurantId INTEGER PRIMARY KEY AUTOINCREMENT,
	restaurantName TEXT NOT NULL,
	address TEXT,
	phone TEXT`,
	},
	{
		name: "restaurantUser",
		body: `
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	userId INTEGER NOT NULL,
	restaurantId INTEGER NOT NULL,
	position TEXT NOT NULL CHECK (position IN ('owner', 'employee')),
	UNIQUE (userId, restaurantId),
	FOREIGN KEY (userId) REFERENCES user(userId) ON DELETE CASCADE,
	FOREIGN KEY (restaurantId) REFERENCES restaurant(restaurantId) ON DELETE CASCADE`,
	},
	{
		name: "vendor",
		body: `
	vendorId INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	address TEXT,
	email TEXT,
	phone TEXT`,
	},
	{
		name: "item",
		body: `
	itemId INTEGER PRIMARY KEY AUTOINCREMENT,
	itemName TEXT NOT NULL,
	description TEXT,
	vendorId INTEGER NOT NULL,
	FOREIGN KEY (vendorId) REFERENCES vendor(vendorId) ON DELETE CASCADE`,
	},
	{
		name: "stock",
		body: `
	stockId INTEGER PRIMARY KEY AUTOINCREMENT,
	price REAL NOT NULL DEFAULT 0,
	quantity INTEGER NOT NULL DEFAULT 0,
	quantityInStock INTEGER NOT NULL DEFAULT 0,
	expireDate TEXT,
	date TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	transactionType TEXT,
	vendorId INTEGER NOT NULL,
	itemId INTEGER NOT NULL,
	restaurantId INTEGER NOT NULL,
	userId INTEGER NOT NULL,
	FOREIGN KEY (vendorId) REFERENCES vendor(vendorId) ON DELETE CASCADE,
	FOREIGN KEY (itemId) REFERENCES item(itemId) ON DELETE CASCADE,
	FOREIGN KEY (restaurantId) REFERENCES restaurant(restaurantId) ON DELETE CASCADE,
	FOREIGN KEY (userId) REFERENCES user(userId) ON DELETE CASCADE`,
	},
}

// indexes back the foreign key and natural key lookups
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_restaurant_name ON restaurant(restaurantName)`,
	`CREATE INDEX IF NOT EXISTS idx_restaurantUser_restaurant ON restaurantUser(restaurantId)`,
	`CREATE INDEX IF NOT EXISTS idx_vendor_name ON vendor(name)`,
	`CREATE INDEX IF NOT EXISTS idx_item_name ON item(itemName)`,
	`CREATE INDEX IF NOT EXISTS idx_item_vendor ON item(vendorId)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_item_restaurant ON stock(itemId, restaurantId)`,
}

// clearOrder is the order Clear deletes rows in: dependent tables first.
var clearOrder = []string{"stock", "item", "vendor", "restaurantUser", "restaurant", "user"}

// defaultData is the seed script used when no data script is configured.
//
//go:embed data.sql
var defaultData string

// createStmt returns the CREATE TABLE statement of t.
// The programmatic creation routines use it without IF NOT EXISTS
// so that an existing table is reported as a failure.
func (t table) createStmt(ifNotExists bool) string {
	clause := ""
	if ifNotExists {
		clause = "IF NOT EXISTS "
	}
	return "CREATE TABLE " + clause + t.name + " (" + t.body + "\n)"
}

// DefaultSchema returns the DDL script used when no schema script is configured
func DefaultSchema() string {
	var b strings.Builder
	for _, t := range tables {
		b.WriteString(t.createStmt(true))
		b.WriteString(";\n\n")
	}
	for _, idx := range indexes {
		b.WriteString(idx)
		b.WriteString(";\n")
	}
	return b.String()
}

func lookupTable(name string) table {
	for _, t := range tables {
		if t.name == name {
			return t
		}
	}
	panic("unknown table " + name)
}
