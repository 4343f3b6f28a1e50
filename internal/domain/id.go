package domain

import (
	"errors"
	"strconv"
	"strings"
)

// EntityKind tags a surrogate identifier with the entity it belongs to
type EntityKind string

const (
	EntityVendor EntityKind = "vendor"
	EntityItem   EntityKind = "item"
	EntityStock  EntityKind = "stock"
)

var entityPrefixes = map[EntityKind]string{
	EntityVendor: "v-",
	EntityItem:   "it-",
	EntityStock:  "st-",
}

// Prefix returns the external prefix of the kind, e.g. "st-" for stock
func (k EntityKind) Prefix() string {
	return entityPrefixes[k]
}

// Valid reports whether k is one of the known entity kinds
func (k EntityKind) Valid() bool {
	_, ok := entityPrefixes[k]
	return ok
}

// ID is a surrogate key together with the kind of entity it identifies.
// The zero ID identifies nothing.
type ID struct {
	Kind  EntityKind
	Value int64
}

// NewID creates an identifier of the given kind
func NewID(kind EntityKind, value int64) ID {
	return ID{Kind: kind, Value: value}
}

// VendorID creates a vendor identifier
func VendorID(value int64) ID { return NewID(EntityVendor, value) }

// ItemID creates an item identifier
func ItemID(value int64) ID { return NewID(EntityItem, value) }

// StockID creates a stock identifier
func StockID(value int64) ID { return NewID(EntityStock, value) }

// IsZero reports whether id is the zero identifier
func (id ID) IsZero() bool {
	return id.Kind == "" && id.Value == 0
}

// String renders the identifier in its external form, e.g. "it-42"
func (id ID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.Kind.Prefix() + strconv.FormatInt(id.Value, 10)
}

// ParseID parses key as an identifier of the given kind.
// The key must be the kind's prefix followed by decimal digits only.
func ParseID(kind EntityKind, key string) (ID, error) {
	prefix := kind.Prefix()
	if prefix == "" {
		return ID{}, invalidIdentifier(key, "unknown entity kind "+string(kind))
	}

	digits, ok := strings.CutPrefix(key, prefix)
	if !ok {
		return ID{}, invalidIdentifier(key, "expected prefix "+prefix)
	}
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return ID{}, invalidIdentifier(key, "expected "+prefix+"<digits>")
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return ID{}, invalidIdentifier(key, "value out of range")
	}

	return NewID(kind, value), nil
}

// Expect checks that id identifies an entity of the given kind
func (id ID) Expect(kind EntityKind) error {
	if id.Kind != kind {
		return invalidIdentifier(id.String(), "expected "+string(kind)+" identifier")
	}
	return nil
}

// ParseAnyID parses key using whichever entity prefix it carries
func ParseAnyID(key string) (ID, error) {
	for kind, prefix := range entityPrefixes {
		if strings.HasPrefix(key, prefix) {
			return ParseID(kind, key)
		}
	}
	return ID{}, invalidIdentifier(key, "unknown prefix")
}

// MarshalText implements encoding.TextMarshaler
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *ID) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*id = ID{}
		return nil
	}

	parsed, err := ParseAnyID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func invalidIdentifier(key, reason string) error {
	return &Error{
		Kind: KindInvalidIdentifier,
		Op:   "parse " + strconv.Quote(key),
		Err:  errors.New(reason),
	}
}
