package domain

// Position is the role a user holds in a restaurant
type Position string

const (
	PositionOwner    Position = "owner"
	PositionEmployee Position = "employee"
)

// Valid reports whether p is a known position
func (p Position) Valid() bool {
	return p == PositionOwner || p == PositionEmployee
}

// Restaurant is the full restaurant record.
// Owner is set when a user is staffed with PositionOwner.
type Restaurant struct {
	RestaurantID int64        `json:"restaurantId,omitempty" yaml:"restaurantId,omitempty"`
	Name         string       `json:"restaurantName" yaml:"restaurantName"`
	Address      string       `json:"address,omitempty" yaml:"address,omitempty"`
	Phone        string       `json:"phone,omitempty" yaml:"phone,omitempty"`
	Owner        *UserSummary `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// RestaurantSummary is the restaurant record returned by list operations
type RestaurantSummary struct {
	Name    string `json:"restaurantName" yaml:"restaurantName"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// Staffing links a user to a restaurant
type Staffing struct {
	Username       string   `json:"username" yaml:"username"`
	RestaurantName string   `json:"restaurantName" yaml:"restaurantName"`
	Position       Position `json:"position" yaml:"position"`
}
