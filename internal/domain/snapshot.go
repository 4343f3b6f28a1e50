package domain

// Snapshot holds the list view of every table, used for exports
type Snapshot struct {
	Users       []UserSummary       `json:"users" yaml:"users"`
	Restaurants []RestaurantSummary `json:"restaurants" yaml:"restaurants"`
	Staffing    []Staffing          `json:"staffing" yaml:"staffing"`
	Vendors     []VendorSummary     `json:"vendors" yaml:"vendors"`
	Items       []ItemSummary       `json:"items" yaml:"items"`
	Stock       []StockSummary      `json:"stock" yaml:"stock"`
}

// Counts returns the number of rows per table in the snapshot
func (s *Snapshot) Counts() map[string]int {
	return map[string]int{
		"user":           len(s.Users),
		"restaurant":     len(s.Restaurants),
		"restaurantUser": len(s.Staffing),
		"vendor":         len(s.Vendors),
		"item":           len(s.Items),
		"stock":          len(s.Stock),
	}
}
