package domain

// Vendor is the full vendor record
type Vendor struct {
	ID      ID     `json:"vendorId,omitempty" yaml:"vendorId,omitempty"`
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// VendorSummary is the vendor record returned by list operations
type VendorSummary struct {
	ID      ID     `json:"vendorId" yaml:"vendorId"`
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// Item is the full item record
type Item struct {
	ID          ID     `json:"itemId,omitempty" yaml:"itemId,omitempty"`
	Name        string `json:"itemName" yaml:"itemName"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	VendorID    ID     `json:"vendorId" yaml:"vendorId"`
}

// ItemSummary is the item record returned by list operations
type ItemSummary struct {
	ID       ID     `json:"itemId" yaml:"itemId"`
	Name     string `json:"itemName" yaml:"itemName"`
	VendorID ID     `json:"vendorId" yaml:"vendorId"`
}
