package models

// FeatureSet toggles the optional parts of the product per restaurant.
type FeatureSet struct {
	AnalyticsDashboard  bool `json:"analytics_dashboard"`
	InventoryManagement bool `json:"inventory_management"`
	PinSecurity         bool `json:"pin_security"`
}

// Restaurant is the complete state of one restaurant: the shared document
// every station reads and transactionally mutates.
type Restaurant struct {
	Tables          []Table          `json:"tables"`
	Menu            Menu             `json:"menu"`
	CompletedOrders []CompletedOrder `json:"completed_orders"`
	Inventory       []InventoryItem  `json:"inventory"`
	Features        FeatureSet       `json:"features"`
	PIN             string           `json:"pin,omitempty"`
}
