package models

// InventoryUnit is the unit of measure for a stocked ingredient.
type InventoryUnit string

const (
	UnitKg InventoryUnit = "kg"
	UnitG  InventoryUnit = "g"
	UnitLt InventoryUnit = "lt"
	UnitMl InventoryUnit = "ml"
	UnitPz InventoryUnit = "pz"
)

// InventoryItem represents one stocked ingredient.
type InventoryItem struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Stock             float64       `json:"stock"`
	Unit              InventoryUnit `json:"unit"`
	LowStockThreshold float64       `json:"lowStockThreshold"`
}

// IsLow reports whether the item's stock has fallen to or below its
// threshold.
func (ii *InventoryItem) IsLow() bool {
	return ii.Stock <= ii.LowStockThreshold
}
