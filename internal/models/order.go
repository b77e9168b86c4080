package models

import "time"

// OrderItemStatus tracks an order line through the kitchen.
type OrderItemStatus string

const (
	StatusNueva         OrderItemStatus = "nueva"
	StatusEnviadaCocina OrderItemStatus = "enviada_cocina"
	StatusEnPreparacion OrderItemStatus = "en_preparacion"
	StatusListoServir   OrderItemStatus = "listo_servir"
	StatusEntregado     OrderItemStatus = "entregado"
)

// OrderLine represents one priced, described unit of a dish or drink on a
// table's order. Once built it is an immutable value: quantity or variant
// changes go through remove-and-re-add, and concurrent appends from several
// stations interleave safely because lines share no mutable state.
type OrderLine struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice float64         `json:"price"`
	Qty       int             `json:"qty"`
	// Variants is the flattened, human-readable descriptor list. Mixed
	// dishes carry one "Prep N: ..." block per configured preparation.
	Variants        []string        `json:"variants"`
	Category        Category        `json:"category"`
	MenuItemID      string          `json:"menuItemId"`
	Status          OrderItemStatus `json:"status"`
	SentToKitchenAt *time.Time      `json:"sentToKitchenAt,omitempty"`
	// PrepTimeLimit is copied from the menu item so the kitchen display can
	// flag overdue tickets without a catalog lookup.
	PrepTimeLimit int `json:"prepTimeLimit,omitempty"`
}

// TableStatus tracks a table through a service cycle.
type TableStatus string

const (
	TableLibre           TableStatus = "libre"
	TableOcupada         TableStatus = "ocupada"
	TableEsperandoCuenta TableStatus = "esperando_cuenta"
)

// Table represents one physical table and its in-progress order.
type Table struct {
	ID         int         `json:"id"`
	Status     TableStatus `json:"status"`
	Order      []OrderLine `json:"order"`
	Name       string      `json:"name,omitempty"`
	OccupiedAt *time.Time  `json:"occupiedAt,omitempty"`
}

// Total returns the current bill for the table.
func (t *Table) Total() float64 {
	var total float64
	for _, line := range t.Order {
		total += line.UnitPrice * float64(line.Qty)
	}
	return total
}

// CompletedOrder is the immutable record written when a table is closed.
type CompletedOrder struct {
	ID      string      `json:"id"`
	TableID int         `json:"tableId"`
	Order   []OrderLine `json:"order"`
	Total   float64     `json:"total"`
	Date    time.Time   `json:"date"`
}
