package models

// Category identifies which top-level menu section an item belongs to.
type Category string

const (
	CategoryPlatillos      Category = "platillos"
	CategoryBebidasPostres Category = "bebidas_postres"
)

// VariantGroup represents one selectable dimension of a dish, such as size
// or protein. Options are ordered; the order is preserved in descriptors.
type VariantGroup struct {
	Type          string   `json:"type" yaml:"type"`
	Options       []string `json:"options" yaml:"options"`
	AllowMultiple bool     `json:"allowMultiple,omitempty" yaml:"allowMultiple,omitempty"`
	IsRequired    bool     `json:"isRequired,omitempty" yaml:"isRequired,omitempty"`
}

// HasOption reports whether the group contains the given option label.
func (g VariantGroup) HasOption(option string) bool {
	for _, o := range g.Options {
		if o == option {
			return true
		}
	}
	return false
}

// DisableRule removes options from availability once its trigger option is
// selected in the same scope. There is no re-enable mechanism beyond
// deselecting the trigger.
type DisableRule struct {
	When    string   `json:"when" yaml:"when"`
	Disable []string `json:"disable" yaml:"disable"`
}

// ShowRule reveals entire variant groups once its trigger option is
// selected. A group named by any ShowRule is hidden by default.
type ShowRule struct {
	When string   `json:"when" yaml:"when"`
	Show []string `json:"show" yaml:"show"`
}

// RecipeIngredient links a menu item to the inventory stock it consumes.
type RecipeIngredient struct {
	InventoryItemID string  `json:"inventoryItemId" yaml:"inventoryItemId"`
	Amount          float64 `json:"amount" yaml:"amount"`
}

// MenuItem represents a purchasable dish or drink. A BasePrice of 0 is the
// sentinel for variable-price items whose price is set manually per order.
type MenuItem struct {
	ID            string             `json:"id" yaml:"id"`
	Name          string             `json:"name" yaml:"name"`
	Description   string             `json:"description,omitempty" yaml:"description,omitempty"`
	BasePrice     float64            `json:"price" yaml:"price"`
	IsMixed       bool               `json:"isMixto,omitempty" yaml:"isMixto,omitempty"`
	VariantGroups []VariantGroup     `json:"variants" yaml:"variants"`
	// VariantPriceDeltas maps an option label to a signed price adjustment,
	// additive to BasePrice. Not applicable to mixed items.
	VariantPriceDeltas map[string]float64 `json:"variantPrices,omitempty" yaml:"variantPrices,omitempty"`
	DisableRules       []DisableRule      `json:"disableRules,omitempty" yaml:"disableRules,omitempty"`
	ShowRules          []ShowRule         `json:"showRules,omitempty" yaml:"showRules,omitempty"`
	Recipe             []RecipeIngredient `json:"recipe,omitempty" yaml:"recipe,omitempty"`
	// PrepTimeLimit is the kitchen's target in minutes; tickets past it are
	// highlighted on the display. Zero means no limit.
	PrepTimeLimit int `json:"prepTimeLimit,omitempty" yaml:"prepTimeLimit,omitempty"`
}

// IsVariablePrice reports whether the item's price must be set manually per
// order line.
func (mi *MenuItem) IsVariablePrice() bool {
	return mi.BasePrice == 0
}

// Group returns the variant group with the given type name.
func (mi *MenuItem) Group(groupType string) (VariantGroup, bool) {
	for _, g := range mi.VariantGroups {
		if g.Type == groupType {
			return g, true
		}
	}
	return VariantGroup{}, false
}

// Menu is the full catalog, split into the two sections the floor and the
// kitchen care about: dishes go through the kitchen, drinks and desserts do
// not.
type Menu struct {
	Platillos      []MenuItem `json:"platillos" yaml:"platillos"`
	BebidasPostres []MenuItem `json:"bebidas_postres" yaml:"bebidas_postres"`
}

// AllItems returns every item across both sections, dishes first.
func (m *Menu) AllItems() []MenuItem {
	items := make([]MenuItem, 0, len(m.Platillos)+len(m.BebidasPostres))
	items = append(items, m.Platillos...)
	items = append(items, m.BebidasPostres...)
	return items
}
