package catalog

import (
	"strings"

	"comanda/internal/models"
)

// Catalog is a validated, read-only snapshot of the menu with lookup
// indexes. The engine and the voice reconciler both treat it as
// already-validated input; New rejects malformed menus so rule evaluation
// never has to.
type Catalog struct {
	menu       models.Menu
	byID       map[string]*models.MenuItem
	byName     map[string]*models.MenuItem
	categories map[string]models.Category
}

// New validates the menu and builds a catalog snapshot over it.
func New(menu models.Menu) (*Catalog, error) {
	if err := Validate(&menu); err != nil {
		return nil, err
	}

	c := &Catalog{
		menu:       menu,
		byID:       make(map[string]*models.MenuItem),
		byName:     make(map[string]*models.MenuItem),
		categories: make(map[string]models.Category),
	}
	index := func(items []models.MenuItem, category models.Category) {
		for i := range items {
			item := &items[i]
			c.byID[item.ID] = item
			c.byName[strings.ToLower(item.Name)] = item
			c.categories[item.ID] = category
		}
	}
	index(c.menu.Platillos, models.CategoryPlatillos)
	index(c.menu.BebidasPostres, models.CategoryBebidasPostres)
	return c, nil
}

// Menu returns the underlying menu snapshot.
func (c *Catalog) Menu() models.Menu {
	return c.menu
}

// ByID returns the item with the given id.
func (c *Catalog) ByID(id string) (*models.MenuItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// ByName returns the item whose name matches case-insensitively and
// exactly. No fuzzy matching: the voice path drops what it cannot match.
func (c *Catalog) ByName(name string) (*models.MenuItem, bool) {
	item, ok := c.byName[strings.ToLower(name)]
	return item, ok
}

// CategoryOf returns the section the item with the given id belongs to.
func (c *Catalog) CategoryOf(id string) models.Category {
	if cat, ok := c.categories[id]; ok {
		return cat
	}
	return models.CategoryPlatillos
}
