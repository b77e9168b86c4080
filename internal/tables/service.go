package tables

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"comanda/internal/catalog"
	"comanda/internal/models"
	"comanda/internal/variants"
)

var (
	// ErrUnsentDishes blocks the bill while new dishes have not been fired
	// to the kitchen.
	ErrUnsentDishes = errors.New("tables: new dishes not yet sent to kitchen")

	// ErrNoNewDishes means SendToKitchen found nothing to fire.
	ErrNoNewDishes = errors.New("tables: no new dishes on the order")

	ErrUnknownTable = errors.New("tables: unknown table")
	ErrUnknownLine  = errors.New("tables: unknown order line")
)

// Notifier receives the new state after every committed mutation, for the
// kitchen display feed.
type Notifier interface {
	StateChanged(scope string, state *models.Restaurant)
}

// Service implements the order-assembly rules on top of the repository: it
// is the one place that enforces the zero-price and send-before-bill
// contracts the variant engine deliberately leaves to its caller.
type Service struct {
	repo     Repository
	notifier Notifier
}

// NewService creates the table service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetNotifier attaches the kitchen display feed.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// State returns the current restaurant snapshot.
func (s *Service) State(ctx context.Context, scope string) (*models.Restaurant, error) {
	return s.repo.Load(ctx, scope)
}

func (s *Service) commit(ctx context.Context, scope string, fn Mutator) (*models.Restaurant, error) {
	state, err := s.repo.Commit(ctx, scope, fn)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.StateChanged(scope, state)
	}
	return state, nil
}

func findTable(r *models.Restaurant, tableID int) (*models.Table, error) {
	for i := range r.Tables {
		if r.Tables[i].ID == tableID {
			return &r.Tables[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownTable, tableID)
}

func findLine(t *models.Table, lineID string) (*models.OrderLine, error) {
	for i := range t.Order {
		if t.Order[i].ID == lineID {
			return &t.Order[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownLine, lineID)
}

// AddLine appends an order line to a table, occupying it if free. A
// zero-price variable-price line is allowed here; it is rejected later at
// send-to-kitchen and billing time until a manual price is set.
func (s *Service) AddLine(ctx context.Context, scope string, tableID int, line models.OrderLine) (*models.Restaurant, error) {
	return s.commit(ctx, scope, func(r *models.Restaurant) error {
		table, err := findTable(r, tableID)
		if err != nil {
			return err
		}
		if table.Status == models.TableLibre {
			now := time.Now()
			table.Status = models.TableOcupada
			table.OccupiedAt = &now
		}
		table.Order = append(table.Order, line)
		return nil
	})
}

// RemoveLine deletes a line that has not been sent to the kitchen. Sent
// lines are immutable history; corrections go through the kitchen.
func (s *Service) RemoveLine(ctx context.Context, scope string, tableID int, lineID string) (*models.Restaurant, error) {
	return s.commit(ctx, scope, func(r *models.Restaurant) error {
		table, err := findTable(r, tableID)
		if err != nil {
			return err
		}
		for i := range table.Order {
			if table.Order[i].ID != lineID {
				continue
			}
			if table.Order[i].Status != models.StatusNueva {
				return fmt.Errorf("tables: line %s already sent, cannot remove", lineID)
			}
			table.Order = append(table.Order[:i], table.Order[i+1:]...)
			return nil
		}
		return fmt.Errorf("%w: %s", ErrUnknownLine, lineID)
	})
}

// SetManualPrice sets the price of a variable-price line before it is sent
// or billed.
func (s *Service) SetManualPrice(ctx context.Context, scope string, tableID int, lineID string, price float64) (*models.Restaurant, error) {
	if price <= 0 {
		return nil, fmt.Errorf("tables: manual price must be positive")
	}
	return s.commit(ctx, scope, func(r *models.Restaurant) error {
		table, err := findTable(r, tableID)
		if err != nil {
			return err
		}
		line, err := findLine(table, lineID)
		if err != nil {
			return err
		}
		if line.Status != models.StatusNueva {
			return fmt.Errorf("tables: line %s already sent, price is fixed", lineID)
		}
		line.UnitPrice = price
		return nil
	})
}

// SendToKitchen fires every new dish on the table to the kitchen. Drinks
// and desserts never pass through here: they are delivered straight from
// the bar. The whole batch is rejected while any new dish still has no
// price.
func (s *Service) SendToKitchen(ctx context.Context, scope string, tableID int) (*models.Restaurant, error) {
	return s.commit(ctx, scope, func(r *models.Restaurant) error {
		table, err := findTable(r, tableID)
		if err != nil {
			return err
		}
		var pending []*models.OrderLine
		for i := range table.Order {
			line := &table.Order[i]
			if line.Status == models.StatusNueva && line.Category == models.CategoryPlatillos {
				if line.UnitPrice == 0 {
					return fmt.Errorf("%w: %s", variants.ErrZeroPriceItem, line.Name)
				}
				pending = append(pending, line)
			}
		}
		if len(pending) == 0 {
			return ErrNoNewDishes
		}
		now := time.Now()
		for _, line := range pending {
			line.Status = models.StatusEnviadaCocina
			line.SentToKitchenAt = &now
		}
		return nil
	})
}

// allowedTransitions is the order-line status machine. Drinks jump straight
// from nueva to entregado; dishes walk the kitchen states.
var allowedTransitions = map[models.OrderItemStatus]map[models.OrderItemStatus]bool{
	models.StatusNueva:         {models.StatusEntregado: true},
	models.StatusEnviadaCocina: {models.StatusEnPreparacion: true, models.StatusListoServir: true},
	models.StatusEnPreparacion: {models.StatusListoServir: true},
	models.StatusListoServir:   {models.StatusEntregado: true},
}

// UpdateLineStatus advances one line through the status machine.
func (s *Service) UpdateLineStatus(ctx context.Context, scope string, tableID int, lineID string, status models.OrderItemStatus) (*models.Restaurant, error) {
	return s.commit(ctx, scope, func(r *models.Restaurant) error {
		table, err := findTable(r, tableID)
		if err != nil {
			return err
		}
		line, err := findLine(table, lineID)
		if err != nil {
			return err
		}
		if line.Status == models.StatusNueva && line.Category != models.CategoryBebidasPostres {
			return fmt.Errorf("tables: dish %s must go through the kitchen", line.Name)
		}
		if !allowedTransitions[line.Status][status] {
			return fmt.Errorf("tables: illegal transition %s -> %s", line.Status, status)
		}
		line.Status = status
		return nil
	})
}

// RequestBill moves the table to esperando_cuenta. It refuses while any
// line still has no price or any new dish has not been sent to the
// kitchen.
func (s *Service) RequestBill(ctx context.Context, scope string, tableID int) (*models.Restaurant, error) {
	return s.commit(ctx, scope, func(r *models.Restaurant) error {
		table, err := findTable(r, tableID)
		if err != nil {
			return err
		}
		if len(table.Order) == 0 {
			return fmt.Errorf("tables: table %d has no order", tableID)
		}
		for _, line := range table.Order {
			if line.UnitPrice == 0 {
				return fmt.Errorf("%w: %s", variants.ErrZeroPriceItem, line.Name)
			}
			if line.Status == models.StatusNueva && line.Category == models.CategoryPlatillos {
				return ErrUnsentDishes
			}
		}
		table.Status = models.TableEsperandoCuenta
		return nil
	})
}

// CloseTable settles the bill: it writes the completed order, deducts
// recipe ingredients from inventory, and frees the table.
func (s *Service) CloseTable(ctx context.Context, scope string, tableID int) (*models.Restaurant, error) {
	return s.commit(ctx, scope, func(r *models.Restaurant) error {
		table, err := findTable(r, tableID)
		if err != nil {
			return err
		}
		if len(table.Order) == 0 {
			return fmt.Errorf("tables: table %d has no order", tableID)
		}

		completed := models.CompletedOrder{
			ID:      uuid.New().String(),
			TableID: table.ID,
			Order:   append([]models.OrderLine(nil), table.Order...),
			Total:   table.Total(),
			Date:    time.Now(),
		}
		r.CompletedOrders = append(r.CompletedOrders, completed)

		deductInventory(r, table.Order)

		table.Status = models.TableLibre
		table.Order = []models.OrderLine{}
		table.OccupiedAt = nil
		return nil
	})
}

// deductInventory consumes recipe ingredients for every line on the closed
// order. Items with no recipe consume nothing.
func deductInventory(r *models.Restaurant, order []models.OrderLine) {
	cat, err := catalog.New(r.Menu)
	if err != nil {
		// A menu that fails validation here was admitted by an older build;
		// skip deduction rather than block the bill.
		return
	}
	stock := make(map[string]*models.InventoryItem, len(r.Inventory))
	for i := range r.Inventory {
		stock[r.Inventory[i].ID] = &r.Inventory[i]
	}
	for _, line := range order {
		item, ok := cat.ByID(line.MenuItemID)
		if !ok {
			continue
		}
		for _, ing := range item.Recipe {
			inv, ok := stock[ing.InventoryItemID]
			if !ok {
				continue
			}
			inv.Stock -= ing.Amount * float64(line.Qty)
			if inv.Stock < 0 {
				inv.Stock = 0
			}
		}
	}
}

// LowStock lists inventory items at or below their threshold.
func (s *Service) LowStock(ctx context.Context, scope string) ([]models.InventoryItem, error) {
	state, err := s.repo.Load(ctx, scope)
	if err != nil {
		return nil, err
	}
	var low []models.InventoryItem
	for _, item := range state.Inventory {
		if item.IsLow() {
			low = append(low, item)
		}
	}
	return low, nil
}

// UpsertMenuItem creates or replaces a menu item in the given section,
// revalidating the whole catalog before the commit is written.
func (s *Service) UpsertMenuItem(ctx context.Context, scope string, category models.Category, item models.MenuItem) (*models.Restaurant, error) {
	return s.commit(ctx, scope, func(r *models.Restaurant) error {
		section := &r.Menu.Platillos
		if category == models.CategoryBebidasPostres {
			section = &r.Menu.BebidasPostres
		}
		replaced := false
		for i := range *section {
			if (*section)[i].ID == item.ID {
				(*section)[i] = item
				replaced = true
				break
			}
		}
		if !replaced {
			*section = append(*section, item)
		}
		return catalog.Validate(&r.Menu)
	})
}

// DeleteMenuItem removes a menu item from either section.
func (s *Service) DeleteMenuItem(ctx context.Context, scope string, itemID string) (*models.Restaurant, error) {
	return s.commit(ctx, scope, func(r *models.Restaurant) error {
		for _, section := range []*[]models.MenuItem{&r.Menu.Platillos, &r.Menu.BebidasPostres} {
			for i := range *section {
				if (*section)[i].ID == itemID {
					*section = append((*section)[:i], (*section)[i+1:]...)
					return nil
				}
			}
		}
		return fmt.Errorf("%w: %s", variants.ErrUnknownCatalogReference, itemID)
	})
}

// UpdateInventoryItem replaces or appends one inventory item.
func (s *Service) UpdateInventoryItem(ctx context.Context, scope string, item models.InventoryItem) (*models.Restaurant, error) {
	return s.commit(ctx, scope, func(r *models.Restaurant) error {
		for i := range r.Inventory {
			if r.Inventory[i].ID == item.ID {
				r.Inventory[i] = item
				return nil
			}
		}
		r.Inventory = append(r.Inventory, item)
		return nil
	})
}
