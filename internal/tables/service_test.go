package tables

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/internal/catalog"
	"comanda/internal/models"
	"comanda/internal/variants"
)

// memRepo is an in-memory Repository with the same transactional contract as
// the database-backed store: a failed mutator leaves the state untouched.
type memRepo struct {
	state *models.Restaurant
}

func (m *memRepo) Load(ctx context.Context, scope string) (*models.Restaurant, error) {
	return m.clone(), nil
}

func (m *memRepo) Commit(ctx context.Context, scope string, fn Mutator) (*models.Restaurant, error) {
	next := m.clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	m.state = next
	return m.clone(), nil
}

func (m *memRepo) clone() *models.Restaurant {
	raw, _ := json.Marshal(m.state)
	var out models.Restaurant
	_ = json.Unmarshal(raw, &out)
	return &out
}

type recordingNotifier struct {
	calls int
}

func (n *recordingNotifier) StateChanged(scope string, state *models.Restaurant) {
	n.calls++
}

func newTestService() (*Service, *memRepo) {
	repo := &memRepo{state: &models.Restaurant{
		Tables:    catalog.SeedTables(),
		Menu:      catalog.SeedMenu(),
		Inventory: catalog.SeedInventory(),
	}}
	return NewService(repo), repo
}

func dish(id, name string, price float64, qty int) models.OrderLine {
	return models.OrderLine{
		ID:        id,
		Name:      name,
		UnitPrice: price,
		Qty:       qty,
		Category:  models.CategoryPlatillos,
		Status:    models.StatusNueva,
	}
}

func drink(id, name string, price float64) models.OrderLine {
	return models.OrderLine{
		ID:        id,
		Name:      name,
		UnitPrice: price,
		Qty:       1,
		Category:  models.CategoryBebidasPostres,
		Status:    models.StatusNueva,
	}
}

func TestAddLineOccupiesFreeTable(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	state, err := svc.AddLine(ctx, "test", 1, dish("l1", "Tostada", 40, 2))
	require.NoError(t, err)

	table := state.Tables[0]
	assert.Equal(t, models.TableOcupada, table.Status)
	require.NotNil(t, table.OccupiedAt)
	require.Len(t, table.Order, 1)
	assert.Equal(t, models.StatusNueva, table.Order[0].Status)
}

func TestAddLineUnknownTable(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.AddLine(context.Background(), "test", 99, dish("l1", "Tostada", 40, 1))
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestRemoveLineOnlyBeforeSending(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddLine(ctx, "test", 1, dish("l1", "Tostada", 40, 1))
	require.NoError(t, err)

	state, err := svc.RemoveLine(ctx, "test", 1, "l1")
	require.NoError(t, err)
	assert.Empty(t, state.Tables[0].Order)

	_, err = svc.AddLine(ctx, "test", 1, dish("l2", "Empanada", 35, 1))
	require.NoError(t, err)
	_, err = svc.SendToKitchen(ctx, "test", 1)
	require.NoError(t, err)

	_, err = svc.RemoveLine(ctx, "test", 1, "l2")
	assert.ErrorContains(t, err, "already sent")
}

func TestSendToKitchenRejectsZeroPriceDish(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddLine(ctx, "test", 1, dish("l1", "Aguachile", 0, 1))
	require.NoError(t, err)

	_, err = svc.SendToKitchen(ctx, "test", 1)
	assert.ErrorIs(t, err, variants.ErrZeroPriceItem)

	// Pricing the line unblocks the batch.
	_, err = svc.SetManualPrice(ctx, "test", 1, "l1", 120)
	require.NoError(t, err)
	state, err := svc.SendToKitchen(ctx, "test", 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEnviadaCocina, state.Tables[0].Order[0].Status)
	assert.NotNil(t, state.Tables[0].Order[0].SentToKitchenAt)
}

func TestSendToKitchenSkipsDrinks(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddLine(ctx, "test", 1, drink("d1", "Michelada", 55))
	require.NoError(t, err)

	_, err = svc.SendToKitchen(ctx, "test", 1)
	assert.ErrorIs(t, err, ErrNoNewDishes)

	_, err = svc.AddLine(ctx, "test", 1, dish("l1", "Tostada", 40, 1))
	require.NoError(t, err)
	state, err := svc.SendToKitchen(ctx, "test", 1)
	require.NoError(t, err)

	for _, line := range state.Tables[0].Order {
		if line.ID == "d1" {
			assert.Equal(t, models.StatusNueva, line.Status, "drinks do not pass through the kitchen")
		} else {
			assert.Equal(t, models.StatusEnviadaCocina, line.Status)
		}
	}
}

func TestSetManualPriceRequiresPositive(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.SetManualPrice(context.Background(), "test", 1, "l1", 0)
	assert.ErrorContains(t, err, "must be positive")
}

func TestUpdateLineStatusMachine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddLine(ctx, "test", 1, dish("l1", "Tostada", 40, 1))
	require.NoError(t, err)

	// A new dish may not jump ahead of the kitchen.
	_, err = svc.UpdateLineStatus(ctx, "test", 1, "l1", models.StatusEntregado)
	assert.ErrorContains(t, err, "must go through the kitchen")

	_, err = svc.SendToKitchen(ctx, "test", 1)
	require.NoError(t, err)

	_, err = svc.UpdateLineStatus(ctx, "test", 1, "l1", models.StatusEntregado)
	assert.ErrorContains(t, err, "illegal transition")

	for _, next := range []models.OrderItemStatus{
		models.StatusEnPreparacion, models.StatusListoServir, models.StatusEntregado,
	} {
		_, err = svc.UpdateLineStatus(ctx, "test", 1, "l1", next)
		require.NoError(t, err)
	}
}

func TestDrinkDeliveredDirectly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddLine(ctx, "test", 1, drink("d1", "Refresco", 25))
	require.NoError(t, err)

	state, err := svc.UpdateLineStatus(ctx, "test", 1, "d1", models.StatusEntregado)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEntregado, state.Tables[0].Order[0].Status)
}

func TestRequestBillGuards(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RequestBill(ctx, "test", 1)
	assert.ErrorContains(t, err, "has no order")

	_, err = svc.AddLine(ctx, "test", 1, dish("l1", "Tostada", 40, 1))
	require.NoError(t, err)
	_, err = svc.RequestBill(ctx, "test", 1)
	assert.ErrorIs(t, err, ErrUnsentDishes)

	_, err = svc.SendToKitchen(ctx, "test", 1)
	require.NoError(t, err)
	state, err := svc.RequestBill(ctx, "test", 1)
	require.NoError(t, err)
	assert.Equal(t, models.TableEsperandoCuenta, state.Tables[0].Status)
}

func TestRequestBillRejectsZeroPriceLine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddLine(ctx, "test", 1, drink("d1", "Michelada", 55))
	require.NoError(t, err)
	_, err = svc.AddLine(ctx, "test", 1, dish("l1", "Aguachile", 0, 1))
	require.NoError(t, err)

	_, err = svc.RequestBill(ctx, "test", 1)
	assert.ErrorIs(t, err, variants.ErrZeroPriceItem)
}

func TestCloseTableSettlesAndDeductsInventory(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	line := dish("l1", "Tostada", 50, 2)
	line.MenuItemID = "tostada-2"
	_, err := svc.AddLine(ctx, "test", 1, line)
	require.NoError(t, err)
	_, err = svc.SendToKitchen(ctx, "test", 1)
	require.NoError(t, err)
	_, err = svc.RequestBill(ctx, "test", 1)
	require.NoError(t, err)

	before := map[string]float64{}
	for _, item := range repo.state.Inventory {
		before[item.ID] = item.Stock
	}

	state, err := svc.CloseTable(ctx, "test", 1)
	require.NoError(t, err)

	table := state.Tables[0]
	assert.Equal(t, models.TableLibre, table.Status)
	assert.Empty(t, table.Order)
	assert.Nil(t, table.OccupiedAt)

	require.Len(t, state.CompletedOrders, 1)
	done := state.CompletedOrders[0]
	assert.Equal(t, 1, done.TableID)
	assert.Equal(t, 100.0, done.Total)
	assert.NotEmpty(t, done.ID)

	// Tostada consumes pescado, tomate and cebolla per the recipe, twice.
	for _, item := range state.Inventory {
		switch item.ID {
		case "pescado-3":
			assert.InDelta(t, before[item.ID]-0.16, item.Stock, 1e-9)
		case "tomate-4":
			assert.InDelta(t, before[item.ID]-0.10, item.Stock, 1e-9)
		case "cebolla-5":
			assert.InDelta(t, before[item.ID]-0.06, item.Stock, 1e-9)
		case "camaron-1":
			assert.Equal(t, before[item.ID], item.Stock)
		}
	}
}

func TestLowStock(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	low, err := svc.LowStock(ctx, "test")
	require.NoError(t, err)
	assert.Empty(t, low)

	repo.state.Inventory[0].Stock = repo.state.Inventory[0].LowStockThreshold
	low, err = svc.LowStock(ctx, "test")
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "camaron-1", low[0].ID)
}

func TestUpsertMenuItemRevalidates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	bad := models.MenuItem{
		ID:        "nuevo-1",
		Name:      "Nuevo",
		BasePrice: 50,
		VariantGroups: []models.VariantGroup{
			{Type: "Estilo", Options: nil, IsRequired: true},
		},
	}
	_, err := svc.UpsertMenuItem(ctx, "test", models.CategoryPlatillos, bad)
	assert.ErrorContains(t, err, "has no options")

	// The rejected commit must not have been persisted.
	state, err := svc.State(ctx, "test")
	require.NoError(t, err)
	for _, item := range state.Menu.Platillos {
		assert.NotEqual(t, "nuevo-1", item.ID)
	}

	good := bad
	good.VariantGroups = nil
	state, err = svc.UpsertMenuItem(ctx, "test", models.CategoryPlatillos, good)
	require.NoError(t, err)
	assert.Equal(t, "nuevo-1", state.Menu.Platillos[len(state.Menu.Platillos)-1].ID)
}

func TestDeleteMenuItem(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	state, err := svc.DeleteMenuItem(ctx, "test", "tostada-2")
	require.NoError(t, err)
	for _, item := range state.Menu.Platillos {
		assert.NotEqual(t, "tostada-2", item.ID)
	}

	_, err = svc.DeleteMenuItem(ctx, "test", "tostada-2")
	assert.ErrorIs(t, err, variants.ErrUnknownCatalogReference)
}

func TestNotifierReceivesCommittedState(t *testing.T) {
	svc, _ := newTestService()
	n := &recordingNotifier{}
	svc.SetNotifier(n)
	ctx := context.Background()

	_, err := svc.AddLine(ctx, "test", 1, dish("l1", "Tostada", 40, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, n.calls)

	// Failed commits do not notify.
	_, err = svc.RemoveLine(ctx, "test", 1, "missing")
	require.Error(t, err)
	assert.Equal(t, 1, n.calls)
}
