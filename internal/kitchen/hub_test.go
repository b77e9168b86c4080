package kitchen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/internal/models"
)

func TestBuildQueueSelectsInFlightDishes(t *testing.T) {
	sent := time.Date(2026, 8, 29, 13, 0, 0, 0, time.UTC)
	state := &models.Restaurant{
		Tables: []models.Table{
			{
				ID:     1,
				Status: models.TableOcupada,
				Order: []models.OrderLine{
					{ID: "a", Name: "Tostada", Status: models.StatusNueva},
					{ID: "b", Name: "Mojarra", Qty: 1, Variants: []string{"Frita"}, Status: models.StatusEnviadaCocina, SentToKitchenAt: &sent},
					{ID: "c", Name: "Refresco", Status: models.StatusEntregado},
				},
			},
			{
				ID:     2,
				Name:   "Terraza",
				Status: models.TableOcupada,
				Order: []models.OrderLine{
					{ID: "d", Name: "Filetes", Qty: 2, Status: models.StatusEnPreparacion, SentToKitchenAt: &sent},
				},
			},
		},
	}

	tickets := BuildQueue(state, sent.Add(5*time.Minute))
	require.Len(t, tickets, 2)

	assert.Equal(t, "b", tickets[0].LineID)
	assert.Equal(t, 1, tickets[0].TableID)
	assert.Equal(t, []string{"Frita"}, tickets[0].Variants)

	assert.Equal(t, "d", tickets[1].LineID)
	assert.Equal(t, "Terraza", tickets[1].TableName)
}

func TestBuildQueueOverdueFlag(t *testing.T) {
	sent := time.Date(2026, 8, 29, 13, 0, 0, 0, time.UTC)
	state := &models.Restaurant{
		Tables: []models.Table{
			{
				ID:     1,
				Status: models.TableOcupada,
				Order: []models.OrderLine{
					{ID: "a", Name: "Mojarra", Status: models.StatusEnviadaCocina, SentToKitchenAt: &sent, PrepTimeLimit: 20},
					{ID: "b", Name: "Tostada", Status: models.StatusEnviadaCocina, SentToKitchenAt: &sent},
				},
			},
		},
	}

	tickets := BuildQueue(state, sent.Add(10*time.Minute))
	require.Len(t, tickets, 2)
	assert.False(t, tickets[0].Overdue)

	tickets = BuildQueue(state, sent.Add(25*time.Minute))
	assert.True(t, tickets[0].Overdue)
	assert.False(t, tickets[1].Overdue, "no limit means never overdue")
}

func TestBuildQueueEmptyState(t *testing.T) {
	tickets := BuildQueue(&models.Restaurant{}, time.Now())
	assert.Empty(t, tickets)
}
