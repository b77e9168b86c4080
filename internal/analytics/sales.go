package analytics

import (
	"sort"

	"comanda/internal/models"
)

// DailyRevenue is total sales for one calendar day.
type DailyRevenue struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// ItemSales is how often one menu item sold and what it brought in.
type ItemSales struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Units      int     `json:"units"`
	Revenue    float64 `json:"revenue"`
}

// Summary is the sales dashboard payload.
type Summary struct {
	TotalRevenue  float64        `json:"totalRevenue"`
	OrderCount    int            `json:"orderCount"`
	AverageTicket float64        `json:"averageTicket"`
	ByDay         []DailyRevenue `json:"byDay"`
	TopItems      []ItemSales    `json:"topItems"`
}

// Summarize aggregates completed orders into the dashboard numbers. Pure
// and deterministic: one pass over the input, output ordered by day and by
// units sold.
func Summarize(orders []models.CompletedOrder, topN int) Summary {
	summary := Summary{OrderCount: len(orders)}

	byDay := make(map[string]*DailyRevenue)
	byItem := make(map[string]*ItemSales)

	for _, order := range orders {
		summary.TotalRevenue += order.Total

		day := order.Date.Format("2006-01-02")
		dr, ok := byDay[day]
		if !ok {
			dr = &DailyRevenue{Date: day}
			byDay[day] = dr
		}
		dr.Revenue += order.Total
		dr.Orders++

		for _, line := range order.Order {
			is, ok := byItem[line.MenuItemID]
			if !ok {
				is = &ItemSales{MenuItemID: line.MenuItemID, Name: line.Name}
				byItem[line.MenuItemID] = is
			}
			is.Units += line.Qty
			is.Revenue += line.UnitPrice * float64(line.Qty)
		}
	}

	if summary.OrderCount > 0 {
		summary.AverageTicket = summary.TotalRevenue / float64(summary.OrderCount)
	}

	for _, dr := range byDay {
		summary.ByDay = append(summary.ByDay, *dr)
	}
	sort.Slice(summary.ByDay, func(i, j int) bool {
		return summary.ByDay[i].Date < summary.ByDay[j].Date
	})

	for _, is := range byItem {
		summary.TopItems = append(summary.TopItems, *is)
	}
	sort.Slice(summary.TopItems, func(i, j int) bool {
		if summary.TopItems[i].Units != summary.TopItems[j].Units {
			return summary.TopItems[i].Units > summary.TopItems[j].Units
		}
		return summary.TopItems[i].MenuItemID < summary.TopItems[j].MenuItemID
	})
	if topN > 0 && len(summary.TopItems) > topN {
		summary.TopItems = summary.TopItems[:topN]
	}

	return summary
}
