package voice

import (
	"github.com/google/uuid"

	"comanda/internal/catalog"
	"comanda/internal/models"
)

// Reconcile maps the model's parsed guesses onto real catalog entries. An
// item whose name has no case-insensitive exact match is dropped and
// reported in unmatched; the rest of the batch continues. Variant strings
// are not re-validated against group membership — the parsing contract
// already guaranteed it, and required-group completeness was enforced
// upstream by omission. The matched item's price deltas are the only
// source of price adjustment.
func Reconcile(parsed *ParsedOrder, cat *catalog.Catalog) (lines []models.OrderLine, unmatched []string) {
	if parsed == nil {
		return nil, nil
	}
	for _, guess := range parsed.Items {
		item, ok := cat.ByName(guess.Name)
		if !ok {
			unmatched = append(unmatched, guess.Name)
			continue
		}

		price := item.BasePrice
		for _, v := range guess.Variants {
			if delta, ok := item.VariantPriceDeltas[v]; ok {
				price += delta
			}
		}

		lines = append(lines, models.OrderLine{
			ID:            uuid.New().String(),
			Name:          item.Name,
			UnitPrice:     price,
			Qty:           guess.Qty,
			Variants:      append([]string(nil), guess.Variants...),
			Category:      cat.CategoryOf(item.ID),
			MenuItemID:    item.ID,
			Status:        models.StatusNueva,
			PrepTimeLimit: item.PrepTimeLimit,
		})
	}
	return lines, unmatched
}
