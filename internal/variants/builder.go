package variants

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"comanda/internal/models"
)

// BuildLine consumes a completed, valid session and emits an immutable
// order line. It fails with ErrIncompleteSelection when a required visible
// group is unfilled. Zero-price enforcement for variable-price items is the
// caller's contract: a zero-price line may exist in "nueva" state until a
// manual price is set, but must be rejected before it reaches the kitchen
// or the bill.
func BuildLine(session *Session, category models.Category, qty int) (models.OrderLine, error) {
	item := session.Item()
	if !session.IsValid() {
		return models.OrderLine{}, fmt.Errorf("%w: %s", ErrIncompleteSelection, item.Name)
	}
	if qty < 1 {
		qty = 1
	}

	var descriptors []string
	if item.IsMixed {
		descriptors = mixedDescriptors(item, session.Selection(ScopePrep1), session.Selection(ScopePrep2))
	} else {
		descriptors = flattenSelection(item, session.Selection(ScopeSimple))
	}

	return models.OrderLine{
		ID:            uuid.New().String(),
		Name:          item.Name,
		UnitPrice:     session.Price(),
		Qty:           qty,
		Variants:      descriptors,
		Category:      category,
		MenuItemID:    item.ID,
		Status:        models.StatusNueva,
		PrepTimeLimit: item.PrepTimeLimit,
	}, nil
}

// flattenSelection lists every chosen option in group order, then option
// order within each group. Duplicates are impossible since each group holds
// a set.
func flattenSelection(item *models.MenuItem, sel Selection) []string {
	groupOrder := make([]string, 0, len(item.VariantGroups))
	for _, g := range item.VariantGroups {
		groupOrder = append(groupOrder, g.Type)
	}
	return sel.Flatten(groupOrder, func(gt string) []string {
		g, _ := item.Group(gt)
		return g.Options
	})
}

// mixedDescriptors builds one "Prep N: ..." block per preparation that
// contributed selections. An unconfigured preparation 2 is omitted
// entirely.
func mixedDescriptors(item *models.MenuItem, prep1, prep2 Selection) []string {
	var out []string
	for i, sel := range []Selection{prep1, prep2} {
		opts := flattenSelection(item, sel)
		if len(opts) == 0 {
			continue
		}
		out = append(out, fmt.Sprintf("Prep %d: %s", i+1, strings.Join(opts, ", ")))
	}
	return out
}
