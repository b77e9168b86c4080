package catalog

import (
	"fmt"

	"comanda/internal/models"
)

// Validate checks a menu for authoring errors before it is served to the
// variant engine: empty group types or option lists, duplicate group types
// within an item, show rules naming unknown groups, and rule triggers or
// disable targets that exist in no group. Catching these at load time keeps
// rule evaluation free of defensive checks.
func Validate(menu *models.Menu) error {
	for _, item := range menu.AllItems() {
		if err := validateItem(&item); err != nil {
			return err
		}
	}
	return nil
}

func validateItem(item *models.MenuItem) error {
	if item.ID == "" || item.Name == "" {
		return fmt.Errorf("catalog: item %q: id and name are required", item.Name)
	}
	if item.BasePrice < 0 {
		return fmt.Errorf("catalog: item %q: negative base price", item.Name)
	}

	groupTypes := make(map[string]bool, len(item.VariantGroups))
	options := make(map[string]bool)
	for _, g := range item.VariantGroups {
		if g.Type == "" {
			return fmt.Errorf("catalog: item %q: variant group with empty type", item.Name)
		}
		if groupTypes[g.Type] {
			return fmt.Errorf("catalog: item %q: duplicate variant group %q", item.Name, g.Type)
		}
		groupTypes[g.Type] = true
		if len(g.Options) == 0 {
			return fmt.Errorf("catalog: item %q: group %q has no options", item.Name, g.Type)
		}
		seen := make(map[string]bool, len(g.Options))
		for _, o := range g.Options {
			if seen[o] {
				return fmt.Errorf("catalog: item %q: group %q: duplicate option %q", item.Name, g.Type, o)
			}
			seen[o] = true
			options[o] = true
		}
	}

	for _, rule := range item.ShowRules {
		if !options[rule.When] {
			return fmt.Errorf("catalog: item %q: show rule trigger %q is not an option", item.Name, rule.When)
		}
		for _, gt := range rule.Show {
			if !groupTypes[gt] {
				return fmt.Errorf("catalog: item %q: show rule reveals unknown group %q", item.Name, gt)
			}
		}
	}
	for _, rule := range item.DisableRules {
		if !options[rule.When] {
			return fmt.Errorf("catalog: item %q: disable rule trigger %q is not an option", item.Name, rule.When)
		}
		for _, opt := range rule.Disable {
			if !options[opt] {
				return fmt.Errorf("catalog: item %q: disable rule targets unknown option %q", item.Name, opt)
			}
		}
	}
	for delta := range item.VariantPriceDeltas {
		if !options[delta] {
			return fmt.Errorf("catalog: item %q: price delta for unknown option %q", item.Name, delta)
		}
	}
	return nil
}
