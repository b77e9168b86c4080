package variants

import "comanda/internal/models"

// The rule evaluation here is pure and synchronous: every function is a
// deterministic view over a MenuItem and the current Selection for one
// scope. Re-evaluation happens on every option toggle; catalogs are tens of
// groups at most, so nothing is memoized.

// VisibleGroups computes the variant group types the given selection
// reveals: groups not named by any ShowRule are unconditionally visible,
// and each ShowRule whose trigger option is selected adds its group types.
// This is the instantaneous rule view; Session layers reveal history on
// top so that a group, once shown, stays shown for the rest of the session
// even after its trigger is deselected. There is no hide mechanism.
func VisibleGroups(item *models.MenuItem, sel Selection) map[string]bool {
	conditional := make(map[string]bool)
	for _, rule := range item.ShowRules {
		for _, gt := range rule.Show {
			conditional[gt] = true
		}
	}

	visible := make(map[string]bool, len(item.VariantGroups))
	for _, g := range item.VariantGroups {
		if !conditional[g.Type] {
			visible[g.Type] = true
		}
	}
	for _, rule := range item.ShowRules {
		if sel.Has(rule.When) {
			for _, gt := range rule.Show {
				visible[gt] = true
			}
		}
	}
	return visible
}

// DisabledOptions computes the set of option labels currently disabled for
// the given scope's selection: the union of Disable lists of every rule
// whose trigger is selected in the same scope. An option that was selected
// before becoming disabled is tolerated; nothing evicts it.
func DisabledOptions(item *models.MenuItem, sel Selection) map[string]bool {
	disabled := make(map[string]bool)
	for _, rule := range item.DisableRules {
		if sel.Has(rule.When) {
			for _, opt := range rule.Disable {
				disabled[opt] = true
			}
		}
	}
	return disabled
}

// SetSingle applies a single-select toggle for the given group: reselecting
// the current value clears it, any other value replaces it. Assignment of a
// currently disabled option is refused as a no-op; IsValid does not
// re-verify disabledness afterwards.
func SetSingle(item *models.MenuItem, sel Selection, groupType, value string) Selection {
	if DisabledOptions(item, sel)[value] {
		return sel
	}
	next := sel.clone()
	current := next[groupType]
	if len(current) == 1 && current[0] == value {
		delete(next, groupType)
	} else {
		next[groupType] = []string{value}
	}
	return next
}

// SetMulti replaces the full option set for a multi-select group. The
// caller supplies the post-toggle set; any value in it that is currently
// disabled makes the whole assignment a no-op.
func SetMulti(item *models.MenuItem, sel Selection, groupType string, values []string) Selection {
	disabled := DisabledOptions(item, sel)
	for _, v := range values {
		if disabled[v] {
			return sel
		}
	}
	next := sel.clone()
	if len(values) == 0 {
		delete(next, groupType)
	} else {
		next[groupType] = append([]string(nil), values...)
	}
	return next
}

// PrepValid reports whether every required and currently visible group has
// at least one selection in the given scope. A required group hidden by an
// untriggered ShowRule never blocks validity.
func PrepValid(item *models.MenuItem, sel Selection) bool {
	return PrepValidWith(item, sel, VisibleGroups(item, sel))
}

// PrepValidWith checks required-group completeness against an explicit
// visible set, for callers that track reveal history themselves.
func PrepValidWith(item *models.MenuItem, sel Selection, visible map[string]bool) bool {
	for _, g := range item.VariantGroups {
		if !g.IsRequired || !visible[g.Type] {
			continue
		}
		if len(sel.Options(g.Type)) == 0 {
			return false
		}
	}
	return true
}

// IsValid reports whether a non-mixed item's selection is complete.
func IsValid(item *models.MenuItem, sel Selection) bool {
	return PrepValid(item, sel)
}

// IsValidMixed reports whether a mixed item's two preparations are
// complete. Preparation 1 is the anchor: it must satisfy its required
// visible groups and hold at least one selection. Preparation 2 is
// optional, but once it holds any selection it must satisfy its own
// required visible groups too. A mixed dish can never be added with only
// preparation 2 configured.
func IsValidMixed(item *models.MenuItem, prep1, prep2 Selection) bool {
	if prep1.IsEmpty() || !PrepValid(item, prep1) {
		return false
	}
	if prep2.IsEmpty() {
		return true
	}
	return PrepValid(item, prep2)
}

// ResolvePrice returns the live unit price for a non-mixed selection: base
// price plus the delta of every selected option that has an entry in
// VariantPriceDeltas. Deltas may be negative and the result is not floored.
// Mixed items always resolve to their base price; deltas do not apply to
// them.
func ResolvePrice(item *models.MenuItem, sel Selection) float64 {
	if item.IsMixed {
		return item.BasePrice
	}
	price := item.BasePrice
	for _, chosen := range sel {
		for _, opt := range chosen {
			if delta, ok := item.VariantPriceDeltas[opt]; ok {
				price += delta
			}
		}
	}
	return price
}
