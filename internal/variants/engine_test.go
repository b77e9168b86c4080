package variants

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"comanda/internal/models"
)

func coctel() *models.MenuItem {
	return &models.MenuItem{
		ID:        "coctel-de-mariscos-1",
		Name:      "Cóctel",
		BasePrice: 90,
		VariantPriceDeltas: map[string]float64{
			"Mediano": 30,
			"Grande":  65,
		},
		VariantGroups: []models.VariantGroup{
			{Type: "Tamaño", Options: []string{"Chico", "Mediano", "Grande"}, IsRequired: true},
			{Type: "Tipo", Options: []string{"Camarón", "Pulpo", "Ostión", "C/P", "P/O", "C/O", "Campechano"}, IsRequired: true},
			{Type: "S/N", Options: []string{"Cilantro", "Cebolla", "Aguacate", "Picante"}, AllowMultiple: true},
		},
	}
}

func caldoSopa() *models.MenuItem {
	return &models.MenuItem{
		ID:        "caldo-sopa-7",
		Name:      "Caldo / Sopa",
		BasePrice: 130,
		VariantGroups: []models.VariantGroup{
			{Type: "Tipo", Options: []string{"Caldo de Pescado", "Sopa de Mariscos"}, IsRequired: true},
			{Type: "Porción", Options: []string{"Completa", "Media Orden"}, IsRequired: true},
			{Type: "Extras", Options: []string{"Queso", "Crema", "Aguacate"}, AllowMultiple: true},
			{Type: "S/N", Options: []string{"Sin Jaiba", "Sin Pulpo"}, AllowMultiple: true},
		},
		VariantPriceDeltas: map[string]float64{
			"Sopa de Mariscos": 20,
			"Media Orden":      -40,
			"Queso":            15,
			"Crema":            10,
			"Aguacate":         20,
		},
		ShowRules: []models.ShowRule{
			{When: "Sopa de Mariscos", Show: []string{"Extras"}},
		},
		DisableRules: []models.DisableRule{
			{When: "Caldo de Pescado", Disable: []string{"Sin Jaiba", "Sin Pulpo", "Queso", "Crema"}},
		},
	}
}

func camaronesMixtos() *models.MenuItem {
	return &models.MenuItem{
		ID:        "camarones-mixtos-6",
		Name:      "Camarones Mixtos",
		BasePrice: 185,
		IsMixed:   true,
		VariantGroups: []models.VariantGroup{
			{Type: "Preparación", Options: []string{"Al Mojo", "A la Diabla", "Enchipotlado", "Empanizados", "Plancha"}, IsRequired: true},
			{Type: "Proteína", Options: []string{"Camarón Pelado", "Camarón con Cáscara", "Pulpo"}, IsRequired: true},
			{Type: "Guarnición", Options: []string{"Arroz y Ensalada", "Papas Fritas"}, IsRequired: true},
		},
	}
}

func TestVisibleGroupsHiddenUntilTriggered(t *testing.T) {
	item := caldoSopa()
	sel := NewSelection()

	visible := VisibleGroups(item, sel)
	assert.True(t, visible["Tipo"])
	assert.True(t, visible["Porción"])
	assert.True(t, visible["S/N"])
	assert.False(t, visible["Extras"], "conditional group must start hidden")

	sel = SetSingle(item, sel, "Tipo", "Sopa de Mariscos")
	visible = VisibleGroups(item, sel)
	assert.True(t, visible["Extras"], "trigger selection must reveal the group")
}

func TestShowRuleMonotonicity(t *testing.T) {
	item := caldoSopa()
	session := NewSession(item)

	session.Toggle(ScopeSimple, "Tipo", "Sopa de Mariscos")
	assert.True(t, session.VisibleGroups(ScopeSimple)["Extras"])

	// Unrelated changes keep the revealed group visible.
	session.Toggle(ScopeSimple, "Porción", "Completa")
	assert.True(t, session.VisibleGroups(ScopeSimple)["Extras"])

	// Deselecting the trigger does not re-hide it: no hide mechanism
	// exists.
	session.Toggle(ScopeSimple, "Tipo", "Sopa de Mariscos")
	assert.Empty(t, session.Selection(ScopeSimple).Options("Tipo"))
	assert.True(t, session.VisibleGroups(ScopeSimple)["Extras"])
}

func TestDisabledOptionsFollowTrigger(t *testing.T) {
	item := caldoSopa()
	sel := NewSelection()

	assert.Empty(t, DisabledOptions(item, sel))

	sel = SetSingle(item, sel, "Tipo", "Caldo de Pescado")
	disabled := DisabledOptions(item, sel)
	for _, opt := range []string{"Sin Jaiba", "Sin Pulpo", "Queso", "Crema"} {
		assert.True(t, disabled[opt], opt)
	}
	assert.False(t, disabled["Aguacate"])
}

func TestSetRefusesDisabledOption(t *testing.T) {
	item := caldoSopa()
	sel := NewSelection()
	sel = SetSingle(item, sel, "Tipo", "Caldo de Pescado")

	// Single-select refusal.
	next := SetSingle(item, sel, "S/N", "Sin Jaiba")
	assert.Equal(t, sel, next, "disabled option must not be selectable")

	// Multi-select refusal applies to the whole replacement set.
	next = SetMulti(item, sel, "S/N", []string{"Sin Pulpo"})
	assert.Equal(t, sel, next)
}

func TestStaleDisabledSelectionTolerated(t *testing.T) {
	item := caldoSopa()
	sel := NewSelection()
	sel = SetSingle(item, sel, "Tipo", "Sopa de Mariscos")
	sel = SetMulti(item, sel, "S/N", []string{"Sin Jaiba"})

	// Switching to caldo disables "Sin Jaiba" after the fact; the stale
	// selection stays.
	sel = SetSingle(item, sel, "Tipo", "Caldo de Pescado")
	assert.True(t, sel.Has("Sin Jaiba"))
	assert.True(t, DisabledOptions(item, sel)["Sin Jaiba"])
}

func TestSingleSelectToggleIdempotence(t *testing.T) {
	item := coctel()
	sel := NewSelection()

	sel = SetSingle(item, sel, "Tamaño", "Grande")
	assert.Equal(t, []string{"Grande"}, sel.Options("Tamaño"))

	sel = SetSingle(item, sel, "Tamaño", "Grande")
	assert.Empty(t, sel.Options("Tamaño"), "reselecting toggles off")

	sel = SetSingle(item, sel, "Tamaño", "Chico")
	sel = SetSingle(item, sel, "Tamaño", "Mediano")
	assert.Equal(t, []string{"Mediano"}, sel.Options("Tamaño"), "different value replaces")
}

func TestRequiredHiddenGroupNeverBlocksValidity(t *testing.T) {
	item := &models.MenuItem{
		ID:        "x",
		Name:      "X",
		BasePrice: 10,
		VariantGroups: []models.VariantGroup{
			{Type: "Base", Options: []string{"A", "B"}, IsRequired: true},
			{Type: "Oculto", Options: []string{"C", "D"}, IsRequired: true},
		},
		ShowRules: []models.ShowRule{
			{When: "B", Show: []string{"Oculto"}},
		},
	}

	sel := NewSelection()
	sel = SetSingle(item, sel, "Base", "A")
	assert.True(t, IsValid(item, sel), "hidden required group must not block")

	// Triggering visibility makes the required group count.
	sel = SetSingle(item, sel, "Base", "B")
	assert.False(t, IsValid(item, sel))

	sel = SetSingle(item, sel, "Oculto", "C")
	assert.True(t, IsValid(item, sel))
}

func TestIsValidRequiresAllVisibleRequiredGroups(t *testing.T) {
	item := coctel()
	sel := NewSelection()
	assert.False(t, IsValid(item, sel))

	sel = SetSingle(item, sel, "Tamaño", "Grande")
	assert.False(t, IsValid(item, sel), "Tipo still missing")

	sel = SetSingle(item, sel, "Tipo", "Pulpo")
	assert.True(t, IsValid(item, sel), "optional S/N may stay empty")
}

func TestMixedValidityAsymmetry(t *testing.T) {
	item := camaronesMixtos()

	full := func() Selection {
		sel := NewSelection()
		sel = SetSingle(item, sel, "Preparación", "Al Mojo")
		sel = SetSingle(item, sel, "Proteína", "Camarón Pelado")
		sel = SetSingle(item, sel, "Guarnición", "Arroz y Ensalada")
		return sel
	}

	// Prep 1 complete, prep 2 empty: valid.
	assert.True(t, IsValidMixed(item, full(), NewSelection()))

	// Prep 1 empty: never valid, regardless of prep 2.
	assert.False(t, IsValidMixed(item, NewSelection(), full()))
	assert.False(t, IsValidMixed(item, NewSelection(), NewSelection()))

	// Prep 2 partially filled must complete its required groups.
	partial := NewSelection()
	partial = SetSingle(item, partial, "Preparación", "Plancha")
	assert.False(t, IsValidMixed(item, full(), partial))

	assert.True(t, IsValidMixed(item, full(), full()))
}

func TestResolvePriceAdditivity(t *testing.T) {
	item := caldoSopa()

	base := NewSelection()
	base = SetSingle(item, base, "Tipo", "Sopa de Mariscos")
	assert.Equal(t, 150.0, ResolvePrice(item, base))

	// Order of selection does not matter and deltas stack, including
	// negative ones.
	a := SetSingle(item, base, "Porción", "Media Orden")
	assert.Equal(t, 110.0, ResolvePrice(item, a))

	b := NewSelection()
	b = SetSingle(item, b, "Porción", "Media Orden")
	b = SetSingle(item, b, "Tipo", "Sopa de Mariscos")
	assert.Equal(t, ResolvePrice(item, a), ResolvePrice(item, b))

	c := SetMulti(item, a, "Extras", []string{"Queso", "Aguacate"})
	assert.Equal(t, 145.0, ResolvePrice(item, c))
}

func TestResolvePriceOptionsWithoutDeltaContributeZero(t *testing.T) {
	item := coctel()
	sel := NewSelection()
	sel = SetSingle(item, sel, "Tamaño", "Chico")
	sel = SetSingle(item, sel, "Tipo", "Pulpo")
	assert.Equal(t, 90.0, ResolvePrice(item, sel))
}

func TestResolvePriceMixedIgnoresDeltas(t *testing.T) {
	item := camaronesMixtos()
	item.VariantPriceDeltas = map[string]float64{"Pulpo": 40}

	sel := NewSelection()
	sel = SetSingle(item, sel, "Proteína", "Pulpo")
	assert.Equal(t, 185.0, ResolvePrice(item, sel))
}
