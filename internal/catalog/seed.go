package catalog

import "comanda/internal/models"

// SeedMenu returns the house menu a fresh restaurant database starts with.
func SeedMenu() models.Menu {
	return models.Menu{
		Platillos: []models.MenuItem{
			{
				ID:          "coctel-de-mariscos-1",
				Name:        "Cóctel",
				BasePrice:   90,
				Description: "Refrescante cóctel con ingredientes frescos y un toque de la casa.",
				VariantPriceDeltas: map[string]float64{
					"Mediano": 30,
					"Grande":  65,
				},
				VariantGroups: []models.VariantGroup{
					{Type: "Tamaño", Options: []string{"Chico", "Mediano", "Grande"}, IsRequired: true},
					{Type: "Tipo", Options: []string{"Camarón", "Pulpo", "Ostión", "C/P", "P/O", "C/O", "Campechano"}, IsRequired: true},
					{Type: "S/N", Options: []string{"Cilantro", "Cebolla", "Aguacate", "Picante"}, AllowMultiple: true},
				},
				Recipe: []models.RecipeIngredient{
					{InventoryItemID: "camaron-1", Amount: 0.08},
					{InventoryItemID: "tomate-4", Amount: 0.05},
					{InventoryItemID: "cebolla-5", Amount: 0.03},
				},
			},
			{
				ID:          "tostada-2",
				Name:        "Tostada",
				BasePrice:   40,
				Description: "Tostada crujiente con una cama de mariscos frescos.",
				VariantPriceDeltas: map[string]float64{
					"Pulpo": 10,
					"Mixta": 15,
				},
				VariantGroups: []models.VariantGroup{
					{Type: "Relleno", Options: []string{"Ceviche", "Camarón", "Pulpo", "Jaiba", "Mixta"}, IsRequired: true},
				},
				Recipe: []models.RecipeIngredient{
					{InventoryItemID: "pescado-3", Amount: 0.08},
					{InventoryItemID: "tomate-4", Amount: 0.05},
					{InventoryItemID: "cebolla-5", Amount: 0.03},
				},
			},
			{
				ID:          "empanada-3",
				Name:        "Empanada",
				BasePrice:   35,
				Description: "Empanada doradita y caliente, rellena de un guiso de mariscos. Orden de 3.",
				VariantGroups: []models.VariantGroup{
					{Type: "Relleno", Options: []string{"Camarón", "Pescado", "Jaiba", "Queso"}, IsRequired: true},
				},
				Recipe: []models.RecipeIngredient{
					{InventoryItemID: "pescado-3", Amount: 0.1},
					{InventoryItemID: "cebolla-5", Amount: 0.05},
				},
			},
			{
				ID:          "filetes-4",
				Name:        "Filetes",
				BasePrice:   160,
				Description: "Suave filete de pescado, preparado a tu elección.",
				VariantGroups: []models.VariantGroup{
					{Type: "Estilo", Options: []string{"Empanizado", "Al Mojo", "A la Diabla", "Plancha", "Empapelado", "Relleno"}, IsRequired: true},
					{Type: "Guarnición", Options: []string{"Arroz y Ensalada", "Papas Fritas"}, IsRequired: true},
					{Type: "Extras", Options: []string{"Queso Gratinado", "Camarones Extra"}, AllowMultiple: true},
				},
				VariantPriceDeltas: map[string]float64{
					"Empapelado":      15,
					"Relleno":         25,
					"Queso Gratinado": 25,
					"Camarones Extra": 40,
				},
				ShowRules: []models.ShowRule{
					{When: "Relleno", Show: []string{"Extras"}},
				},
				Recipe: []models.RecipeIngredient{
					{InventoryItemID: "pescado-3", Amount: 0.25},
				},
			},
			{
				ID:          "mojarra-5",
				Name:        "Mojarra",
				BasePrice:   170,
				Description: "Mojarra frita entera, servida con arroz y ensalada fresca.",
				VariantGroups: []models.VariantGroup{
					{Type: "Estilo", Options: []string{"Frita", "Al Mojo", "A la Diabla", "Enchipoclada"}, IsRequired: true},
					{Type: "Guarnición", Options: []string{"Arroz y Ensalada", "Papas Fritas"}, IsRequired: true},
					{Type: "S/N", Options: []string{"Cebolla", "Ajo"}, AllowMultiple: true},
				},
				DisableRules: []models.DisableRule{
					{When: "Frita", Disable: []string{"Cebolla", "Ajo"}},
				},
			},
			{
				ID:          "camarones-mixtos-6",
				Name:        "Camarones Mixtos",
				BasePrice:   185,
				IsMixed:     true,
				Description: "Elige dos de nuestras preparaciones especiales. ¡Combina a tu antojo!",
				VariantGroups: []models.VariantGroup{
					{Type: "Preparación", Options: []string{"Al Mojo", "A la Diabla", "Enchipotlado", "Empanizados", "Plancha"}, IsRequired: true},
					{Type: "Proteína", Options: []string{"Camarón Pelado", "Camarón con Cáscara", "Pulpo"}, IsRequired: true},
					{Type: "Guarnición", Options: []string{"Arroz y Ensalada", "Papas Fritas"}, IsRequired: true},
				},
			},
			{
				ID:          "caldo-sopa-7",
				Name:        "Caldo / Sopa",
				BasePrice:   130,
				Description: "Elige entre nuestro reconfortante caldo de pescado o nuestra rica sopa de mariscos.",
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
			},
			{
				ID:          "pulpo-al-gusto-8",
				Name:        "Pulpo al Gusto",
				BasePrice:   180,
				Description: "Pulpo tierno y sabroso, cocinado en la preparación que más te guste.",
				VariantGroups: []models.VariantGroup{
					{Type: "Estilo", Options: []string{"Al Mojo", "A la Diabla", "Encebollado", "A la Mexicana", "Al Ajillo"}, IsRequired: true},
					{Type: "Guarnición", Options: []string{"Arroz y Ensalada", "Papas Fritas"}, IsRequired: true},
				},
				Recipe: []models.RecipeIngredient{
					{InventoryItemID: "pulpo-2", Amount: 0.25},
				},
			},
			{
				ID:          "aguachile-9",
				Name:        "Aguachile",
				BasePrice:   0,
				Description: "Aguachile fresco y picante, tú eliges el precio según el tamaño.",
				VariantGroups: []models.VariantGroup{
					{Type: "Estilo", Options: []string{"Rojo", "Verde", "Negro"}, IsRequired: true},
					{Type: "Picante", Options: []string{"Poco", "Medio", "Mucho"}, IsRequired: true},
				},
			},
		},
		BebidasPostres: []models.MenuItem{
			{
				ID:          "refrescos-1",
				Name:        "Refresco",
				BasePrice:   25,
				Description: "Refrescos de lata de 355ml.",
				VariantGroups: []models.VariantGroup{
					{Type: "Sabor", Options: []string{"Coca-Cola", "Sprite", "Fanta", "Manzanita", "Agua Mineral"}, IsRequired: true},
				},
			},
			{ID: "coca-cola-vidrio-2", Name: "Coca-Cola Vidrio", BasePrice: 30, Description: "Coca-Cola de vidrio 355ml."},
			{
				ID:          "cerveza-nacional-3",
				Name:        "Cerveza Nacional",
				BasePrice:   40,
				Description: "Cerveza nacional 355ml.",
				VariantGroups: []models.VariantGroup{
					{Type: "Marca", Options: []string{"Corona", "Victoria", "Modelo Especial", "Tecate Light", "Pacífico"}, IsRequired: true},
				},
			},
			{
				ID:          "cerveza-media-4",
				Name:        "Cerveza Media",
				BasePrice:   50,
				Description: "Cerveza de media 473ml.",
				VariantGroups: []models.VariantGroup{
					{Type: "Marca", Options: []string{"Corona", "Victoria"}, IsRequired: true},
				},
			},
			{ID: "michelada-5", Name: "Michelada", BasePrice: 55, Description: "Tu cerveza preparada con sal, limón y salsas."},
			{ID: "michelada-camaron-6", Name: "Michelada con Camarón", BasePrice: 110, Description: "La michelada de la casa con camarones frescos."},
			{ID: "limonada-rusa-7", Name: "Limonada / Rusa", BasePrice: 40, Description: "Agua mineral preparada o limonada fresca."},
			{
				ID:          "jarra-agua-8",
				Name:        "Jarra de Agua",
				BasePrice:   80,
				Description: "Jarra de agua fresca de 1.5 litros para compartir.",
				VariantPriceDeltas: map[string]float64{
					"Limón":   10,
					"Naranja": 10,
				},
				VariantGroups: []models.VariantGroup{
					{Type: "Sabor", Options: []string{"Horchata", "Jamaica", "Limón", "Naranja"}, IsRequired: true},
				},
			},
			{ID: "cafe-olla-9", Name: "Café de Olla", BasePrice: 25, Description: "Café de olla caliente."},
			{ID: "flan-napolitano-10", Name: "Flan Napolitano", BasePrice: 45, Description: "El flan cremoso de la casa."},
			{ID: "duraznos-crema-11", Name: "Duraznos con Crema", BasePrice: 40, Description: "Duraznos en almíbar servidos con crema."},
		},
	}
}

// SeedInventory returns the starting stock for a fresh restaurant database.
func SeedInventory() []models.InventoryItem {
	return []models.InventoryItem{
		{ID: "camaron-1", Name: "Camarón", Stock: 10, Unit: models.UnitKg, LowStockThreshold: 2},
		{ID: "pulpo-2", Name: "Pulpo", Stock: 8, Unit: models.UnitKg, LowStockThreshold: 1.5},
		{ID: "pescado-3", Name: "Filete de Pescado", Stock: 15, Unit: models.UnitKg, LowStockThreshold: 3},
		{ID: "tomate-4", Name: "Tomate", Stock: 5, Unit: models.UnitKg, LowStockThreshold: 1},
		{ID: "cebolla-5", Name: "Cebolla", Stock: 5, Unit: models.UnitKg, LowStockThreshold: 1},
		{ID: "limon-6", Name: "Limón", Stock: 8, Unit: models.UnitKg, LowStockThreshold: 2},
		{ID: "aguacate-7", Name: "Aguacate", Stock: 20, Unit: models.UnitPz, LowStockThreshold: 5},
		{ID: "cerveza-8", Name: "Cerveza Corona", Stock: 48, Unit: models.UnitPz, LowStockThreshold: 12},
		{ID: "refresco-9", Name: "Coca-Cola", Stock: 50, Unit: models.UnitPz, LowStockThreshold: 12},
	}
}

// SeedTables returns eight free tables.
func SeedTables() []models.Table {
	tables := make([]models.Table, 0, 8)
	for i := 1; i <= 8; i++ {
		tables = append(tables, models.Table{ID: i, Status: models.TableLibre, Order: []models.OrderLine{}})
	}
	return tables
}
