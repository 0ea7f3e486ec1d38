package main

import (
	"github.com/pizzame/backend/internal/config"
	"github.com/pizzame/backend/internal/logger"
	"github.com/pizzame/backend/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 尺寸
	sizes := []models.PizzaSize{
		{Name: "Small", DiameterCM: 25, PriceMultiplier: decimal.NewFromFloat(0.8), IsActive: true},
		{Name: "Medium", DiameterCM: 30, PriceMultiplier: decimal.NewFromInt(1), IsActive: true},
		{Name: "Large", DiameterCM: 35, PriceMultiplier: decimal.NewFromFloat(1.3), IsActive: true},
		{Name: "Family", DiameterCM: 42, PriceMultiplier: decimal.NewFromFloat(1.6), IsActive: true},
	}
	for _, size := range sizes {
		var existing models.PizzaSize
		if err := models.DB.Where("name = ?", size.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&size).Error; err != nil {
				stdLog.Printf("Failed to create size %s: %v", size.Name, err)
			} else {
				stdLog.Printf("Created size: %s", size.Name)
			}
		} else {
			stdLog.Printf("Size already exists: %s", size.Name)
		}
	}

	// 过敏原
	allergens := []models.Allergen{
		{Name: "Gluten", Symbol: "A", Description: "Cereals containing gluten"},
		{Name: "Milk", Symbol: "G", Description: "Milk and dairy products including lactose"},
		{Name: "Eggs", Symbol: "C", Description: "Eggs and egg products"},
		{Name: "Fish", Symbol: "D", Description: "Fish and fish products"},
		{Name: "Soy", Symbol: "F", Description: "Soybeans and soy products"},
	}
	for _, allergen := range allergens {
		var existing models.Allergen
		if err := models.DB.Where("name = ?", allergen.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&allergen).Error; err != nil {
				stdLog.Printf("Failed to create allergen %s: %v", allergen.Name, err)
			} else {
				stdLog.Printf("Created allergen: %s", allergen.Name)
			}
		} else {
			stdLog.Printf("Allergen already exists: %s", allergen.Name)
		}
	}
	allergenIDs := map[string]uint{}
	var allergenList []models.Allergen
	if err := models.DB.Find(&allergenList).Error; err != nil {
		stdLog.Printf("Failed to load allergens: %v", err)
	}
	for _, allergen := range allergenList {
		allergenIDs[allergen.Name] = allergen.ID
	}

	// 配料
	type seedIngredient struct {
		name      string
		slug      string
		price     float64
		cost      float64
		stock     int
		allergens []string
	}
	ingredients := []seedIngredient{
		{name: "Tomato Sauce", slug: "tomato-sauce", price: 0.50, cost: 0.15, stock: 500},
		{name: "Mozzarella", slug: "mozzarella", price: 1.50, cost: 0.60, stock: 400, allergens: []string{"Milk"}},
		{name: "Basil", slug: "basil", price: 0.50, cost: 0.10, stock: 200},
		{name: "Pepperoni", slug: "pepperoni", price: 2.00, cost: 0.80, stock: 300},
		{name: "Mushrooms", slug: "mushrooms", price: 1.00, cost: 0.35, stock: 250},
		{name: "Red Onions", slug: "red-onions", price: 0.50, cost: 0.12, stock: 300},
		{name: "Bell Peppers", slug: "bell-peppers", price: 1.00, cost: 0.30, stock: 250},
		{name: "Olives", slug: "olives", price: 1.00, cost: 0.40, stock: 200},
		{name: "Ham", slug: "ham", price: 2.00, cost: 0.85, stock: 220},
		{name: "Pineapple", slug: "pineapple", price: 1.50, cost: 0.45, stock: 150},
		{name: "Gorgonzola", slug: "gorgonzola", price: 2.00, cost: 0.95, stock: 120, allergens: []string{"Milk"}},
		{name: "Parmesan", slug: "parmesan", price: 1.50, cost: 0.70, stock: 180, allergens: []string{"Milk"}},
		{name: "Ricotta", slug: "ricotta", price: 1.50, cost: 0.65, stock: 140, allergens: []string{"Milk"}},
		{name: "Tuna", slug: "tuna", price: 2.50, cost: 1.10, stock: 130, allergens: []string{"Fish"}},
		{name: "Jalapenos", slug: "jalapenos", price: 1.00, cost: 0.35, stock: 160},
		{name: "Vegan Cheese", slug: "vegan-cheese", price: 2.00, cost: 0.90, stock: 100, allergens: []string{"Soy"}},
	}
	for _, item := range ingredients {
		var existing models.Ingredient
		if err := models.DB.Where("slug = ?", item.slug).First(&existing).Error; err == nil {
			stdLog.Printf("Ingredient already exists: %s", item.slug)
			continue
		}
		ingredient := models.Ingredient{
			Name:          item.name,
			Slug:          item.slug,
			PricePerExtra: models.NewMoneyFromDecimal(decimal.NewFromFloat(item.price)),
			CostPerUnit:   models.NewMoneyFromDecimal(decimal.NewFromFloat(item.cost)),
			StockQuantity: item.stock,
			MinimumStock:  50,
			IsActive:      true,
		}
		for _, name := range item.allergens {
			if id, ok := allergenIDs[name]; ok {
				ingredient.Allergens = append(ingredient.Allergens, models.Allergen{ID: id})
			}
		}
		if err := models.DB.Create(&ingredient).Error; err != nil {
			stdLog.Printf("Failed to create ingredient %s: %v", item.slug, err)
		} else {
			stdLog.Printf("Created ingredient: %s", item.slug)
		}
	}
	ingredientIDs := map[string]uint{}
	var ingredientList []models.Ingredient
	if err := models.DB.Find(&ingredientList).Error; err != nil {
		stdLog.Printf("Failed to load ingredients: %v", err)
	}
	for _, ingredient := range ingredientList {
		ingredientIDs[ingredient.Slug] = ingredient.ID
	}

	// 分类
	categories := []models.Category{
		{Name: "Classic Pizzas", Slug: "classic-pizzas", Description: "Traditional favourites", SortOrder: 1, IsActive: true},
		{Name: "Vegetarian Pizzas", Slug: "vegetarian-pizzas", Description: "Meat free options", SortOrder: 2, IsActive: true},
		{Name: "Specialty Pizzas", Slug: "specialty-pizzas", Description: "House specials", SortOrder: 3, IsActive: true},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 披萨
	type seedRecipeRow struct {
		slug      string
		removable bool
	}
	type seedPizza struct {
		name       string
		slug       string
		desc       string
		category   string
		price      float64
		vegetarian bool
		vegan      bool
		spicy      bool
		featured   bool
		recipe     []seedRecipeRow
	}
	pizzas := []seedPizza{
		{
			name: "Margherita", slug: "margherita", desc: "Tomato sauce, mozzarella and fresh basil",
			category: "classic-pizzas", price: 8.50, vegetarian: true, featured: true,
			recipe: []seedRecipeRow{{"tomato-sauce", false}, {"mozzarella", true}, {"basil", true}},
		},
		{
			name: "Pepperoni", slug: "pepperoni", desc: "Tomato sauce, mozzarella and double pepperoni",
			category: "classic-pizzas", price: 10.00, featured: true,
			recipe: []seedRecipeRow{{"tomato-sauce", false}, {"mozzarella", true}, {"pepperoni", true}},
		},
		{
			name: "Hawaiian", slug: "hawaiian", desc: "Tomato sauce, mozzarella, ham and pineapple",
			category: "classic-pizzas", price: 10.50,
			recipe: []seedRecipeRow{{"tomato-sauce", false}, {"mozzarella", true}, {"ham", true}, {"pineapple", true}},
		},
		{
			name: "Funghi", slug: "funghi", desc: "Tomato sauce, mozzarella and mushrooms",
			category: "vegetarian-pizzas", price: 9.50, vegetarian: true,
			recipe: []seedRecipeRow{{"tomato-sauce", false}, {"mozzarella", true}, {"mushrooms", true}},
		},
		{
			name: "Veggie Deluxe", slug: "veggie-deluxe", desc: "Loaded with peppers, onions, mushrooms and olives",
			category: "vegetarian-pizzas", price: 11.00, vegetarian: true,
			recipe: []seedRecipeRow{
				{"tomato-sauce", false}, {"mozzarella", true}, {"bell-peppers", true},
				{"red-onions", true}, {"mushrooms", true}, {"olives", true},
			},
		},
		{
			name: "Vegan Garden", slug: "vegan-garden", desc: "Vegan cheese with garden vegetables",
			category: "vegetarian-pizzas", price: 11.50, vegetarian: true, vegan: true,
			recipe: []seedRecipeRow{
				{"tomato-sauce", false}, {"vegan-cheese", true}, {"bell-peppers", true},
				{"red-onions", true}, {"mushrooms", true},
			},
		},
		{
			name: "Quattro Formaggi", slug: "quattro-formaggi", desc: "Four cheese blend on a white base",
			category: "specialty-pizzas", price: 12.00, vegetarian: true, featured: true,
			recipe: []seedRecipeRow{
				{"mozzarella", false}, {"gorgonzola", true}, {"parmesan", true}, {"ricotta", true},
			},
		},
		{
			name: "Tonno", slug: "tonno", desc: "Tomato sauce, mozzarella, tuna and red onions",
			category: "specialty-pizzas", price: 11.50,
			recipe: []seedRecipeRow{{"tomato-sauce", false}, {"mozzarella", true}, {"tuna", true}, {"red-onions", true}},
		},
		{
			name: "Diavola", slug: "diavola", desc: "Spicy pepperoni with jalapenos",
			category: "specialty-pizzas", price: 11.00, spicy: true,
			recipe: []seedRecipeRow{
				{"tomato-sauce", false}, {"mozzarella", true}, {"pepperoni", true}, {"jalapenos", true},
			},
		},
	}
	for sortOrder, item := range pizzas {
		var existing models.Pizza
		if err := models.DB.Where("slug = ?", item.slug).First(&existing).Error; err == nil {
			stdLog.Printf("Pizza already exists: %s", item.slug)
			continue
		}
		categoryID, ok := categoryIDs[item.category]
		if !ok {
			stdLog.Printf("Missing category for pizza %s: %s", item.slug, item.category)
			continue
		}
		pizza := models.Pizza{
			Name:         item.name,
			Slug:         item.slug,
			Description:  item.desc,
			CategoryID:   categoryID,
			BasePrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(item.price)),
			IsActive:     true,
			IsFeatured:   item.featured,
			IsVegetarian: item.vegetarian,
			IsVegan:      item.vegan,
			IsSpicy:      item.spicy,
			SortOrder:    sortOrder + 1,
		}
		if err := models.DB.Create(&pizza).Error; err != nil {
			stdLog.Printf("Failed to create pizza %s: %v", item.slug, err)
			continue
		}
		for _, row := range item.recipe {
			ingredientID, ok := ingredientIDs[row.slug]
			if !ok {
				stdLog.Printf("Missing ingredient for pizza %s: %s", item.slug, row.slug)
				continue
			}
			link := models.PizzaIngredient{
				PizzaID:      pizza.ID,
				IngredientID: ingredientID,
				Quantity:     decimal.NewFromInt(1),
				IsRemovable:  row.removable,
			}
			if err := models.DB.Create(&link).Error; err != nil {
				stdLog.Printf("Failed to link ingredient %s to pizza %s: %v", row.slug, item.slug, err)
			}
		}
		stdLog.Printf("Created pizza: %s", item.slug)
	}

	stdLog.Printf("Seed finished")
}
